package lexicon

// synonymTable maps French, English, Lingala, Swahili and brand variants to a
// single canonical root. Roots follow the French market spelling since that is
// what most receipts in the target cities print.
func synonymTable() map[string]string {
	return map[string]string{
		// Dairy.
		"lait": "lait", "milk": "lait", "leche": "lait", "miziki": "lait",
		"maziwa": "lait", "lait entier": "lait", "whole milk": "lait",
		"nido": "lait", "lactel": "lait", "bonnet rouge": "lait",
		"yaourt": "yaourt", "yogurt": "yaourt", "yoghurt": "yaourt",
		"yohurt": "yaourt", "mtindi": "yaourt",
		"beurre": "beurre", "butter": "beurre", "siagi": "beurre",
		"fromage": "fromage", "cheese": "fromage", "jibini": "fromage",
		"creme glace": "creme glace", "ice cream": "creme glace",
		"glace": "creme glace", "creme glacee": "creme glace",

		// Staples.
		"riz": "riz", "rice": "riz", "loso": "riz", "mchele": "riz",
		"wali": "riz", "riz basmati": "riz basmati", "basmati": "riz basmati",
		"farine": "farine", "flour": "farine", "fufu": "farine",
		"farine de ble": "farine", "unga": "farine",
		"farine de mais": "farine de mais", "maize flour": "farine de mais",
		"sucre": "sucre", "sugar": "sucre", "sukari": "sucre",
		"sukali": "sucre",
		"sel":    "sel", "salt": "sel", "mungwa": "sel", "chumvi": "sel",
		"huile": "huile", "oil": "huile", "mafuta": "huile",
		"huile vegetale": "huile", "huile de palme": "huile de palme",
		"palm oil": "huile de palme", "mbila": "huile de palme",
		"pain": "pain", "bread": "pain", "lipa": "pain", "mkate": "pain",
		"mikate": "pain",
		"pates":  "pates", "pasta": "pates", "spaghetti": "spaghetti",
		"macaroni": "macaroni",
		"tomate":   "tomate", "tomato": "tomate", "nyanya": "tomate",
		"tomate concentree":   "tomate concentree",
		"concentre de tomate": "tomate concentree",
		"tomato paste":        "tomate concentree",
		"oignon":              "oignon", "onion": "oignon", "litungulu": "oignon",
		"kitunguu": "oignon",
		"ail":      "ail", "garlic": "ail",
		"pomme de terre": "pomme de terre", "potato": "pomme de terre",
		"potatoes": "pomme de terre", "mbala": "pomme de terre",
		"viazi":  "pomme de terre",
		"banane": "banane", "banana": "banane", "etabe": "banane",
		"ndizi": "banane", "banane plantain": "banane plantain",
		"plantain": "banane plantain", "makemba": "banane plantain",
		"haricot": "haricot", "beans": "haricot", "madesu": "haricot",
		"maharagwe": "haricot",
		"arachide":  "arachide", "peanut": "arachide", "groundnut": "arachide",
		"nguba": "arachide", "karanga": "arachide",
		"mais": "mais", "corn": "mais", "maize": "mais", "lisangu": "mais",
		"mahindi": "mais",
		"manioc":  "manioc", "cassava": "manioc", "songo": "manioc",
		"mihogo": "manioc",
		"oeuf":   "oeufs", "oeufs": "oeufs", "egg": "oeufs", "eggs": "oeufs",
		"maki": "oeufs", "mayai": "oeufs",
		"tilapia": "tilapia",
		"poisson": "poisson", "fish": "poisson", "mbisi": "poisson",
		"samaki": "poisson", "poisson sale": "poisson sale",
		"makayabu": "poisson sale",
		"poulet":   "poulet", "chicken": "poulet", "nsoso": "poulet",
		"kuku":   "poulet",
		"viande": "viande", "meat": "viande", "boeuf": "viande",
		"beef": "viande", "nyama": "viande",
		"chikwange": "chikwange", "kwanga": "chikwange",

		// Drinks and beer brands.
		"eau": "eau", "water": "eau", "mai": "eau", "maji": "eau",
		"eau minerale": "eau", "mineral water": "eau", "swissta": "eau",
		"canadian pure": "eau",
		"jus":           "jus", "juice": "jus", "jus d orange": "jus",
		"coca cola": "coca cola", "coca": "coca cola", "coke": "coca cola",
		"cocacola": "coca cola",
		"fanta":    "fanta", "sprite": "sprite", "vitalo": "vitalo",
		"djino": "djino", "maltina": "maltina", "vitamalt": "vitamalt",
		"primus": "primus", "skol": "skol", "tembo": "tembo",
		"castel": "castel", "castel beer": "castel",
		"castel lite": "castel lite",
		"nkoyi":       "nkoyi", "turbo king": "turbo king", "mutzig": "mutzig",
		"heineken": "heineken", "legende": "legende",
		"biere": "biere", "beer": "biere", "masanga": "biere", "bia": "biere",
		"the": "the", "tea": "the", "chai": "the", "the vert": "the",
		"cafe": "cafe", "coffee": "cafe", "kahawa": "cafe", "nescafe": "cafe",

		// Household and care.
		"savon": "savon", "soap": "savon", "sabuni": "savon", "monganga": "savon",
		"le coq": "savon", "omo": "omo", "savon poudre": "omo",
		"washing powder": "omo",
		"dentifrice":     "dentifrice", "toothpaste": "dentifrice",
		"colgate":           "dentifrice",
		"papier hygienique": "papier hygienique", "toilet paper": "papier hygienique",
		"papier toilette": "papier hygienique",
		"allumettes":      "allumettes", "matches": "allumettes", "kibiriti": "allumettes",
		"bougie": "bougie", "candle": "bougie", "mshumaa": "bougie",
		"eau de javel": "javel", "javel": "javel", "bleach": "javel",
		"insecticide": "insecticide", "moustiquaire": "moustiquaire",

		// Condiments.
		"tomate pili pili": "pili pili", "pili pili": "pili pili",
		"piment": "pili pili", "pepper": "pili pili",
		"bouillon": "bouillon", "maggi": "bouillon", "cube maggi": "bouillon",
		"mayonnaise": "mayonnaise", "mayo": "mayonnaise",
		"vinaigre": "vinaigre", "vinegar": "vinaigre",
		"lait concentre": "lait concentre", "condensed milk": "lait concentre",
		"cowbell":   "lait concentre",
		"margarine": "margarine", "blue band": "margarine",
		"biscuit": "biscuit", "biscuits": "biscuit", "cookies": "biscuit",
		"chocolat": "chocolat", "chocolate": "chocolat",
		"bonbon": "bonbon", "candy": "bonbon", "sweets": "bonbon",
		"caramel": "caramel",
		"sardine": "sardine", "sardines": "sardine", "pilchard": "sardine",
		"corned beef": "corned beef", "singa": "corned beef",
	}
}

// noiseWordSet lists tokens that never distinguish one product from another.
func noiseWordSet() map[string]struct{} {
	words := []string{
		"unit", "unite", "piece", "pc", "pce",
		"medium", "moyen", "moyenne", "petit", "petite", "grand", "grande",
		"small", "large", "big",
		"promo", "promotion", "offre", "solde", "discount",
		"new", "nouveau", "nouvelle", "original", "classic", "classique",
		"qualite", "quality", "super", "extra", "premium",
		"importe", "imported", "local", "locale",
		"art", "article", "ref", "item", "produit", "product",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// unitSynonymTable folds unit spellings to the canonical abbreviation used in
// size suffixes.
func unitSynonymTable() map[string]string {
	return map[string]string{
		"kg": "kg", "kilo": "kg", "kilos": "kg", "kilogram": "kg",
		"kilogramme": "kg", "kgs": "kg",
		"g": "g", "gr": "g", "gram": "g", "gramme": "g", "grammes": "g",
		"grams": "g",
		"l":     "l", "lt": "l", "ltr": "l", "liter": "l", "litre": "l",
		"litres": "l", "liters": "l",
		"ml": "ml", "milliliter": "ml", "millilitre": "ml", "mililitre": "ml",
		"cl": "cl", "centilitre": "cl",
		"dl": "dl", "decilitre": "dl",
		"oz": "oz", "ounce": "oz",
		"lb": "lb", "pound": "lb", "livre": "lb",
		"pcs": "pcs", "pieces": "pcs", "pces": "pcs",
		"pack": "pack", "paquet": "pack", "pk": "pack",
		"sachet": "sachet", "sachets": "sachet", "sch": "sachet",
	}
}
