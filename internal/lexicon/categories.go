package lexicon

// categoryRules drives category detection and search keyword generation for
// community entries. Rules are evaluated in order against the canonical name;
// the first category hit wins, keywords accumulate from every hit.
func categoryRules() []CategoryRule {
	return []CategoryRule{
		{
			Category: "boissons",
			Triggers: []string{"eau", "jus", "coca", "fanta", "sprite", "djino", "vitalo", "maltina", "vitamalt", "the", "cafe"},
			Keywords: []string{"boisson", "drink", "soda", "sucre"},
		},
		{
			Category: "bieres",
			Triggers: []string{"biere", "primus", "skol", "tembo", "castel", "nkoyi", "mutzig", "heineken", "turbo king", "legende"},
			Keywords: []string{"biere", "beer", "masanga", "alcool"},
		},
		{
			Category: "laitier",
			Triggers: []string{"lait", "yaourt", "fromage", "beurre", "creme", "margarine"},
			Keywords: []string{"lait", "milk", "maziwa", "laitier", "dairy"},
		},
		{
			Category: "cereales",
			Triggers: []string{"riz", "farine", "mais", "pates", "spaghetti", "macaroni", "pain", "biscuit"},
			Keywords: []string{"cereale", "riz", "rice", "farine", "flour", "unga"},
		},
		{
			Category: "proteines",
			Triggers: []string{"poisson", "poulet", "viande", "oeufs", "sardine", "tilapia", "corned beef", "haricot"},
			Keywords: []string{"proteine", "viande", "meat", "nyama", "poisson", "fish"},
		},
		{
			Category: "legumes",
			Triggers: []string{"tomate", "oignon", "ail", "pomme de terre", "manioc", "banane", "pili pili"},
			Keywords: []string{"legume", "vegetable", "mboga", "frais"},
		},
		{
			Category: "epicerie",
			Triggers: []string{"sucre", "sel", "huile", "bouillon", "mayonnaise", "vinaigre", "arachide", "tomate concentree"},
			Keywords: []string{"epicerie", "grocery", "cuisine", "condiment"},
		},
		{
			Category: "menage",
			Triggers: []string{"savon", "omo", "javel", "dentifrice", "papier hygienique", "allumettes", "bougie", "insecticide", "moustiquaire"},
			Keywords: []string{"menage", "household", "hygiene", "nettoyage"},
		},
		{
			Category: "confiserie",
			Triggers: []string{"bonbon", "chocolat", "caramel", "creme glace"},
			Keywords: []string{"sucrerie", "confiserie", "sweet", "dessert"},
		},
	}
}

// currencySymbolTable maps the symbols and informal spellings seen on receipts
// to ISO 4217 codes. Central African receipts mix FC, USD and CDF notation
// freely.
func currencySymbolTable() map[string]string {
	return map[string]string{
		"$":      "USD",
		"usd":    "USD",
		"us$":    "USD",
		"dollar": "USD",
		"fc":     "CDF",
		"cdf":    "CDF",
		"franc":  "CDF",
		"francs": "CDF",
		"€":      "EUR",
		"eur":    "EUR",
		"euro":   "EUR",
		"fcfa":   "XAF",
		"xaf":    "XAF",
		"cfa":    "XAF",
		"ksh":    "KES",
		"kes":    "KES",
		"ugx":    "UGX",
		"rwf":    "RWF",
		"frw":    "RWF",
	}
}
