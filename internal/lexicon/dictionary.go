package lexicon

// misreadTable maps whole words the OCR collaborator reliably gets wrong to
// their correction. These are observed misreads, not generated ones.
func misreadTable() map[string]string {
	return map[string]string{
		"m1lk":     "milk",
		"mi1k":     "milk",
		"la1t":     "lait",
		"lalt":     "lait",
		"sucr3":    "sucre",
		"5ucre":    "sucre",
		"suore":    "sucre",
		"r1z":      "riz",
		"rlz":      "riz",
		"far1ne":   "farine",
		"farlne":   "farine",
		"hu1le":    "huile",
		"hulle":    "huile",
		"0mo":      "omo",
		"sav0n":    "savon",
		"sprlte":   "sprite",
		"spr1te":   "sprite",
		"c0ca":     "coca",
		"c0cacola": "cocacola",
		"fanla":    "fanta",
		"prlmus":   "primus",
		"sk0l":     "skol",
		"blere":    "biere",
		"b1ere":    "biere",
		"p0ulet":   "poulet",
		"p0isson":  "poisson",
		"polsson":  "poisson",
		"t0mate":   "tomate",
		"tornate":  "tomate",
		"olgnon":   "oignon",
		"0ignon":   "oignon",
		"crene":    "creme",
		"crerne":   "creme",
		"glaoe":    "glace",
		"pa1n":     "pain",
		"paln":     "pain",
		"0euf":     "oeuf",
		"0eufs":    "oeufs",
		"rnais":    "mais",
		"viancle":  "viande",
		"rnanioc":  "manioc",
		"bananne":  "banane",
	}
}

// confusionPairs lists character pairs OCR engines swap on thermal receipt
// fonts. Both orders are added to the confusion map at build time.
func confusionPairs() [][2]byte {
	return [][2]byte{
		{'1', 'l'},
		{'1', 'i'},
		{'l', 'i'},
		{'0', 'o'},
		{'5', 's'},
		{'8', 'b'},
		{'6', 'g'},
		{'2', 'z'},
		{'d', 'o'},
		{'e', 'c'},
		{'n', 'r'},
		{'m', 'n'},
		{'u', 'v'},
		{'t', 'f'},
		{'a', 'o'},
		{'h', 'b'},
	}
}
