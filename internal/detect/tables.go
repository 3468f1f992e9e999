package detect

// Static keyword tables backing the extractors. Keys are matched against
// lower-cased text; longest keyword wins on overlap.

var platformDictionary = map[string]string{
	"game boy advance": "Nintendo Game Boy Advance",
	"gameboy advance":  "Nintendo Game Boy Advance",
	"gba":              "Nintendo Game Boy Advance",
	"game boy color":   "Nintendo Game Boy Color",
	"gbc":              "Nintendo Game Boy Color",
	"game boy":         "Nintendo Game Boy",
	"nintendo switch":  "Nintendo Switch",
	"switch":           "Nintendo Switch",
	"nintendo 64":      "Nintendo 64",
	"n64":              "Nintendo 64",
	"gamecube":         "Nintendo GameCube",
	"wii u":            "Nintendo Wii U",
	"wii":              "Nintendo Wii",
	"nintendo ds":      "Nintendo DS",
	"nintendo 3ds":     "Nintendo 3DS",
	"3ds":              "Nintendo 3DS",
	"nes":              "Nintendo NES",
	"snes":             "Super Nintendo Entertainment System",
	"super nintendo":   "Super Nintendo Entertainment System",
	"playstation 5":    "Sony PlayStation 5",
	"ps5":              "Sony PlayStation 5",
	"playstation 4":    "Sony PlayStation 4",
	"ps4":              "Sony PlayStation 4",
	"playstation 3":    "Sony PlayStation 3",
	"ps3":              "Sony PlayStation 3",
	"playstation 2":    "Sony PlayStation 2",
	"ps2":              "Sony PlayStation 2",
	"playstation":      "Sony PlayStation",
	"psp":              "Sony PSP",
	"ps vita":          "Sony PlayStation Vita",
	"xbox series x":    "Microsoft Xbox Series X",
	"xbox series s":    "Microsoft Xbox Series S",
	"xbox one":         "Microsoft Xbox One",
	"xbox 360":         "Microsoft Xbox 360",
	"xbox":             "Microsoft Xbox",
	"sega genesis":     "Sega Genesis",
	"genesis":          "Sega Genesis",
	"dreamcast":        "Sega Dreamcast",
}

var brandDictionary = map[string]string{
	"apple":     "Apple",
	"iphone":    "Apple",
	"ipad":      "Apple",
	"macbook":   "Apple",
	"samsung":   "Samsung",
	"galaxy":    "Samsung",
	"sony":      "Sony",
	"microsoft": "Microsoft",
	"google":    "Google",
	"pixel":     "Google",
	"lg":        "LG",
	"motorola":  "Motorola",
	"oneplus":   "OnePlus",
	"nokia":     "Nokia",
	"dell":      "Dell",
	"hp":        "HP",
	"lenovo":    "Lenovo",
	"asus":      "ASUS",
	"acer":      "Acer",
	"canon":     "Canon",
	"nikon":     "Nikon",
	"bose":      "Bose",
	"jbl":       "JBL",
	"nintendo":  "Nintendo",
	"garmin":    "Garmin",
	"fitbit":    "Fitbit",
	"gopro":     "GoPro",
}

// genreBuckets are checked in order; the first bucket with a trigger present
// in the text wins.
type genreBucket struct {
	label    string
	triggers []string
}

var genreBuckets = []genreBucket{
	{label: "Role Playing", triggers: []string{"rpg", "role playing", "pokemon", "final fantasy", "dragon quest", "elder scrolls"}},
	{label: "Shooter", triggers: []string{"shooter", "fps", "call of duty", "halo", "doom", "battlefield"}},
	{label: "Sports", triggers: []string{"sports", "fifa", "madden", "nba 2k", "mlb the show"}},
	{label: "Racing", triggers: []string{"racing", "kart", "forza", "gran turismo", "need for speed"}},
	{label: "Fighting", triggers: []string{"fighting", "street fighter", "mortal kombat", "tekken", "smash bros"}},
	{label: "Platformer", triggers: []string{"platformer", "mario", "sonic", "crash bandicoot"}},
	{label: "Puzzle", triggers: []string{"puzzle", "tetris", "portal"}},
	{label: "Action & Adventure", triggers: []string{"action", "adventure", "zelda", "tomb raider", "uncharted"}},
	{label: "Simulation", triggers: []string{"simulation", "sims", "tycoon", "animal crossing", "stardew"}},
	{label: "Strategy", triggers: []string{"strategy", "civilization", "starcraft", "age of empires"}},
	{label: "Horror", triggers: []string{"horror", "resident evil", "silent hill"}},
}

var colorPalette = []string{
	"Black", "White", "Red", "Blue", "Green", "Yellow", "Purple", "Pink",
	"Silver", "Gold", "Gray", "Grey", "Orange", "Brown", "Teal", "Navy",
	"Graphite", "Midnight", "Rose Gold",
}
