package domain

import "strings"

// Family groups categories that share an auto-detection strategy.
type Family string

const (
	FamilyVideoGames  Family = "video_games"
	FamilyElectronics Family = "electronics"
	FamilyUnknown     Family = "unknown"
)

// familyRule matches a family by ancestry-path keywords first, falling back to
// a set of known category ids for trees whose suggestions carry no ancestors.
// New families are additions to this table, not code changes.
type familyRule struct {
	family       Family
	pathKeywords []string
	knownIDs     map[string]struct{}
}

var familyRules = []familyRule{
	{
		family:       FamilyVideoGames,
		pathKeywords: []string{"video game", "video games"},
		knownIDs: idSet(
			"139973", // Video Games
			"1249",   // Video Games & Consoles
			"182174", // Video Game Consoles
			"54968",  // Video Game Accessories
		),
	},
	{
		family: FamilyElectronics,
		pathKeywords: []string{
			"cell phone", "smartphone", "electronics", "computers", "tablets",
			"cameras", "tv, video & home audio", "portable audio",
		},
		knownIDs: idSet(
			"9355",   // Cell Phones & Smartphones
			"15032",  // Cell Phones & Accessories
			"171485", // Tablets & eBook Readers
			"31388",  // Digital Cameras
			"175672", // Laptops & Netbooks
			"293",    // Consumer Electronics
		),
	},
}

func idSet(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// ClassifyCategory resolves a suggestion to its detection family. The ancestry
// path (ancestor names plus the category's own display name) is checked before
// the id sets so unseen leaf ids under a known branch still classify.
func ClassifyCategory(suggestion CategorySuggestion) Family {
	var path strings.Builder
	for _, ancestor := range suggestion.Ancestors {
		path.WriteString(ancestor.Name)
		path.WriteString(" > ")
	}
	path.WriteString(suggestion.Category.Name)
	lowered := strings.ToLower(path.String())

	for _, rule := range familyRules {
		for _, keyword := range rule.pathKeywords {
			if strings.Contains(lowered, keyword) {
				return rule.family
			}
		}
	}

	for _, rule := range familyRules {
		if _, ok := rule.knownIDs[suggestion.Category.ID]; ok {
			return rule.family
		}
	}

	return FamilyUnknown
}
