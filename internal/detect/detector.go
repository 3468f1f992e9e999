// Package detect extracts structured aspect values from free-text listing
// titles. Detection is deterministic: fixed dictionaries, fixed extractor
// order, no external state. An extractor only writes an aspect the category
// schema actually defines, so detection never invents attributes.
package detect

import (
	"regexp"
	"sort"
	"strings"

	"relist/engine/internal/domain"

	"github.com/samber/lo"
)

// Titles stripped down below this length fall back to the untouched title.
const minRemainderLength = 3

var modelNumberPattern = regexp.MustCompile(`[A-Za-z0-9-]*\d[A-Za-z0-9-]*`)

type input struct {
	title   string
	lowered string
}

type extractor struct {
	aspect  string
	extract func(in input) []string
}

// Extractor order is fixed per family; results do not depend on map iteration.
var familyExtractors = map[domain.Family][]extractor{
	domain.FamilyVideoGames: {
		{aspect: "Platform", extract: extractPlatform},
		{aspect: "Game Name", extract: extractGameName},
		{aspect: "Genre", extract: extractGenre},
		{aspect: "Color", extract: extractColor},
	},
	domain.FamilyElectronics: {
		{aspect: "Brand", extract: extractBrand},
		{aspect: "Model", extract: extractModel},
		{aspect: "MPN", extract: extractModelNumber},
		{aspect: "Color", extract: extractColor},
	},
}

var (
	platformKeys = keysByLength(platformDictionary)
	brandKeys    = keysByLength(brandDictionary)
)

// Detect runs the family's extractors against the lower-cased title and
// optional description. Unsupported families return an empty map.
func Detect(family domain.Family, title, description string, aspects []domain.AspectConstraint) domain.AutoDetectedAspects {
	detected := domain.AutoDetectedAspects{}

	extractors, ok := familyExtractors[family]
	if !ok {
		return detected
	}

	names := lo.SliceToMap(aspects, func(a domain.AspectConstraint) (string, struct{}) {
		return a.Name, struct{}{}
	})

	text := title
	if description != "" {
		text += " " + description
	}
	in := input{title: title, lowered: strings.ToLower(text)}

	for _, ex := range extractors {
		if _, ok := names[ex.aspect]; !ok {
			continue
		}
		if values := ex.extract(in); len(values) > 0 {
			detected[ex.aspect] = values
		}
	}

	return detected
}

func extractPlatform(in input) []string {
	if canonical, ok := matchDictionary(in.lowered, platformKeys, platformDictionary); ok {
		return []string{canonical}
	}
	return nil
}

func extractBrand(in input) []string {
	if canonical, ok := matchDictionary(in.lowered, brandKeys, brandDictionary); ok {
		return []string{canonical}
	}
	return nil
}

// extractGameName strips every matched platform token from the title and keeps
// the remainder; an unusably short remainder falls back to the full title.
func extractGameName(in input) []string {
	remainder := stripMatchedKeywords(in.title, in.lowered, platformKeys)
	if len(remainder) < minRemainderLength {
		remainder = strings.TrimSpace(in.title)
	}
	if remainder == "" {
		return nil
	}
	return []string{remainder}
}

// extractModel strips canonical brand names from the title; product-line
// tokens like "iPhone" stay, so "Apple iPhone 12 Pro Max" yields
// "iPhone 12 Pro Max". Falls back to the first model-number-looking substring.
func extractModel(in input) []string {
	remainder := stripMatchedKeywords(in.title, in.lowered, canonicalBrandKeys())
	if len(remainder) >= minRemainderLength && !strings.EqualFold(remainder, strings.TrimSpace(in.title)) {
		return []string{remainder}
	}
	return extractModelNumber(in)
}

// extractModelNumber returns the first alphanumeric substring containing both
// a letter and a digit. Heuristic only, never validated against the schema.
func extractModelNumber(in input) []string {
	for _, match := range modelNumberPattern.FindAllString(in.title, -1) {
		if strings.IndexFunc(match, isLetter) >= 0 {
			return []string{match}
		}
	}
	return nil
}

func extractGenre(in input) []string {
	for _, bucket := range genreBuckets {
		for _, trigger := range bucket.triggers {
			if containsWord(in.lowered, trigger) {
				return []string{bucket.label}
			}
		}
	}
	return nil
}

func extractColor(in input) []string {
	for _, color := range colorPalette {
		if containsWord(in.lowered, strings.ToLower(color)) {
			return []string{color}
		}
	}
	return nil
}

// matchDictionary does a longest-match lookup: keys are pre-sorted by length
// so the first word-boundary hit is the most specific one.
func matchDictionary(lowered string, keys []string, dict map[string]string) (string, bool) {
	for _, key := range keys {
		if containsWord(lowered, key) {
			return dict[key], true
		}
	}
	return "", false
}

// stripMatchedKeywords removes every keyword present in the lowered text from
// the original title (word-boundary, case-insensitive) and collapses the
// remaining whitespace.
func stripMatchedKeywords(title, lowered string, keys []string) string {
	result := title
	for _, key := range keys {
		if !containsWord(lowered, key) {
			continue
		}
		pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(key) + `\b`)
		result = pattern.ReplaceAllString(result, " ")
	}
	return strings.Join(strings.Fields(result), " ")
}

// containsWord reports whether keyword occurs in text on word boundaries.
func containsWord(text, keyword string) bool {
	for start := 0; ; {
		idx := strings.Index(text[start:], keyword)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(keyword)
		beforeOK := idx == 0 || !isWordByte(text[idx-1])
		afterOK := end == len(text) || !isWordByte(text[end])
		if beforeOK && afterOK {
			return true
		}
		start = idx + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func keysByLength(dict map[string]string) []string {
	keys := lo.Keys(dict)
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

func canonicalBrandKeys() []string {
	keys := lo.FilterMap(lo.Entries(brandDictionary), func(e lo.Entry[string, string], _ int) (string, bool) {
		return e.Key, strings.EqualFold(e.Key, e.Value)
	})
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}
