package taxonomy

import "relist/engine/internal/domain"

// Wire DTOs mirror the taxonomy service's JSON shapes. All mapping to domain
// types happens here; nothing else in the module sees these structs.

type treeIDResponse struct {
	CategoryTreeID string `json:"categoryTreeId"`
}

type wireCategory struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

type wireSuggestion struct {
	Category              wireCategory   `json:"category"`
	CategoryTreeNodeLevel int            `json:"categoryTreeNodeLevel"`
	Relevancy             string         `json:"relevancy"`
	Ancestors             []wireCategory `json:"categoryTreeNodeAncestors"`
}

type suggestionsResponse struct {
	CategorySuggestions []wireSuggestion `json:"categorySuggestions"`
}

func (r suggestionsResponse) toDomain() []domain.CategorySuggestion {
	suggestions := make([]domain.CategorySuggestion, 0, len(r.CategorySuggestions))
	for i, ws := range r.CategorySuggestions {
		ancestors := make([]domain.Category, 0, len(ws.Ancestors))
		for _, a := range ws.Ancestors {
			ancestors = append(ancestors, domain.Category{ID: a.CategoryID, Name: a.CategoryName})
		}
		suggestions = append(suggestions, domain.CategorySuggestion{
			Category:  domain.Category{ID: ws.Category.CategoryID, Name: ws.Category.CategoryName},
			Level:     ws.CategoryTreeNodeLevel,
			Relevancy: relevancyTier(ws.Relevancy, i),
			Ancestors: ancestors,
		})
	}
	return suggestions
}

// relevancyTier maps the service's label to a tier; responses that omit the
// label fall back to rank order (first suggestion HIGH, next two MEDIUM).
func relevancyTier(raw string, rank int) domain.RelevancyTier {
	switch raw {
	case "HIGH":
		return domain.TierHigh
	case "MEDIUM":
		return domain.TierMedium
	case "LOW":
		return domain.TierLow
	}
	switch {
	case rank == 0:
		return domain.TierHigh
	case rank <= 2:
		return domain.TierMedium
	default:
		return domain.TierLow
	}
}

type wireAspectValue struct {
	LocalizedValue string `json:"localizedValue"`
}

type wireAspectConstraint struct {
	AspectDataType          string `json:"aspectDataType"`
	AspectRequired          bool   `json:"aspectRequired"`
	AspectUsage             string `json:"aspectUsage"`
	ItemToAspectCardinality string `json:"itemToAspectCardinality"`
}

type wireAspect struct {
	LocalizedAspectName string               `json:"localizedAspectName"`
	AspectConstraint    wireAspectConstraint `json:"aspectConstraint"`
	AspectValues        []wireAspectValue    `json:"aspectValues,omitempty"`
}

type aspectsResponse struct {
	Aspects []wireAspect `json:"aspects"`
}

func (r aspectsResponse) toDomain() []domain.AspectConstraint {
	aspects := make([]domain.AspectConstraint, 0, len(r.Aspects))
	for _, wa := range r.Aspects {
		var allowed []string
		for _, v := range wa.AspectValues {
			allowed = append(allowed, v.LocalizedValue)
		}
		aspects = append(aspects, domain.AspectConstraint{
			Name:          wa.LocalizedAspectName,
			DataType:      aspectDataType(wa.AspectConstraint.AspectDataType),
			Required:      wa.AspectConstraint.AspectRequired,
			Usage:         usageTier(wa.AspectConstraint.AspectUsage),
			Cardinality:   cardinality(wa.AspectConstraint.ItemToAspectCardinality),
			AllowedValues: allowed,
		})
	}
	return aspects
}

func aspectDataType(raw string) domain.AspectDataType {
	switch raw {
	case "STRING_ARRAY":
		return domain.DataTypeStringArray
	case "NUMBER":
		return domain.DataTypeNumber
	case "DATE":
		return domain.DataTypeDate
	default:
		return domain.DataTypeString
	}
}

func usageTier(raw string) domain.UsageTier {
	switch raw {
	case "REQUIRED":
		return domain.UsageRequired
	case "RECOMMENDED":
		return domain.UsageRecommended
	default:
		return domain.UsageOptional
	}
}

func cardinality(raw string) domain.Cardinality {
	if raw == "MULTI" {
		return domain.CardinalityMulti
	}
	return domain.CardinalitySingle
}

type subtreeNode struct {
	CategoryID             string        `json:"categoryId"`
	ChildCategoryTreeNodes []subtreeNode `json:"childCategoryTreeNodes,omitempty"`
}

type subtreeResponse struct {
	CategorySubtreeNode subtreeNode `json:"categorySubtreeNode"`
}
