package domain

// RelevancyTier is the confidence label the taxonomy service attaches to a
// category suggestion. The engine passes it through verbatim.
type RelevancyTier string

const (
	TierHigh   RelevancyTier = "HIGH"
	TierMedium RelevancyTier = "MEDIUM"
	TierLow    RelevancyTier = "LOW"
)

func (t RelevancyTier) String() string {
	return string(t)
}

// Category is a single node of the marketplace category tree. Names are
// display-form ancestry strings like "Electronics > Cell Phones & Smartphones".
type Category struct {
	ID   string `json:"category_id"`
	Name string `json:"category_name"`
}

// CategorySuggestion is one candidate returned by the taxonomy service for a
// free-text query. Suggestions arrive relevancy-sorted; nothing re-sorts them.
type CategorySuggestion struct {
	Category  Category      `json:"category"`
	Level     int           `json:"level"`
	Relevancy RelevancyTier `json:"relevancy"`
	Ancestors []Category    `json:"ancestors,omitempty"`
}
