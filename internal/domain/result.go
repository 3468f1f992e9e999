package domain

import "time"

// SuggestedCategory is one enriched candidate in a SmartCategoryResult.
type SuggestedCategory struct {
	CategoryID          string              `json:"category_id"`
	CategoryName        string              `json:"category_name"`
	Confidence          RelevancyTier       `json:"confidence"`
	AutoDetectedAspects AutoDetectedAspects `json:"auto_detected_aspects"`
	RequiredUserInput   []string            `json:"required_user_input"`
}

// SmartCategoryResult is the output of a full item analysis. Candidate order
// matches the taxonomy service's suggestion order; RecommendedCategory is the
// first candidate's id, empty when there were no suggestions.
type SmartCategoryResult struct {
	SuggestedCategories []SuggestedCategory `json:"suggested_categories"`
	RecommendedCategory string              `json:"recommended_category"`
}

// AnalysisRecord is the persisted snapshot of one completed analysis.
type AnalysisRecord struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Result      SmartCategoryResult `json:"result"`
	CreatedAt   time.Time           `json:"created_at"`
}
