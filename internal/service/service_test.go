package service_test

import (
	"context"
	"testing"

	"relist/engine/internal/domain"
	"relist/engine/internal/engine"
	"relist/engine/internal/metrics"
	"relist/engine/internal/service"
	"relist/engine/internal/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTaxonomy struct {
	suggestions []domain.CategorySuggestion
	aspects     []domain.AspectConstraint
}

func (s *stubTaxonomy) ResolveCategoryTreeID(ctx context.Context, marketplace string) (string, error) {
	return "0", nil
}

func (s *stubTaxonomy) InvalidateTreeID(ctx context.Context, marketplace string) error {
	return nil
}

func (s *stubTaxonomy) SuggestCategories(ctx context.Context, freeText string) ([]domain.CategorySuggestion, error) {
	return s.suggestions, nil
}

func (s *stubTaxonomy) AspectsForCategory(ctx context.Context, categoryID string) ([]domain.AspectConstraint, error) {
	return s.aspects, nil
}

func (s *stubTaxonomy) IsLeaf(ctx context.Context, categoryID string) (bool, error) {
	return true, nil
}

func newService(stub *stubTaxonomy) (*service.Service, *metrics.Tracker) {
	tracker := metrics.NewTracker()
	svc := service.NewService(engine.New(stub), validate.NewValidator(stub), tracker, nil)
	return svc, tracker
}

func Test_AnalyzeItem_records_a_success_metric(t *testing.T) {
	stub := &stubTaxonomy{
		suggestions: []domain.CategorySuggestion{{
			Category:  domain.Category{ID: "139973", Name: "Video Games"},
			Relevancy: domain.TierHigh,
		}},
		aspects: []domain.AspectConstraint{
			{Name: "Platform", Required: true, Usage: domain.UsageRequired},
		},
	}
	svc, tracker := newService(stub)

	result, err := svc.AnalyzeItem(context.Background(), "Pokemon Fire Red GBA", "")

	require.NoError(t, err)
	assert.Equal(t, "139973", result.RecommendedCategory)

	stats := tracker.Stats("category_analysis")
	assert.Equal(t, 1, stats.TotalOperations)
	assert.Equal(t, 1, stats.SuccessfulOperations)
}

func Test_ValidateBeforeSubmission_is_tracked(t *testing.T) {
	svc, tracker := newService(&stubTaxonomy{})

	errs := svc.ValidateBeforeSubmission(context.Background(), validate.SubmissionInput{
		CategoryID: "139973",
		Price:      10,
	})

	assert.Empty(t, errs)
	assert.Equal(t, 1, tracker.Stats("validation").TotalOperations)
}

func Test_error_translation_handles_structured_fault_payloads(t *testing.T) {
	svc, _ := newService(&stubTaxonomy{})
	raw := `{"errors":[{"errorId":21919303,"message":"The item specific Platform. is missing."}]}`

	assert.Contains(t, svc.UserFriendlyError(raw), `"Platform"`)
	assert.True(t, svc.IsRecoverableError(raw))
	assert.NotEmpty(t, svc.SuggestedActions(raw))
}
