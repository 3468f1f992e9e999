package engine_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"relist/engine/internal/domain"
	"relist/engine/internal/engine"
	"relist/engine/internal/taxonomy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTaxonomy implements taxonomy.Client in memory and counts aspect fetches.
type fakeTaxonomy struct {
	mu           sync.Mutex
	suggestions  []domain.CategorySuggestion
	suggestErr   error
	aspects      map[string][]domain.AspectConstraint
	aspectErrs   map[string]error
	aspectDelays map[string]time.Duration
	aspectCalls  atomic.Int32
}

func (f *fakeTaxonomy) ResolveCategoryTreeID(ctx context.Context, marketplace string) (string, error) {
	return "0", nil
}

func (f *fakeTaxonomy) InvalidateTreeID(ctx context.Context, marketplace string) error {
	return nil
}

func (f *fakeTaxonomy) SuggestCategories(ctx context.Context, freeText string) ([]domain.CategorySuggestion, error) {
	return f.suggestions, f.suggestErr
}

func (f *fakeTaxonomy) AspectsForCategory(ctx context.Context, categoryID string) ([]domain.AspectConstraint, error) {
	f.aspectCalls.Add(1)
	if delay, ok := f.aspectDelays[categoryID]; ok {
		time.Sleep(delay)
	}
	if err, ok := f.aspectErrs[categoryID]; ok {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.aspects[categoryID], nil
}

func (f *fakeTaxonomy) IsLeaf(ctx context.Context, categoryID string) (bool, error) {
	return true, nil
}

var _ taxonomy.Client = (*fakeTaxonomy)(nil)

func suggestion(id, name string, tier domain.RelevancyTier) domain.CategorySuggestion {
	return domain.CategorySuggestion{
		Category:  domain.Category{ID: id, Name: name},
		Relevancy: tier,
		Ancestors: []domain.Category{{ID: "1249", Name: "Video Games & Consoles"}},
	}
}

func gameAspects() []domain.AspectConstraint {
	return []domain.AspectConstraint{
		{Name: "Platform", Required: true, Usage: domain.UsageRequired, AllowedValues: []string{"Nintendo Game Boy Advance"}},
		{Name: "Game Name", Required: true, Usage: domain.UsageRequired},
	}
}

func Test_AnalyzeItem_returns_empty_result_without_aspect_fetches(t *testing.T) {
	fake := &fakeTaxonomy{}
	e := engine.New(fake)

	result, err := e.AnalyzeItem(context.Background(), "Mysterious Unknown Item", "")

	require.NoError(t, err)
	assert.Empty(t, result.SuggestedCategories)
	assert.Equal(t, "", result.RecommendedCategory)
	assert.Equal(t, int32(0), fake.aspectCalls.Load())
}

func Test_AnalyzeItem_auto_fills_all_required_aspects(t *testing.T) {
	fake := &fakeTaxonomy{
		suggestions: []domain.CategorySuggestion{
			suggestion("139973", "Video Games", domain.TierHigh),
		},
		aspects: map[string][]domain.AspectConstraint{
			"139973": gameAspects(),
		},
	}
	e := engine.New(fake)

	result, err := e.AnalyzeItem(context.Background(), "Pokemon Fire Red GBA", "")

	require.NoError(t, err)
	require.Len(t, result.SuggestedCategories, 1)

	candidate := result.SuggestedCategories[0]
	assert.Equal(t, "139973", result.RecommendedCategory)
	assert.Equal(t, domain.TierHigh, candidate.Confidence)
	assert.Equal(t, []string{"Nintendo Game Boy Advance"}, candidate.AutoDetectedAspects["Platform"])
	assert.Contains(t, candidate.AutoDetectedAspects["Game Name"], "Pokemon Fire Red")
	assert.Empty(t, candidate.RequiredUserInput)
}

func Test_AnalyzeItem_analyzes_only_first_three_suggestions(t *testing.T) {
	fake := &fakeTaxonomy{
		suggestions: []domain.CategorySuggestion{
			suggestion("1", "Video Games", domain.TierHigh),
			suggestion("2", "Video Games", domain.TierMedium),
			suggestion("3", "Video Games", domain.TierMedium),
			suggestion("4", "Video Games", domain.TierLow),
			suggestion("5", "Video Games", domain.TierLow),
		},
		aspects: map[string][]domain.AspectConstraint{
			"1": gameAspects(), "2": gameAspects(), "3": gameAspects(),
		},
	}
	e := engine.New(fake)

	result, err := e.AnalyzeItem(context.Background(), "Pokemon Fire Red GBA", "")

	require.NoError(t, err)
	assert.Len(t, result.SuggestedCategories, 3)
	assert.Equal(t, int32(3), fake.aspectCalls.Load())
}

func Test_AnalyzeItem_preserves_suggestion_order_despite_fanout(t *testing.T) {
	// The first candidate resolves last; its slot must still be first.
	fake := &fakeTaxonomy{
		suggestions: []domain.CategorySuggestion{
			suggestion("slow", "Video Games", domain.TierHigh),
			suggestion("fast", "Video Games", domain.TierMedium),
			suggestion("mid", "Video Games", domain.TierLow),
		},
		aspects: map[string][]domain.AspectConstraint{
			"slow": gameAspects(), "fast": gameAspects(), "mid": gameAspects(),
		},
		aspectDelays: map[string]time.Duration{
			"slow": 40 * time.Millisecond,
			"mid":  15 * time.Millisecond,
		},
	}
	e := engine.New(fake)

	result, err := e.AnalyzeItem(context.Background(), "Pokemon Fire Red GBA", "")

	require.NoError(t, err)
	require.Len(t, result.SuggestedCategories, 3)
	assert.Equal(t, "slow", result.SuggestedCategories[0].CategoryID)
	assert.Equal(t, "fast", result.SuggestedCategories[1].CategoryID)
	assert.Equal(t, "mid", result.SuggestedCategories[2].CategoryID)
	assert.Equal(t, "slow", result.RecommendedCategory)
}

func Test_AnalyzeItem_fails_fast_when_any_candidate_fails(t *testing.T) {
	fake := &fakeTaxonomy{
		suggestions: []domain.CategorySuggestion{
			suggestion("ok", "Video Games", domain.TierHigh),
			suggestion("broken", "Video Games", domain.TierMedium),
		},
		aspects: map[string][]domain.AspectConstraint{
			"ok": gameAspects(),
		},
		aspectErrs: map[string]error{
			"broken": errors.New("aspects unavailable"),
		},
	}
	e := engine.New(fake)

	result, err := e.AnalyzeItem(context.Background(), "Pokemon Fire Red GBA", "")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorContains(t, err, "broken")
}

func Test_AnalyzeItem_propagates_suggestion_failure(t *testing.T) {
	fake := &fakeTaxonomy{suggestErr: &taxonomy.APIError{Status: 503, Body: "unavailable"}}
	e := engine.New(fake)

	_, err := e.AnalyzeItem(context.Background(), "Pokemon Fire Red GBA", "")

	var apiErr *taxonomy.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 503, apiErr.Status)
}

func Test_GetRequiredUserInput_returns_missing_required_names(t *testing.T) {
	aspects := []domain.AspectConstraint{
		{Name: "Platform", Required: true, Usage: domain.UsageRequired},
		{Name: "Game Name", Required: true, Usage: domain.UsageRequired},
		{Name: "Genre", Required: false, Usage: domain.UsageOptional},
	}
	userAspects := map[string][]string{
		"Platform": {"Nintendo Game Boy Advance"},
	}

	missing := engine.GetRequiredUserInput(aspects, userAspects)

	assert.Equal(t, []string{"Game Name"}, missing)
}

func Test_GetRequiredUserInput_treats_empty_slice_as_missing(t *testing.T) {
	aspects := []domain.AspectConstraint{
		{Name: "Platform", Required: true, Usage: domain.UsageRequired},
	}
	userAspects := map[string][]string{
		"Platform": {},
	}

	missing := engine.GetRequiredUserInput(aspects, userAspects)

	assert.Equal(t, []string{"Platform"}, missing)
}

func Test_GetRequiredUserInput_empty_when_everything_supplied(t *testing.T) {
	aspects := gameAspects()
	userAspects := map[string][]string{
		"Platform":  {"Nintendo Game Boy Advance"},
		"Game Name": {"Pokemon Fire Red"},
	}

	assert.Empty(t, engine.GetRequiredUserInput(aspects, userAspects))
}
