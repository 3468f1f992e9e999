// Package engine orchestrates the category intelligence pipeline: suggest
// categories for a free-text title, enrich each candidate with its aspect
// schema and auto-detected values, and report which aspects still need the
// user.
package engine

import (
	"context"
	"fmt"

	"relist/engine/internal/detect"
	"relist/engine/internal/domain"
	"relist/engine/internal/taxonomy"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Only the top suggestions are analyzed; lower-ranked ones are discarded.
const candidateWindow = 3

type Engine struct {
	taxonomy taxonomy.Client
}

func New(taxonomyClient taxonomy.Client) *Engine {
	return &Engine{taxonomy: taxonomyClient}
}

// AnalyzeItem resolves category candidates for the title, then concurrently
// fetches each candidate's aspect schema and runs auto-detection against it.
// Candidate order is the taxonomy service's suggestion order: each goroutine
// writes only its own output slot, so fan-out never reorders results. Any
// candidate's aspect fetch failing fails the whole call; partial results are
// deliberately not returned.
func (e *Engine) AnalyzeItem(ctx context.Context, title, description string) (*domain.SmartCategoryResult, error) {
	suggestions, err := e.taxonomy.SuggestCategories(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest categories: %w", err)
	}

	// No categories found is a valid outcome; skip all aspect fetches.
	if len(suggestions) == 0 {
		log.Infof("No category suggestions for %q", title)
		return &domain.SmartCategoryResult{
			SuggestedCategories: []domain.SuggestedCategory{},
			RecommendedCategory: "",
		}, nil
	}

	window := min(candidateWindow, len(suggestions))
	candidates := make([]domain.SuggestedCategory, window)

	g, gctx := errgroup.WithContext(ctx)
	for i, suggestion := range suggestions[:window] {
		g.Go(func() error {
			aspects, err := e.taxonomy.AspectsForCategory(gctx, suggestion.Category.ID)
			if err != nil {
				return fmt.Errorf("failed to fetch aspects for candidate %s: %w", suggestion.Category.ID, err)
			}

			family := domain.ClassifyCategory(suggestion)
			detected := detect.Detect(family, title, description, aspects)

			candidates[i] = domain.SuggestedCategory{
				CategoryID:          suggestion.Category.ID,
				CategoryName:        suggestion.Category.Name,
				Confidence:          suggestion.Relevancy,
				AutoDetectedAspects: detected,
				RequiredUserInput:   GetRequiredUserInput(aspects, detected),
			}

			log.Debugf("Candidate %s (%s): detected %d aspects, %d still required",
				suggestion.Category.ID, family, len(detected), len(candidates[i].RequiredUserInput))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.SmartCategoryResult{
		SuggestedCategories: candidates,
		RecommendedCategory: candidates[0].CategoryID,
	}, nil
}

// GetRequiredUserInput returns the names of required aspects that have no
// value (absent key or empty slice) in the supplied aspect map. It backs both
// the engine's requiredUserInput and pre-submission validation with the
// user-supplied map.
func GetRequiredUserInput(aspects []domain.AspectConstraint, userAspects map[string][]string) []string {
	missing := make([]string, 0)
	for _, aspect := range aspects {
		if !aspect.Required {
			continue
		}
		if values, ok := userAspects[aspect.Name]; !ok || len(values) == 0 {
			missing = append(missing, aspect.Name)
		}
	}
	return missing
}
