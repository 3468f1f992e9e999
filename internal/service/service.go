// Package service is the public surface of the listing-preparation subsystem:
// item analysis, dynamic field generation, pre-submission validation, fault
// translation and performance reporting.
package service

import (
	"context"
	"time"

	"relist/engine/internal/domain"
	"relist/engine/internal/engine"
	"relist/engine/internal/faults"
	"relist/engine/internal/fields"
	"relist/engine/internal/metrics"
	"relist/engine/internal/repository"
	"relist/engine/internal/validate"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service struct {
	engine    *engine.Engine
	validator *validate.Validator
	tracker   *metrics.Tracker
	history   repository.AnalysisRepository
}

func NewService(
	engine *engine.Engine,
	validator *validate.Validator,
	tracker *metrics.Tracker,
	history repository.AnalysisRepository,
) *Service {
	return &Service{
		engine:    engine,
		validator: validator,
		tracker:   tracker,
		history:   history,
	}
}

// AnalyzeItem runs the full category intelligence pipeline for a free-text
// title. Successful analyses are recorded in the history repository; a
// persistence failure is logged but never fails the analysis.
func (s *Service) AnalyzeItem(ctx context.Context, title, description string) (*domain.SmartCategoryResult, error) {
	var result *domain.SmartCategoryResult

	err := s.tracker.TrackCategoryAnalysis(ctx, func(ctx context.Context) error {
		analyzed, err := s.engine.AnalyzeItem(ctx, title, description)
		if err != nil {
			return err
		}
		result = analyzed
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.history != nil {
		record := &domain.AnalysisRecord{
			ID:          uuid.NewString(),
			Title:       title,
			Description: description,
			Result:      *result,
			CreatedAt:   time.Now(),
		}
		if err := s.history.SaveAnalysis(ctx, record); err != nil {
			log.Warnf("Failed to persist analysis for %q: %v", title, err)
		}
	}

	return result, nil
}

// GetRequiredUserInput exposes the engine's required-aspect computation for
// callers holding a user-supplied aspect map.
func (s *Service) GetRequiredUserInput(aspects []domain.AspectConstraint, userAspects map[string][]string) []string {
	return engine.GetRequiredUserInput(aspects, userAspects)
}

// CreateDynamicFields converts the remaining aspects of the selected category
// into input field descriptors.
func (s *Service) CreateDynamicFields(ctx context.Context, aspects []domain.AspectConstraint, autoDetected domain.AutoDetectedAspects) []domain.DynamicField {
	var dynamicFields []domain.DynamicField
	_ = s.tracker.TrackDynamicFieldGeneration(ctx, func(ctx context.Context) error {
		dynamicFields = fields.CreateDynamicFields(aspects, autoDetected)
		return nil
	})
	return dynamicFields
}

// ValidateBeforeSubmission runs all pre-flight checks; an empty slice means
// the listing is ready to submit.
func (s *Service) ValidateBeforeSubmission(ctx context.Context, in validate.SubmissionInput) []string {
	var errs []string
	_ = s.tracker.TrackValidation(ctx, func(ctx context.Context) error {
		errs = s.validator.ValidateBeforeSubmission(ctx, in)
		return nil
	})
	return errs
}

func (s *Service) UserFriendlyError(raw string) string {
	return faults.UserFriendlyError(faults.ParseFault(raw))
}

func (s *Service) IsRecoverableError(raw string) bool {
	return faults.IsRecoverable(faults.ParseFault(raw))
}

func (s *Service) SuggestedActions(raw string) []string {
	return faults.SuggestedActions(faults.ParseFault(raw))
}

func (s *Service) PerformanceStats(eventType string) metrics.Stats {
	return s.tracker.Stats(eventType)
}

func (s *Service) PerformanceReport() string {
	return s.tracker.Report()
}

// RecentAnalyses returns the most recent persisted analyses, newest first.
func (s *Service) RecentAnalyses(ctx context.Context, limit int) ([]domain.AnalysisRecord, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.RecentAnalyses(ctx, limit)
}
