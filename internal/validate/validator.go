// Package validate runs the pre-flight checks on a prepared listing before it
// is handed to the submission path.
package validate

import (
	"context"
	"fmt"
	"strings"

	"relist/engine/internal/domain"

	log "github.com/sirupsen/logrus"
)

// LeafChecker reports whether a category is a terminal (listable) node.
// Satisfied by the taxonomy client.
type LeafChecker interface {
	IsLeaf(ctx context.Context, categoryID string) (bool, error)
}

type Validator struct {
	leaf LeafChecker
}

func NewValidator(leaf LeafChecker) *Validator {
	return &Validator{leaf: leaf}
}

// SubmissionInput is everything the user has assembled for a listing.
// Aspects is the merged map; user-supplied values have already won any key
// collision with auto-detected ones (see MergeAspects).
type SubmissionInput struct {
	CategoryID string
	Condition  string
	Price      float64
	Aspects    map[string][]string
	Fields     []domain.DynamicField
}

// ValidateBeforeSubmission evaluates every check and accumulates all errors
// so the user sees everything at once; an empty list means ready to submit.
// Inputs are never mutated.
func (v *Validator) ValidateBeforeSubmission(ctx context.Context, in SubmissionInput) []string {
	errs := make([]string, 0)

	for _, field := range in.Fields {
		if !field.Required {
			continue
		}
		if !hasValue(in.Aspects, field.Name) {
			errs = append(errs, fmt.Sprintf("Missing required field: %s", field.Label))
		}
	}

	if in.CategoryID == "" {
		errs = append(errs, "No category selected")
	}

	if in.Price <= 0 {
		errs = append(errs, "Price must be greater than zero")
	}

	if v.leaf != nil && in.CategoryID != "" {
		isLeaf, err := v.leaf.IsLeaf(ctx, in.CategoryID)
		switch {
		case err != nil:
			log.Warnf("Leaf check failed for category %s: %v", in.CategoryID, err)
			errs = append(errs, fmt.Sprintf("Could not verify category %s: %v", in.CategoryID, err))
		case !isLeaf:
			errs = append(errs, "Selected category is too broad; choose a more specific subcategory")
		}
	}

	return errs
}

// MergeAspects combines auto-detected and user-supplied aspect values;
// user values win on key collision.
func MergeAspects(autoDetected domain.AutoDetectedAspects, userAspects map[string][]string) map[string][]string {
	merged := make(map[string][]string, len(autoDetected)+len(userAspects))
	for name, values := range autoDetected {
		merged[name] = values
	}
	for name, values := range userAspects {
		merged[name] = values
	}
	return merged
}

func hasValue(aspects map[string][]string, name string) bool {
	values, ok := aspects[name]
	if !ok {
		return false
	}
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
