package validate_test

import (
	"context"
	"errors"
	"testing"

	"relist/engine/internal/domain"
	"relist/engine/internal/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeafChecker struct {
	leaf map[string]bool
	err  error
}

func (f *fakeLeafChecker) IsLeaf(ctx context.Context, categoryID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.leaf[categoryID], nil
}

func requiredFields() []domain.DynamicField {
	return []domain.DynamicField{
		{Name: "Platform", Label: "Platform", Required: true},
		{Name: "Game Name", Label: "Game Name", Required: true},
		{Name: "Genre", Label: "Genre", Required: false},
	}
}

func Test_ValidateBeforeSubmission_accepts_complete_listing(t *testing.T) {
	v := validate.NewValidator(&fakeLeafChecker{leaf: map[string]bool{"139973": true}})

	errs := v.ValidateBeforeSubmission(context.Background(), validate.SubmissionInput{
		CategoryID: "139973",
		Condition:  "USED_GOOD",
		Price:      24.99,
		Aspects: map[string][]string{
			"Platform":  {"Nintendo Game Boy Advance"},
			"Game Name": {"Pokemon Fire Red"},
		},
		Fields: requiredFields(),
	})

	assert.Empty(t, errs)
}

func Test_ValidateBeforeSubmission_accumulates_every_error(t *testing.T) {
	v := validate.NewValidator(nil)

	errs := v.ValidateBeforeSubmission(context.Background(), validate.SubmissionInput{
		CategoryID: "",
		Price:      0,
		Aspects:    map[string][]string{},
		Fields:     requiredFields(),
	})

	// Two missing fields, no category, bad price: all reported at once.
	require.Len(t, errs, 4)
	assert.Contains(t, errs, "Missing required field: Platform")
	assert.Contains(t, errs, "Missing required field: Game Name")
	assert.Contains(t, errs, "No category selected")
	assert.Contains(t, errs, "Price must be greater than zero")
}

func Test_ValidateBeforeSubmission_treats_blank_values_as_missing(t *testing.T) {
	v := validate.NewValidator(nil)

	errs := v.ValidateBeforeSubmission(context.Background(), validate.SubmissionInput{
		CategoryID: "139973",
		Price:      10,
		Aspects: map[string][]string{
			"Platform":  {"  "},
			"Game Name": {"Pokemon Fire Red"},
		},
		Fields: requiredFields(),
	})

	require.Len(t, errs, 1)
	assert.Equal(t, "Missing required field: Platform", errs[0])
}

func Test_ValidateBeforeSubmission_rejects_non_leaf_category(t *testing.T) {
	v := validate.NewValidator(&fakeLeafChecker{leaf: map[string]bool{"1249": false}})

	errs := v.ValidateBeforeSubmission(context.Background(), validate.SubmissionInput{
		CategoryID: "1249",
		Price:      10,
		Aspects: map[string][]string{
			"Platform":  {"Nintendo Game Boy Advance"},
			"Game Name": {"Pokemon Fire Red"},
		},
		Fields: requiredFields(),
	})

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "too broad")
}

func Test_ValidateBeforeSubmission_surfaces_leaf_check_failure(t *testing.T) {
	v := validate.NewValidator(&fakeLeafChecker{err: errors.New("subtree fetch failed")})

	errs := v.ValidateBeforeSubmission(context.Background(), validate.SubmissionInput{
		CategoryID: "139973",
		Price:      10,
		Aspects: map[string][]string{
			"Platform":  {"Nintendo Game Boy Advance"},
			"Game Name": {"Pokemon Fire Red"},
		},
		Fields: requiredFields(),
	})

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Could not verify category")
}

func Test_MergeAspects_user_values_win(t *testing.T) {
	autoDetected := domain.AutoDetectedAspects{
		"Platform": {"Nintendo Game Boy Advance"},
		"Genre":    {"Role Playing"},
	}
	userAspects := map[string][]string{
		"Platform":  {"Nintendo DS"},
		"Game Name": {"Pokemon Fire Red"},
	}

	merged := validate.MergeAspects(autoDetected, userAspects)

	assert.Equal(t, []string{"Nintendo DS"}, merged["Platform"])
	assert.Equal(t, []string{"Role Playing"}, merged["Genre"])
	assert.Equal(t, []string{"Pokemon Fire Red"}, merged["Game Name"])
}
