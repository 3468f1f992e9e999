package faults_test

import (
	"testing"

	"relist/engine/internal/faults"

	"github.com/stretchr/testify/assert"
)

func Test_ParseFault_maps_known_codes_to_tokens(t *testing.T) {
	raw := `{"errors":[{"errorId":25007,"message":"The category selected is not a leaf category."}]}`

	assert.Equal(t, faults.TokenCategoryNotLeaf, faults.ParseFault(raw))
}

func Test_ParseFault_extracts_missing_field_name(t *testing.T) {
	raw := `{"errors":[{"errorId":21919303,"message":"The item specific Platform. is missing."}]}`

	assert.Equal(t, "MISSING_REQUIRED_FIELD:Platform", faults.ParseFault(raw))
}

func Test_ParseFault_passes_unknown_codes_through(t *testing.T) {
	raw := `{"errors":[{"errorId":99999,"message":"A completely novel failure."}]}`

	assert.Equal(t, "A completely novel failure.", faults.ParseFault(raw))
}

func Test_ParseFault_passes_plain_text_through(t *testing.T) {
	assert.Equal(t, "connection refused", faults.ParseFault("connection refused"))
}

func Test_UserFriendlyError_covers_error_families(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"category not leaf token", faults.TokenCategoryNotLeaf, "too broad"},
		{"missing field token", "MISSING_REQUIRED_FIELD:Platform", `"Platform"`},
		{"invalid image", "Invalid image URL provided", "photos"},
		{"shipping policy", "No shipping policy configured for seller", "shipping policy"},
		{"payment policy", "No payment policy configured for seller", "payment policy"},
		{"return policy", "No return policy configured for seller", "return policy"},
		{"generic item specific", "An item specific value is invalid", "item details"},
		{"title too long", "Title exceeds the maximum length", "title is too long"},
		{"invalid price", "Invalid price format", "price looks invalid"},
		{"expired auth", "401 unauthorized", "session has expired"},
		{"forbidden", "403 forbidden", "not allowed"},
		{"rate limit", "429 too many requests", "too many requests"},
		{"network", "request timeout while contacting host", "connection"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, faults.UserFriendlyError(tc.raw), tc.want)
		})
	}
}

func Test_UserFriendlyError_first_matching_rule_wins(t *testing.T) {
	// Mentions both a missing item specific and a policy; the missing-field
	// rule sits earlier in the table.
	msg := faults.UserFriendlyError("The item specific Genre is missing and the return policy is absent")

	assert.Contains(t, msg, `"Genre"`)
}

func Test_UserFriendlyError_echoes_unmatched_errors(t *testing.T) {
	msg := faults.UserFriendlyError("flux capacitor desync")

	assert.Contains(t, msg, "flux capacitor desync")
}

func Test_IsRecoverable_distinguishes_user_fixable_errors(t *testing.T) {
	assert.True(t, faults.IsRecoverable(faults.TokenCategoryNotLeaf))
	assert.True(t, faults.IsRecoverable("MISSING_REQUIRED_FIELD:Platform"))
	assert.True(t, faults.IsRecoverable("Invalid price format"))
	assert.True(t, faults.IsRecoverable("Title exceeds the maximum length"))

	assert.False(t, faults.IsRecoverable("401 unauthorized"))
	assert.False(t, faults.IsRecoverable("connection timed out"))
	assert.False(t, faults.IsRecoverable("internal server error"))
}

func Test_SuggestedActions_returns_family_specific_steps(t *testing.T) {
	categoryActions := faults.SuggestedActions(faults.TokenCategoryNotLeaf)
	assert.NotEmpty(t, categoryActions)
	assert.Contains(t, categoryActions[0], "subcategory")

	authActions := faults.SuggestedActions("401 unauthorized token expired")
	assert.NotEmpty(t, authActions)
	assert.Contains(t, authActions[0], "Sign out")

	fallback := faults.SuggestedActions("flux capacitor desync")
	assert.NotEmpty(t, fallback)
}
