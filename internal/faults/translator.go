// Package faults maps raw listing-submission failures to user-facing
// diagnoses: a friendly message, a recoverability flag and remediation steps.
//
// Classification prefers structured fault codes when the payload carries
// them; substring matching over free-text messages is kept only as the
// fallback path for errors that arrive without a code.
package faults

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

const (
	TokenCategoryNotLeaf    = "CATEGORY_NOT_LEAF"
	tokenMissingFieldPrefix = "MISSING_REQUIRED_FIELD:"
	genericFallbackFormat   = "Something went wrong while creating the listing: %s"
	unknownFieldName        = "item specific"
)

// FaultPayload is the structured error body returned by the listing API.
type FaultPayload struct {
	Errors []FaultDetail `json:"errors"`
}

type FaultDetail struct {
	ErrorID int    `json:"errorId"`
	Message string `json:"message"`
}

// faultCodeTokens maps listing API fault codes to internal tokens. New codes
// are rows here, not new branches.
var faultCodeTokens = map[int]string{
	25007:    TokenCategoryNotLeaf,
	21919303: tokenMissingFieldPrefix, // field name extracted from the message
}

var missingFieldPattern = regexp.MustCompile(`(?i)item specific ([A-Za-z0-9 ]+?)\.? is (?:missing|required)`)

// ParseFault converts a raw error string or structured fault payload into an
// internal token. Unrecognized codes and non-JSON input pass through
// unchanged so the text-matching fallback still sees the original message.
func ParseFault(raw string) string {
	var payload FaultPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil || len(payload.Errors) == 0 {
		return raw
	}

	first := payload.Errors[0]
	token, ok := faultCodeTokens[first.ErrorID]
	if !ok {
		return first.Message
	}

	if token == tokenMissingFieldPrefix {
		return tokenMissingFieldPrefix + extractFieldName(first.Message)
	}
	return token
}

func extractFieldName(message string) string {
	if matches := missingFieldPattern.FindStringSubmatch(message); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	return unknownFieldName
}

// friendlyRule is one row of the ordered pattern table: the first rule with
// any pattern present in the lower-cased token wins.
type friendlyRule struct {
	patterns   []string
	message    string
	needsField bool // interpolate the extracted field name into message
}

var friendlyRules = []friendlyRule{
	{
		patterns: []string{strings.ToLower(TokenCategoryNotLeaf), "not a leaf", "category is too broad"},
		message:  "This category is too broad. Please pick a more specific category for your item.",
	},
	{
		patterns:   []string{strings.ToLower(tokenMissingFieldPrefix), "is missing"},
		message:    "Please fill in the %q field before listing.",
		needsField: true,
	},
	{
		patterns: []string{"invalid image", "image url", "picture url"},
		message:  "One of your photos could not be processed. Please re-upload it or use a different photo.",
	},
	{
		patterns: []string{"shipping policy", "fulfillment policy"},
		message:  "Your seller account has no shipping policy set up. Configure one in your marketplace seller settings.",
	},
	{
		patterns: []string{"payment policy"},
		message:  "Your seller account has no payment policy set up. Configure one in your marketplace seller settings.",
	},
	{
		patterns: []string{"return policy"},
		message:  "Your seller account has no return policy set up. Configure one in your marketplace seller settings.",
	},
	{
		patterns: []string{"item specific"},
		message:  "Some item details are missing or invalid. Review the item specifics and try again.",
	},
	{
		patterns: []string{"title too long", "title exceeds"},
		message:  "Your listing title is too long. Please shorten it and try again.",
	},
	{
		patterns: []string{"description too long", "description exceeds"},
		message:  "Your listing description is too long. Please shorten it and try again.",
	},
	{
		patterns: []string{"invalid price", "price format", "price must be"},
		message:  "The price looks invalid. Enter a positive amount like 19.99.",
	},
	{
		patterns: []string{"too many images", "too many pictures", "picture limit"},
		message:  "You have added too many photos. Remove some and try again.",
	},
	{
		patterns: []string{"401", "unauthorized", "token expired", "invalid access token"},
		message:  "Your marketplace session has expired. Please sign in again.",
	},
	{
		patterns: []string{"403", "forbidden", "not authorized"},
		message:  "Your account is not allowed to perform this action on the marketplace.",
	},
	{
		patterns: []string{"429", "rate limit", "too many requests", "quota"},
		message:  "The marketplace is receiving too many requests right now. Wait a moment and try again.",
	},
	{
		patterns: []string{"network", "timeout", "connection", "deadline exceeded"},
		message:  "Could not reach the marketplace. Check your connection and try again.",
	},
}

// UserFriendlyError translates a token or raw message into a user-facing
// sentence. When no rule matches, the raw error is echoed rather than hidden.
func UserFriendlyError(raw string) string {
	lowered := strings.ToLower(raw)
	for _, rule := range friendlyRules {
		for _, pattern := range rule.patterns {
			if !strings.Contains(lowered, pattern) {
				continue
			}
			if rule.needsField {
				return fmt.Sprintf(rule.message, fieldNameFromToken(raw))
			}
			return rule.message
		}
	}
	return fmt.Sprintf(genericFallbackFormat, raw)
}

func fieldNameFromToken(raw string) string {
	if idx := strings.Index(raw, tokenMissingFieldPrefix); idx >= 0 {
		if name := strings.TrimSpace(raw[idx+len(tokenMissingFieldPrefix):]); name != "" {
			return name
		}
	}
	return extractFieldName(raw)
}

// recoverableHints mark errors the user can fix themselves; everything else
// (auth, network, server) is not user-fixable.
var recoverableHints = []string{
	"category", "missing", "field", "image", "picture",
	"title", "description", "price", "item specific",
}

func IsRecoverable(raw string) bool {
	lowered := strings.ToLower(raw)
	for _, hint := range recoverableHints {
		if strings.Contains(lowered, hint) {
			return true
		}
	}
	return false
}

type actionRule struct {
	patterns []string
	actions  []string
}

var actionRules = []actionRule{
	{
		patterns: []string{strings.ToLower(TokenCategoryNotLeaf), "not a leaf", "too broad", "category"},
		actions: []string{
			"Pick a more specific subcategory for your item",
			"Use the suggested category with the highest confidence",
			"Search for a similar sold item and reuse its category",
		},
	},
	{
		patterns: []string{strings.ToLower(tokenMissingFieldPrefix), "missing", "item specific"},
		actions: []string{
			"Fill in every field marked as required",
			"Check the auto-detected values and correct any that look wrong",
		},
	},
	{
		patterns: []string{"401", "403", "unauthorized", "forbidden", "token"},
		actions: []string{
			"Sign out of your marketplace account and sign in again",
			"Re-authorize the app in your marketplace account settings",
		},
	},
	{
		patterns: []string{"policy"},
		actions: []string{
			"Open your marketplace seller settings",
			"Create shipping, payment and return policies",
			"Retry the listing once the policies are saved",
		},
	},
}

var fallbackActions = []string{
	"Review the listing details and try again",
	"If the problem persists, try again later",
}

// SuggestedActions returns ordered remediation steps for the error family.
func SuggestedActions(raw string) []string {
	lowered := strings.ToLower(raw)
	for _, rule := range actionRules {
		for _, pattern := range rule.patterns {
			if strings.Contains(lowered, pattern) {
				return rule.actions
			}
		}
	}
	return fallbackActions
}
