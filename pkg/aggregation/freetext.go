package aggregation

import (
	"regexp"
	"slices"

	surveytypes "github.com/ondrovic/survey-test-form-sub004/pkg/types/survey"
)

// Free-text detection is a heuristic, false positives and negatives are
// expected. The thresholds and pattern lists are package variables so they
// stay visible and tunable instead of buried in the detection logic.
var (
	// FreeTextFieldTypes always render without semantic value colors.
	FreeTextFieldTypes = []string{
		surveytypes.FIELD_TYPE_TEXT,
		surveytypes.FIELD_TYPE_TEXTAREA,
		surveytypes.FIELD_TYPE_EMAIL,
	}

	// FreeTextHintPatterns flag a field as free text when its label or id
	// matches.
	FreeTextHintPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)comment`),
		regexp.MustCompile(`(?i)feedback`),
		regexp.MustCompile(`(?i)describe`),
		regexp.MustCompile(`(?i)explain`),
		regexp.MustCompile(`(?i)suggest`),
		regexp.MustCompile(`(?i)reason`),
		regexp.MustCompile(`(?i)detail`),
		regexp.MustCompile(`(?i)other`),
	}

	// FreeTextDistinctValueLimit: an untyped field with more distinct
	// observed values than this is treated as free text even without a
	// label hint.
	FreeTextDistinctValueLimit = 8
)

// isFreeTextField decides whether a field should be flagged as neutral mode,
// meaning its values are not a bounded category set and should not get
// semantic colors. Fields with a resolved option set are never free text.
func isFreeTextField(meta FieldMeta, hasOrderedValues bool, distinctValues int) bool {
	if hasOrderedValues {
		return false
	}

	if slices.Contains(FreeTextFieldTypes, meta.Field.Type) {
		return true
	}

	for _, pattern := range FreeTextHintPatterns {
		if pattern.MatchString(meta.Field.Label) || pattern.MatchString(meta.Field.ID) {
			return true
		}
	}

	if meta.Field.Type != surveytypes.FIELD_TYPE_NUMBER && distinctValues > FreeTextDistinctValueLimit {
		return true
	}

	return false
}
