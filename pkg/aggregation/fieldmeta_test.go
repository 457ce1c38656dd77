package aggregation

import (
	"slices"
	"testing"

	surveytypes "github.com/ondrovic/survey-test-form-sub004/pkg/types/survey"
)

func TestBuildFieldMetadata(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		metas := BuildFieldMetadata(nil)
		if len(metas) != 0 {
			t.Errorf("unexpected metas: %v", metas)
		}
	})

	t.Run("includes subsection fields in order", func(t *testing.T) {
		config := &surveytypes.SurveyConfig{
			Sections: []surveytypes.Section{
				{
					Title:  "General",
					Fields: []surveytypes.Field{{ID: "f1", Label: "First"}},
					Subsections: []surveytypes.Subsection{
						{Title: "Details", Fields: []surveytypes.Field{{ID: "f2", Label: "Second"}}},
					},
				},
				{
					Title:  "Closing",
					Fields: []surveytypes.Field{{ID: "f3", Label: "Third"}},
				},
			},
		}
		metas := BuildFieldMetadata(config)
		if len(metas) != 3 {
			t.Fatalf("unexpected number of metas: %d", len(metas))
		}
		if metas[0].Field.ID != "f1" || metas[1].Field.ID != "f2" || metas[2].Field.ID != "f3" {
			t.Errorf("unexpected field order: %v %v %v", metas[0].Field.ID, metas[1].Field.ID, metas[2].Field.ID)
		}
		// subsection fields inherit the parent section title
		if metas[1].SectionTitle != "General" {
			t.Errorf("unexpected section title: %s", metas[1].SectionTitle)
		}
	})
}

func TestResolveKeys(t *testing.T) {
	t.Run("current id comes first", func(t *testing.T) {
		keys := resolveKeys(surveytypes.Field{ID: "risk_level", Label: "Risk Level"}, "Assessment")
		if len(keys) == 0 {
			t.Fatal("should produce keys")
		}
		if keys[0] != "risk_level" {
			t.Errorf("unexpected first key: %s", keys[0])
		}
	})

	t.Run("contains all key families", func(t *testing.T) {
		keys := resolveKeys(surveytypes.Field{ID: "q1", Label: "Risk Level"}, "Assessment")

		expected := []string{
			"q1",
			"assessment-risk-level",
			"Assessment Risk Level",
			"Assessment - Risk Level",
			"assessment_risk_level",
			"assessment risk level",
		}
		for _, want := range expected {
			if !slices.Contains(keys, want) {
				t.Errorf("missing key %q in %v", want, keys)
			}
		}
	})

	t.Run("label history adds historical key families", func(t *testing.T) {
		keys := resolveKeys(surveytypes.Field{
			ID:    "q1",
			Label: "New Label",
			LabelHistory: []surveytypes.LabelHistoryEntry{
				{Label: "Old Label", ChangedAt: 1700000000},
			},
		}, "Feedback")

		historical := []string{
			"feedback-old-label",
			"Feedback Old Label",
			"Feedback - Old Label",
			"feedback_old_label",
			"feedback-old-label",
			"feedback old label",
		}
		for _, want := range historical {
			if !slices.Contains(keys, want) {
				t.Errorf("missing historical key %q in %v", want, keys)
			}
		}
	})

	t.Run("duplicates removed, first occurrence wins", func(t *testing.T) {
		keys := resolveKeys(surveytypes.Field{
			ID:    "q1",
			Label: "Same",
			LabelHistory: []surveytypes.LabelHistoryEntry{
				{Label: "Same"},
			},
		}, "Sec")

		seen := map[string]bool{}
		for _, key := range keys {
			if seen[key] {
				t.Errorf("duplicate key %q in %v", key, keys)
			}
			seen[key] = true
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		field := surveytypes.Field{ID: "q1", Label: "Label", LabelHistory: []surveytypes.LabelHistoryEntry{{Label: "Old"}}}
		first := resolveKeys(field, "Sec")
		second := resolveKeys(field, "Sec")
		if !slices.Equal(first, second) {
			t.Errorf("key sets differ: %v vs %v", first, second)
		}
	})

	t.Run("empty label still yields the field id", func(t *testing.T) {
		keys := resolveKeys(surveytypes.Field{ID: "q1"}, "")
		if keys[0] != "q1" {
			t.Errorf("unexpected first key: %s", keys[0])
		}
	})
}

func TestVariantKey(t *testing.T) {
	tests := []struct {
		name     string
		section  string
		label    string
		sep      string
		expected string
	}{
		{
			name:     "underscore",
			section:  "My Section!",
			label:    "Field (Label)",
			sep:      "_",
			expected: "my_section_field_label",
		},
		{
			name:     "dash",
			section:  "My Section",
			label:    "Field Label",
			sep:      "-",
			expected: "my-section-field-label",
		},
		{
			name:     "space",
			section:  "My  Section",
			label:    "Field",
			sep:      " ",
			expected: "my section field",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := variantKey(test.section, test.label, test.sep)
			if result != test.expected {
				t.Errorf("Unexpected result. Got: %s, Expected: %s", result, test.expected)
			}
		})
	}
}
