package aggregation

import (
	"reflect"
	"slices"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	surveytypes "github.com/ondrovic/survey-test-form-sub004/pkg/types/survey"
)

func emptyCatalog() surveytypes.OptionSetCatalog {
	return surveytypes.NewOptionSetCatalog(nil, nil, nil, nil)
}

func singleFieldConfig(field surveytypes.Field, sectionTitle string) *surveytypes.SurveyConfig {
	return &surveytypes.SurveyConfig{
		Sections: []surveytypes.Section{
			{Title: sectionTitle, Fields: []surveytypes.Field{field}},
		},
	}
}

func TestAggregate(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		series := Aggregate([]surveytypes.SurveyResponse{
			{Responses: map[string]interface{}{"q1": "A"}},
		}, nil, emptyCatalog())
		if len(series) != 0 {
			t.Errorf("unexpected series: %v", series)
		}
	})

	t.Run("radio field with ordered options", func(t *testing.T) {
		config := singleFieldConfig(surveytypes.Field{
			ID:               "q1",
			Label:            "Choice",
			Type:             surveytypes.FIELD_TYPE_RADIO,
			RadioOptionSetID: "set1",
		}, "Main")
		catalog := surveytypes.NewOptionSetCatalog(nil, []surveytypes.OptionSet{
			{ID: "set1", Name: "Choices", Options: []surveytypes.Option{
				{Value: "B", Order: 1},
				{Value: "A", Order: 2},
			}},
		}, nil, nil)

		series := Aggregate([]surveytypes.SurveyResponse{
			{Responses: map[string]interface{}{"q1": "A"}},
			{Responses: map[string]interface{}{"q1": "B"}},
			{Responses: map[string]interface{}{"q1": "A"}},
		}, config, catalog)

		if len(series) != 1 {
			t.Fatalf("unexpected series count: %d", len(series))
		}
		s := series[0]
		if s.Type != surveytypes.SERIES_TYPE_BAR {
			t.Errorf("unexpected type: %s", s.Type)
		}
		if s.Counts["A"] != 2 || s.Counts["B"] != 1 {
			t.Errorf("unexpected counts: %v", s.Counts)
		}
		if s.Total != 3 {
			t.Errorf("Unexpected total. Got: %d, Expected: %d", s.Total, 3)
		}
		if !slices.Equal(s.OrderedValues, []string{"B", "A"}) {
			t.Errorf("unexpected ordered values: %v", s.OrderedValues)
		}
		if s.NeutralMode {
			t.Error("radio field with options should not be neutral")
		}
	})

	t.Run("fields without answers are dropped", func(t *testing.T) {
		config := &surveytypes.SurveyConfig{
			Sections: []surveytypes.Section{
				{Title: "Main", Fields: []surveytypes.Field{
					{ID: "answered", Label: "Answered", Type: surveytypes.FIELD_TYPE_SELECT},
					{ID: "skipped", Label: "Skipped", Type: surveytypes.FIELD_TYPE_SELECT},
				}},
			},
		}
		series := Aggregate([]surveytypes.SurveyResponse{
			{Responses: map[string]interface{}{"answered": "x"}},
			{Responses: map[string]interface{}{"answered": ""}},
		}, config, emptyCatalog())
		if len(series) != 1 {
			t.Fatalf("unexpected series count: %d", len(series))
		}
		if series[0].FieldID != "answered" {
			t.Errorf("unexpected fieldId: %s", series[0].FieldID)
		}
	})

	t.Run("field id wins over legacy keys", func(t *testing.T) {
		config := singleFieldConfig(surveytypes.Field{
			ID:    "q1",
			Label: "Choice",
			Type:  surveytypes.FIELD_TYPE_SELECT,
		}, "Main")
		series := Aggregate([]surveytypes.SurveyResponse{
			{Responses: map[string]interface{}{
				"q1":          "from-id",
				"Main Choice": "from-pretty-key",
			}},
		}, config, emptyCatalog())
		if len(series) != 1 {
			t.Fatalf("unexpected series count: %d", len(series))
		}
		if series[0].Counts["from-id"] != 1 {
			t.Errorf("unexpected counts: %v", series[0].Counts)
		}
		if _, ok := series[0].Counts["from-pretty-key"]; ok {
			t.Errorf("legacy key value should not be counted: %v", series[0].Counts)
		}
	})

	t.Run("responses keyed under old label resolve to the same series", func(t *testing.T) {
		config := singleFieldConfig(surveytypes.Field{
			ID:    "q1",
			Label: "New Label",
			Type:  surveytypes.FIELD_TYPE_SELECT,
			LabelHistory: []surveytypes.LabelHistoryEntry{
				{Label: "Old Label", ChangedAt: 1700000000},
			},
		}, "Feedback")

		series := Aggregate([]surveytypes.SurveyResponse{
			{Responses: map[string]interface{}{"q1": "A"}},
			{Responses: map[string]interface{}{"feedback-old-label": "A"}},
		}, config, emptyCatalog())

		if len(series) != 1 {
			t.Fatalf("unexpected series count: %d", len(series))
		}
		if series[0].FieldID != "q1" {
			t.Errorf("unexpected fieldId: %s", series[0].FieldID)
		}
		if series[0].Total != 2 {
			t.Errorf("Unexpected total. Got: %d, Expected: %d", series[0].Total, 2)
		}
	})

	t.Run("multiselect arrays count each element", func(t *testing.T) {
		config := singleFieldConfig(surveytypes.Field{
			ID:    "channels",
			Label: "Channels",
			Type:  surveytypes.FIELD_TYPE_MULTISELECT,
		}, "Contact")
		series := Aggregate([]surveytypes.SurveyResponse{
			{Responses: map[string]interface{}{"channels": []interface{}{"Email", "Phone"}}},
			{Responses: map[string]interface{}{"channels": []interface{}{"Email"}}},
		}, config, emptyCatalog())

		if len(series) != 1 {
			t.Fatalf("unexpected series count: %d", len(series))
		}
		if series[0].Counts["Email"] != 2 || series[0].Counts["Phone"] != 1 {
			t.Errorf("unexpected counts: %v", series[0].Counts)
		}
		if series[0].Total != 3 {
			t.Errorf("Unexpected total. Got: %d, Expected: %d", series[0].Total, 3)
		}
	})

	t.Run("multiselect answers decoded from stored responses", func(t *testing.T) {
		config := singleFieldConfig(surveytypes.Field{
			ID:    "channels",
			Label: "Channels",
			Type:  surveytypes.FIELD_TYPE_MULTISELECT,
		}, "Contact")

		// round-trip through bson, array values arrive as primitive.A
		raw, err := bson.Marshal(surveytypes.SurveyResponse{
			Responses: map[string]interface{}{"channels": []string{"Email", "Phone"}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var decoded surveytypes.SurveyResponse
		if err := bson.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := decoded.Responses["channels"].(primitive.A); !ok {
			t.Fatalf("unexpected decoded value type: %T", decoded.Responses["channels"])
		}

		series := Aggregate([]surveytypes.SurveyResponse{decoded}, config, emptyCatalog())
		if len(series) != 1 {
			t.Fatalf("unexpected series count: %d", len(series))
		}
		if series[0].Counts["Email"] != 1 || series[0].Counts["Phone"] != 1 {
			t.Errorf("unexpected counts: %v", series[0].Counts)
		}
		if series[0].Total != 2 {
			t.Errorf("Unexpected total. Got: %d, Expected: %d", series[0].Total, 2)
		}
	})

	t.Run("number field becomes histogram", func(t *testing.T) {
		config := singleFieldConfig(surveytypes.Field{
			ID:    "age",
			Label: "Age",
			Type:  surveytypes.FIELD_TYPE_NUMBER,
		}, "About")
		responses := []surveytypes.SurveyResponse{}
		for _, v := range []float64{1, 1, 2, 3, 5, 8, 9} {
			responses = append(responses, surveytypes.SurveyResponse{
				Responses: map[string]interface{}{"age": v},
			})
		}
		series := Aggregate(responses, config, emptyCatalog())
		if len(series) != 1 {
			t.Fatalf("unexpected series count: %d", len(series))
		}
		s := series[0]
		if s.Type != surveytypes.SERIES_TYPE_HISTOGRAM {
			t.Fatalf("unexpected type: %s", s.Type)
		}
		if len(s.Counts) != 10 {
			t.Errorf("unexpected bucket count: %d (%v)", len(s.Counts), s.Counts)
		}
		if s.Total != 7 {
			t.Errorf("Unexpected total. Got: %d, Expected: %d", s.Total, 7)
		}
		if s.OrderedValues != nil || s.Colors != nil {
			t.Errorf("histogram series should carry no ordering or colors: %v %v", s.OrderedValues, s.Colors)
		}
	})

	t.Run("number field without numeric answers falls back to bar", func(t *testing.T) {
		config := singleFieldConfig(surveytypes.Field{
			ID:    "age",
			Label: "Age",
			Type:  surveytypes.FIELD_TYPE_NUMBER,
		}, "About")
		series := Aggregate([]surveytypes.SurveyResponse{
			{Responses: map[string]interface{}{"age": "prefer not to say"}},
		}, config, emptyCatalog())
		if len(series) != 1 {
			t.Fatalf("unexpected series count: %d", len(series))
		}
		if series[0].Type != surveytypes.SERIES_TYPE_BAR {
			t.Errorf("unexpected type: %s", series[0].Type)
		}
	})

	t.Run("free text field is neutral", func(t *testing.T) {
		config := singleFieldConfig(surveytypes.Field{
			ID:    "comments",
			Label: "Additional Comments",
			Type:  surveytypes.FIELD_TYPE_TEXTAREA,
		}, "Closing")
		series := Aggregate([]surveytypes.SurveyResponse{
			{Responses: map[string]interface{}{"comments": "everything was great"}},
		}, config, emptyCatalog())
		if len(series) != 1 {
			t.Fatalf("unexpected series count: %d", len(series))
		}
		if !series[0].NeutralMode {
			t.Error("free text field should be neutral")
		}
	})

	t.Run("default yes color applied", func(t *testing.T) {
		config := singleFieldConfig(surveytypes.Field{
			ID:    "consent",
			Label: "Consent Given",
			Type:  surveytypes.FIELD_TYPE_RADIO,
		}, "Main")
		series := Aggregate([]surveytypes.SurveyResponse{
			{Responses: map[string]interface{}{"consent": "Yes"}},
		}, config, emptyCatalog())
		if len(series) != 1 {
			t.Fatalf("unexpected series count: %d", len(series))
		}
		color, ok := colorForValue(series[0].Colors, "Yes")
		if !ok || color != COLOR_GREEN {
			t.Errorf("Unexpected color. Got: %s, Expected: %s", color, COLOR_GREEN)
		}
	})

	t.Run("idempotent on identical inputs", func(t *testing.T) {
		config := singleFieldConfig(surveytypes.Field{
			ID:    "q1",
			Label: "Choice",
			Type:  surveytypes.FIELD_TYPE_SELECT,
		}, "Main")
		responses := []surveytypes.SurveyResponse{
			{Responses: map[string]interface{}{"q1": "A"}},
			{Responses: map[string]interface{}{"q1": "B"}},
		}
		first := Aggregate(responses, config, emptyCatalog())
		second := Aggregate(responses, config, emptyCatalog())
		if !reflect.DeepEqual(first, second) {
			t.Errorf("results differ: %v vs %v", first, second)
		}
	})

	t.Run("totals match count sums", func(t *testing.T) {
		config := &surveytypes.SurveyConfig{
			Sections: []surveytypes.Section{
				{Title: "Main", Fields: []surveytypes.Field{
					{ID: "q1", Label: "First", Type: surveytypes.FIELD_TYPE_SELECT},
					{ID: "q2", Label: "Second", Type: surveytypes.FIELD_TYPE_NUMBER},
				}},
			},
		}
		series := Aggregate([]surveytypes.SurveyResponse{
			{Responses: map[string]interface{}{"q1": "A", "q2": float64(4)}},
			{Responses: map[string]interface{}{"q1": "B", "q2": float64(7)}},
			{Responses: map[string]interface{}{"q1": "A"}},
		}, config, emptyCatalog())

		for _, s := range series {
			total := 0
			for _, count := range s.Counts {
				total += count
			}
			if s.Total != total {
				t.Errorf("total mismatch for %s: %d vs %d", s.FieldID, s.Total, total)
			}
		}
	})
}

func TestValueToStr(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected string
		counted  bool
	}{
		{name: "string", value: "hello", expected: "hello", counted: true},
		{name: "empty string", value: "", counted: false},
		{name: "nil", value: nil, counted: false},
		{name: "bool", value: true, expected: "true", counted: true},
		{name: "int", value: 42, expected: "42", counted: true},
		{name: "int64", value: int64(1234567890), expected: "1234567890", counted: true},
		{name: "whole float", value: float64(3), expected: "3", counted: true},
		{name: "fractional float", value: 3.5, expected: "3.5", counted: true},
		{name: "unsupported type", value: map[string]interface{}{}, counted: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, ok := valueToStr(test.value)
			if ok != test.counted {
				t.Fatalf("Unexpected ok. Got: %v, Expected: %v", ok, test.counted)
			}
			if ok && result != test.expected {
				t.Errorf("Unexpected result. Got: %s, Expected: %s", result, test.expected)
			}
		})
	}
}
