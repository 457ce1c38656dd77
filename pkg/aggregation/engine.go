package aggregation

import (
	"log/slog"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	surveytypes "github.com/ondrovic/survey-test-form-sub004/pkg/types/survey"
)

// Aggregate turns raw responses into one series per field that received at
// least one non-empty answer. It is a pure transform: inputs are never
// mutated and there is no I/O, callers are expected to pre-filter the
// response list (e.g. by date range) and to memoize repeated invocations on
// unchanged inputs.
func Aggregate(
	responses []surveytypes.SurveyResponse,
	config *surveytypes.SurveyConfig,
	catalog surveytypes.OptionSetCatalog,
) []surveytypes.AggregatedSeries {
	metas := BuildFieldMetadata(config)
	if len(metas) == 0 {
		return []surveytypes.AggregatedSeries{}
	}

	countsPerField := make([]map[string]int, len(metas))
	for i := range metas {
		countsPerField[i] = map[string]int{}
	}

	for _, response := range responses {
		for i, meta := range metas {
			value, ok := resolveFieldValue(response.Responses, meta)
			if !ok {
				continue
			}
			if list, isList := valueAsList(value); isList {
				for _, item := range list {
					if str, ok := valueToStr(item); ok {
						countsPerField[i][str]++
					}
				}
			} else if str, ok := valueToStr(value); ok {
				countsPerField[i][str]++
			}
		}
	}

	series := []surveytypes.AggregatedSeries{}
	for i, meta := range metas {
		counts := countsPerField[i]
		if len(counts) == 0 {
			// nobody answered this field, no series
			continue
		}
		series = append(series, buildSeries(meta, counts, catalog))
	}
	return series
}

func buildSeries(meta FieldMeta, counts map[string]int, catalog surveytypes.OptionSetCatalog) surveytypes.AggregatedSeries {
	if meta.Field.Type == surveytypes.FIELD_TYPE_NUMBER {
		if buckets := buildHistogram(counts); buckets != nil {
			return surveytypes.AggregatedSeries{
				FieldID: meta.Field.ID,
				Label:   meta.Field.Label,
				Section: meta.SectionTitle,
				Type:    surveytypes.SERIES_TYPE_HISTOGRAM,
				Counts:  buckets,
				Total:   sumCounts(buckets),
			}
		}
	}

	var orderedValues []string
	var colors map[string]string
	if options := resolveOptionsForField(meta.Field, catalog); options != nil {
		orderedValues, colors = orderedValuesAndColors(options)
	}

	observedValues := make([]string, 0, len(counts))
	for value := range counts {
		observedValues = append(observedValues, value)
	}
	colors = applyDefaultColors(observedValues, colors)
	colors = applyDefaultColors(orderedValues, colors)

	return surveytypes.AggregatedSeries{
		FieldID:       meta.Field.ID,
		Label:         meta.Field.Label,
		Section:       meta.SectionTitle,
		Type:          surveytypes.SERIES_TYPE_BAR,
		Counts:        counts,
		Total:         sumCounts(counts),
		OrderedValues: orderedValues,
		Colors:        colors,
		NeutralMode:   isFreeTextField(meta, len(orderedValues) > 0, len(counts)),
	}
}

// resolveFieldValue scans the field's possible keys in order and returns the
// value under the first key present in the payload. When several candidate
// keys hold different non-empty values the first one still wins, but the
// ambiguity is logged since it means the response payload matched more than
// one historical key shape.
func resolveFieldValue(payload map[string]interface{}, meta FieldMeta) (interface{}, bool) {
	var resolved interface{}
	found := false
	conflicting := false
	var firstStr string

	for _, key := range meta.PossibleKeys {
		value, ok := payload[key]
		if !ok || value == nil {
			continue
		}
		if !found {
			resolved = value
			found = true
			firstStr, _ = valueToStr(value)
			continue
		}
		if str, ok := valueToStr(value); ok && str != firstStr {
			conflicting = true
		}
	}

	if conflicting {
		slog.Warn("multiple candidate keys resolved to different values, keeping first match",
			slog.String("fieldID", meta.Field.ID))
	}
	return resolved, found
}

// valueAsList normalizes multiselect answers to a slice. In-memory payloads
// carry plain []interface{}, responses decoded from the DB carry bson arrays
// as primitive.A.
func valueAsList(value interface{}) ([]interface{}, bool) {
	switch list := value.(type) {
	case []interface{}:
		return list, true
	case primitive.A:
		return list, true
	}
	return nil, false
}

// valueToStr casts a payload scalar to its count-map key. Nil and empty
// strings don't count as answers.
func valueToStr(value interface{}) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

func sumCounts(counts map[string]int) int {
	total := 0
	for _, count := range counts {
		total += count
	}
	return total
}
