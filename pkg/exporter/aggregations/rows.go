package aggregations

import (
	"sort"
	"strconv"

	surveytypes "github.com/ondrovic/survey-test-form-sub004/pkg/types/survey"
)

var exportHeader = []string{"section", "fieldId", "label", "type", "value", "count"}

// seriesRows flattens a series into export rows, one row per value. Values
// follow the authored display order when the series has one, authored values
// nobody picked are included with count 0. Observed values outside the
// authored set (and all values of unordered series) follow, sorted by count
// descending with value as tie-break so the output is deterministic.
func seriesRows(series surveytypes.AggregatedSeries) [][]string {
	rows := [][]string{}

	emitted := map[string]bool{}
	for _, value := range series.OrderedValues {
		rows = append(rows, seriesRow(series, value, series.Counts[value]))
		emitted[value] = true
	}

	remaining := []string{}
	for value := range series.Counts {
		if !emitted[value] {
			remaining = append(remaining, value)
		}
	}
	if series.Type == surveytypes.SERIES_TYPE_HISTOGRAM {
		// histogram buckets keep their numeric order
		sort.Slice(remaining, func(i, j int) bool {
			return bucketLowerBound(remaining[i]) < bucketLowerBound(remaining[j])
		})
	} else {
		sort.Slice(remaining, func(i, j int) bool {
			if series.Counts[remaining[i]] != series.Counts[remaining[j]] {
				return series.Counts[remaining[i]] > series.Counts[remaining[j]]
			}
			return remaining[i] < remaining[j]
		})
	}
	for _, value := range remaining {
		rows = append(rows, seriesRow(series, value, series.Counts[value]))
	}

	return rows
}

func bucketLowerBound(label string) float64 {
	for i := 1; i < len(label); i++ {
		// the first '-' after position 0 separates the bounds, a leading
		// '-' belongs to a negative lower bound
		if label[i] == '-' {
			if value, err := strconv.ParseFloat(label[:i], 64); err == nil {
				return value
			}
			break
		}
	}
	return 0
}

func seriesRow(series surveytypes.AggregatedSeries, value string, count int) []string {
	return []string{
		series.Section,
		series.FieldID,
		series.Label,
		series.Type,
		value,
		strconv.Itoa(count),
	}
}
