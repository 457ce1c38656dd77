package aggregation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const histogramBucketCount = 10

// buildHistogram re-expands a value->count map into a numeric sample list and
// partitions it into 10 equal-width buckets. Keys that don't parse as numbers
// contribute nothing. Returns nil when there is not a single numeric sample,
// the caller then falls back to a plain bar series.
func buildHistogram(counts map[string]int) map[string]int {
	samples := []float64{}
	for key, count := range counts {
		value, err := strconv.ParseFloat(strings.TrimSpace(key), 64)
		if err != nil {
			continue
		}
		for i := 0; i < count; i++ {
			samples = append(samples, value)
		}
	}
	if len(samples) == 0 {
		return nil
	}

	min := samples[0]
	max := samples[0]
	for _, value := range samples {
		if value < min {
			min = value
		}
		if value > max {
			max = value
		}
	}

	// width of the full range, a degenerate range (all samples equal) gets
	// width 1 so bucket membership stays well defined
	width := max - min
	if width == 0 {
		width = 1
	}

	bucketWidth := width / histogramBucketCount
	labels := make([]string, histogramBucketCount)
	for i := 0; i < histogramBucketCount; i++ {
		from := min + float64(i)*bucketWidth
		to := from + bucketWidth
		labels[i] = fmt.Sprintf("%d-%d", int(math.Round(from)), int(math.Round(to)))
	}

	// zero-count buckets are kept, callers render a fixed 10-bar histogram
	buckets := make(map[string]int, histogramBucketCount)
	for _, label := range labels {
		buckets[label] = 0
	}
	for _, value := range samples {
		index := int(math.Floor((value - min) / width * histogramBucketCount))
		if index > histogramBucketCount-1 {
			// the sample equal to max lands here
			index = histogramBucketCount - 1
		}
		buckets[labels[index]]++
	}
	return buckets
}
