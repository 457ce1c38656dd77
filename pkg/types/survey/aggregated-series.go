package survey

const (
	SERIES_TYPE_BAR       = "bar"
	SERIES_TYPE_HISTOGRAM = "histogram"
)

// AggregatedSeries is one field's aggregated count distribution. Counts carry
// no ordering, display order comes from OrderedValues when an option set could
// be resolved.
type AggregatedSeries struct {
	FieldID       string            `json:"fieldId"`
	Label         string            `json:"label"`
	Section       string            `json:"section"`
	Type          string            `json:"type"`
	Counts        map[string]int    `json:"counts"`
	Total         int               `json:"total"`
	OrderedValues []string          `json:"orderedValues,omitempty"`
	Colors        map[string]string `json:"colors,omitempty"`
	NeutralMode   bool              `json:"neutralMode,omitempty"`
}
