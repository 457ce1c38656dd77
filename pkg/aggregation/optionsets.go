package aggregation

import (
	"sort"
	"strings"

	surveytypes "github.com/ondrovic/survey-test-form-sub004/pkg/types/survey"
)

// Semantic default colors, matching the palette the visualization layer uses.
const (
	COLOR_RED   = "#dc2626"
	COLOR_AMBER = "#d97706"
	COLOR_GREEN = "#16a34a"
	COLOR_GRAY  = "#6b7280"
	COLOR_BLUE  = "#2563eb"
)

// DefaultSemanticColors maps well-known answer values (lowercased, trimmed)
// to a fallback color. Only applied to values that got no color from their
// option set.
var DefaultSemanticColors = map[string]string{
	"high":          COLOR_RED,
	"very high":     COLOR_RED,
	"critical":      COLOR_RED,
	"no":            COLOR_RED,
	"false":         COLOR_RED,
	"medium":        COLOR_AMBER,
	"moderate":      COLOR_AMBER,
	"low":           COLOR_GREEN,
	"very low":      COLOR_GREEN,
	"yes":           COLOR_GREEN,
	"true":          COLOR_GREEN,
	"not important": COLOR_GRAY,
	"none":          COLOR_GRAY,
	"n/a":           COLOR_GRAY,
	"both":          COLOR_BLUE,
	"mixed":         COLOR_BLUE,
}

// resolveOptionsForField finds the option set a field references, depending
// on the field type: by id first, then by lowercased name. Fields without a
// resolvable shared set fall back to their inline options. Returns nil when
// nothing resolves.
func resolveOptionsForField(field surveytypes.Field, catalog surveytypes.OptionSetCatalog) []surveytypes.Option {
	switch field.Type {
	case surveytypes.FIELD_TYPE_RATING:
		if set, ok := lookupOptionSet(catalog.RatingScalesByID, catalog.RatingScalesByName, field.RatingScaleID, field.RatingScaleName); ok {
			return set.Options
		}
	case surveytypes.FIELD_TYPE_RADIO, surveytypes.FIELD_TYPE_SELECT:
		// radio takes precedence when both references somehow resolve
		if set, ok := lookupOptionSet(catalog.RadioSetsByID, catalog.RadioSetsByName, field.RadioOptionSetID, field.RadioOptionSetName); ok {
			return set.Options
		}
		if set, ok := lookupOptionSet(catalog.SelectSetsByID, catalog.SelectSetsByName, field.SelectOptionSetID, field.SelectOptionSetName); ok {
			return set.Options
		}
	case surveytypes.FIELD_TYPE_MULTISELECT, surveytypes.FIELD_TYPE_MULTISELECT_DROPDOWN:
		if set, ok := lookupOptionSet(catalog.MultiSetsByID, catalog.MultiSetsByName, field.MultiSelectOptionSetID, field.MultiSelectOptionSetName); ok {
			return set.Options
		}
	}

	if len(field.InlineOptions) > 0 {
		return field.InlineOptions
	}
	return nil
}

func lookupOptionSet(byID map[string]surveytypes.OptionSet, byName map[string]surveytypes.OptionSet, id string, name string) (surveytypes.OptionSet, bool) {
	if id != "" {
		if set, ok := byID[id]; ok {
			return set, true
		}
	}
	if name != "" {
		if set, ok := byName[strings.ToLower(name)]; ok {
			return set, true
		}
	}
	return surveytypes.OptionSet{}, false
}

// orderedValuesAndColors sorts the options by their authored order (stable,
// missing order counts as 0) and collects the per-value colors. Every color
// is registered under the option's value and label in raw, lowercased-trimmed
// and strict form, so consumers can look it up with whichever normalization
// they have at hand.
func orderedValuesAndColors(options []surveytypes.Option) ([]string, map[string]string) {
	sorted := make([]surveytypes.Option, len(options))
	copy(sorted, options)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	orderedValues := make([]string, 0, len(sorted))
	colors := map[string]string{}
	for _, option := range sorted {
		orderedValues = append(orderedValues, option.Value)
		if option.Color == "" {
			continue
		}
		registerColor(colors, option.Value, option.Color)
		registerColor(colors, option.Label, option.Color)
	}
	return orderedValues, colors
}

// applyDefaultColors assigns a semantic fallback color to every value that
// has no color under any of its key forms yet.
func applyDefaultColors(values []string, colors map[string]string) map[string]string {
	for _, value := range values {
		if _, ok := colorForValue(colors, value); ok {
			continue
		}
		defaultColor, ok := DefaultSemanticColors[strings.ToLower(strings.TrimSpace(value))]
		if !ok {
			continue
		}
		if colors == nil {
			colors = map[string]string{}
		}
		registerColor(colors, value, defaultColor)
	}
	return colors
}

func registerColor(colors map[string]string, key string, color string) {
	if key == "" {
		return
	}
	for _, form := range colorKeyForms(key) {
		colors[form] = color
	}
}

func colorForValue(colors map[string]string, value string) (string, bool) {
	if colors == nil {
		return "", false
	}
	for _, form := range colorKeyForms(value) {
		if color, ok := colors[form]; ok {
			return color, true
		}
	}
	return "", false
}

// colorKeyForms returns the raw, lowercased-trimmed and strict ([a-z0-9] runs
// joined by '-') forms of a value string.
func colorKeyForms(value string) []string {
	lowered := strings.ToLower(strings.TrimSpace(value))
	strict := strings.Trim(nonAlphaNum.ReplaceAllString(lowered, "-"), "-")
	return []string{value, lowered, strict}
}
