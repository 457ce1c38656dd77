package aggregation

import (
	"regexp"
	"strings"

	"github.com/gosimple/slug"

	surveytypes "github.com/ondrovic/survey-test-form-sub004/pkg/types/survey"
)

// FieldMeta holds everything the aggregation pass needs to know about one
// field: its display infos and the ordered list of payload keys that could
// hold its answer in a raw response.
type FieldMeta struct {
	Field         surveytypes.Field
	SectionTitle  string
	DescriptiveID string

	// PossibleKeys is scanned front to back, the first key present in a
	// response payload wins. The current field id always comes first.
	PossibleKeys []string
}

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// BuildFieldMetadata flattens the config's section/subsection tree into an
// ordered field list with resolved key candidates. A nil config yields an
// empty list.
func BuildFieldMetadata(config *surveytypes.SurveyConfig) []FieldMeta {
	if config == nil {
		return []FieldMeta{}
	}

	metas := []FieldMeta{}
	for _, section := range config.Sections {
		for _, field := range section.Fields {
			metas = append(metas, newFieldMeta(field, section.Title))
		}
		for _, subsection := range section.Subsections {
			for _, field := range subsection.Fields {
				metas = append(metas, newFieldMeta(field, section.Title))
			}
		}
	}
	return metas
}

func newFieldMeta(field surveytypes.Field, sectionTitle string) FieldMeta {
	return FieldMeta{
		Field:         field,
		SectionTitle:  sectionTitle,
		DescriptiveID: descriptiveID(sectionTitle, field.Label),
		PossibleKeys:  resolveKeys(field, sectionTitle),
	}
}

// descriptiveID is the legacy export key derived from section and label. An
// empty result means slug generation produced nothing usable and the
// candidate is simply skipped.
func descriptiveID(sectionTitle string, label string) string {
	return slug.Make(sectionTitle + " " + label)
}

// resolveKeys enumerates every payload key this field's answer may have been
// stored under, in precedence order: the current id, then the key families
// derived from the current label, then the same families for every historical
// label. Duplicates are dropped keeping the first occurrence.
func resolveKeys(field surveytypes.Field, sectionTitle string) []string {
	keys := []string{field.ID}
	keys = append(keys, keyFamiliesForLabel(sectionTitle, field.Label)...)
	for _, entry := range field.LabelHistory {
		keys = append(keys, keyFamiliesForLabel(sectionTitle, entry.Label)...)
	}

	seen := make(map[string]bool, len(keys))
	unique := make([]string, 0, len(keys))
	for _, key := range keys {
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, key)
	}
	return unique
}

func keyFamiliesForLabel(sectionTitle string, label string) []string {
	keys := make([]string, 0, 6)
	if descID := descriptiveID(sectionTitle, label); descID != "" {
		keys = append(keys, descID)
	}
	keys = append(keys,
		sectionTitle+" "+label,
		sectionTitle+" - "+label,
		variantKey(sectionTitle, label, "_"),
		variantKey(sectionTitle, label, "-"),
		variantKey(sectionTitle, label, " "),
	)
	return keys
}

// variantKey joins the lowercased, non-alphanumeric-stripped section and
// label with the given separator, matching the key shapes of older export
// formats.
func variantKey(sectionTitle string, label string, sep string) string {
	return normalizeToken(sectionTitle, sep) + sep + normalizeToken(label, sep)
}

func normalizeToken(value string, sep string) string {
	normalized := nonAlphaNum.ReplaceAllString(strings.ToLower(value), sep)
	return strings.Trim(normalized, sep)
}
