package survey

import "strings"

// Option set kinds, used as catalog keys and collection name suffixes.
const (
	OPTION_SET_KIND_RATING_SCALE = "ratingScales"
	OPTION_SET_KIND_RADIO        = "radioOptionSets"
	OPTION_SET_KIND_SELECT       = "selectOptionSets"
	OPTION_SET_KIND_MULTISELECT  = "multiSelectOptionSets"
)

type Option struct {
	Value string `bson:"value" json:"value"`
	Label string `bson:"label" json:"label"`
	Color string `bson:"color,omitempty" json:"color,omitempty"`
	Order int    `bson:"order,omitempty" json:"order,omitempty"`
}

type OptionSet struct {
	ID      string   `bson:"_id,omitempty" json:"id,omitempty"`
	Name    string   `bson:"name" json:"name"`
	Options []Option `bson:"options" json:"options"`
}

// OptionSetCatalog indexes the four option set collections both by id and by
// lowercased name, so fields can reference a set either way.
type OptionSetCatalog struct {
	RatingScalesByID   map[string]OptionSet
	RatingScalesByName map[string]OptionSet
	RadioSetsByID      map[string]OptionSet
	RadioSetsByName    map[string]OptionSet
	SelectSetsByID     map[string]OptionSet
	SelectSetsByName   map[string]OptionSet
	MultiSetsByID      map[string]OptionSet
	MultiSetsByName    map[string]OptionSet
}

func NewOptionSetCatalog(ratingScales, radioSets, selectSets, multiSets []OptionSet) OptionSetCatalog {
	catalog := OptionSetCatalog{}
	catalog.RatingScalesByID, catalog.RatingScalesByName = indexOptionSets(ratingScales)
	catalog.RadioSetsByID, catalog.RadioSetsByName = indexOptionSets(radioSets)
	catalog.SelectSetsByID, catalog.SelectSetsByName = indexOptionSets(selectSets)
	catalog.MultiSetsByID, catalog.MultiSetsByName = indexOptionSets(multiSets)
	return catalog
}

func indexOptionSets(sets []OptionSet) (byID map[string]OptionSet, byName map[string]OptionSet) {
	byID = make(map[string]OptionSet, len(sets))
	byName = make(map[string]OptionSet, len(sets))
	for _, set := range sets {
		if set.ID != "" {
			byID[set.ID] = set
		}
		if set.Name != "" {
			byName[strings.ToLower(set.Name)] = set
		}
	}
	return byID, byName
}
