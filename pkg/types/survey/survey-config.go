package survey

import "go.mongodb.org/mongo-driver/bson/primitive"

// Field types a survey config can contain.
const (
	FIELD_TYPE_TEXT                 = "text"
	FIELD_TYPE_TEXTAREA             = "textarea"
	FIELD_TYPE_EMAIL                = "email"
	FIELD_TYPE_NUMBER               = "number"
	FIELD_TYPE_DATE                 = "date"
	FIELD_TYPE_RATING               = "rating"
	FIELD_TYPE_RADIO                = "radio"
	FIELD_TYPE_SELECT               = "select"
	FIELD_TYPE_MULTISELECT          = "multiselect"
	FIELD_TYPE_MULTISELECT_DROPDOWN = "multiselectdropdown"
)

type SurveyConfig struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SurveyKey string             `bson:"surveyKey" json:"surveyKey"`
	Title     string             `bson:"title,omitempty" json:"title,omitempty"`
	Sections  []Section          `bson:"sections" json:"sections"`
	UpdatedAt int64              `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

type Section struct {
	Title       string       `bson:"title" json:"title"`
	Fields      []Field      `bson:"fields,omitempty" json:"fields,omitempty"`
	Subsections []Subsection `bson:"subsections,omitempty" json:"subsections,omitempty"`
}

type Subsection struct {
	Title  string  `bson:"title" json:"title"`
	Fields []Field `bson:"fields,omitempty" json:"fields,omitempty"`
}

type Field struct {
	ID    string `bson:"id" json:"id"`
	Label string `bson:"label" json:"label"`
	Type  string `bson:"type" json:"type"`

	// Option set references, which of these is relevant depends on Type
	RatingScaleID          string `bson:"ratingScaleId,omitempty" json:"ratingScaleId,omitempty"`
	RatingScaleName        string `bson:"ratingScaleName,omitempty" json:"ratingScaleName,omitempty"`
	RadioOptionSetID       string `bson:"radioOptionSetId,omitempty" json:"radioOptionSetId,omitempty"`
	RadioOptionSetName     string `bson:"radioOptionSetName,omitempty" json:"radioOptionSetName,omitempty"`
	SelectOptionSetID      string `bson:"selectOptionSetId,omitempty" json:"selectOptionSetId,omitempty"`
	SelectOptionSetName    string `bson:"selectOptionSetName,omitempty" json:"selectOptionSetName,omitempty"`
	MultiSelectOptionSetID string `bson:"multiSelectOptionSetId,omitempty" json:"multiSelectOptionSetId,omitempty"`

	MultiSelectOptionSetName string `bson:"multiSelectOptionSetName,omitempty" json:"multiSelectOptionSetName,omitempty"`

	// Options defined directly on the field instead of a shared set
	InlineOptions []Option `bson:"inlineOptions,omitempty" json:"inlineOptions,omitempty"`

	// Previous labels of this field, oldest first
	LabelHistory []LabelHistoryEntry `bson:"labelHistory,omitempty" json:"labelHistory,omitempty"`
}

type LabelHistoryEntry struct {
	Label     string `bson:"label" json:"label"`
	ChangedAt int64  `bson:"changedAt,omitempty" json:"changedAt,omitempty"`
}
