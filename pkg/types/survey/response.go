package survey

import "go.mongodb.org/mongo-driver/bson/primitive"

// SurveyResponse is one submission. The keys of the Responses payload are not
// guaranteed to match the current field ids of the survey config, responses
// submitted before a field rename keep the keys that were valid at the time.
type SurveyResponse struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	SurveyKey   string                 `bson:"surveyKey" json:"surveyKey"`
	Responses   map[string]interface{} `bson:"responses" json:"responses"`
	SubmittedAt int64                  `bson:"submittedAt" json:"submittedAt"`
	ArrivedAt   int64                  `bson:"arrivedAt,omitempty" json:"arrivedAt,omitempty"`
}
