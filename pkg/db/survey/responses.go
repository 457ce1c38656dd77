package survey

import (
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ondrovic/survey-test-form-sub004/pkg/db"
	surveytypes "github.com/ondrovic/survey-test-form-sub004/pkg/types/survey"
)

func (dbService *SurveyDBService) CreateIndexForResponsesCollection(instanceID string, surveyKey string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	collection := dbService.collectionResponses(instanceID, surveyKey)

	existing, err := db.ListCollectionIndexes(ctx, collection)
	if err != nil {
		slog.Debug("Error listing indexes", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
	}
	for _, index := range existing {
		if name, ok := index["name"].(string); ok && name == "submittedAt_1" {
			// indexes are already in place
			return nil
		}
	}

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "submittedAt", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "arrivedAt", Value: 1},
			},
		},
	}
	_, err = collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func (dbService *SurveyDBService) AddSurveyResponse(instanceID string, surveyKey string, response surveytypes.SurveyResponse) (string, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	response.ID = primitive.NilObjectID
	response.SurveyKey = surveyKey
	response.ArrivedAt = time.Now().Unix()

	res, err := dbService.collectionResponses(instanceID, surveyKey).InsertOne(ctx, response)
	if err != nil {
		return "", err
	}
	id := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), nil
}

// GetResponsesInInterval returns every response submitted in [from, until].
// A zero bound leaves that side of the interval open.
func (dbService *SurveyDBService) GetResponsesInInterval(instanceID string, surveyKey string, from int64, until int64) (responses []surveytypes.SurveyResponse, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := submittedAtFilter(from, until)
	opts := options.Find().SetSort(bson.M{"submittedAt": 1})
	if dbService.noCursorTimeout {
		opts.SetNoCursorTimeout(true)
	}

	cursor, err := dbService.collectionResponses(instanceID, surveyKey).Find(ctx, filter, opts)
	if err != nil {
		return responses, err
	}
	defer cursor.Close(ctx)

	responses = []surveytypes.SurveyResponse{}
	for cursor.Next(ctx) {
		var response surveytypes.SurveyResponse
		if err := cursor.Decode(&response); err != nil {
			slog.Error("Error while decoding response", slog.String("error", err.Error()))
			continue
		}
		responses = append(responses, response)
	}
	return responses, cursor.Err()
}

// get paginated responses by query
func (dbService *SurveyDBService) GetResponses(instanceID string, surveyKey string, filter bson.M, sort bson.M, page int64, limit int64) (responses []surveytypes.SurveyResponse, paginationInfo *PaginationInfos, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	totalCount, err := dbService.GetResponsesCount(instanceID, surveyKey, filter)
	if err != nil {
		return responses, nil, err
	}

	paginationInfo = prepPaginationInfos(totalCount, page, limit)

	skip := (paginationInfo.CurrentPage - 1) * paginationInfo.PageSize

	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(paginationInfo.PageSize)
	cursor, err := dbService.collectionResponses(instanceID, surveyKey).Find(ctx, filter, opts)
	if err != nil {
		return responses, nil, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &responses)
	if err != nil {
		return responses, nil, err
	}

	return responses, paginationInfo, nil
}

func (dbService *SurveyDBService) GetResponsesCount(instanceID string, surveyKey string, filter bson.M) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	return dbService.collectionResponses(instanceID, surveyKey).CountDocuments(ctx, filter)
}

func (dbService *SurveyDBService) DeleteResponseByID(instanceID string, surveyKey string, responseID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(responseID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionResponses(instanceID, surveyKey).DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func submittedAtFilter(from int64, until int64) bson.M {
	filter := bson.M{}
	submittedAt := bson.M{}
	if from > 0 {
		submittedAt["$gte"] = from
	}
	if until > 0 {
		submittedAt["$lte"] = until
	}
	if len(submittedAt) > 0 {
		filter["submittedAt"] = submittedAt
	}
	return filter
}
