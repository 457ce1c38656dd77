package survey

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	surveytypes "github.com/ondrovic/survey-test-form-sub004/pkg/types/survey"
)

func (dbService *SurveyDBService) CreateIndexForSurveyConfigsCollection(instanceID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	collection := dbService.collectionSurveyConfigs(instanceID)
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "surveyKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func (dbService *SurveyDBService) GetSurveyConfig(instanceID string, surveyKey string) (config surveytypes.SurveyConfig, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"surveyKey": surveyKey}
	err = dbService.collectionSurveyConfigs(instanceID).FindOne(ctx, filter).Decode(&config)
	return config, err
}

func (dbService *SurveyDBService) GetSurveyConfigs(instanceID string) (configs []surveytypes.SurveyConfig, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	cursor, err := dbService.collectionSurveyConfigs(instanceID).Find(ctx, bson.M{})
	if err != nil {
		return configs, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &configs)
	return configs, err
}

// SaveSurveyConfig upserts the config for its survey key.
func (dbService *SurveyDBService) SaveSurveyConfig(instanceID string, config surveytypes.SurveyConfig) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	config.UpdatedAt = time.Now().Unix()

	filter := bson.M{"surveyKey": config.SurveyKey}
	update := bson.M{"$set": bson.M{
		"surveyKey": config.SurveyKey,
		"title":     config.Title,
		"sections":  config.Sections,
		"updatedAt": config.UpdatedAt,
	}}
	upsert := true
	_, err := dbService.collectionSurveyConfigs(instanceID).UpdateOne(ctx, filter, update, &options.UpdateOptions{Upsert: &upsert})
	return err
}

func (dbService *SurveyDBService) DeleteSurveyConfig(instanceID string, surveyKey string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionSurveyConfigs(instanceID).DeleteOne(ctx, bson.M{"surveyKey": surveyKey})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
