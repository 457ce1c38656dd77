package survey

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ondrovic/survey-test-form-sub004/pkg/db"
)

// collection names
const (
	COLLECTION_NAME_SURVEY_CONFIGS         = "surveyConfigs"
	COLLECTION_NAME_RATING_SCALES          = "ratingScales"
	COLLECTION_NAME_RADIO_OPTION_SETS      = "radioOptionSets"
	COLLECTION_NAME_SELECT_OPTION_SETS     = "selectOptionSets"
	COLLECTION_NAME_MULTISELECT_OPTION_SET = "multiSelectOptionSets"
	COLLECTION_NAME_SUFFIX_RESPONSES       = "surveyResponses"
)

type SurveyDBService struct {
	DBClient        *mongo.Client
	timeout         int
	noCursorTimeout bool
	DBNamePrefix    string
	InstanceIDs     []string
}

func NewSurveyDBService(configs db.DBConfig) (*SurveyDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)
	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()

	if err != nil {
		return nil, err
	}

	surveyDBSc := &SurveyDBService{
		DBClient:        dbClient,
		timeout:         configs.Timeout,
		noCursorTimeout: configs.NoCursorTimeout,
		DBNamePrefix:    configs.DBNamePrefix,
		InstanceIDs:     configs.InstanceIDs,
	}

	if configs.RunIndexCreation {
		if err := surveyDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for survey DB", slog.String("error", err.Error()))
		}
	}

	return surveyDBSc, nil
}

func (dbService *SurveyDBService) getDBName(instanceID string) string {
	return dbService.DBNamePrefix + instanceID + "_surveyDB"
}

func (dbService *SurveyDBService) collectionSurveyConfigs(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_SURVEY_CONFIGS)
}

func (dbService *SurveyDBService) collectionOptionSets(instanceID string, kind string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(kind)
}

func (dbService *SurveyDBService) collectionResponses(instanceID string, surveyKey string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(surveyKey + "_" + COLLECTION_NAME_SUFFIX_RESPONSES)
}

func (dbService *SurveyDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *SurveyDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for survey DB")
	for _, instanceID := range dbService.InstanceIDs {
		if err := dbService.CreateIndexForSurveyConfigsCollection(instanceID); err != nil {
			slog.Error("Error creating index for surveyConfigs", slog.String("error", err.Error()))
		}

		configs, err := dbService.GetSurveyConfigs(instanceID)
		if err != nil {
			slog.Error("Error fetching survey configs", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
			return err
		}

		for _, config := range configs {
			if err := dbService.CreateIndexForResponsesCollection(instanceID, config.SurveyKey); err != nil {
				slog.Error("Error creating index for responses", slog.String("surveyKey", config.SurveyKey), slog.String("error", err.Error()))
			}
		}
	}
	return nil
}
