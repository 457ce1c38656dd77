package survey

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	surveytypes "github.com/ondrovic/survey-test-form-sub004/pkg/types/survey"
)

var optionSetCollections = map[string]string{
	surveytypes.OPTION_SET_KIND_RATING_SCALE: COLLECTION_NAME_RATING_SCALES,
	surveytypes.OPTION_SET_KIND_RADIO:        COLLECTION_NAME_RADIO_OPTION_SETS,
	surveytypes.OPTION_SET_KIND_SELECT:       COLLECTION_NAME_SELECT_OPTION_SETS,
	surveytypes.OPTION_SET_KIND_MULTISELECT:  COLLECTION_NAME_MULTISELECT_OPTION_SET,
}

func optionSetCollectionName(kind string) (string, error) {
	name, ok := optionSetCollections[kind]
	if !ok {
		return "", fmt.Errorf("unknown option set kind: %s", kind)
	}
	return name, nil
}

func (dbService *SurveyDBService) GetOptionSets(instanceID string, kind string) (sets []surveytypes.OptionSet, err error) {
	collectionName, err := optionSetCollectionName(kind)
	if err != nil {
		return sets, err
	}

	ctx, cancel := dbService.getContext()
	defer cancel()

	cursor, err := dbService.collectionOptionSets(instanceID, collectionName).Find(ctx, bson.M{})
	if err != nil {
		return sets, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &sets)
	return sets, err
}

// SaveOptionSet upserts an option set by name within its kind.
func (dbService *SurveyDBService) SaveOptionSet(instanceID string, kind string, set surveytypes.OptionSet) error {
	collectionName, err := optionSetCollectionName(kind)
	if err != nil {
		return err
	}

	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"name": set.Name}
	update := bson.M{"$set": bson.M{
		"name":    set.Name,
		"options": set.Options,
	}}
	upsert := true
	_, err = dbService.collectionOptionSets(instanceID, collectionName).UpdateOne(ctx, filter, update, &options.UpdateOptions{Upsert: &upsert})
	return err
}

// GetOptionSetCatalog assembles the id and lowercased-name indexes over all
// four option set collections, ready to be handed to the aggregation engine.
func (dbService *SurveyDBService) GetOptionSetCatalog(instanceID string) (surveytypes.OptionSetCatalog, error) {
	ratingScales, err := dbService.GetOptionSets(instanceID, surveytypes.OPTION_SET_KIND_RATING_SCALE)
	if err != nil {
		return surveytypes.OptionSetCatalog{}, err
	}
	radioSets, err := dbService.GetOptionSets(instanceID, surveytypes.OPTION_SET_KIND_RADIO)
	if err != nil {
		return surveytypes.OptionSetCatalog{}, err
	}
	selectSets, err := dbService.GetOptionSets(instanceID, surveytypes.OPTION_SET_KIND_SELECT)
	if err != nil {
		return surveytypes.OptionSetCatalog{}, err
	}
	multiSets, err := dbService.GetOptionSets(instanceID, surveytypes.OPTION_SET_KIND_MULTISELECT)
	if err != nil {
		return surveytypes.OptionSetCatalog{}, err
	}

	return surveytypes.NewOptionSetCatalog(ratingScales, radioSets, selectSets, multiSets), nil
}
