package main

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/ondrovic/survey-test-form-sub004/pkg/db"
	"github.com/ondrovic/survey-test-form-sub004/pkg/utils"

	surveyDB "github.com/ondrovic/survey-test-form-sub004/pkg/db/survey"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_SURVEY_DB_USERNAME = "SURVEY_DB_USERNAME"
	ENV_SURVEY_DB_PASSWORD = "SURVEY_DB_PASSWORD"
)

type AggregationExportTask struct {
	InstanceID   string `json:"instance_id" yaml:"instance_id"`
	SurveyKey    string `json:"survey_key" yaml:"survey_key"`
	WindowDays   int    `json:"window_days" yaml:"window_days"`     // 0 means all responses
	ExportFormat string `json:"export_format" yaml:"export_format"` // csv or xlsx
}

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		SurveyDB db.DBConfigYaml `json:"survey_db" yaml:"survey_db"`
	} `json:"db_configs" yaml:"db_configs"`

	ExportPath string `json:"export_path" yaml:"export_path"`

	ExportTasks []AggregationExportTask `json:"export_tasks" yaml:"export_tasks"`
}

var conf config

var (
	surveyDBServices map[string]*surveyDB.SurveyDBService
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(
		conf.Logging.LogLevel,
		conf.Logging.IncludeSrc,
		conf.Logging.LogToFile,
		conf.Logging.Filename,
		conf.Logging.MaxSize,
		conf.Logging.MaxAge,
		conf.Logging.MaxBackups,
		conf.Logging.CompressOldLogs,
		conf.Logging.IncludeBuildInfo,
	)

	// Override secrets from environment variables
	secretsOverride()

	// init db
	initDBs()

	if conf.ExportPath == "" {
		err := fmt.Errorf("export path must be set to define where to store the export files")
		slog.Error("Error reading config", slog.String("error", err.Error()))
		panic(err)
	}

	if _, err := os.Stat(conf.ExportPath); os.IsNotExist(err) {
		// create folder
		err = os.MkdirAll(conf.ExportPath, os.ModePerm)
		if err != nil {
			slog.Error("Error creating export path", slog.String("error", err.Error()))
			panic(err)
		}
		slog.Info("Created export path", slog.String("path", conf.ExportPath))
	}
}

func secretsOverride() {
	// Override secrets from environment variables

	if dbUsername := os.Getenv(ENV_SURVEY_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.SurveyDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_SURVEY_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.SurveyDB.Password = dbPassword
	}
}

// initDBs opens one connection per instance so that instance specific
// password overrides stay scoped to their own instance.
func initDBs() {
	surveyDBServices = map[string]*surveyDB.SurveyDBService{}

	for _, instanceID := range getInstanceIDs() {
		if instanceID == "" {
			slog.Warn("Export task without instance ID, skipping DB connection")
			continue
		}
		if _, ok := surveyDBServices[instanceID]; ok {
			continue
		}

		passwordOverride := os.Getenv(utils.GenerateExportDBPasswordEnvVarName(instanceID))

		service, err := surveyDB.NewSurveyDBService(db.DBConfigForInstance(conf.DBConfigs.SurveyDB, instanceID, passwordOverride))
		if err != nil {
			slog.Error("Error connecting to Survey DB", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
			panic(err)
		}
		surveyDBServices[instanceID] = service
	}
}

func getInstanceIDs() []string {
	instanceIDs := []string{}
	for _, task := range conf.ExportTasks {
		instanceIDs = append(instanceIDs, task.InstanceID)
	}
	return instanceIDs
}
