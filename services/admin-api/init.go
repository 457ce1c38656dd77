package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/ondrovic/survey-test-form-sub004/pkg/apihelpers"
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

	// Env-only DB config, used when the config file has no survey_db block
	ENV_SURVEY_DB_CONNECTION_STR        = "SURVEY_DB_CONNECTION_STR"
	ENV_SURVEY_DB_CONNECTION_PREFIX     = "SURVEY_DB_CONNECTION_PREFIX"
	ENV_SURVEY_DB_NAME_PREFIX           = "SURVEY_DB_NAME_PREFIX"
	ENV_SURVEY_DB_TIMEOUT               = "SURVEY_DB_TIMEOUT"
	ENV_SURVEY_DB_IDLE_CONN_TIMEOUT     = "SURVEY_DB_IDLE_CONN_TIMEOUT"
	ENV_SURVEY_DB_USE_NO_CURSOR_TIMEOUT = "SURVEY_DB_USE_NO_CURSOR_TIMEOUT"
	ENV_SURVEY_DB_MAX_POOL_SIZE         = "SURVEY_DB_MAX_POOL_SIZE"

	ENV_ADMIN_USER_JWT_SIGN_KEY   = "ADMIN_USER_JWT_SIGN_KEY"
	ENV_ADMIN_USER_JWT_EXPIRES_IN = "ADMIN_USER_JWT_EXPIRES_IN"
)

type AdminApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`

		// Mutual TLS configs
		MTLS struct {
			Use              bool                        `json:"use" yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `json:"certificate_paths" yaml:"certificate_paths"`
		} `json:"mtls" yaml:"mtls"`
	} `json:"gin_config" yaml:"gin_config"`

	// JWT configs
	AdminUserJWTConfig struct {
		SignKey   string        `json:"sign_key" yaml:"sign_key"`
		ExpiresIn time.Duration `json:"expires_in" yaml:"expires_in"`
	} `json:"admin_user_jwt_config" yaml:"admin_user_jwt_config"`

	AllowedInstanceIDs []string `json:"allowed_instance_ids" yaml:"allowed_instance_ids"`

	// DB configs
	DBConfigs struct {
		SurveyDB db.DBConfigYaml `json:"survey_db" yaml:"survey_db"`
	} `json:"db_configs" yaml:"db_configs"`

	FilestorePath string `json:"filestore_path" yaml:"filestore_path"`
}

var (
	surveyDBService *surveyDB.SurveyDBService
)

func init() {
	// Optional .env file for local development
	_ = godotenv.Load()

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

	// Init DBs
	initDBs()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	checkFilestorePath()
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_SURVEY_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.SurveyDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_SURVEY_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.SurveyDB.Password = dbPassword
	}

	if adminUserJwtSignKey := os.Getenv(ENV_ADMIN_USER_JWT_SIGN_KEY); adminUserJwtSignKey != "" {
		conf.AdminUserJWTConfig.SignKey = adminUserJwtSignKey
	}

	if expInVal := os.Getenv(ENV_ADMIN_USER_JWT_EXPIRES_IN); expInVal != "" {
		expiresIn, err := utils.ParseDurationString(expInVal)
		if err != nil {
			slog.Error("error during initConfig", slog.String("error", err.Error()), ENV_ADMIN_USER_JWT_EXPIRES_IN, expInVal)
			panic(err)
		}
		conf.AdminUserJWTConfig.ExpiresIn = expiresIn
	}
}

func checkFilestorePath() {
	// To store dynamically generated files
	fsPath := conf.FilestorePath
	if fsPath == "" {
		slog.Error("Filestore path not set")
		panic("Filestore path not set")
	}

	if _, err := os.Stat(fsPath); os.IsNotExist(err) {
		slog.Error("Filestore path does not exist", slog.String("path", fsPath))
		panic("Filestore path does not exist")
	}
}

func initDBs() {
	var err error
	surveyDBService, err = surveyDB.NewSurveyDBService(readSurveyDBConfig())
	if err != nil {
		slog.Error("Error connecting to Survey DB", slog.String("error", err.Error()))
		panic(err)
	}
}

func readSurveyDBConfig() db.DBConfig {
	if conf.DBConfigs.SurveyDB.ConnectionStr != "" {
		return db.DBConfigFromYamlObj(conf.DBConfigs.SurveyDB, conf.AllowedInstanceIDs)
	}

	// No survey_db block in the config file, read everything from env
	return db.ReadDBConfigFromEnv(
		"survey DB",
		ENV_SURVEY_DB_CONNECTION_STR,
		ENV_SURVEY_DB_USERNAME,
		ENV_SURVEY_DB_PASSWORD,
		ENV_SURVEY_DB_CONNECTION_PREFIX,
		ENV_SURVEY_DB_TIMEOUT,
		ENV_SURVEY_DB_IDLE_CONN_TIMEOUT,
		ENV_SURVEY_DB_MAX_POOL_SIZE,
		ENV_SURVEY_DB_USE_NO_CURSOR_TIMEOUT,
		ENV_SURVEY_DB_NAME_PREFIX,
		conf.AllowedInstanceIDs,
	)
}
