package apihandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	surveyDB "github.com/ondrovic/survey-test-form-sub004/pkg/db/survey"
	"github.com/ondrovic/survey-test-form-sub004/pkg/sessiontracker"
)

func HealthCheckHandle(c *gin.Context) {
	serviceInfos := make(map[string]interface{})
	infos, err := os.ReadFile("serviceInfos.json")
	if err != nil {
		slog.Debug("Error reading serviceInfos.json", slog.String("error", err.Error()))
	} else {
		err = json.Unmarshal(infos, &serviceInfos)
		if err != nil {
			slog.Debug("Error unmarshalling serviceInfos.json", slog.String("error", err.Error()))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"serviceInfos": serviceInfos,
	})
}

type HttpEndpoints struct {
	surveyDBConn       *surveyDB.SurveyDBService
	tokenSignKey       string
	tokenExpiresIn     time.Duration
	allowedInstanceIDs []string
	filestorePath      string
	sessions           *sessiontracker.Tracker
}

func NewHTTPHandler(
	tokenSignKey string,
	tokenExpiresIn time.Duration,
	surveyDBConn *surveyDB.SurveyDBService,
	allowedInstanceIDs []string,
	filestorePath string,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey:       tokenSignKey,
		tokenExpiresIn:     tokenExpiresIn,
		surveyDBConn:       surveyDBConn,
		allowedInstanceIDs: allowedInstanceIDs,
		filestorePath:      filestorePath,
		sessions:           sessiontracker.NewTracker(),
	}
}
