package apihandlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ondrovic/survey-test-form-sub004/pkg/aggregation"
	"github.com/ondrovic/survey-test-form-sub004/pkg/apihelpers"
	mw "github.com/ondrovic/survey-test-form-sub004/pkg/apihelpers/middlewares"
	aggregationExporter "github.com/ondrovic/survey-test-form-sub004/pkg/exporter/aggregations"
	jwthandling "github.com/ondrovic/survey-test-form-sub004/pkg/jwt-handling"
	surveytypes "github.com/ondrovic/survey-test-form-sub004/pkg/types/survey"
)

func (h *HttpEndpoints) AddResponseAnalyticsAPI(rg *gin.RouterGroup) {
	surveysGroup := rg.Group("/surveys")

	surveysGroup.Use(mw.GetAndValidateAdminUserJWT(h.tokenSignKey))
	surveysGroup.Use(mw.IsInstanceIDInJWTAllowed(h.allowedInstanceIDs))

	surveyGroup := surveysGroup.Group("/:surveyKey")
	{
		surveyGroup.POST("/responses", mw.RequirePayload(), h.addSurveyResponse)
		surveyGroup.GET("/responses", h.getSurveyResponses)
		surveyGroup.DELETE("/responses/:responseID", h.deleteSurveyResponse)
		surveyGroup.GET("/aggregations", h.getAggregations)
		surveyGroup.GET("/aggregations/export", h.exportAggregations)
	}
}

func (h *HttpEndpoints) addSurveyResponse(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.AdminUserClaims)

	surveyKey := c.Param("surveyKey")

	var response surveytypes.SurveyResponse
	if err := c.ShouldBindJSON(&response); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response.SurveyKey = surveyKey
	if response.SubmittedAt == 0 {
		response.SubmittedAt = time.Now().Unix()
	}

	id, err := h.surveyDBConn.AddSurveyResponse(token.InstanceID, surveyKey, response)
	if err != nil {
		slog.Error("error saving survey response", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error saving survey response"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"responseID": id})
}

func (h *HttpEndpoints) getSurveyResponses(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.AdminUserClaims)

	surveyKey := c.Param("surveyKey")

	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		slog.Error("failed to parse query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	responses, paginationInfo, err := h.surveyDBConn.GetResponses(token.InstanceID, surveyKey, query.Filter, query.Sort, query.Page, query.Limit)
	if err != nil {
		slog.Error("error fetching survey responses", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching survey responses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"responses":  responses,
		"pagination": paginationInfo,
	})
}

func (h *HttpEndpoints) deleteSurveyResponse(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.AdminUserClaims)

	surveyKey := c.Param("surveyKey")
	responseID := c.Param("responseID")

	if err := h.surveyDBConn.DeleteResponseByID(token.InstanceID, surveyKey, responseID); err != nil {
		slog.Error("error deleting survey response", slog.String("surveyKey", surveyKey), slog.String("responseID", responseID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "error deleting survey response"})
		return
	}

	slog.Info("survey response deleted", slog.String("instanceID", token.InstanceID), slog.String("surveyKey", surveyKey), slog.String("responseID", responseID))
	c.JSON(http.StatusOK, gin.H{"message": "survey response deleted"})
}

func (h *HttpEndpoints) getAggregations(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.AdminUserClaims)

	surveyKey := c.Param("surveyKey")

	from, until, err := apihelpers.ParseIntervalQueryFromCtx(c)
	if err != nil {
		slog.Error("failed to parse query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	series, total, err := h.computeAggregations(token.InstanceID, surveyKey, from, until)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"series":        series,
		"responseCount": total,
	})
}

func (h *HttpEndpoints) exportAggregations(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.AdminUserClaims)

	surveyKey := c.Param("surveyKey")

	from, until, err := apihelpers.ParseIntervalQueryFromCtx(c)
	if err != nil {
		slog.Error("failed to parse query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	format := c.DefaultQuery("format", "csv")

	series, _, err := h.computeAggregations(token.InstanceID, surveyKey, from, until)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	switch format {
	case "csv":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-aggregations.csv", surveyKey))
		c.Header("Content-Type", "text/csv")
		if err := aggregationExporter.WriteCSV(c.Writer, series); err != nil {
			slog.Error("error writing csv export", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
		}
	case "xlsx":
		filename := filepath.Join(h.filestorePath, fmt.Sprintf("%s-aggregations-%s.xlsx", surveyKey, uuid.NewString()))
		if err := aggregationExporter.WriteXLSX(filename, series); err != nil {
			slog.Error("error writing xlsx export", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error writing xlsx export"})
			return
		}
		c.FileAttachment(filename, fmt.Sprintf("%s-aggregations.xlsx", surveyKey))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported export format"})
	}
}

// computeAggregations fetches config, option sets and responses for the
// interval and runs the aggregation over them. Each run is tracked as a
// session so slow visualization requests show up in the logs with their
// duration.
func (h *HttpEndpoints) computeAggregations(instanceID string, surveyKey string, from int64, until int64) ([]surveytypes.AggregatedSeries, int, error) {
	sessionKey := uuid.NewString()
	h.sessions.Start(sessionKey)
	defer func() {
		if session, duration, ok := h.sessions.Finish(sessionKey); ok {
			slog.Debug("aggregation finished",
				slog.String("sessionID", session.ID),
				slog.String("surveyKey", surveyKey),
				slog.Duration("duration", duration))
		}
	}()

	config, err := h.surveyDBConn.GetSurveyConfig(instanceID, surveyKey)
	if err != nil {
		slog.Warn("survey config not found", slog.String("instanceID", instanceID), slog.String("surveyKey", surveyKey))
		return nil, 0, fmt.Errorf("survey config not found")
	}

	catalog, err := h.surveyDBConn.GetOptionSetCatalog(instanceID)
	if err != nil {
		slog.Error("error fetching option sets", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("error fetching option sets")
	}

	responses, err := h.surveyDBConn.GetResponsesInInterval(instanceID, surveyKey, from, until)
	if err != nil {
		slog.Error("error fetching survey responses", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("error fetching survey responses")
	}

	series := aggregation.Aggregate(responses, &config, catalog)
	return series, len(responses), nil
}
