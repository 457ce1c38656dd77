package apihandlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/ondrovic/survey-test-form-sub004/pkg/apihelpers/middlewares"
	jwthandling "github.com/ondrovic/survey-test-form-sub004/pkg/jwt-handling"
	surveytypes "github.com/ondrovic/survey-test-form-sub004/pkg/types/survey"
)

func (h *HttpEndpoints) AddSurveyManagementAPI(rg *gin.RouterGroup) {
	surveysGroup := rg.Group("/surveys")

	surveysGroup.Use(mw.GetAndValidateAdminUserJWT(h.tokenSignKey))
	surveysGroup.Use(mw.IsInstanceIDInJWTAllowed(h.allowedInstanceIDs))
	{
		surveysGroup.GET("/", h.getAllSurveyConfigs)
	}

	surveyGroup := surveysGroup.Group("/:surveyKey")
	{
		surveyGroup.GET("/config", h.getSurveyConfig)
		surveyGroup.POST("/config", mw.RequirePayload(), h.saveSurveyConfig)
		surveyGroup.DELETE("/", h.deleteSurveyConfig)
	}

	optionSetsGroup := rg.Group("/option-sets")
	optionSetsGroup.Use(mw.GetAndValidateAdminUserJWT(h.tokenSignKey))
	optionSetsGroup.Use(mw.IsInstanceIDInJWTAllowed(h.allowedInstanceIDs))
	{
		optionSetsGroup.GET("/:kind", h.getOptionSets)
		optionSetsGroup.POST("/:kind", mw.RequirePayload(), h.saveOptionSet)
	}
}

func (h *HttpEndpoints) getAllSurveyConfigs(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.AdminUserClaims)

	configs, err := h.surveyDBConn.GetSurveyConfigs(token.InstanceID)
	if err != nil {
		slog.Error("error fetching survey configs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching survey configs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"surveyConfigs": configs})
}

func (h *HttpEndpoints) getSurveyConfig(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.AdminUserClaims)

	surveyKey := c.Param("surveyKey")

	config, err := h.surveyDBConn.GetSurveyConfig(token.InstanceID, surveyKey)
	if err != nil {
		slog.Warn("survey config not found", slog.String("instanceID", token.InstanceID), slog.String("surveyKey", surveyKey))
		c.JSON(http.StatusNotFound, gin.H{"error": "survey config not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"surveyConfig": config})
}

func (h *HttpEndpoints) saveSurveyConfig(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.AdminUserClaims)

	surveyKey := c.Param("surveyKey")

	var config surveytypes.SurveyConfig
	if err := c.ShouldBindJSON(&config); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// path param wins over the payload
	config.SurveyKey = surveyKey

	if err := h.surveyDBConn.SaveSurveyConfig(token.InstanceID, config); err != nil {
		slog.Error("error saving survey config", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error saving survey config"})
		return
	}

	if err := h.surveyDBConn.CreateIndexForResponsesCollection(token.InstanceID, surveyKey); err != nil {
		slog.Warn("error ensuring response indexes", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
	}

	slog.Info("survey config saved", slog.String("instanceID", token.InstanceID), slog.String("surveyKey", surveyKey))
	c.JSON(http.StatusOK, gin.H{"message": "survey config saved"})
}

func (h *HttpEndpoints) deleteSurveyConfig(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.AdminUserClaims)

	surveyKey := c.Param("surveyKey")

	if err := h.surveyDBConn.DeleteSurveyConfig(token.InstanceID, surveyKey); err != nil {
		slog.Error("error deleting survey config", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error deleting survey config"})
		return
	}

	slog.Info("survey config deleted", slog.String("instanceID", token.InstanceID), slog.String("surveyKey", surveyKey))
	c.JSON(http.StatusOK, gin.H{"message": "survey config deleted"})
}

func (h *HttpEndpoints) getOptionSets(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.AdminUserClaims)

	kind := c.Param("kind")

	sets, err := h.surveyDBConn.GetOptionSets(token.InstanceID, kind)
	if err != nil {
		slog.Error("error fetching option sets", slog.String("kind", kind), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "error fetching option sets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"optionSets": sets})
}

func (h *HttpEndpoints) saveOptionSet(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.AdminUserClaims)

	kind := c.Param("kind")

	var set surveytypes.OptionSet
	if err := c.ShouldBindJSON(&set); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if set.Name == "" {
		slog.Error("option set name is required", slog.String("instanceID", token.InstanceID), slog.String("kind", kind))
		c.JSON(http.StatusBadRequest, gin.H{"error": "option set name is required"})
		return
	}

	if err := h.surveyDBConn.SaveOptionSet(token.InstanceID, kind, set); err != nil {
		slog.Error("error saving option set", slog.String("kind", kind), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error saving option set"})
		return
	}

	slog.Info("option set saved", slog.String("instanceID", token.InstanceID), slog.String("kind", kind), slog.String("name", set.Name))
	c.JSON(http.StatusOK, gin.H{"message": "option set saved"})
}
