package apihandlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/ondrovic/survey-test-form-sub004/pkg/apihelpers/middlewares"
	jwthandling "github.com/ondrovic/survey-test-form-sub004/pkg/jwt-handling"
)

func (h *HttpEndpoints) AddAdminAuthAPI(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/signin-with-idp", mw.RequirePayload(), h.signInWithIdP)
	auth.GET("/renew-token", mw.GetAndValidateAdminUserJWT(h.tokenSignKey), h.getRenewToken)
}

// SignInRequest is the request body for the signin-with-idp endpoint
type SignInRequest struct {
	Sub        string   `json:"sub"`
	Roles      []string `json:"roles"`
	InstanceID string   `json:"instanceId"`
}

func (h *HttpEndpoints) signInWithIdP(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.isInstanceAllowed(req.InstanceID) {
		slog.Warn("instance not allowed", slog.String("instanceID", req.InstanceID))
		c.JSON(http.StatusForbidden, gin.H{"error": "instance not allowed"})
		return
	}

	isAdmin := false
	for _, role := range req.Roles {
		if role == "admin" {
			isAdmin = true
			break
		}
	}

	token, err := jwthandling.GenerateNewAdminUserToken(
		h.tokenExpiresIn,
		req.Sub,
		req.InstanceID,
		isAdmin,
		nil,
		h.tokenSignKey,
	)
	if err != nil {
		slog.Error("error generating token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error generating token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresIn": h.tokenExpiresIn.Seconds(),
	})
}

func (h *HttpEndpoints) getRenewToken(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.AdminUserClaims)

	newToken, err := jwthandling.GenerateNewAdminUserToken(
		h.tokenExpiresIn,
		token.ID,
		token.InstanceID,
		token.IsAdmin,
		token.Payload,
		h.tokenSignKey,
	)
	if err != nil {
		slog.Error("error generating token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error generating token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     newToken,
		"expiresIn": h.tokenExpiresIn.Seconds(),
	})
}

func (h *HttpEndpoints) isInstanceAllowed(instanceID string) bool {
	for _, allowed := range h.allowedInstanceIDs {
		if instanceID == allowed {
			return true
		}
	}
	return false
}
