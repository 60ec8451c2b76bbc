package apihandlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	mw "github.com/Fkenogo/brand-health-analytics-banks/pkg/apihelpers/middlewares"
	jwthandling "github.com/Fkenogo/brand-health-analytics-banks/pkg/jwt-handling"
)

const ADMIN_USER_SUBJECT = "dashboard-admin"

func (h *HttpEndpoints) AddAuthAPI(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/login", mw.RateLimit(h.auth.LoginLimiter, nil), mw.RequirePayload(), h.login)
	auth.GET("/renew-token", h.requireAuth(), mw.IsAdminUser(), h.renewToken)
}

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *HttpEndpoints) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Debug("login: invalid request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.auth.PasswordHash == "" {
		slog.Error("login: no admin password configured")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.auth.PasswordHash), []byte(req.Password)); err != nil {
		slog.Warn("login: wrong password", slog.String("clientIP", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	h.respondWithNewToken(c)
}

func (h *HttpEndpoints) renewToken(c *gin.Context) {
	h.respondWithNewToken(c)
}

func (h *HttpEndpoints) respondWithNewToken(c *gin.Context) {
	token, err := jwthandling.GenerateNewAdminUserToken(h.auth.ExpiresIn, ADMIN_USER_SUBJECT, true, h.auth.TokenSignKey)
	if err != nil {
		slog.Error("could not generate admin token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	slog.Info("admin token issued", slog.String("clientIP", c.ClientIP()))
	c.JSON(http.StatusOK, gin.H{
		"accessToken": token,
		"expiresAt":   h.now().Add(h.auth.ExpiresIn).Unix(),
		"isAdmin":     true,
	})
}
