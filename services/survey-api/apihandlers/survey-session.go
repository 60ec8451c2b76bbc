package apihandlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/Fkenogo/brand-health-analytics-banks/pkg/apihelpers/middlewares"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey"
)

func (h *HttpEndpoints) AddSurveyAPI(rg *gin.RouterGroup) {
	rg.POST("/device", mw.RateLimit(h.rateLimiter, nil), h.issueDeviceID)

	surveyGroup := rg.Group("/survey")
	{
		surveyGroup.GET("/definition", h.getDefinition)
		surveyGroup.GET("/banks", h.getBanks) // ?country=rwanda
	}

	sessionGroup := surveyGroup.Group("/session")
	sessionGroup.Use(mw.RequireDeviceID())
	sessionGroup.Use(mw.RateLimit(h.rateLimiter, func(c *gin.Context) string {
		return c.GetString(mw.ContextDeviceKey)
	}))
	{
		sessionGroup.GET("/status", h.getCompletionStatus)
		sessionGroup.POST("/start", h.startSession) // ?lang=fr
		sessionGroup.GET("", h.getSession)
		sessionGroup.POST("/answer", mw.RequirePayload(), h.submitAnswer)
		sessionGroup.POST("/next", h.nextQuestion)
		sessionGroup.POST("/back", h.previousQuestion)
		sessionGroup.DELETE("", h.abandonSession)
	}
}

func (h *HttpEndpoints) issueDeviceID(c *gin.Context) {
	deviceID := survey.NewDeviceID()
	slog.Debug("issued device id", slog.String("deviceID", deviceID))
	c.JSON(http.StatusOK, gin.H{"deviceId": deviceID})
}

func (h *HttpEndpoints) getDefinition(c *gin.Context) {
	c.JSON(http.StatusOK, h.surveyService.Definition())
}

func (h *HttpEndpoints) getBanks(c *gin.Context) {
	banks := h.surveyService.Banks().InScope(c.Query("country"))
	c.JSON(http.StatusOK, gin.H{"banks": banks})
}

func (h *HttpEndpoints) getCompletionStatus(c *gin.Context) {
	deviceID := c.GetString(mw.ContextDeviceKey)
	completed, err := h.surveyService.HasCompleted(c.Request.Context(), deviceID)
	if err != nil {
		respondWithError(c, "getCompletionStatus", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": completed})
}

func (h *HttpEndpoints) startSession(c *gin.Context) {
	deviceID := c.GetString(mw.ContextDeviceKey)
	state, err := h.surveyService.StartSession(c.Request.Context(), deviceID, c.Query("lang"))
	if err != nil {
		respondWithError(c, "startSession", err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *HttpEndpoints) getSession(c *gin.Context) {
	deviceID := c.GetString(mw.ContextDeviceKey)
	state, err := h.surveyService.GetSession(c.Request.Context(), deviceID)
	if err != nil {
		respondWithError(c, "getSession", err)
		return
	}
	c.JSON(http.StatusOK, state)
}

type AnswerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Value      any    `json:"value"`
}

func (h *HttpEndpoints) submitAnswer(c *gin.Context) {
	deviceID := c.GetString(mw.ContextDeviceKey)

	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Debug("submitAnswer: invalid request", slog.String("deviceID", deviceID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.surveyService.SubmitAnswer(c.Request.Context(), deviceID, req.QuestionID, req.Value)
	if err != nil {
		respondWithError(c, "submitAnswer", err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *HttpEndpoints) nextQuestion(c *gin.Context) {
	deviceID := c.GetString(mw.ContextDeviceKey)
	state, err := h.surveyService.Next(c.Request.Context(), deviceID)
	if err != nil {
		respondWithError(c, "nextQuestion", err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *HttpEndpoints) previousQuestion(c *gin.Context) {
	deviceID := c.GetString(mw.ContextDeviceKey)
	state, err := h.surveyService.Back(c.Request.Context(), deviceID)
	if err != nil {
		respondWithError(c, "previousQuestion", err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *HttpEndpoints) abandonSession(c *gin.Context) {
	deviceID := c.GetString(mw.ContextDeviceKey)
	if err := h.surveyService.AbandonSession(c.Request.Context(), deviceID); err != nil {
		respondWithError(c, "abandonSession", err)
		return
	}
	slog.Info("survey session abandoned", slog.String("deviceID", deviceID))
	c.JSON(http.StatusOK, gin.H{"message": "session removed"})
}
