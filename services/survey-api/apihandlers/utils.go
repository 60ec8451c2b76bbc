package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/store"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/flowengine"
)

// respondWithError maps service errors onto status codes. Unknown errors are logged and hidden.
func respondWithError(c *gin.Context, handler string, err error) {
	var validationErr *flowengine.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message, "questionId": validationErr.QuestionID})
	case errors.Is(err, flowengine.ErrAnswerRequired), errors.Is(err, flowengine.ErrQuestionNotVisible):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no survey session for this device"})
	case errors.Is(err, survey.ErrSurveyAlreadyCompleted), errors.Is(err, flowengine.ErrSessionFinished):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		slog.Error(handler+": unexpected error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
