package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/mmdatafocus/intake_backend/config"
	"github.com/mmdatafocus/intake_backend/ferb"
	"github.com/mmdatafocus/intake_backend/messages"
	"github.com/mmdatafocus/intake_backend/utils"
	"github.com/mmdatafocus/intake_backend/workflow"
)

// abortWithError maps a workflow error to a status and JSON body. FERB
// response bodies are passed through untouched under "body".
func abortWithError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	var apiErr *ferb.APIError
	switch {
	case errors.Is(err, utils.ErrSessionNotFound), errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrReadOnly),
		errors.Is(err, workflow.ErrNotAttachable),
		errors.Is(err, config.ErrLockNotObtained):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &validationErrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "fields": utils.ProcessValidationErrors(err)})
	case errors.Is(err, messages.ErrUnknownKind), errors.Is(err, messages.ErrInvalidPayload):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &apiErr):
		status := apiErr.Status
		if status < 400 || status >= 500 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": "ferb request failed", "body": ferb.Payload(err).Body})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
	c.Abort()
}
