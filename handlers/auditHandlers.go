package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/intake_backend/models"
	"github.com/mmdatafocus/intake_backend/utils"
)

type AuditLister interface {
	List(ctx context.Context, screeningId string) ([]*models.AuditEntry, error)
}

func AuditHandler(audit AuditLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := audit.List(c.Request.Context(), c.Param("id"))
		if errors.Is(err, utils.ErrorRecordNotFound) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "audit trail is not enabled"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"entries": entries})
	}
}
