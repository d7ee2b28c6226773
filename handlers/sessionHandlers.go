package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/intake_backend/config"
	"github.com/mmdatafocus/intake_backend/messages"
	"github.com/mmdatafocus/intake_backend/models"
	"github.com/mmdatafocus/intake_backend/session"
	"github.com/mmdatafocus/intake_backend/utils"
	"github.com/mmdatafocus/intake_backend/workflow"
)

type sessionResponse struct {
	SessionId string `json:"session_id"`
	State     any    `json:"state"`
}

func CreateScreeningHandler(reg *session.Registry, svc *workflow.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		owner, _ := utils.GetUsernameFromContext(ctx)
		sess := reg.Create(owner)
		ctx = utils.SetSessionIdInContext(ctx, sess.ID)

		if _, err := svc.CreateScreening(ctx, sess.Store); err != nil {
			_ = reg.Close(sess.ID, owner)
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, sessionResponse{SessionId: sess.ID, State: sess.Store.State()})
	}
}

func OpenScreeningHandler(reg *session.Registry, svc *workflow.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		owner, _ := utils.GetUsernameFromContext(ctx)
		sess := reg.Create(owner)
		ctx = utils.SetSessionIdInContext(ctx, sess.ID)

		if err := svc.OpenScreening(ctx, sess.Store, c.Param("id")); err != nil {
			_ = reg.Close(sess.ID, owner)
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, sessionResponse{SessionId: sess.ID, State: sess.Store.State()})
	}
}

// withSession resolves :sid for the calling worker.
func withSession(reg *session.Registry, c *gin.Context) (*session.Session, bool) {
	owner, _ := utils.GetUsernameFromContext(c.Request.Context())
	sess, err := reg.Get(c.Param("sid"), owner)
	if err != nil {
		abortWithError(c, err)
		return nil, false
	}
	c.Request = c.Request.WithContext(utils.SetSessionIdInContext(c.Request.Context(), sess.ID))
	return sess, true
}

func GetSessionHandler(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := withSession(reg, c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, sessionResponse{SessionId: sess.ID, State: sess.Store.State()})
	}
}

func CloseSessionHandler(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, _ := utils.GetUsernameFromContext(c.Request.Context())
		if err := reg.Close(c.Param("sid"), owner); err != nil {
			abortWithError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// LogoutHandler closes every session of the worker and revokes the intake
// token the request came with.
func LogoutHandler(reg *session.Registry, revoke func(token string) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		owner, _ := utils.GetUsernameFromContext(ctx)
		closed := reg.CloseOwner(owner)
		if token, ok := utils.GetTokenFromContext(ctx); ok && token != "" && revoke != nil {
			if err := revoke(token); err != nil {
				config.LogError(config.GetLogger(), "sessionHandlers.go", "LogoutHandler", "revoke token", nil, err)
				c.JSON(http.StatusBadGateway, gin.H{"error": "could not revoke token"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"closed_sessions": closed})
	}
}

// DispatchHandler applies one UI message. Completion kinds cannot be sent.
func DispatchHandler(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := withSession(reg, c)
		if !ok {
			return
		}
		var env messages.Envelope
		if err := c.ShouldBindJSON(&env); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		msg, err := messages.Decode(env)
		if err != nil {
			abortWithError(c, err)
			return
		}
		state := sess.Store.Dispatch(msg)
		c.JSON(http.StatusOK, sessionResponse{SessionId: sess.ID, State: state})
	}
}

func SaveCardHandler(reg *session.Registry, svc *workflow.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := withSession(reg, c)
		if !ok {
			return
		}
		card := models.Card(c.Param("card"))
		if !card.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown card"})
			return
		}
		if err := svc.SaveCard(c.Request.Context(), sess.Store, card); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, sessionResponse{SessionId: sess.ID, State: sess.Store.State()})
	}
}

func SubmitHandler(reg *session.Registry, svc *workflow.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := withSession(reg, c)
		if !ok {
			return
		}
		if err := svc.SubmitScreening(c.Request.Context(), sess.Store); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, sessionResponse{SessionId: sess.ID, State: sess.Store.State()})
	}
}

type removalResponse struct {
	ParticipantId string                                  `json:"participant_id"`
	Refreshed     map[models.Operation]bool               `json:"refreshed"`
	Errors        map[models.Operation]models.ErrorPayload `json:"errors"`
}

func RemoveParticipantHandler(reg *session.Registry, svc *workflow.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := withSession(reg, c)
		if !ok {
			return
		}
		result, err := svc.RemoveParticipant(c.Request.Context(), sess.Store, c.Param("pid"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, removalResponse{
			ParticipantId: result.ParticipantID,
			Refreshed: map[models.Operation]bool{
				models.OperationFetch:         result.ScreeningErr == nil,
				models.OperationRelationships: result.RelationshipsErr == nil,
				models.OperationHistory:       result.HistoryErr == nil,
			},
			Errors: sess.Store.State().Errors,
		})
	}
}

type attachRequest struct {
	LegacyId string `json:"legacy_id" binding:"required"`
}

func AttachHandler(reg *session.Registry, svc *workflow.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := withSession(reg, c)
		if !ok {
			return
		}
		var req attachRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "legacy_id is required"})
			return
		}
		if err := svc.AttachRelationship(c.Request.Context(), sess.Store, req.LegacyId); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"people": sess.Store.State().People()})
	}
}

func AllegationsHandler(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := withSession(reg, c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, sess.Store.State().Allegations())
	}
}

func RelationshipsHandler(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := withSession(reg, c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"people": sess.Store.State().People()})
	}
}

func ParticipantsHandler(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := withSession(reg, c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"participants": sess.Store.State().Participants()})
	}
}

func ErrorsHandler(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := withSession(reg, c)
		if !ok {
			return
		}
		state := sess.Store.State()
		c.JSON(http.StatusOK, gin.H{
			"errors":       state.Errors,
			"field_errors": state.VisibleErrors(time.Now()),
		})
	}
}
