package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/intake_backend/session"
	"github.com/mmdatafocus/intake_backend/workflow"
)

// RegisterRoutes mounts the session API on r. Authentication middleware
// is expected to run before these routes.
func RegisterRoutes(r *gin.RouterGroup, reg *session.Registry, svc *workflow.Service, audit AuditLister, revoke func(token string) error) {
	r.POST("/screenings", CreateScreeningHandler(reg, svc))
	r.POST("/screenings/:id/sessions", OpenScreeningHandler(reg, svc))
	r.GET("/screenings/:id/audit", AuditHandler(audit))

	r.POST("/logout", LogoutHandler(reg, revoke))

	r.GET("/sessions/:sid", GetSessionHandler(reg))
	r.DELETE("/sessions/:sid", CloseSessionHandler(reg))
	r.POST("/sessions/:sid/messages", DispatchHandler(reg))
	r.POST("/sessions/:sid/cards/:card/save", SaveCardHandler(reg, svc))
	r.POST("/sessions/:sid/submit", SubmitHandler(reg, svc))
	r.DELETE("/sessions/:sid/participants/:pid", RemoveParticipantHandler(reg, svc))
	r.POST("/sessions/:sid/relationships/attach", AttachHandler(reg, svc))
	r.GET("/sessions/:sid/allegations", AllegationsHandler(reg))
	r.GET("/sessions/:sid/participants", ParticipantsHandler(reg))
	r.GET("/sessions/:sid/relationships", RelationshipsHandler(reg))
	r.GET("/sessions/:sid/errors", ErrorsHandler(reg))
}
