package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/intake_backend/config"
	"github.com/mmdatafocus/intake_backend/utils"
	"gorm.io/gorm"
)

const (
	AuditActionCreate            = "create"
	AuditActionSave              = "save"
	AuditActionSubmit            = "submit"
	AuditActionRemoveParticipant = "remove"
	AuditActionAttach            = "attach"

	AuditOutcomeSuccess = "success"
	AuditOutcomeFailure = "failure"
)

// AuditEntry records one remote mutation a worker made to a screening.
type AuditEntry struct {
	ID            int       `gorm:"primary_key" json:"id"`
	ScreeningId   string    `gorm:"index;size:64;not null" json:"screening_id"`
	ActionType    string    `gorm:"size:16;not null" json:"action_type"`
	Target        string    `gorm:"size:64" json:"target"`
	Outcome       string    `gorm:"size:16;not null" json:"outcome"`
	Detail        string    `gorm:"type:text" json:"detail"`
	Username      string    `gorm:"index;size:100" json:"username"`
	CorrelationId string    `gorm:"size:64" json:"correlation_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type NewAuditEntry struct {
	ScreeningId string
	ActionType  string
	Target      string
	Outcome     string
	Detail      any
}

// GormAuditRecorder writes audit entries to the configured database.
// With no database connected every call is a no-op.
type GormAuditRecorder struct {
	db func() *gorm.DB
}

func NewGormAuditRecorder() *GormAuditRecorder {
	return &GormAuditRecorder{db: config.GetDB}
}

func (r *GormAuditRecorder) Record(ctx context.Context, input NewAuditEntry) error {
	db := r.db()
	if db == nil {
		return nil
	}
	if input.ScreeningId == "" {
		return errors.New("screening id is required")
	}
	username, _ := utils.GetUsernameFromContext(ctx)
	correlationId, _ := utils.GetCorrelationIdFromContext(ctx)

	detail := ""
	if input.Detail != nil {
		detail = utils.MarshalOrEmpty(input.Detail)
	}
	entry := AuditEntry{
		ScreeningId:   input.ScreeningId,
		ActionType:    input.ActionType,
		Target:        input.Target,
		Outcome:       input.Outcome,
		Detail:        detail,
		Username:      username,
		CorrelationId: correlationId,
	}
	return db.WithContext(ctx).Create(&entry).Error
}

// List returns the entries of a screening, newest first. Workers only see
// their own entries unless they are supervisors.
func (r *GormAuditRecorder) List(ctx context.Context, screeningId string) ([]*AuditEntry, error) {
	db := r.db()
	if db == nil {
		return nil, utils.ErrorRecordNotFound
	}
	var entries []*AuditEntry
	err := db.WithContext(ctx).
		Where("screening_id = ?", screeningId).
		Order("id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
