package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditAction enumerates the state-changing and winner-changing actions
// recorded in the audit log.
type AuditAction string

const (
	AuditActionScheduleGenerate   AuditAction = "schedule-generate"
	AuditActionWinnerPreselect    AuditAction = "winner-preselect"
	AuditActionWinnerChange       AuditAction = "winner-change"
	AuditActionDrawClose          AuditAction = "draw-close"
	AuditActionDrawPublish        AuditAction = "draw-publish"
	AuditActionTemplateCreate     AuditAction = "template-create"
	AuditActionTemplateUpdate     AuditAction = "template-update"
	AuditActionTemplateDeactivate AuditAction = "template-deactivate"
)

// AuditSubjectKind distinguishes what an entry's SubjectID refers to.
type AuditSubjectKind string

const (
	AuditSubjectDraw     AuditSubjectKind = "draw"
	AuditSubjectTemplate AuditSubjectKind = "template"
)

// AuditEntry is the append-only record of a single mutation, with actor and
// before/after snapshots. Entries are immutable once written.
type AuditEntry struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	SubjectID   string                 `bson:"subjectId" json:"subjectId"`
	SubjectKind AuditSubjectKind       `bson:"subjectKind" json:"subjectKind"`
	Action      AuditAction            `bson:"action" json:"action"`
	Actor       string                 `bson:"actor" json:"actor"`
	Before      map[string]interface{} `bson:"before,omitempty" json:"before,omitempty"`
	After       map[string]interface{} `bson:"after,omitempty" json:"after,omitempty"`
	CreatedAt   time.Time              `bson:"createdAt" json:"createdAt"`
}
