package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrawStatus represents the lifecycle state of a draw instance
type DrawStatus string

const (
	DrawStatusScheduled DrawStatus = "SCHEDULED"
	DrawStatusClosed    DrawStatus = "CLOSED"
	DrawStatusPublished DrawStatus = "PUBLISHED"
)

// Draw represents one scheduled occurrence of a game at a specific date/time.
// Instances are created by the schedule generator and owned by the lifecycle
// state machine afterwards. At most one instance exists per
// (template, date, time).
type Draw struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TemplateID     primitive.ObjectID `bson:"templateId" json:"templateId"`
	TemplateSlug   string             `bson:"templateSlug" json:"templateSlug"`
	TemplateName   string             `bson:"templateName" json:"templateName"`
	ScheduledAt    time.Time          `bson:"scheduledAt" json:"scheduledAt"`
	DrawTime       string             `bson:"drawTime" json:"drawTime"` // "HH:MM", matches the template slot
	Status         DrawStatus         `bson:"status" json:"status"`
	WinningNumber  string             `bson:"winningNumber,omitempty" json:"winningNumber,omitempty"` // Zero-padded, empty until set
	PreselectedAt  time.Time          `bson:"preselectedAt,omitempty" json:"preselectedAt,omitempty"`
	ClosedAt       time.Time          `bson:"closedAt,omitempty" json:"closedAt,omitempty"`
	PublishedAt    time.Time          `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	LastModifiedBy string             `bson:"lastModifiedBy" json:"lastModifiedBy"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasWinner reports whether a winning number is on record, preselected or
// confirmed.
func (d *Draw) HasWinner() bool {
	return d.WinningNumber != ""
}

// Snapshot returns the fields recorded in audit before/after snapshots.
func (d *Draw) Snapshot() map[string]interface{} {
	return map[string]interface{}{
		"status":        string(d.Status),
		"winningNumber": d.WinningNumber,
	}
}
