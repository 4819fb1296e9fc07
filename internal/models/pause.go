package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrawPause blocks draw generation for a calendar date. A pause with a zero
// TemplateID is a global holiday; otherwise it applies to one game template.
type DrawPause struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TemplateID primitive.ObjectID `bson:"templateId,omitempty" json:"templateId,omitempty"`
	Date       time.Time          `bson:"date" json:"date"` // Start of day
	Reason     string             `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedBy  string             `bson:"createdBy" json:"createdBy"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
