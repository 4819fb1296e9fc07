package models

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SlugPattern is the required shape of a game template slug: lowercase,
// hyphen-separated, no other special characters.
var SlugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// GameTemplate is the reusable game definition draws are generated from.
// Templates are never deleted, only deactivated; the slug is globally unique
// and immutable once any draw references the template.
type GameTemplate struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	RangeSize   int                `bson:"rangeSize" json:"rangeSize"` // Winning numbers are in [0, rangeSize)
	Active      bool               `bson:"active" json:"active"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	DrawTimes   []string           `bson:"drawTimes" json:"drawTimes"` // Daily execution times, "HH:MM"
	CreatedBy   string             `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TemplateMetadata is the slice of template data handed to the result renderer
// on publish.
type TemplateMetadata struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	RangeSize int    `json:"rangeSize"`
}

// Metadata returns the renderer-facing view of the template.
func (t *GameTemplate) Metadata() TemplateMetadata {
	return TemplateMetadata{Name: t.Name, Slug: t.Slug, RangeSize: t.RangeSize}
}
