package repositories

import (
	"context"
	"time"

	"github.com/lottopantera/draw-engine/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateRepository defines the interface for game template data operations
type TemplateRepository interface {
	Create(ctx context.Context, template *models.GameTemplate) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.GameTemplate, error)
	FindBySlug(ctx context.Context, slug string) (*models.GameTemplate, error)
	FindAll(ctx context.Context) ([]*models.GameTemplate, error)
	FindActive(ctx context.Context) ([]*models.GameTemplate, error)
	Update(ctx context.Context, template *models.GameTemplate) error
}

// DrawRepository defines the interface for draw instance data operations
type DrawRepository interface {
	Create(ctx context.Context, draw *models.Draw) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error)
	// FindBySlot finds the instance for one (template, date, time) slot.
	FindBySlot(ctx context.Context, templateID primitive.ObjectID, date time.Time, drawTime string) (*models.Draw, error)
	FindByDate(ctx context.Context, date time.Time) ([]*models.Draw, error)
	FindByStatus(ctx context.Context, status models.DrawStatus) ([]*models.Draw, error)
	// FindScheduledDue lists SCHEDULED draws whose scheduled time has passed.
	FindScheduledDue(ctx context.Context, now time.Time) ([]*models.Draw, error)
	Update(ctx context.Context, draw *models.Draw) error
	CountByTemplate(ctx context.Context, templateID primitive.ObjectID) (int64, error)
}

// AuditRepository defines the interface for the append-only audit log
type AuditRepository interface {
	Append(ctx context.Context, entry *models.AuditEntry) error
	FindBySubject(ctx context.Context, subjectID string, page, limit int) ([]*models.AuditEntry, error)
	FindByAction(ctx context.Context, action models.AuditAction, page, limit int) ([]*models.AuditEntry, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.AuditEntry, error)
}

// PauseRepository defines the interface for draw pause / holiday records
type PauseRepository interface {
	Create(ctx context.Context, pause *models.DrawPause) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindAll(ctx context.Context) ([]*models.DrawPause, error)
	// FindForDate returns the pauses covering a calendar date, global and
	// template-scoped alike.
	FindForDate(ctx context.Context, date time.Time) ([]*models.DrawPause, error)
}

// SystemConfigRepository defines the interface for system configuration operations
type SystemConfigRepository interface {
	FindByKey(ctx context.Context, key string) (*models.SystemConfig, error)
	UpsertByKey(ctx context.Context, key string, value interface{}, description string) error
}

// AdminUserRepository defines the interface for admin user data operations
type AdminUserRepository interface {
	Create(ctx context.Context, adminUser *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}
