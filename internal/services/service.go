package services

import (
	"context"
	"time"

	"github.com/lottopantera/draw-engine/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateService defines the interface for game template registry operations
type TemplateService interface {
	Create(ctx context.Context, input TemplateCreateInput, actor string) (*models.GameTemplate, error)
	Update(ctx context.Context, id primitive.ObjectID, input TemplateUpdateInput, actor string) (*models.GameTemplate, error)
	Deactivate(ctx context.Context, id primitive.ObjectID, actor string) (*models.GameTemplate, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.GameTemplate, error)
	GetBySlug(ctx context.Context, slug string) (*models.GameTemplate, error)
	List(ctx context.Context) ([]*models.GameTemplate, error)
}

// TemplateCreateInput carries the fields for creating a game template
type TemplateCreateInput struct {
	Name        string
	Slug        string
	RangeSize   int
	Active      bool
	Description string
	DrawTimes   []string
}

// TemplateUpdateInput carries the partial fields for updating a template.
// Nil pointers leave the corresponding field untouched.
type TemplateUpdateInput struct {
	Name        *string
	Slug        *string
	RangeSize   *int
	Active      *bool
	Description *string
	DrawTimes   []string
}

// GeneratorService defines the interface for schedule generation
type GeneratorService interface {
	// GenerateForDate ensures a SCHEDULED draw exists for every slot of every
	// active template on the given calendar date. Idempotent: re-running
	// converges to the same end state.
	GenerateForDate(ctx context.Context, date time.Time, actor string) ([]*models.Draw, error)
}

// DrawService defines the interface for the draw lifecycle state machine
type DrawService interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error)
	GetByDate(ctx context.Context, date time.Time) ([]*models.Draw, error)
	GetByStatus(ctx context.Context, status models.DrawStatus) ([]*models.Draw, error)

	// Preselect records a candidate winning number on a SCHEDULED or CLOSED
	// draw, gated by the cutoff window.
	Preselect(ctx context.Context, id primitive.ObjectID, number, actor string) (*models.Draw, error)
	// ChangeWinner overwrites an existing winner any time before publication.
	ChangeWinner(ctx context.Context, id primitive.ObjectID, number, actor string) (*models.Draw, error)
	// Close transitions SCHEDULED -> CLOSED. Closing a CLOSED draw is a no-op.
	Close(ctx context.Context, id primitive.ObjectID, actor string) (*models.Draw, error)
	// Publish transitions CLOSED -> PUBLISHED, triggers the result renderer
	// and emits the published event.
	Publish(ctx context.Context, id primitive.ObjectID, actor string) (*models.Draw, error)
	// ScanAndClose closes every SCHEDULED draw due at now. Pure entry point
	// for the external timer driver; safe to run concurrently with itself
	// and with admin actions.
	ScanAndClose(ctx context.Context, now time.Time) (int, error)
}

// AuditService defines the interface for reading the audit log
type AuditService interface {
	GetBySubject(ctx context.Context, subjectID string, page, limit int) ([]*models.AuditEntry, error)
	GetByAction(ctx context.Context, action models.AuditAction, page, limit int) ([]*models.AuditEntry, error)
	List(ctx context.Context, page, limit int) ([]*models.AuditEntry, error)
}

// PauseService defines the interface for the draw pause / holiday calendar
type PauseService interface {
	DrawCalendar
	Create(ctx context.Context, templateID primitive.ObjectID, date time.Time, reason, actor string) (*models.DrawPause, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context) ([]*models.DrawPause, error)
}

// SystemConfigService defines the interface for runtime system switches
type SystemConfigService interface {
	IsEmergencyStop(ctx context.Context) (bool, error)
	SetEmergencyStop(ctx context.Context, stopped bool, actor string) error
}

// AuthService defines the interface for admin authentication
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	CreateAdmin(ctx context.Context, name, email, password, role string) (*models.AdminUser, error)
}

// --- Collaborator capability interfaces ---

// DrawCalendar answers whether draw generation is blocked for a template on a
// date (global holiday or per-game pause).
type DrawCalendar interface {
	IsBlocked(ctx context.Context, templateID primitive.ObjectID, date time.Time) (bool, error)
}

// EventPublisher receives every NotificationEvent the lifecycle emits.
// Implemented by broadcast.Broadcaster.
type EventPublisher interface {
	Publish(event models.NotificationEvent)
}

// ResultRenderer produces the result image for a published draw.
// Implemented by pkg/renderer.
type ResultRenderer interface {
	Render(ctx context.Context, drawID, winningNumber string, meta models.TemplateMetadata) (string, error)
}
