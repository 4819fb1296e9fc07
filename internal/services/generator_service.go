package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lottopantera/draw-engine/internal/apperrors"
	"github.com/lottopantera/draw-engine/internal/models"
	"github.com/lottopantera/draw-engine/internal/repositories"
	"github.com/lottopantera/draw-engine/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure GeneratorServiceImpl implements GeneratorService
var _ GeneratorService = (*GeneratorServiceImpl)(nil)

// GeneratorServiceImpl expands active game templates into concrete draw
// instances for a calendar date.
type GeneratorServiceImpl struct {
	templateRepo repositories.TemplateRepository
	drawRepo     repositories.DrawRepository
	auditRepo    repositories.AuditRepository
	calendar     DrawCalendar
	systemConfig SystemConfigService

	// Per-date exclusive sections so concurrent generate calls for the same
	// date still converge to one instance per slot.
	dateLocks *utils.LockMap
}

// NewGeneratorService creates a new GeneratorServiceImpl
func NewGeneratorService(
	templateRepo repositories.TemplateRepository,
	drawRepo repositories.DrawRepository,
	auditRepo repositories.AuditRepository,
	calendar DrawCalendar,
	systemConfig SystemConfigService,
) *GeneratorServiceImpl {
	return &GeneratorServiceImpl{
		templateRepo: templateRepo,
		drawRepo:     drawRepo,
		auditRepo:    auditRepo,
		calendar:     calendar,
		systemConfig: systemConfig,
		dateLocks:    utils.NewLockMap(),
	}
}

// GenerateForDate ensures a SCHEDULED draw exists for every (template, time)
// slot of every active template on the given date. Already-existing slots are
// left untouched, so repeated and concurrent calls are idempotent. Blocked
// dates (pause or holiday) are skipped per template.
func (s *GeneratorServiceImpl) GenerateForDate(ctx context.Context, date time.Time, actor string) ([]*models.Draw, error) {
	stopped, err := s.systemConfig.IsEmergencyStop(ctx)
	if err != nil {
		slog.Warn("Failed to read emergency stop flag, continuing", "error", err)
	} else if stopped {
		slog.Warn("Emergency stop active, draw generation suspended", "date", date.Format("2006-01-02"))
		return []*models.Draw{}, nil
	}

	dateKey := date.Format("2006-01-02")
	s.dateLocks.Lock(dateKey)
	defer s.dateLocks.Unlock(dateKey)

	var templates []*models.GameTemplate
	err = withRetry(ctx, func() error {
		var ferr error
		templates, ferr = s.templateRepo.FindActive(ctx)
		return ferr
	})
	if err != nil {
		slog.Error("Failed to load active templates", "date", dateKey, "error", err)
		return nil, &apperrors.GenerationError{Date: date, Err: fmt.Errorf("failed to load active templates: %w", err)}
	}

	created := []*models.Draw{}
	skipped := 0
	for _, template := range templates {
		blocked, err := s.calendar.IsBlocked(ctx, template.ID, date)
		if err != nil {
			return created, &apperrors.GenerationError{Date: date, Err: fmt.Errorf("calendar lookup failed for %s: %w", template.Slug, err)}
		}
		if blocked {
			slog.Info("Template paused for date, skipping", "slug", template.Slug, "date", dateKey)
			skipped += len(template.DrawTimes)
			continue
		}

		for _, slot := range template.DrawTimes {
			scheduledAt, err := utils.AtTime(date, slot)
			if err != nil {
				slog.Error("Template has invalid draw time, skipping slot", "slug", template.Slug, "slot", slot, "error", err)
				continue
			}

			existing, err := s.drawRepo.FindBySlot(ctx, template.ID, date, slot)
			if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
				return created, &apperrors.GenerationError{Date: date, Err: fmt.Errorf("slot lookup failed: %w", err)}
			}
			if existing != nil {
				skipped++
				continue
			}

			draw := &models.Draw{
				ID:             primitive.NewObjectID(),
				TemplateID:     template.ID,
				TemplateSlug:   template.Slug,
				TemplateName:   template.Name,
				ScheduledAt:    scheduledAt,
				DrawTime:       slot,
				Status:         models.DrawStatusScheduled,
				LastModifiedBy: actor,
			}

			// Audit first: the entry must be durable before the draw becomes
			// visible. An append failure aborts the slot; the call is safe to
			// retry.
			entry := &models.AuditEntry{
				SubjectID:   draw.ID.Hex(),
				SubjectKind: models.AuditSubjectDraw,
				Action:      models.AuditActionScheduleGenerate,
				Actor:       actor,
				After:       draw.Snapshot(),
			}
			if err := s.auditRepo.Append(ctx, entry); err != nil {
				return created, &apperrors.GenerationError{Date: date, Err: fmt.Errorf("failed to append audit entry for %s %s: %w", template.Slug, slot, err)}
			}
			if err := s.drawRepo.Create(ctx, draw); err != nil {
				return created, &apperrors.GenerationError{Date: date, Err: fmt.Errorf("failed to create draw for %s %s: %w", template.Slug, slot, err)}
			}
			created = append(created, draw)
		}
	}

	slog.Info("Draw generation finished", "date", dateKey, "created", len(created), "skipped", skipped, "actor", actor)
	return created, nil
}
