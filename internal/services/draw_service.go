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

// Compile-time check to ensure DrawServiceImpl implements DrawService
var _ DrawService = (*DrawServiceImpl)(nil)

// DrawServiceImpl owns the draw lifecycle state machine. Every state-affecting
// operation on a draw runs under that draw's exclusive section; operations on
// different draws proceed in parallel. The audit append completes before the
// state change is persisted, and the notification event is emitted before the
// operation returns.
type DrawServiceImpl struct {
	drawRepo     repositories.DrawRepository
	templateRepo repositories.TemplateRepository
	auditRepo    repositories.AuditRepository
	publisher    EventPublisher
	renderer     ResultRenderer
	systemConfig SystemConfigService

	locks         *utils.LockMap
	cutoff        time.Duration
	renderTimeout time.Duration
	now           func() time.Time
}

// NewDrawService creates a new DrawServiceImpl
func NewDrawService(
	drawRepo repositories.DrawRepository,
	templateRepo repositories.TemplateRepository,
	auditRepo repositories.AuditRepository,
	publisher EventPublisher,
	renderer ResultRenderer,
	systemConfig SystemConfigService,
	cutoff time.Duration,
	renderTimeout time.Duration,
) *DrawServiceImpl {
	return &DrawServiceImpl{
		drawRepo:      drawRepo,
		templateRepo:  templateRepo,
		auditRepo:     auditRepo,
		publisher:     publisher,
		renderer:      renderer,
		systemConfig:  systemConfig,
		locks:         utils.NewLockMap(),
		cutoff:        cutoff,
		renderTimeout: renderTimeout,
		now:           time.Now,
	}
}

// GetByID retrieves a draw by id
func (s *DrawServiceImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error) {
	return s.findByID(ctx, id)
}

// GetByDate retrieves all draws scheduled on a calendar day
func (s *DrawServiceImpl) GetByDate(ctx context.Context, date time.Time) ([]*models.Draw, error) {
	return s.drawRepo.FindByDate(ctx, date)
}

// GetByStatus retrieves draws by lifecycle status
func (s *DrawServiceImpl) GetByStatus(ctx context.Context, status models.DrawStatus) ([]*models.Draw, error) {
	return s.drawRepo.FindByStatus(ctx, status)
}

// Preselect records a candidate winning number on a SCHEDULED or CLOSED draw.
// New preselections are rejected once the current time is within the cutoff
// window of the scheduled execution; rejections record nothing.
func (s *DrawServiceImpl) Preselect(ctx context.Context, id primitive.ObjectID, number, actor string) (*models.Draw, error) {
	s.locks.Lock(id.Hex())
	defer s.locks.Unlock(id.Hex())

	draw, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if draw.Status == models.DrawStatusPublished {
		return nil, fmt.Errorf("draw %s is published: %w", id.Hex(), apperrors.ErrState)
	}

	// Strictly more than the cutoff window before the scheduled time
	if !s.now().Before(draw.ScheduledAt.Add(-s.cutoff)) {
		return nil, fmt.Errorf("preselection for draw %s rejected: %w", id.Hex(), apperrors.ErrCutoff)
	}

	formatted, err := s.formatNumber(ctx, draw, number)
	if err != nil {
		return nil, err
	}

	before := draw.Snapshot()
	draw.WinningNumber = formatted
	draw.PreselectedAt = s.now()
	draw.LastModifiedBy = actor

	if err := s.commit(ctx, draw, models.AuditActionWinnerPreselect, actor, before); err != nil {
		return nil, err
	}
	s.emit(draw, models.EventWinnerPreselected)

	slog.Info("Winner preselected", "drawId", id, "number", formatted, "actor", actor)
	return draw, nil
}

// ChangeWinner overwrites an existing winner, preselected or confirmed, any
// time before the draw is published.
func (s *DrawServiceImpl) ChangeWinner(ctx context.Context, id primitive.ObjectID, number, actor string) (*models.Draw, error) {
	s.locks.Lock(id.Hex())
	defer s.locks.Unlock(id.Hex())

	draw, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if draw.Status == models.DrawStatusPublished {
		return nil, fmt.Errorf("draw %s is published: %w", id.Hex(), apperrors.ErrState)
	}
	if !draw.HasWinner() {
		return nil, apperrors.NewValidation("number", "no winner on record to change; preselect first")
	}

	formatted, err := s.formatNumber(ctx, draw, number)
	if err != nil {
		return nil, err
	}

	before := draw.Snapshot()
	draw.WinningNumber = formatted
	draw.LastModifiedBy = actor

	if err := s.commit(ctx, draw, models.AuditActionWinnerChange, actor, before); err != nil {
		return nil, err
	}
	s.emit(draw, models.EventWinnerChanged)

	slog.Info("Winner changed", "drawId", id, "number", formatted, "actor", actor)
	return draw, nil
}

// Close transitions a SCHEDULED draw to CLOSED. Closing an already-closed
// draw is a no-op returning the current state; a preselected winner, if any,
// is carried over untouched.
func (s *DrawServiceImpl) Close(ctx context.Context, id primitive.ObjectID, actor string) (*models.Draw, error) {
	s.locks.Lock(id.Hex())
	defer s.locks.Unlock(id.Hex())

	draw, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch draw.Status {
	case models.DrawStatusClosed:
		return draw, nil
	case models.DrawStatusPublished:
		return nil, fmt.Errorf("draw %s is published: %w", id.Hex(), apperrors.ErrState)
	}

	before := draw.Snapshot()
	draw.Status = models.DrawStatusClosed
	draw.ClosedAt = s.now()
	draw.LastModifiedBy = actor

	if err := s.commit(ctx, draw, models.AuditActionDrawClose, actor, before); err != nil {
		return nil, err
	}
	s.emit(draw, models.EventStateChanged)

	slog.Info("Draw closed", "drawId", id, "actor", actor)
	return draw, nil
}

// Publish transitions a CLOSED draw to PUBLISHED using whatever winner is on
// record, triggers the result renderer asynchronously and emits the published
// event. Renderer failure never rolls the transition back.
func (s *DrawServiceImpl) Publish(ctx context.Context, id primitive.ObjectID, actor string) (*models.Draw, error) {
	s.locks.Lock(id.Hex())
	defer s.locks.Unlock(id.Hex())

	draw, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch draw.Status {
	case models.DrawStatusPublished:
		return nil, fmt.Errorf("draw %s is already published: %w", id.Hex(), apperrors.ErrState)
	case models.DrawStatusScheduled:
		return nil, fmt.Errorf("draw %s is not closed: %w", id.Hex(), apperrors.ErrState)
	}
	if !draw.HasWinner() {
		return nil, apperrors.NewValidation("winningNumber", "cannot publish without a winner on record")
	}

	template, err := s.templateRepo.FindByID(ctx, draw.TemplateID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to load template for publish: %w", err)
	}

	before := draw.Snapshot()
	draw.Status = models.DrawStatusPublished
	draw.PublishedAt = s.now()
	draw.LastModifiedBy = actor

	if err := s.commit(ctx, draw, models.AuditActionDrawPublish, actor, before); err != nil {
		return nil, err
	}
	s.emit(draw, models.EventPublished)

	if template != nil {
		go s.render(draw, template.Metadata())
	} else {
		slog.Error("Template missing for published draw, render skipped", "drawId", id, "templateId", draw.TemplateID)
	}

	slog.Info("Draw published", "drawId", id, "number", draw.WinningNumber, "actor", actor)
	return draw, nil
}

// ScanAndClose closes every SCHEDULED draw whose scheduled time has reached
// now. Invoked on a cadence by the external timer driver; per-draw locking
// makes it safe against concurrent scans and admin closes.
func (s *DrawServiceImpl) ScanAndClose(ctx context.Context, now time.Time) (int, error) {
	stopped, err := s.systemConfig.IsEmergencyStop(ctx)
	if err != nil {
		slog.Warn("Failed to read emergency stop flag, continuing scan", "error", err)
	} else if stopped {
		return 0, nil
	}

	var due []*models.Draw
	err = withRetry(ctx, func() error {
		var ferr error
		due, ferr = s.drawRepo.FindScheduledDue(ctx, now)
		return ferr
	})
	if err != nil {
		return 0, fmt.Errorf("close scan failed to list due draws: %w", err)
	}

	closed := 0
	for _, draw := range due {
		if _, err := s.Close(ctx, draw.ID, "system"); err != nil {
			// A draw may legitimately have been published between the listing
			// and the close; anything else is logged and the scan moves on.
			if errors.Is(err, apperrors.ErrState) {
				continue
			}
			slog.Error("Close scan failed for draw", "drawId", draw.ID, "error", err)
			continue
		}
		closed++
	}

	if closed > 0 {
		slog.Info("Close scan finished", "due", len(due), "closed", closed)
	}
	return closed, nil
}

// --- internals ---

func (s *DrawServiceImpl) findByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error) {
	draw, err := s.drawRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("draw %s: %w", id.Hex(), apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve draw: %w", err)
	}
	return draw, nil
}

func (s *DrawServiceImpl) formatNumber(ctx context.Context, draw *models.Draw, number string) (string, error) {
	template, err := s.templateRepo.FindByID(ctx, draw.TemplateID)
	if err != nil {
		return "", fmt.Errorf("failed to load template for number validation: %w", err)
	}
	formatted, err := utils.FormatWinningNumber(number, template.RangeSize)
	if err != nil {
		return "", apperrors.NewValidation("number", err.Error())
	}
	return formatted, nil
}

// commit appends the audit entry and then persists the draw. The audit write
// is durable before the state change becomes visible to other readers.
func (s *DrawServiceImpl) commit(ctx context.Context, draw *models.Draw, action models.AuditAction, actor string, before map[string]interface{}) error {
	entry := &models.AuditEntry{
		SubjectID:   draw.ID.Hex(),
		SubjectKind: models.AuditSubjectDraw,
		Action:      action,
		Actor:       actor,
		Before:      before,
		After:       draw.Snapshot(),
	}
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to append audit entry for %s: %w", action, err)
	}
	if err := s.drawRepo.Update(ctx, draw); err != nil {
		return fmt.Errorf("failed to persist draw update: %w", err)
	}
	return nil
}

func (s *DrawServiceImpl) emit(draw *models.Draw, kind models.EventKind) {
	snapshot := *draw
	s.publisher.Publish(models.NotificationEvent{
		DrawID:    draw.ID.Hex(),
		Kind:      kind,
		Payload:   &snapshot,
		EmittedAt: s.now(),
	})
}

func (s *DrawServiceImpl) render(draw *models.Draw, meta models.TemplateMetadata) {
	ctx, cancel := context.WithTimeout(context.Background(), s.renderTimeout)
	defer cancel()

	handle, err := s.renderer.Render(ctx, draw.ID.Hex(), draw.WinningNumber, meta)
	if err != nil {
		slog.Error("Result render failed", "drawId", draw.ID, "error", err)
		return
	}
	slog.Info("Result image rendered", "drawId", draw.ID, "image", handle)
}
