package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lottopantera/draw-engine/internal/models"
	"github.com/lottopantera/draw-engine/internal/repositories"
	"github.com/lottopantera/draw-engine/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure PauseServiceImpl implements PauseService
var _ PauseService = (*PauseServiceImpl)(nil)

// PauseServiceImpl manages the pause/holiday calendar consumed by the
// schedule generator.
type PauseServiceImpl struct {
	pauseRepo repositories.PauseRepository
}

// NewPauseService creates a new PauseServiceImpl
func NewPauseService(pauseRepo repositories.PauseRepository) *PauseServiceImpl {
	return &PauseServiceImpl{pauseRepo: pauseRepo}
}

// IsBlocked reports whether generation is blocked for a template on a date,
// either by a global holiday or a pause scoped to that template.
func (s *PauseServiceImpl) IsBlocked(ctx context.Context, templateID primitive.ObjectID, date time.Time) (bool, error) {
	pauses, err := s.pauseRepo.FindForDate(ctx, date)
	if err != nil {
		return false, fmt.Errorf("failed to load pauses: %w", err)
	}
	for _, pause := range pauses {
		if pause.TemplateID.IsZero() || pause.TemplateID == templateID {
			return true, nil
		}
	}
	return false, nil
}

// Create records a pause for a date; a zero templateID makes it a global
// holiday.
func (s *PauseServiceImpl) Create(ctx context.Context, templateID primitive.ObjectID, date time.Time, reason, actor string) (*models.DrawPause, error) {
	pause := &models.DrawPause{
		TemplateID: templateID,
		Date:       utils.StartOfDay(date),
		Reason:     reason,
		CreatedBy:  actor,
	}
	if err := s.pauseRepo.Create(ctx, pause); err != nil {
		return nil, fmt.Errorf("failed to create pause: %w", err)
	}
	slog.Info("Draw pause created", "date", pause.Date.Format("2006-01-02"), "templateId", templateID, "actor", actor)
	return pause, nil
}

// Delete removes a pause record
func (s *PauseServiceImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.pauseRepo.Delete(ctx, id)
}

// List lists all pause records
func (s *PauseServiceImpl) List(ctx context.Context) ([]*models.DrawPause, error) {
	return s.pauseRepo.FindAll(ctx)
}
