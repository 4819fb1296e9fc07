package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lottopantera/draw-engine/internal/models"
	"github.com/lottopantera/draw-engine/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure SystemConfigServiceImpl implements SystemConfigService
var _ SystemConfigService = (*SystemConfigServiceImpl)(nil)

// SystemConfigServiceImpl exposes runtime system switches stored in the
// database, currently the emergency stop suspending generation and the close
// scan.
type SystemConfigServiceImpl struct {
	configRepo repositories.SystemConfigRepository
}

// NewSystemConfigService creates a new SystemConfigServiceImpl
func NewSystemConfigService(configRepo repositories.SystemConfigRepository) *SystemConfigServiceImpl {
	return &SystemConfigServiceImpl{configRepo: configRepo}
}

// IsEmergencyStop reports whether the emergency stop flag is set. A missing
// key means the system is running normally.
func (s *SystemConfigServiceImpl) IsEmergencyStop(ctx context.Context) (bool, error) {
	cfg, err := s.configRepo.FindByKey(ctx, models.ConfigKeyEmergencyStop)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read emergency stop flag: %w", err)
	}
	stopped, ok := cfg.Value.(bool)
	if !ok {
		slog.Warn("Emergency stop flag has unexpected type, treating as off", "valueType", fmt.Sprintf("%T", cfg.Value))
		return false, nil
	}
	return stopped, nil
}

// SetEmergencyStop sets or clears the emergency stop flag
func (s *SystemConfigServiceImpl) SetEmergencyStop(ctx context.Context, stopped bool, actor string) error {
	description := fmt.Sprintf("Emergency stop toggled by %s", actor)
	if err := s.configRepo.UpsertByKey(ctx, models.ConfigKeyEmergencyStop, stopped, description); err != nil {
		return fmt.Errorf("failed to set emergency stop flag: %w", err)
	}
	slog.Warn("Emergency stop flag changed", "stopped", stopped, "actor", actor)
	return nil
}
