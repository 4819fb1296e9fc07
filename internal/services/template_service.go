package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lottopantera/draw-engine/internal/apperrors"
	"github.com/lottopantera/draw-engine/internal/models"
	"github.com/lottopantera/draw-engine/internal/repositories"
	"github.com/lottopantera/draw-engine/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure TemplateServiceImpl implements TemplateService
var _ TemplateService = (*TemplateServiceImpl)(nil)

// TemplateServiceImpl handles the game template registry
type TemplateServiceImpl struct {
	templateRepo repositories.TemplateRepository
	drawRepo     repositories.DrawRepository
	auditRepo    repositories.AuditRepository
}

// NewTemplateService creates a new TemplateServiceImpl
func NewTemplateService(
	templateRepo repositories.TemplateRepository,
	drawRepo repositories.DrawRepository,
	auditRepo repositories.AuditRepository,
) *TemplateServiceImpl {
	return &TemplateServiceImpl{
		templateRepo: templateRepo,
		drawRepo:     drawRepo,
		auditRepo:    auditRepo,
	}
}

// Create validates and registers a new game template
func (s *TemplateServiceImpl) Create(ctx context.Context, input TemplateCreateInput, actor string) (*models.GameTemplate, error) {
	if err := validateTemplateFields(input.Name, input.Slug, input.RangeSize, input.DrawTimes); err != nil {
		return nil, err
	}

	// Slug must be globally unique
	existing, err := s.templateRepo.FindBySlug(ctx, input.Slug)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		slog.Error("Failed to check slug uniqueness", "slug", input.Slug, "error", err)
		return nil, fmt.Errorf("failed to check slug uniqueness: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("slug %q already in use: %w", input.Slug, apperrors.ErrConflict)
	}

	template := &models.GameTemplate{
		Name:        input.Name,
		Slug:        input.Slug,
		RangeSize:   input.RangeSize,
		Active:      input.Active,
		Description: input.Description,
		DrawTimes:   input.DrawTimes,
		CreatedBy:   actor,
	}
	if err := s.templateRepo.Create(ctx, template); err != nil {
		slog.Error("Failed to create template", "slug", input.Slug, "error", err)
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	s.audit(ctx, template, models.AuditActionTemplateCreate, actor, nil)
	slog.Info("Template created", "templateId", template.ID, "slug", template.Slug, "actor", actor)
	return template, nil
}

// Update applies a partial update under the same validation rules as Create
func (s *TemplateServiceImpl) Update(ctx context.Context, id primitive.ObjectID, input TemplateUpdateInput, actor string) (*models.GameTemplate, error) {
	template, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := templateSnapshot(template)

	if input.Slug != nil && *input.Slug != template.Slug {
		// Immutable once any draw references the template
		refs, err := s.drawRepo.CountByTemplate(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to count template references: %w", err)
		}
		if refs > 0 {
			return nil, apperrors.NewValidation("slug", "slug is immutable once draws reference the template")
		}
		other, err := s.templateRepo.FindBySlug(ctx, *input.Slug)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("failed to check slug uniqueness: %w", err)
		}
		if other != nil && other.ID != id {
			return nil, fmt.Errorf("slug %q already in use: %w", *input.Slug, apperrors.ErrConflict)
		}
		template.Slug = *input.Slug
	}
	if input.Name != nil {
		template.Name = *input.Name
	}
	if input.RangeSize != nil {
		template.RangeSize = *input.RangeSize
	}
	if input.Active != nil {
		template.Active = *input.Active
	}
	if input.Description != nil {
		template.Description = *input.Description
	}
	if input.DrawTimes != nil {
		template.DrawTimes = input.DrawTimes
	}

	if err := validateTemplateFields(template.Name, template.Slug, template.RangeSize, template.DrawTimes); err != nil {
		return nil, err
	}

	if err := s.templateRepo.Update(ctx, template); err != nil {
		slog.Error("Failed to update template", "templateId", id, "error", err)
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	s.audit(ctx, template, models.AuditActionTemplateUpdate, actor, before)
	slog.Info("Template updated", "templateId", id, "actor", actor)
	return template, nil
}

// Deactivate clears the active flag. Existing draw instances are untouched.
func (s *TemplateServiceImpl) Deactivate(ctx context.Context, id primitive.ObjectID, actor string) (*models.GameTemplate, error) {
	template, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !template.Active {
		return template, nil
	}
	before := templateSnapshot(template)

	template.Active = false
	if err := s.templateRepo.Update(ctx, template); err != nil {
		slog.Error("Failed to deactivate template", "templateId", id, "error", err)
		return nil, fmt.Errorf("failed to deactivate template: %w", err)
	}

	s.audit(ctx, template, models.AuditActionTemplateDeactivate, actor, before)
	slog.Info("Template deactivated", "templateId", id, "slug", template.Slug, "actor", actor)
	return template, nil
}

// GetByID retrieves a template by id
func (s *TemplateServiceImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*models.GameTemplate, error) {
	return s.findByID(ctx, id)
}

// GetBySlug retrieves a template by slug
func (s *TemplateServiceImpl) GetBySlug(ctx context.Context, slug string) (*models.GameTemplate, error) {
	template, err := s.templateRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("template %q: %w", slug, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve template: %w", err)
	}
	return template, nil
}

// List retrieves all templates
func (s *TemplateServiceImpl) List(ctx context.Context) ([]*models.GameTemplate, error) {
	return s.templateRepo.FindAll(ctx)
}

func (s *TemplateServiceImpl) findByID(ctx context.Context, id primitive.ObjectID) (*models.GameTemplate, error) {
	template, err := s.templateRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("template %s: %w", id.Hex(), apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve template: %w", err)
	}
	return template, nil
}

func (s *TemplateServiceImpl) audit(ctx context.Context, template *models.GameTemplate, action models.AuditAction, actor string, before map[string]interface{}) {
	entry := &models.AuditEntry{
		SubjectID:   template.ID.Hex(),
		SubjectKind: models.AuditSubjectTemplate,
		Action:      action,
		Actor:       actor,
		Before:      before,
		After:       templateSnapshot(template),
	}
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		slog.Error("Failed to append template audit entry", "templateId", template.ID, "action", action, "error", err)
	}
}

func templateSnapshot(t *models.GameTemplate) map[string]interface{} {
	return map[string]interface{}{
		"name":      t.Name,
		"slug":      t.Slug,
		"rangeSize": t.RangeSize,
		"active":    t.Active,
		"drawTimes": append([]string(nil), t.DrawTimes...),
	}
}

func validateTemplateFields(name, slug string, rangeSize int, drawTimes []string) error {
	if name == "" {
		return apperrors.NewValidation("name", "must not be empty")
	}
	if slug == "" {
		return apperrors.NewValidation("slug", "must not be empty")
	}
	if !models.SlugPattern.MatchString(slug) {
		return apperrors.NewValidation("slug", "must be lowercase hyphen-separated (a-z, 0-9, -)")
	}
	if rangeSize <= 0 {
		return apperrors.NewValidation("rangeSize", "must be greater than zero")
	}
	for _, slot := range drawTimes {
		if _, _, err := utils.ParseDrawTime(slot); err != nil {
			return apperrors.NewValidation("drawTimes", err.Error())
		}
	}
	return nil
}
