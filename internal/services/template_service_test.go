package services

import (
	"context"
	"testing"

	"github.com/lottopantera/draw-engine/internal/apperrors"
	"github.com/lottopantera/draw-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type templateFixture struct {
	service      *TemplateServiceImpl
	templateRepo *fakeTemplateRepo
	drawRepo     *fakeDrawRepo
	auditRepo    *fakeAuditRepo
}

func newTemplateFixture(t *testing.T) *templateFixture {
	t.Helper()
	templateRepo := newFakeTemplateRepo()
	drawRepo := newFakeDrawRepo()
	auditRepo := newFakeAuditRepo()
	return &templateFixture{
		service:      NewTemplateService(templateRepo, drawRepo, auditRepo),
		templateRepo: templateRepo,
		drawRepo:     drawRepo,
		auditRepo:    auditRepo,
	}
}

func validInput() TemplateCreateInput {
	return TemplateCreateInput{
		Name:      "Triple Caliente",
		Slug:      "triple-caliente",
		RangeSize: 1000,
		Active:    true,
		DrawTimes: []string{"13:00", "19:00"},
	}
}

func TestCreateTemplate(t *testing.T) {
	f := newTemplateFixture(t)

	template, err := f.service.Create(context.Background(), validInput(), "ana@example.com")
	require.NoError(t, err)
	assert.False(t, template.ID.IsZero())
	assert.Equal(t, "ana@example.com", template.CreatedBy)

	entries := f.auditRepo.byAction(models.AuditActionTemplateCreate)
	require.Len(t, entries, 1)
	assert.Equal(t, template.ID.Hex(), entries[0].SubjectID)
	assert.Equal(t, models.AuditSubjectTemplate, entries[0].SubjectKind)
}

func TestCreateTemplate_Validation(t *testing.T) {
	f := newTemplateFixture(t)

	cases := []struct {
		name   string
		mutate func(*TemplateCreateInput)
	}{
		{"empty name", func(in *TemplateCreateInput) { in.Name = "" }},
		{"empty slug", func(in *TemplateCreateInput) { in.Slug = "" }},
		{"uppercase slug", func(in *TemplateCreateInput) { in.Slug = "Triple-Caliente" }},
		{"slug with spaces", func(in *TemplateCreateInput) { in.Slug = "triple caliente" }},
		{"trailing hyphen", func(in *TemplateCreateInput) { in.Slug = "triple-" }},
		{"zero range", func(in *TemplateCreateInput) { in.RangeSize = 0 }},
		{"negative range", func(in *TemplateCreateInput) { in.RangeSize = -10 }},
		{"bad draw time", func(in *TemplateCreateInput) { in.DrawTimes = []string{"25:00"} }},
		{"garbage draw time", func(in *TemplateCreateInput) { in.DrawTimes = []string{"siete"} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			_, err := f.service.Create(context.Background(), input, "ana@example.com")
			assert.True(t, apperrors.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestCreateTemplate_DuplicateSlug(t *testing.T) {
	f := newTemplateFixture(t)

	_, err := f.service.Create(context.Background(), validInput(), "ana@example.com")
	require.NoError(t, err)

	input := validInput()
	input.Name = "Another Game"
	_, err = f.service.Create(context.Background(), input, "ana@example.com")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUpdateTemplate_PartialFields(t *testing.T) {
	f := newTemplateFixture(t)
	template, err := f.service.Create(context.Background(), validInput(), "ana@example.com")
	require.NoError(t, err)

	name := "Triple Caliente Plus"
	updated, err := f.service.Update(context.Background(), template.ID, TemplateUpdateInput{Name: &name}, "luis@example.com")
	require.NoError(t, err)

	assert.Equal(t, "Triple Caliente Plus", updated.Name)
	assert.Equal(t, "triple-caliente", updated.Slug, "unset fields stay untouched")
	assert.Equal(t, 1000, updated.RangeSize)
	assert.Len(t, f.auditRepo.byAction(models.AuditActionTemplateUpdate), 1)
}

func TestUpdateTemplate_SlugBeforeAnyDraws(t *testing.T) {
	f := newTemplateFixture(t)
	template, err := f.service.Create(context.Background(), validInput(), "ana@example.com")
	require.NoError(t, err)

	slug := "triple-tarde"
	updated, err := f.service.Update(context.Background(), template.ID, TemplateUpdateInput{Slug: &slug}, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "triple-tarde", updated.Slug)
}

func TestUpdateTemplate_SlugImmutableOnceReferenced(t *testing.T) {
	f := newTemplateFixture(t)
	template, err := f.service.Create(context.Background(), validInput(), "ana@example.com")
	require.NoError(t, err)

	draw := &models.Draw{TemplateID: template.ID, TemplateSlug: template.Slug, Status: models.DrawStatusScheduled}
	require.NoError(t, f.drawRepo.Create(context.Background(), draw))

	slug := "triple-tarde"
	_, err = f.service.Update(context.Background(), template.ID, TemplateUpdateInput{Slug: &slug}, "ana@example.com")
	assert.True(t, apperrors.IsValidation(err), "expected validation error, got %v", err)

	// Other fields are still updatable
	name := "Renamed"
	updated, err := f.service.Update(context.Background(), template.ID, TemplateUpdateInput{Name: &name}, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "triple-caliente", updated.Slug)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestUpdateTemplate_SlugCollision(t *testing.T) {
	f := newTemplateFixture(t)
	_, err := f.service.Create(context.Background(), validInput(), "ana@example.com")
	require.NoError(t, err)

	input := validInput()
	input.Slug = "lotto-activo"
	other, err := f.service.Create(context.Background(), input, "ana@example.com")
	require.NoError(t, err)

	slug := "triple-caliente"
	_, err = f.service.Update(context.Background(), other.ID, TemplateUpdateInput{Slug: &slug}, "ana@example.com")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestDeactivateTemplate(t *testing.T) {
	f := newTemplateFixture(t)
	template, err := f.service.Create(context.Background(), validInput(), "ana@example.com")
	require.NoError(t, err)

	deactivated, err := f.service.Deactivate(context.Background(), template.ID, "ana@example.com")
	require.NoError(t, err)
	assert.False(t, deactivated.Active)
	assert.Len(t, f.auditRepo.byAction(models.AuditActionTemplateDeactivate), 1)

	// Repeat deactivation is a no-op without a second audit entry
	again, err := f.service.Deactivate(context.Background(), template.ID, "ana@example.com")
	require.NoError(t, err)
	assert.False(t, again.Active)
	assert.Len(t, f.auditRepo.byAction(models.AuditActionTemplateDeactivate), 1)
}

func TestGetBySlug(t *testing.T) {
	f := newTemplateFixture(t)
	_, err := f.service.Create(context.Background(), validInput(), "ana@example.com")
	require.NoError(t, err)

	template, err := f.service.GetBySlug(context.Background(), "triple-caliente")
	require.NoError(t, err)
	assert.Equal(t, "Triple Caliente", template.Name)

	_, err = f.service.GetBySlug(context.Background(), "no-such-game")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
