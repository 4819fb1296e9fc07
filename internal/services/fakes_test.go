package services

import (
	"context"
	"sync"
	"time"

	"github.com/lottopantera/draw-engine/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory repository fakes. They mirror the mongodb implementations'
// contract: lookups for missing documents return mongo.ErrNoDocuments.

type fakeTemplateRepo struct {
	mu        sync.Mutex
	templates map[primitive.ObjectID]*models.GameTemplate
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[primitive.ObjectID]*models.GameTemplate)}
}

func (r *fakeTemplateRepo) Create(_ context.Context, template *models.GameTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if template.ID.IsZero() {
		template.ID = primitive.NewObjectID()
	}
	template.CreatedAt = time.Now()
	copy := *template
	r.templates[template.ID] = &copy
	return nil
}

func (r *fakeTemplateRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.GameTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	template, ok := r.templates[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copy := *template
	return &copy, nil
}

func (r *fakeTemplateRepo) FindBySlug(_ context.Context, slug string) (*models.GameTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, template := range r.templates {
		if template.Slug == slug {
			copy := *template
			return &copy, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeTemplateRepo) FindAll(_ context.Context) ([]*models.GameTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.GameTemplate{}
	for _, template := range r.templates {
		copy := *template
		out = append(out, &copy)
	}
	return out, nil
}

func (r *fakeTemplateRepo) FindActive(_ context.Context) ([]*models.GameTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.GameTemplate{}
	for _, template := range r.templates {
		if template.Active {
			copy := *template
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakeTemplateRepo) Update(_ context.Context, template *models.GameTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[template.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	template.UpdatedAt = time.Now()
	copy := *template
	r.templates[template.ID] = &copy
	return nil
}

type fakeDrawRepo struct {
	mu      sync.Mutex
	draws   map[primitive.ObjectID]*models.Draw
	journal *journal
}

func newFakeDrawRepo() *fakeDrawRepo {
	return &fakeDrawRepo{draws: make(map[primitive.ObjectID]*models.Draw)}
}

func (r *fakeDrawRepo) Create(_ context.Context, draw *models.Draw) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if draw.ID.IsZero() {
		draw.ID = primitive.NewObjectID()
	}
	draw.CreatedAt = time.Now()
	copy := *draw
	r.draws[draw.ID] = &copy
	return nil
}

func (r *fakeDrawRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Draw, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	draw, ok := r.draws[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copy := *draw
	return &copy, nil
}

func (r *fakeDrawRepo) FindBySlot(_ context.Context, templateID primitive.ObjectID, date time.Time, drawTime string) (*models.Draw, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, draw := range r.draws {
		if draw.TemplateID == templateID && inDayWindow(draw.ScheduledAt, date) && draw.DrawTime == drawTime {
			copy := *draw
			return &copy, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeDrawRepo) FindByDate(_ context.Context, date time.Time) ([]*models.Draw, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Draw{}
	for _, draw := range r.draws {
		if inDayWindow(draw.ScheduledAt, date) {
			copy := *draw
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakeDrawRepo) FindByStatus(_ context.Context, status models.DrawStatus) ([]*models.Draw, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Draw{}
	for _, draw := range r.draws {
		if draw.Status == status {
			copy := *draw
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakeDrawRepo) FindScheduledDue(_ context.Context, now time.Time) ([]*models.Draw, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Draw{}
	for _, draw := range r.draws {
		if draw.Status == models.DrawStatusScheduled && !draw.ScheduledAt.After(now) {
			copy := *draw
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakeDrawRepo) Update(_ context.Context, draw *models.Draw) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.draws[draw.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	draw.UpdatedAt = time.Now()
	copy := *draw
	r.draws[draw.ID] = &copy
	r.journal.record("draw-update")
	return nil
}

func (r *fakeDrawRepo) CountByTemplate(_ context.Context, templateID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, draw := range r.draws {
		if draw.TemplateID == templateID {
			count++
		}
	}
	return count, nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*models.AuditEntry
	journal *journal
}

func newFakeAuditRepo() *fakeAuditRepo {
	return &fakeAuditRepo{}
}

func (r *fakeAuditRepo) Append(_ context.Context, entry *models.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now()
	copy := *entry
	r.entries = append(r.entries, &copy)
	r.journal.record("audit-append")
	return nil
}

func (r *fakeAuditRepo) FindBySubject(_ context.Context, subjectID string, _, _ int) ([]*models.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.AuditEntry{}
	for _, entry := range r.entries {
		if entry.SubjectID == subjectID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *fakeAuditRepo) FindByAction(_ context.Context, action models.AuditAction, _, _ int) ([]*models.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.AuditEntry{}
	for _, entry := range r.entries {
		if entry.Action == action {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *fakeAuditRepo) FindAll(_ context.Context, _, _ int) ([]*models.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.AuditEntry{}, r.entries...), nil
}

func (r *fakeAuditRepo) byAction(action models.AuditAction) []*models.AuditEntry {
	out, _ := r.FindByAction(context.Background(), action, 1, 100)
	return out
}

type fakePauseRepo struct {
	mu     sync.Mutex
	pauses map[primitive.ObjectID]*models.DrawPause
}

func newFakePauseRepo() *fakePauseRepo {
	return &fakePauseRepo{pauses: make(map[primitive.ObjectID]*models.DrawPause)}
}

func (r *fakePauseRepo) Create(_ context.Context, pause *models.DrawPause) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	pause.ID = primitive.NewObjectID()
	pause.CreatedAt = time.Now()
	copy := *pause
	r.pauses[pause.ID] = &copy
	return nil
}

func (r *fakePauseRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pauses[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.pauses, id)
	return nil
}

func (r *fakePauseRepo) FindAll(_ context.Context) ([]*models.DrawPause, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.DrawPause{}
	for _, pause := range r.pauses {
		copy := *pause
		out = append(out, &copy)
	}
	return out, nil
}

func (r *fakePauseRepo) FindForDate(_ context.Context, date time.Time) ([]*models.DrawPause, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.DrawPause{}
	for _, pause := range r.pauses {
		if inDayWindow(pause.Date, date) {
			copy := *pause
			out = append(out, &copy)
		}
	}
	return out, nil
}

type fakeAdminRepo struct {
	mu     sync.Mutex
	admins map[string]*models.AdminUser
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[string]*models.AdminUser)}
}

func (r *fakeAdminRepo) Create(_ context.Context, adminUser *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	adminUser.ID = primitive.NewObjectID()
	adminUser.CreatedAt = time.Now()
	copy := *adminUser
	r.admins[adminUser.Email] = &copy
	return nil
}

func (r *fakeAdminRepo) FindByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin, ok := r.admins[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copy := *admin
	return &copy, nil
}

// fakePublisher collects emitted events in order.
type fakePublisher struct {
	mu     sync.Mutex
	events []models.NotificationEvent
}

func (p *fakePublisher) Publish(event models.NotificationEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *fakePublisher) kinds() []models.EventKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.EventKind, len(p.events))
	for i, event := range p.events {
		out[i] = event.Kind
	}
	return out
}

// fakeRenderer signals each render call on a channel so tests can wait for
// the asynchronous render triggered by Publish.
type fakeRenderer struct {
	calls chan renderCall
	err   error
}

type renderCall struct {
	drawID        string
	winningNumber string
	meta          models.TemplateMetadata
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{calls: make(chan renderCall, 8)}
}

func (r *fakeRenderer) Render(_ context.Context, drawID, winningNumber string, meta models.TemplateMetadata) (string, error) {
	r.calls <- renderCall{drawID: drawID, winningNumber: winningNumber, meta: meta}
	if r.err != nil {
		return "", r.err
	}
	return "mock://" + drawID, nil
}

// fakeSystemConfig is a SystemConfigService with a fixed flag.
type fakeSystemConfig struct {
	stopped bool
}

func (f *fakeSystemConfig) IsEmergencyStop(_ context.Context) (bool, error) {
	return f.stopped, nil
}

func (f *fakeSystemConfig) SetEmergencyStop(_ context.Context, stopped bool, _ string) error {
	f.stopped = stopped
	return nil
}

// journal records the global order of repository writes, shared between the
// draw and audit fakes to assert the audit entry lands before the state
// change.
type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) record(op string) {
	if j == nil {
		return
	}
	j.mu.Lock()
	j.entries = append(j.entries, op)
	j.mu.Unlock()
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// inDayWindow mirrors the mongodb repositories' date filters: a half-open
// [midnight, +24h) window anchored in the query date's location.
func inDayWindow(ts, date time.Time) bool {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1)
	return !ts.Before(start) && ts.Before(end)
}
