package mongodb

import (
	"context"
	"time"

	"github.com/lottopantera/draw-engine/internal/models"
	"github.com/lottopantera/draw-engine/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AuditRepository implements the repositories.AuditRepository interface.
// The collection is append-only; no update or delete methods exist.
type AuditRepository struct {
	collection *mongo.Collection
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db *mongo.Database) repositories.AuditRepository {
	return &AuditRepository{
		collection: db.Collection("audit_entries"),
	}
}

// Append writes an audit entry
func (r *AuditRepository) Append(ctx context.Context, entry *models.AuditEntry) error {
	entry.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return err
	}
	entry.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindBySubject finds entries for a draw or template id, newest first
func (r *AuditRepository) FindBySubject(ctx context.Context, subjectID string, page, limit int) ([]*models.AuditEntry, error) {
	return r.find(ctx, bson.M{"subjectId": subjectID}, page, limit)
}

// FindByAction finds entries by action kind, newest first
func (r *AuditRepository) FindByAction(ctx context.Context, action models.AuditAction, page, limit int) ([]*models.AuditEntry, error) {
	return r.find(ctx, bson.M{"action": action}, page, limit)
}

// FindAll finds all entries, newest first
func (r *AuditRepository) FindAll(ctx context.Context, page, limit int) ([]*models.AuditEntry, error) {
	return r.find(ctx, bson.M{}, page, limit)
}

func (r *AuditRepository) find(ctx context.Context, filter bson.M, page, limit int) ([]*models.AuditEntry, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.AuditEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*models.AuditEntry{}
	}
	return entries, nil
}
