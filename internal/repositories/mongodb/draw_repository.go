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

// DrawRepository implements the repositories.DrawRepository interface
type DrawRepository struct {
	collection *mongo.Collection
}

// NewDrawRepository creates a new DrawRepository
func NewDrawRepository(db *mongo.Database) repositories.DrawRepository {
	return &DrawRepository{
		collection: db.Collection("draws"),
	}
}

// Create creates a new draw instance
func (r *DrawRepository) Create(ctx context.Context, draw *models.Draw) error {
	draw.CreatedAt = time.Now()
	draw.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, draw)
	if err != nil {
		return err
	}
	draw.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a draw by ID
func (r *DrawRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error) {
	var draw models.Draw
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&draw)
	if err != nil {
		return nil, err // Returns mongo.ErrNoDocuments if not found
	}
	return &draw, nil
}

// FindBySlot finds the single instance for a (template, date, time) slot
func (r *DrawRepository) FindBySlot(ctx context.Context, templateID primitive.ObjectID, date time.Time, drawTime string) (*models.Draw, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)
	filter := bson.M{
		"templateId": templateID,
		"drawTime":   drawTime,
		"scheduledAt": bson.M{
			"$gte": startOfDay,
			"$lt":  endOfDay,
		},
	}
	var draw models.Draw
	err := r.collection.FindOne(ctx, filter).Decode(&draw)
	if err != nil {
		return nil, err
	}
	return &draw, nil
}

// FindByDate finds all draws scheduled on a calendar day
func (r *DrawRepository) FindByDate(ctx context.Context, date time.Time) ([]*models.Draw, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)
	filter := bson.M{
		"scheduledAt": bson.M{
			"$gte": startOfDay,
			"$lt":  endOfDay,
		},
	}
	return r.find(ctx, filter)
}

// FindByStatus finds draws by lifecycle status
func (r *DrawRepository) FindByStatus(ctx context.Context, status models.DrawStatus) ([]*models.Draw, error) {
	return r.find(ctx, bson.M{"status": status})
}

// FindScheduledDue finds SCHEDULED draws whose scheduled time has passed
func (r *DrawRepository) FindScheduledDue(ctx context.Context, now time.Time) ([]*models.Draw, error) {
	filter := bson.M{
		"status":      models.DrawStatusScheduled,
		"scheduledAt": bson.M{"$lte": now},
	}
	return r.find(ctx, filter)
}

// Update updates a draw
func (r *DrawRepository) Update(ctx context.Context, draw *models.Draw) error {
	draw.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": draw.ID}, draw)
	return err
}

// CountByTemplate counts instances referencing a template
func (r *DrawRepository) CountByTemplate(ctx context.Context, templateID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"templateId": templateID})
}

func (r *DrawRepository) find(ctx context.Context, filter bson.M) ([]*models.Draw, error) {
	opts := options.Find().SetSort(bson.M{"scheduledAt": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var draws []*models.Draw
	if err := cursor.All(ctx, &draws); err != nil {
		return nil, err
	}
	if draws == nil {
		draws = []*models.Draw{}
	}
	return draws, nil
}
