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

// PauseRepository implements the repositories.PauseRepository interface
type PauseRepository struct {
	collection *mongo.Collection
}

// NewPauseRepository creates a new PauseRepository
func NewPauseRepository(db *mongo.Database) repositories.PauseRepository {
	return &PauseRepository{
		collection: db.Collection("draw_pauses"),
	}
}

// Create creates a pause record
func (r *PauseRepository) Create(ctx context.Context, pause *models.DrawPause) error {
	pause.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, pause)
	if err != nil {
		return err
	}
	pause.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Delete removes a pause record
func (r *PauseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// FindAll finds all pause records
func (r *PauseRepository) FindAll(ctx context.Context) ([]*models.DrawPause, error) {
	opts := options.Find().SetSort(bson.M{"date": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var pauses []*models.DrawPause
	if err := cursor.All(ctx, &pauses); err != nil {
		return nil, err
	}
	if pauses == nil {
		pauses = []*models.DrawPause{}
	}
	return pauses, nil
}

// FindForDate finds all pauses covering a calendar date
func (r *PauseRepository) FindForDate(ctx context.Context, date time.Time) ([]*models.DrawPause, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)
	filter := bson.M{
		"date": bson.M{
			"$gte": startOfDay,
			"$lt":  endOfDay,
		},
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var pauses []*models.DrawPause
	if err := cursor.All(ctx, &pauses); err != nil {
		return nil, err
	}
	if pauses == nil {
		pauses = []*models.DrawPause{}
	}
	return pauses, nil
}
