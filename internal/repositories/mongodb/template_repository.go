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

// TemplateRepository implements the repositories.TemplateRepository interface
type TemplateRepository struct {
	collection *mongo.Collection
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *mongo.Database) repositories.TemplateRepository {
	return &TemplateRepository{
		collection: db.Collection("game_templates"),
	}
}

// Create creates a new game template
func (r *TemplateRepository) Create(ctx context.Context, template *models.GameTemplate) error {
	template.CreatedAt = time.Now()
	template.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, template)
	if err != nil {
		return err
	}
	template.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a template by ID
func (r *TemplateRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.GameTemplate, error) {
	var template models.GameTemplate
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&template)
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// FindBySlug finds a template by its unique slug
func (r *TemplateRepository) FindBySlug(ctx context.Context, slug string) (*models.GameTemplate, error) {
	var template models.GameTemplate
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&template)
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// FindAll finds all templates
func (r *TemplateRepository) FindAll(ctx context.Context) ([]*models.GameTemplate, error) {
	return r.find(ctx, bson.M{})
}

// FindActive finds templates with the active flag set
func (r *TemplateRepository) FindActive(ctx context.Context) ([]*models.GameTemplate, error) {
	return r.find(ctx, bson.M{"active": true})
}

// Update updates a template
func (r *TemplateRepository) Update(ctx context.Context, template *models.GameTemplate) error {
	template.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": template.ID}, template)
	return err
}

func (r *TemplateRepository) find(ctx context.Context, filter bson.M) ([]*models.GameTemplate, error) {
	opts := options.Find().SetSort(bson.M{"name": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var templates []*models.GameTemplate
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	if templates == nil {
		templates = []*models.GameTemplate{}
	}
	return templates, nil
}
