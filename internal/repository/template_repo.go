package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"checkflow/internal/model"
)

// TemplateRepo serves the industry template catalog from MongoDB. It
// satisfies catalog.TemplateSource; templates are seeded by cmd/seed
// and treated as read-only by the engines.
type TemplateRepo interface {
	Templates(ctx context.Context) ([]*model.Template, error)
	TemplateByID(ctx context.Context, id string) (*model.Template, error)
	DefaultTemplates(ctx context.Context, serviceType, propertyType string) ([]*model.Template, error)
	Upsert(ctx context.Context, template *model.Template) error
}

type templateRepo struct {
	collection *mongo.Collection
}

// NewTemplateRepo creates a new template repository
func NewTemplateRepo(db *mongo.Database) TemplateRepo {
	return &templateRepo{
		collection: db.Collection("templates"),
	}
}

func (r *templateRepo) Templates(ctx context.Context) ([]*model.Template, error) {
	return r.find(ctx, bson.M{})
}

func (r *templateRepo) TemplateByID(ctx context.Context, id string) (*model.Template, error) {
	var template model.Template
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&template)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepo) DefaultTemplates(ctx context.Context, serviceType, propertyType string) ([]*model.Template, error) {
	return r.find(ctx, bson.M{"serviceType": serviceType, "propertyType": propertyType})
}

func (r *templateRepo) Upsert(ctx context.Context, template *model.Template) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": template.ID}, template, opts)
	return err
}

func (r *templateRepo) find(ctx context.Context, filter bson.M) ([]*model.Template, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var templates []*model.Template
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}
