package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"checkflow/internal/model"
)

// ChecklistRepo handles MongoDB operations for materialized checklists
type ChecklistRepo interface {
	Create(ctx context.Context, checklist *model.Checklist) error
	GetByID(ctx context.Context, id string) (*model.Checklist, error)
	List(ctx context.Context) ([]*model.Checklist, error)
	Update(ctx context.Context, checklist *model.Checklist) error
	Delete(ctx context.Context, id string) error
}

type checklistRepo struct {
	collection *mongo.Collection
}

// NewChecklistRepo creates a new checklist repository
func NewChecklistRepo(db *mongo.Database) ChecklistRepo {
	return &checklistRepo{
		collection: db.Collection("checklists"),
	}
}

func (r *checklistRepo) Create(ctx context.Context, checklist *model.Checklist) error {
	now := time.Now()
	checklist.CreatedAt = now
	checklist.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, checklist)
	return err
}

func (r *checklistRepo) GetByID(ctx context.Context, id string) (*model.Checklist, error) {
	var checklist model.Checklist
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&checklist)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &checklist, nil
}

func (r *checklistRepo) List(ctx context.Context) ([]*model.Checklist, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var checklists []*model.Checklist
	if err := cursor.All(ctx, &checklists); err != nil {
		return nil, err
	}
	return checklists, nil
}

func (r *checklistRepo) Update(ctx context.Context, checklist *model.Checklist) error {
	checklist.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": checklist.ID}, checklist)
	return err
}

func (r *checklistRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
