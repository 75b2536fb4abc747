package mongodb

import (
	"context"
	"fmt"

	"taployalty/internal/models"
	"taployalty/internal/repositories/interfaces"
	"taployalty/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type noteRepository struct {
	collection *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) interfaces.NoteRepository {
	return &noteRepository{collection: db.Collection("notes")}
}

func (r *noteRepository) Create(ctx context.Context, note *models.Note) (primitive.ObjectID, error) {
	note.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, note); err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create note: %w", err)
	}

	return note.ID, nil
}

func (r *noteRepository) GetByID(ctx context.Context, merchantID string, id primitive.ObjectID) (*models.Note, error) {
	var note models.Note
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "merchant_id": merchantID}).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("note not found")
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return &note, nil
}

func (r *noteRepository) ListByMerchant(ctx context.Context, merchantID string, params *utils.PaginationParams) ([]*models.Note, int64, error) {
	filter := bson.M{"merchant_id": merchantID}

	if params.Search != "" {
		searchFields := []string{"title", "summary", "file_name", "category"}
		searchFilter := params.GetSearchFilter(searchFields)
		if len(searchFilter) > 0 {
			filter = bson.M{"$and": []bson.M{filter, searchFilter}}
		}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notes: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find notes: %w", err)
	}
	defer cursor.Close(ctx)

	var notes []*models.Note
	for cursor.Next(ctx) {
		var note models.Note
		if err := cursor.Decode(&note); err != nil {
			return nil, 0, fmt.Errorf("failed to decode note: %w", err)
		}
		notes = append(notes, &note)
	}

	return notes, total, nil
}

func (r *noteRepository) Delete(ctx context.Context, merchantID string, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "merchant_id": merchantID})
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("note not found")
	}
	return nil
}
