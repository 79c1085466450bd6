// Package catalog stores the read-mostly content collections: the disease
// library and the news feed.
package catalog

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"agrimitra/internal/model/catalog"
)

// DiseaseRepo stores disease library entries.
type DiseaseRepo struct {
	collection *mongo.Collection
}

func NewDiseaseRepo(db *mongo.Database) *DiseaseRepo {
	return &DiseaseRepo{
		collection: db.Collection("diseases"),
	}
}

// List returns all diseases sorted by name.
func (r *DiseaseRepo) List(ctx context.Context) ([]*catalog.Disease, error) {
	opts := options.Find().SetSort(bson.D{bson.E{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var diseases []*catalog.Disease
	if err := cursor.All(ctx, &diseases); err != nil {
		return nil, err
	}

	return diseases, nil
}

// FindByID looks a disease up by ID.
func (r *DiseaseRepo) FindByID(ctx context.Context, id string) (*catalog.Disease, error) {
	var disease catalog.Disease
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&disease)
	if err != nil {
		return nil, err
	}
	return &disease, nil
}

// Count counts library entries.
func (r *DiseaseRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// InsertMany bulk-loads library entries, used by first-run seeding.
func (r *DiseaseRepo) InsertMany(ctx context.Context, diseases []*catalog.Disease) error {
	docs := make([]interface{}, 0, len(diseases))
	for _, d := range diseases {
		docs = append(docs, d)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}
