package catalog

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"agrimitra/internal/model/catalog"
)

// NewsRepo stores news feed articles.
type NewsRepo struct {
	collection *mongo.Collection
}

func NewNewsRepo(db *mongo.Database) *NewsRepo {
	return &NewsRepo{
		collection: db.Collection("news"),
	}
}

// List returns articles newest first.
func (r *NewsRepo) List(ctx context.Context, limit int64) ([]*catalog.NewsArticle, error) {
	opts := options.Find().SetSort(bson.D{bson.E{Key: "published_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var articles []*catalog.NewsArticle
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, err
	}

	return articles, nil
}

// Count counts stored articles.
func (r *NewsRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// InsertMany bulk-loads articles, used by first-run seeding.
func (r *NewsRepo) InsertMany(ctx context.Context, articles []*catalog.NewsArticle) error {
	docs := make([]interface{}, 0, len(articles))
	for _, a := range articles {
		docs = append(docs, a)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}
