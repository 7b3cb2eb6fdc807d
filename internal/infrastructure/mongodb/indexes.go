package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// indexSpec índices de una colección.
type indexSpec struct {
	collection string
	models     []mongo.IndexModel
}

func indexSpecs() []indexSpec {
	return []indexSpec{
		{UsersCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("email_unique")},
		}},
		{ProductsCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetName("slug_unique")},
			{Keys: bson.D{{Key: "sku", Value: 1}}, Options: options.Index().SetUnique(true).SetName("sku_unique")},
			{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}}, Options: options.Index().SetName("name_description_text")},
			{Keys: bson.D{{Key: "categoryId", Value: 1}, {Key: "status", Value: 1}}, Options: options.Index().SetName("category_status")},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}, Options: options.Index().SetName("created_at_desc")},
		}},
		{CategoriesCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetName("slug_unique")},
			{Keys: bson.D{{Key: "parentId", Value: 1}}, Options: options.Index().SetName("parent")},
		}},
	}
}

// EnsureIndexes crea (idempotente) los índices únicos y de búsqueda. La búsqueda
// de texto de productos requiere el índice de texto.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, spec := range indexSpecs() {
		if _, err := db.Collection(spec.collection).Indexes().CreateMany(ctx, spec.models); err != nil {
			return wrap(err, "create indexes on "+spec.collection)
		}
	}
	return nil
}
