package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/catalogo-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-admin-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre la colección categories.
type CategoryRepo struct {
	col *mongo.Collection
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(db *mongo.Database) *CategoryRepo {
	return &CategoryRepo{col: db.Collection(CategoriesCollection)}
}

// Create inserta la categoría. Slug repetido → domain.ErrDuplicate.
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	res, err := r.col.InsertOne(ctx, toCategoryDocument(category))
	if err != nil {
		return wrap(err, "insert category")
	}
	category.ID = insertedHex(res)
	return nil
}

// FindByID categoría por id; (nil, nil) si no existe.
func (r *CategoryRepo) FindByID(ctx context.Context, id string) (*entity.Category, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	var doc categoryDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, wrap(err, "get category")
	}
	return doc.toEntity(), nil
}

// ListActive categorías con isActive=true ordenadas por nombre.
func (r *CategoryRepo) ListActive(ctx context.Context) ([]*entity.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, wrap(err, "list categories")
	}
	var docs []categoryDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, wrap(err, "decode categories")
	}
	out := make([]*entity.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toEntity())
	}
	return out, nil
}

// FindSummaries nombre y slug de varias categorías en una sola lectura.
func (r *CategoryRepo) FindSummaries(ctx context.Context, ids []string) (map[string]entity.CategorySummary, error) {
	out := make(map[string]entity.CategorySummary, len(ids))
	oids := parseIDs(ids)
	if len(oids) == 0 {
		return out, nil
	}
	opts := options.Find().SetProjection(bson.M{"name": 1, "slug": 1})
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, opts)
	if err != nil {
		return nil, wrap(err, "find category summaries")
	}
	var docs []categoryDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, wrap(err, "decode category summaries")
	}
	for _, d := range docs {
		out[d.ID.Hex()] = entity.CategorySummary{ID: d.ID.Hex(), Name: d.Name, Slug: d.Slug}
	}
	return out, nil
}

// Upsert crea o actualiza por slug (seed).
func (r *CategoryRepo) Upsert(ctx context.Context, category *entity.Category) error {
	doc := toCategoryDocument(category)
	update := bson.M{
		"$set": bson.M{
			"name":        doc.Name,
			"description": doc.Description,
			"isActive":    doc.IsActive,
			"updatedAt":   doc.UpdatedAt,
		},
		"$setOnInsert": bson.M{"slug": doc.Slug, "createdAt": doc.CreatedAt},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var saved categoryDocument
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"slug": doc.Slug}, update, opts).Decode(&saved); err != nil {
		return wrap(err, "upsert category")
	}
	category.ID = saved.ID.Hex()
	return nil
}
