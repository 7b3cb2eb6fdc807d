package mongodb

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/catalogo-admin-api/internal/domain"
	"github.com/jhoicas/catalogo-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-admin-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre la colección products.
type ProductRepo struct {
	col *mongo.Collection
	now func() time.Time
}

// NewProductRepository construye el adaptador.
func NewProductRepository(db *mongo.Database) *ProductRepo {
	return &ProductRepo{col: db.Collection(ProductsCollection), now: time.Now}
}

// Create inserta el producto y asigna el ID. Slug o SKU repetidos → domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	res, err := r.col.InsertOne(ctx, toProductDocument(product))
	if err != nil {
		return wrap(err, "insert product")
	}
	product.ID = insertedHex(res)
	return nil
}

// FindByID producto por id; (nil, nil) si no existe o el id está malformado.
func (r *ProductRepo) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	var doc productDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, wrap(err, "get product")
	}
	return doc.toEntity(), nil
}

// Find página de productos según filtro, orden, skip y limit.
func (r *ProductRepo) Find(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	filter, ok := productFilter(f)
	if !ok {
		return []*entity.Product{}, nil
	}
	opts := options.Find().SetSort(productSort(f)).SetSkip(f.Skip)
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrap(err, "list products")
	}
	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, wrap(err, "decode products")
	}
	out := make([]*entity.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toEntity())
	}
	return out, nil
}

// Count total de productos que cumplen el filtro (sin paginar).
func (r *ProductRepo) Count(ctx context.Context, f repository.ProductFilter) (int64, error) {
	filter, ok := productFilter(f)
	if !ok {
		return 0, nil
	}
	n, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, wrap(err, "count products")
	}
	return n, nil
}

// Update $set de los campos presentes con findOneAndUpdate; con guard el filtro
// exige los importes leídos. (nil, nil) si nada coincide.
func (r *ProductRepo) Update(ctx context.Context, id string, patch repository.ProductPatch, guard *repository.PriceGuard) (*entity.Product, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc productDocument
	err := r.col.FindOneAndUpdate(ctx, updateFilter(oid, guard), bson.M{"$set": productPatchSet(patch)}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, wrap(err, "update product")
	}
	return doc.toEntity(), nil
}

// Delete elimina por id; false si no existía.
func (r *ProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	oid, ok := parseID(id)
	if !ok {
		return false, nil
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, wrap(err, "delete product")
	}
	return res.DeletedCount > 0, nil
}

// DeleteMany un solo deleteMany con $in; los ids malformados se ignoran.
func (r *ProductRepo) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	oids := parseIDs(ids)
	if len(oids) == 0 {
		return 0, nil
	}
	res, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return 0, wrap(err, "bulk delete products")
	}
	return res.DeletedCount, nil
}

// IncrementQuantity $inc atómico. Con delta negativo el filtro exige quantity >= -delta,
// así el decremento y la verificación son una sola operación.
func (r *ProductRepo) IncrementQuantity(ctx context.Context, id string, delta int) (*entity.Product, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	if delta == math.MinInt {
		return nil, errors.WithStack(domain.ErrInsufficientStock)
	}
	filter := bson.M{"_id": oid}
	if delta < 0 {
		filter["quantity"] = bson.M{"$gte": -delta}
	}
	update := bson.M{
		"$inc": bson.M{"quantity": delta},
		"$set": bson.M{"updatedAt": r.now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc productDocument
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		return doc.toEntity(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, wrap(err, "increment product quantity")
	}
	if delta >= 0 {
		return nil, nil
	}
	exists, err := r.exists(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return nil, errors.WithStack(domain.ErrInsufficientStock)
}

func (r *ProductRepo) exists(ctx context.Context, oid primitive.ObjectID) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return false, wrap(err, "check product")
	}
	return n > 0, nil
}

type statusBucket struct {
	Status     string               `bson:"_id"`
	Count      int64                `bson:"count"`
	TotalValue primitive.Decimal128 `bson:"totalValue"`
}

type countBucket struct {
	Count int64 `bson:"count"`
}

type statsResult struct {
	ByStatus   []statusBucket `bson:"byStatus"`
	LowStock   []countBucket  `bson:"lowStock"`
	OutOfStock []countBucket  `bson:"outOfStock"`
}

// Stats estadísticas del catálogo con una sola agregación ($facet).
func (r *ProductRepo) Stats(ctx context.Context) (*entity.ProductStats, error) {
	cur, err := r.col.Aggregate(ctx, statsPipeline())
	if err != nil {
		return nil, wrap(err, "product stats")
	}
	var results []statsResult
	if err := cur.All(ctx, &results); err != nil {
		return nil, wrap(err, "decode product stats")
	}
	stats := &entity.ProductStats{ByStatus: []entity.StatusStat{}}
	if len(results) == 0 {
		return stats, nil
	}
	res := results[0]
	for _, b := range res.ByStatus {
		stats.ByStatus = append(stats.ByStatus, entity.StatusStat{
			Status:     b.Status,
			Count:      b.Count,
			TotalValue: fromDecimal128(b.TotalValue),
		})
	}
	if len(res.LowStock) > 0 {
		stats.LowStock = res.LowStock[0].Count
	}
	if len(res.OutOfStock) > 0 {
		stats.OutOfStock = res.OutOfStock[0].Count
	}
	return stats, nil
}
