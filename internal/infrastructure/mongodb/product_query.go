package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/catalogo-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-admin-api/internal/domain/repository"
)

// sortFields campos ordenables; cualquier otro cae en createdAt.
var sortFields = map[string]bool{
	"createdAt": true,
	"updatedAt": true,
	"name":      true,
	"price":     true,
	"quantity":  true,
	"sku":       true,
	"status":    true,
}

// productFilter traduce ProductFilter a un filtro Mongo. ok=false si el filtro no
// puede coincidir con nada (categoryId malformado).
func productFilter(f repository.ProductFilter) (bson.M, bool) {
	q := bson.M{}
	if f.Search != "" {
		q["$text"] = bson.M{"$search": f.Search}
	}
	if f.CategoryID != "" {
		oid, ok := parseID(f.CategoryID)
		if !ok {
			return nil, false
		}
		q["categoryId"] = oid
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		rng := bson.M{}
		if f.MinPrice != nil {
			rng["$gte"] = toDecimal128(*f.MinPrice)
		}
		if f.MaxPrice != nil {
			rng["$lte"] = toDecimal128(*f.MaxPrice)
		}
		q["price"] = rng
	}
	if f.BelowQuantity != nil {
		q["quantity"] = bson.M{"$lt": *f.BelowQuantity}
	}
	return q, true
}

// productSort orden principal más _id como desempate estable.
func productSort(f repository.ProductFilter) bson.D {
	field := f.SortBy
	if !sortFields[field] {
		field = "createdAt"
	}
	dir := -1
	if f.Ascending {
		dir = 1
	}
	return bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}
}

// statsPipeline una sola agregación: agrupación por estado y contadores de stock.
func statsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$facet", Value: bson.M{
			"byStatus": bson.A{
				bson.M{"$group": bson.M{
					"_id":        "$status",
					"count":      bson.M{"$sum": 1},
					"totalValue": bson.M{"$sum": bson.M{"$multiply": bson.A{bson.M{"$toDecimal": "$price"}, "$quantity"}}},
				}},
				bson.M{"$sort": bson.M{"_id": 1}},
			},
			"lowStock": bson.A{
				bson.M{"$match": bson.M{"quantity": bson.M{"$lt": entity.LowStockThreshold}}},
				bson.M{"$count": "count"},
			},
			"outOfStock": bson.A{
				bson.M{"$match": bson.M{"quantity": entity.OutOfStockLevel}},
				bson.M{"$count": "count"},
			},
		}}},
	}
}

// productPatchSet documento $set con sólo los campos presentes en el patch.
func productPatchSet(p repository.ProductPatch) bson.M {
	set := bson.M{"updatedAt": p.UpdatedAt}
	if oid := optionalID(p.UpdatedBy); oid != nil {
		set["updatedBy"] = oid
	}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Slug != nil {
		set["slug"] = *p.Slug
	}
	if p.SKU != nil {
		set["sku"] = *p.SKU
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.ShortDescription != nil {
		set["shortDescription"] = *p.ShortDescription
	}
	if p.Price != nil {
		set["price"] = toDecimal128(*p.Price)
	}
	if p.SalePrice != nil {
		set["salePrice"] = toDecimal128(*p.SalePrice)
	}
	if p.CostPrice != nil {
		set["costPrice"] = toDecimal128(*p.CostPrice)
	}
	if p.Quantity != nil {
		set["quantity"] = *p.Quantity
	}
	if p.CategoryID != nil {
		set["categoryId"] = optionalID(*p.CategoryID)
	}
	if p.Brand != nil {
		set["brand"] = *p.Brand
	}
	if p.Weight != nil {
		set["weight"] = *p.Weight
	}
	if d := p.Dimensions; d != nil {
		set["dimensions"] = dimensionsDocument{Length: d.Length, Width: d.Width, Height: d.Height}
	}
	if p.Images != nil {
		set["images"] = p.Images
	}
	if p.Thumbnail != nil {
		set["thumbnail"] = *p.Thumbnail
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.IsFeatured != nil {
		set["isFeatured"] = *p.IsFeatured
	}
	if s := p.SEO; s != nil {
		set["seo"] = seoDocument{MetaTitle: s.MetaTitle, MetaDescription: s.MetaDescription, MetaKeywords: s.MetaKeywords}
	}
	return set
}

// updateFilter _id más, si hay guard, los importes leídos. salePrice nil coincide
// con el campo ausente.
func updateFilter(oid primitive.ObjectID, guard *repository.PriceGuard) bson.M {
	filter := bson.M{"_id": oid}
	if guard == nil {
		return filter
	}
	filter["price"] = toDecimal128(guard.Price)
	if guard.SalePrice != nil {
		filter["salePrice"] = toDecimal128(*guard.SalePrice)
	} else {
		filter["salePrice"] = nil
	}
	return filter
}
