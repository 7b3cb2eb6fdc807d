package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/catalogo-admin-api/internal/domain/entity"
)

// userDocument forma persistida de entity.User.
type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	FullName  string             `bson:"fullName"`
	Role      string             `bson:"role"`
	IsActive  bool               `bson:"isActive"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func toUserDocument(u *entity.User) userDocument {
	doc := userDocument{
		Email:     u.Email,
		Password:  u.PasswordHash,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if oid, ok := parseID(u.ID); ok {
		doc.ID = oid
	}
	return doc
}

func (d userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.Password,
		FullName:     d.FullName,
		Role:         d.Role,
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// categoryDocument forma persistida de entity.Category.
type categoryDocument struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	Name        string              `bson:"name"`
	Slug        string              `bson:"slug"`
	Description string              `bson:"description,omitempty"`
	ParentID    *primitive.ObjectID `bson:"parentId,omitempty"`
	IsActive    bool                `bson:"isActive"`
	CreatedAt   time.Time           `bson:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt"`
}

func toCategoryDocument(c *entity.Category) categoryDocument {
	doc := categoryDocument{
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ParentID:    optionalID(c.ParentID),
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if oid, ok := parseID(c.ID); ok {
		doc.ID = oid
	}
	return doc
}

func (d categoryDocument) toEntity() *entity.Category {
	return &entity.Category{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Slug:        d.Slug,
		Description: d.Description,
		ParentID:    hexOf(d.ParentID),
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type dimensionsDocument struct {
	Length *float64 `bson:"length,omitempty"`
	Width  *float64 `bson:"width,omitempty"`
	Height *float64 `bson:"height,omitempty"`
}

type seoDocument struct {
	MetaTitle       string `bson:"metaTitle,omitempty"`
	MetaDescription string `bson:"metaDescription,omitempty"`
	MetaKeywords    string `bson:"metaKeywords,omitempty"`
}

// productDocument forma persistida de entity.Product. Los importes van como Decimal128.
type productDocument struct {
	ID               primitive.ObjectID    `bson:"_id,omitempty"`
	Name             string                `bson:"name"`
	Slug             string                `bson:"slug"`
	SKU              string                `bson:"sku"`
	Description      string                `bson:"description,omitempty"`
	ShortDescription string                `bson:"shortDescription,omitempty"`
	Price            primitive.Decimal128  `bson:"price"`
	SalePrice        *primitive.Decimal128 `bson:"salePrice,omitempty"`
	CostPrice        *primitive.Decimal128 `bson:"costPrice,omitempty"`
	Quantity         int                   `bson:"quantity"`
	CategoryID       *primitive.ObjectID   `bson:"categoryId,omitempty"`
	Brand            string                `bson:"brand,omitempty"`
	Weight           *float64              `bson:"weight,omitempty"`
	Dimensions       *dimensionsDocument   `bson:"dimensions,omitempty"`
	Images           []string              `bson:"images"`
	Thumbnail        string                `bson:"thumbnail,omitempty"`
	Status           string                `bson:"status"`
	IsFeatured       bool                  `bson:"isFeatured"`
	SEO              *seoDocument          `bson:"seo,omitempty"`
	CreatedBy        *primitive.ObjectID   `bson:"createdBy,omitempty"`
	UpdatedBy        *primitive.ObjectID   `bson:"updatedBy,omitempty"`
	CreatedAt        time.Time             `bson:"createdAt"`
	UpdatedAt        time.Time             `bson:"updatedAt"`
}

func toProductDocument(p *entity.Product) productDocument {
	doc := productDocument{
		Name:             p.Name,
		Slug:             p.Slug,
		SKU:              p.SKU,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Price:            toDecimal128(p.Price),
		SalePrice:        toDecimal128Ptr(p.SalePrice),
		CostPrice:        toDecimal128Ptr(p.CostPrice),
		Quantity:         p.Quantity,
		CategoryID:       optionalID(p.CategoryID),
		Brand:            p.Brand,
		Weight:           p.Weight,
		Images:           p.Images,
		Thumbnail:        p.Thumbnail,
		Status:           p.Status,
		IsFeatured:       p.IsFeatured,
		CreatedBy:        optionalID(p.CreatedBy),
		UpdatedBy:        optionalID(p.UpdatedBy),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if doc.Images == nil {
		doc.Images = []string{}
	}
	if oid, ok := parseID(p.ID); ok {
		doc.ID = oid
	}
	if p.Dimensions != nil {
		doc.Dimensions = &dimensionsDocument{Length: p.Dimensions.Length, Width: p.Dimensions.Width, Height: p.Dimensions.Height}
	}
	if p.SEO != nil {
		doc.SEO = &seoDocument{MetaTitle: p.SEO.MetaTitle, MetaDescription: p.SEO.MetaDescription, MetaKeywords: p.SEO.MetaKeywords}
	}
	return doc
}

func (d productDocument) toEntity() *entity.Product {
	p := &entity.Product{
		ID:               d.ID.Hex(),
		Name:             d.Name,
		Slug:             d.Slug,
		SKU:              d.SKU,
		Description:      d.Description,
		ShortDescription: d.ShortDescription,
		Price:            fromDecimal128(d.Price),
		SalePrice:        fromDecimal128Ptr(d.SalePrice),
		CostPrice:        fromDecimal128Ptr(d.CostPrice),
		Quantity:         d.Quantity,
		CategoryID:       hexOf(d.CategoryID),
		Brand:            d.Brand,
		Weight:           d.Weight,
		Images:           d.Images,
		Thumbnail:        d.Thumbnail,
		Status:           d.Status,
		IsFeatured:       d.IsFeatured,
		CreatedBy:        hexOf(d.CreatedBy),
		UpdatedBy:        hexOf(d.UpdatedBy),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if d.Dimensions != nil {
		p.Dimensions = &entity.Dimensions{Length: d.Dimensions.Length, Width: d.Dimensions.Width, Height: d.Dimensions.Height}
	}
	if d.SEO != nil {
		p.SEO = &entity.SEO{MetaTitle: d.SEO.MetaTitle, MetaDescription: d.SEO.MetaDescription, MetaKeywords: d.SEO.MetaKeywords}
	}
	return p
}
