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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre la colección users.
type UserRepo struct {
	col *mongo.Collection
}

// NewUserRepository construye el adaptador.
func NewUserRepository(db *mongo.Database) *UserRepo {
	return &UserRepo{col: db.Collection(UsersCollection)}
}

// Create inserta el usuario y asigna el ID generado. Email repetido → domain.ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	doc := toUserDocument(user)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return wrap(err, "insert user")
	}
	user.ID = insertedHex(res)
	return nil
}

// FindByID usuario por id; (nil, nil) si no existe o el id está malformado.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid}, "get user")
}

// FindByEmail usuario por email exacto (ya normalizado).
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, "get user by email")
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M, op string) (*entity.User, error) {
	var doc userDocument
	err := r.col.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, wrap(err, op)
	}
	return doc.toEntity(), nil
}

// FindSummaries nombre y email de varios usuarios en una sola lectura.
func (r *UserRepo) FindSummaries(ctx context.Context, ids []string) (map[string]entity.UserSummary, error) {
	out := make(map[string]entity.UserSummary, len(ids))
	oids := parseIDs(ids)
	if len(oids) == 0 {
		return out, nil
	}
	opts := options.Find().SetProjection(bson.M{"fullName": 1, "email": 1})
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, opts)
	if err != nil {
		return nil, wrap(err, "find user summaries")
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, wrap(err, "decode user summaries")
	}
	for _, d := range docs {
		out[d.ID.Hex()] = entity.UserSummary{ID: d.ID.Hex(), FullName: d.FullName, Email: d.Email}
	}
	return out, nil
}

// Upsert crea o reemplaza por email (seed). Conserva el _id existente.
func (r *UserRepo) Upsert(ctx context.Context, user *entity.User) error {
	doc := toUserDocument(user)
	set := bson.M{
		"password":  doc.Password,
		"fullName":  doc.FullName,
		"role":      doc.Role,
		"isActive":  doc.IsActive,
		"updatedAt": doc.UpdatedAt,
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"email": doc.Email, "createdAt": doc.CreatedAt},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var saved userDocument
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"email": doc.Email}, update, opts).Decode(&saved); err != nil {
		return wrap(err, "upsert user")
	}
	user.ID = saved.ID.Hex()
	return nil
}
