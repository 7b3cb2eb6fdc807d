package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jhoicas/catalogo-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-admin-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/catalogo-admin-api/pkg/logger"
	"github.com/jhoicas/catalogo-admin-api/pkg/password"
	"github.com/jhoicas/catalogo-admin-api/pkg/slug"
)

// catalogctl seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Crea (o actualiza) las cuentas de prueba y las categorías base",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), cmdTimeout)
		defer cancel()

		db, log, closeDB, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer closeDB()

		s := seeder{
			users:      mongodb.NewUserRepository(db),
			categories: mongodb.NewCategoryRepository(db),
			log:        log,
			now:        time.Now,
		}
		return s.run(ctx)
	},
}

type seedAccount struct {
	email    string
	password string
	fullName string
	role     string
}

// Cuentas de desarrollo, una por rol.
var seedAccounts = []seedAccount{
	{"admin@example.com", "admin123", "Admin User", entity.RoleAdmin},
	{"manager@example.com", "manager123", "Manager User", entity.RoleManager},
	{"staff@example.com", "staff123", "Staff User", entity.RoleStaff},
	{"user@example.com", "user123", "Regular User", entity.RoleUser},
}

var seedCategories = []struct {
	name        string
	description string
}{
	{"Electrónica", "Dispositivos y accesorios electrónicos"},
	{"Ropa", "Prendas de vestir y calzado"},
	{"Hogar", "Artículos para el hogar y la cocina"},
	{"Deportes", "Equipamiento deportivo"},
}

type userUpserter interface {
	Upsert(ctx context.Context, user *entity.User) error
}

type categoryUpserter interface {
	Upsert(ctx context.Context, category *entity.Category) error
}

// seeder idempotente: por email y por slug.
type seeder struct {
	users      userUpserter
	categories categoryUpserter
	log        *logger.Logger
	now        func() time.Time
}

func (s seeder) run(ctx context.Context) error {
	now := s.now().UTC()
	for _, a := range seedAccounts {
		hash, err := password.Hash(a.password)
		if err != nil {
			return errors.Wrapf(err, "hash password %s", a.email)
		}
		u := &entity.User{
			Email:        a.email,
			PasswordHash: hash,
			FullName:     a.fullName,
			Role:         a.role,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.users.Upsert(ctx, u); err != nil {
			return errors.Wrapf(err, "seed user %s", a.email)
		}
		s.log.Info().Str("email", a.email).Str("role", a.role).Str("password", a.password).Msg("usuario sembrado")
	}

	for _, c := range seedCategories {
		cat := &entity.Category{
			Name:        c.name,
			Slug:        slug.Make(c.name),
			Description: c.description,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.categories.Upsert(ctx, cat); err != nil {
			return errors.Wrapf(err, "seed category %s", cat.Slug)
		}
		s.log.Info().Str("slug", cat.Slug).Str("id", cat.ID).Msg("categoría sembrada")
	}
	return nil
}
