package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jhoicas/catalogo-admin-api/internal/infrastructure/mongodb"
)

// catalogctl indexes
var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Crea los índices únicos y de búsqueda",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), cmdTimeout)
		defer cancel()

		db, log, closeDB, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer closeDB()

		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		log.Info().Str("database", db.Name()).Msg("índices creados")
		return nil
	},
}
