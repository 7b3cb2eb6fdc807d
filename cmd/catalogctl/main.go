// catalogctl tareas de mantenimiento sobre la base de datos del catálogo.
//
// Uso:
//
//	go run ./cmd/catalogctl seed      # cuentas de prueba y categorías base
//	go run ./cmd/catalogctl indexes   # crea los índices de MongoDB
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/catalogo-admin-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/catalogo-admin-api/pkg/config"
	"github.com/jhoicas/catalogo-admin-api/pkg/logger"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "catalogctl",
	Short:         "Mantenimiento de la base de datos del catálogo",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var cmdTimeout time.Duration

func init() {
	rootCmd.PersistentFlags().DurationVar(&cmdTimeout, "timeout", time.Minute, "tiempo máximo de la operación")
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(indexesCmd)
}

// bootDB carga la configuración y abre la base de datos. closeFn desconecta el cliente.
func bootDB(ctx context.Context) (db *mongo.Database, log *logger.Logger, closeFn func(), err error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	client, err := mongodb.NewClient(ctx, cfg.Mongo)
	if err != nil {
		return nil, nil, nil, err
	}
	closeFn = func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}
	return client.Database(cfg.Mongo.Database), log, closeFn, nil
}
