// Package main provides the inventoryd binary entry point.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/mercatto/inventory-service/app/categories"
	"github.com/mercatto/inventory-service/app/products"
	"github.com/mercatto/inventory-service/app/rest"
	"github.com/mercatto/inventory-service/config"
	"github.com/mercatto/inventory-service/models"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "inventoryd",
		Short:        "Inventory management backend",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), migrateCmd())
	return root
}

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg.LogLevel)

			db, err := openAndMigrate(cfg)
			if err != nil {
				return err
			}
			logger.Info("database connection established")

			categoryRepo := models.NewCategoriesRepository(db)
			productRepo := models.NewProductsRepository(db)

			categoryService := categories.NewService(categoryRepo, productRepo, logger)
			productService := products.NewService(productRepo, categoryService, logger)

			router := rest.NewRouter(categoryService, productService, logger)

			if addr == "" {
				addr = cfg.HTTPAddr
			}
			logger.WithField("addr", addr).Info("starting HTTP server")
			return router.Run(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if _, err := openAndMigrate(cfg); err != nil {
				return err
			}
			newLogger(cfg.LogLevel).Info("schema migrated")
			return nil
		},
	}
}

func openAndMigrate(cfg *config.Config) (*gorm.DB, error) {
	db, err := models.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := models.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return db, nil
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	return logger
}
