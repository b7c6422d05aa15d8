// cmd/seed/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/shopfront/storefront-api/internal/config"
	"github.com/shopfront/storefront-api/internal/database"
	"github.com/shopfront/storefront-api/internal/database/seeds"
	"github.com/shopfront/storefront-api/internal/logging"
	"github.com/shopfront/storefront-api/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}
	logging.Setup(cfg.Log)

	file := flag.String("file", cfg.Seed.File, "JSON file with catalog entries (defaults to the built-in catalog)")
	resetOrders := flag.Bool("reset-orders", false, "delete every order before seeding")
	flag.Parse()

	if cfg.Database.Driver != config.DriverPostgres {
		logrus.Fatalf("Seeding needs DB_DRIVER=%s, got %q", config.DriverPostgres, cfg.Database.Driver)
	}

	entries := seeds.DefaultCatalog
	if *file != "" {
		entries, err = seeds.LoadFile(*file)
		if err != nil {
			logrus.Fatal(err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		logrus.Fatal("Failed to initialize database: ", err)
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		logrus.Fatal("Failed to run migrations: ", err)
	}

	store := repository.NewStore(db)

	if *resetOrders {
		if err := deleteAllOrders(ctx, store); err != nil {
			logrus.Fatal(err)
		}
	}

	result, err := seeds.Run(ctx, store, entries)
	if err != nil {
		logrus.Fatal("Failed to seed catalog: ", err)
	}

	logrus.WithFields(logrus.Fields{
		"created": result.Created,
		"updated": result.Updated,
		"source":  sourceName(*file),
	}).Info("Seed completed")
}

// deleteAllOrders removes every order; items go with them through the
// cascade.
func deleteAllOrders(ctx context.Context, store repository.Store) error {
	var deleted int
	err := store.WithTransaction(ctx, func(tx repository.Store) error {
		orders, err := tx.Orders().List(ctx)
		if err != nil {
			return err
		}
		for _, order := range orders {
			if err := tx.Orders().Delete(ctx, order.ID); err != nil {
				return err
			}
		}
		deleted = len(orders)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete orders: %w", err)
	}

	logrus.WithField("orders", deleted).Info("Orders deleted")
	return nil
}

func sourceName(file string) string {
	if file == "" {
		return "built-in"
	}
	return file
}
