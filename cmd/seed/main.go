// Seeds a development database with demo storefront data.
package main

import (
	"flag"
	"log"

	"shopmetrics/internal/config"
	"shopmetrics/internal/database"
	"shopmetrics/internal/logging"
	"shopmetrics/internal/seeder"
)

func main() {
	productCount := flag.Int("products", 40, "number of demo products to create")
	orderCount := flag.Int("orders", 500, "number of demo orders to create")
	flag.Parse()

	cfg := config.GetConfig()
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	logger := logging.NewLogger(cfg)

	dbManager := database.NewDBManager(cfg, logger)
	if err := dbManager.Init(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := dbManager.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	s := seeder.NewSeeder(dbManager.GetConnection(), logger, *productCount, *orderCount)
	if err := s.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
