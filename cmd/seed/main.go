package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/logger"
	"trivia-api/internal/repository"
	"trivia-api/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const defaultSeedFile = "configs/seed_data/trivia.json"

func main() {
	seedPath := flag.String("file", defaultSeedFile, "seed document to load")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	if cfg.Store.Driver != config.StoreDriverPostgres {
		log.Fatal("seed command needs the postgres store; start the api with -seed for the memory store",
			zap.String("driver", cfg.Store.Driver))
	}

	f, err := os.Open(*seedPath)
	if err != nil {
		log.Fatal("Failed to open seed file", zap.String("path", *seedPath), zap.Error(err))
	}
	doc, err := service.DecodeSeedDocument(f)
	f.Close()
	if err != nil {
		log.Fatal("Failed to decode seed file", zap.String("path", *seedPath), zap.Error(err))
	}

	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	seeder := service.NewSeedService(
		repository.NewTransactionManagerAdapter(db),
		repository.NewCategoryDatabaseAdapter(db),
		repository.NewQuestionDatabaseAdapter(db),
	)
	result, err := seeder.Seed(ctx, doc)
	if err != nil {
		log.Fatal("Seeding failed, transaction rolled back", zap.Error(err))
	}
	log.Info("Seeding completed",
		zap.Bool("skipped", result.Skipped),
		zap.Int("categories", result.Categories),
		zap.Int("questions", result.Questions),
	)
}
