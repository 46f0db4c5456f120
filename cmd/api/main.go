// @title Trivia API
// @version 1.0
// @description Categories, paginated questions, search and a stateless quiz.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /
// @schemes http
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "trivia-api/cmd/api/docs"
	"trivia-api/internal/adapter"
	"trivia-api/internal/cache"
	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/domain"
	"trivia-api/internal/logger"
	"trivia-api/internal/metrics"
	"trivia-api/internal/repository"
	"trivia-api/internal/server"
	"trivia-api/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type store struct {
	questions  domain.QuestionRepository
	categories interface {
		domain.CategoryRepository
		domain.CategoryWriter
	}
	tm     domain.TransactionManager
	health map[string]server.HealthCheck
	close  func()
}

func main() {
	seedPath := flag.String("seed", "", "seed document to load into an empty store at startup")
	flag.Parse()

	if os.Getenv("ENV") != "production" {
		// .env is optional in development
		_ = godotenv.Load()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		appLogger.Fatal("Failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer st.close()

	if *seedPath != "" {
		if err := seedStore(ctx, st, *seedPath); err != nil {
			appLogger.Fatal("Failed to seed store", zap.String("path", *seedPath), zap.Error(err))
		}
	}

	var categories domain.CategoryRepository = st.categories
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()

		cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
		categories = repository.NewCachedCategoryRepository(st.categories, cacheAdapter, cfg.Cache.CategoriesTTL)
		st.health["redis"] = cacheAdapter.Ping
		appLogger.Info("Category cache enabled", zap.Duration("ttl", cfg.Cache.CategoriesTTL))
	}

	registry := metrics.NewRegistry()
	m := metrics.New(registry)

	app := server.NewApp(cfg, server.Dependencies{
		Questions: service.NewQuestionService(st.questions, categories, m),
		Quiz:      service.NewQuizService(st.questions, nil, m),
		Metrics:   m,
		Gatherer:  registry,
		Health:    st.health,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + strconv.Itoa(cfg.Server.Port)
		appLogger.Info("Starting server", zap.String("addr", addr), zap.String("store", cfg.Store.Driver))
		return app.Listen(addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error("Server stopped with error", zap.Error(err))
		return
	}
	appLogger.Info("Server exited gracefully")
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		mem := repository.NewMemoryStore()
		return &store{
			questions:  mem,
			categories: mem,
			tm:         mem,
			health:     map[string]server.HealthCheck{},
			close:      func() {},
		}, nil
	}

	db, err := database.NewPostgresDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &store{
		questions:  repository.NewQuestionDatabaseAdapter(db),
		categories: repository.NewCategoryDatabaseAdapter(db),
		tm:         repository.NewTransactionManagerAdapter(db),
		health:     map[string]server.HealthCheck{"postgres": pingDB(db)},
		close:      func() { db.Close() },
	}, nil
}

func pingDB(db *sqlx.DB) server.HealthCheck {
	return func(ctx context.Context) error {
		return db.PingContext(ctx)
	}
}

func seedStore(ctx context.Context, st *store, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := service.DecodeSeedDocument(f)
	if err != nil {
		return err
	}
	result, err := service.NewSeedService(st.tm, st.categories, st.questions).Seed(ctx, doc)
	if err != nil {
		return err
	}
	logger.Get().Info("Seed finished",
		zap.Bool("skipped", result.Skipped),
		zap.Int("categories", result.Categories),
		zap.Int("questions", result.Questions),
	)
	return nil
}
