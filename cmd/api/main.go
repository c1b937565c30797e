package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/vc-intel/backend/internal/analyzer"
	"github.com/vc-intel/backend/internal/api/handlers"
	"github.com/vc-intel/backend/internal/llm"
	"github.com/vc-intel/backend/internal/metrics"
	"github.com/vc-intel/backend/internal/pipeline"
	"github.com/vc-intel/backend/internal/search/rss"
	"github.com/vc-intel/backend/internal/search/tavily"
	"github.com/vc-intel/backend/internal/storage/sqlite"
	"github.com/vc-intel/backend/pkg/config"
	appLogger "github.com/vc-intel/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	if err := cfg.Validate(); err != nil {
		appLogger.Fatal("Invalid configuration", zap.Error(err))
	}

	appLogger.Info("Starting VC Intelligence API Server")

	metrics.Init()

	sqliteClient, err := sqlite.NewClient(cfg.SQLite.Path)
	if err != nil {
		appLogger.Fatal("Failed to create SQLite client", zap.Error(err))
	}
	defer sqliteClient.Close()

	err = sqliteClient.InitSchema()
	if err != nil {
		appLogger.Fatal("Failed to initialize schema", zap.Error(err))
	}

	llmClient := llm.NewClient(
		cfg.LLM.APIKey,
		cfg.LLM.Model,
		cfg.LLM.Temperature,
		cfg.LLM.MaxTokens,
		time.Duration(cfg.LLM.TimeoutSec)*time.Second,
	)

	searchClient := tavily.NewClient(tavily.Options{
		APIKey:         cfg.Search.TavilyAPIKey,
		MaxResults:     cfg.Search.MaxResults,
		RecencyDays:    cfg.Search.RecencyDays,
		IncludeDomains: cfg.Search.IncludeDomains,
		Timeout:        time.Duration(cfg.Search.TimeoutSec) * time.Second,
		Delay:          time.Duration(cfg.Search.DelayMS) * time.Millisecond,
	})

	var feeds pipeline.FeedSource
	if cfg.RSS.Enabled {
		feeds = rss.NewFetcher(
			cfg.RSS.Feeds,
			cfg.RSS.MaxPerFeed,
			time.Duration(cfg.RSS.TimeoutSec)*time.Second,
		)
	}

	discoveryPipeline := pipeline.New(pipeline.Options{
		Rules:    analyzer.DefaultRuleset(),
		Searcher: searchClient,
		Feeds:    feeds,
		Store:    sqliteClient,
		LLM:      llmClient,
		MinScore: cfg.Scoring.MinScore,
	})

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	articlesHandler := handlers.NewArticlesHandler(sqliteClient)
	discoverHandler := handlers.NewDiscoverHandler(discoveryPipeline)

	api := app.Group("/api/v1")

	api.Post("/discover", discoverHandler.RunDiscovery)
	api.Get("/articles", articlesHandler.ListArticles)
	api.Get("/articles/:id", articlesHandler.GetArticle)
	api.Post("/feedback", articlesHandler.SubmitFeedback)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	app.Get("/metrics", metrics.MetricsHandler())

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLogger.Info("Server starting", zap.String("address", addr))

	go func() {
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down gracefully...")
	app.Shutdown()
	appLogger.Info("Server stopped")
}
