package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tuckinterrors/terrors-sim/internal/cards"
	"github.com/tuckinterrors/terrors-sim/internal/config"
	"github.com/tuckinterrors/terrors-sim/internal/repository"
	"github.com/tuckinterrors/terrors-sim/internal/sim"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting simulator",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	library, err := cards.LoadLibrary(cfg.Definitions.CardsPath, cfg.Definitions.ObjectivesPath)
	if err != nil {
		logger.Fatal("failed to load definitions", zap.Error(err))
	}
	logger.Info("definitions loaded",
		zap.Int("cards", len(library.Cards)),
		zap.Int("objectives", len(library.Objectives)),
	)

	var recorder sim.Recorder
	if cfg.Database.Enabled {
		db, dbErr := repository.NewDB(ctx, cfg.Database, logger)
		if dbErr != nil {
			logger.Fatal("failed to connect to database", zap.Error(dbErr))
		}
		defer db.Close()

		results := repository.NewResultRepository(db)
		if schemaErr := results.EnsureSchema(ctx); schemaErr != nil {
			logger.Fatal("failed to prepare results schema", zap.Error(schemaErr))
		}
		recorder = results
		logger.Info("result repository initialized")
	}

	runner := sim.NewRunner(library, cfg.Simulation, cfg.Weights, recorder, logger)
	summary, err := runner.RunBatch(ctx)
	if err != nil {
		logger.Fatal("batch aborted", zap.Error(err))
	}

	fmt.Print(summary.String())
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
