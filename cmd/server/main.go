package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"github.com/teja123git/Maze-Generator/pkg"
	"github.com/teja123git/Maze-Generator/pkg/engine"
	"github.com/teja123git/Maze-Generator/pkg/http"
	"github.com/teja123git/Maze-Generator/pkg/http/usecases"
	"github.com/teja123git/Maze-Generator/pkg/logger"
	"github.com/teja123git/Maze-Generator/pkg/util"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "./data", "directory holding config.(yaml|json|toml)")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(*configPath); err != nil {
		panic(err)
	}

	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck // ignore

	mazeEngine, err := engine.NewEngine(engineConfig(), logger)
	if err != nil {
		logger.Fatal("failed to build maze engine", zap.Error(err))
	}

	generationService := usecases.NewGenerationService(logger, mazeEngine)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api := http.NewServer(logger)
	if _, err := api.Use(ctx, logger, http.ServerConfig(), generationService); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	if err := api.Wait(); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
	}
	generationService.CloseAll()
	logger.Info("Maze Generator Server Stopped")
}

func engineConfig() engine.Config {
	viper.SetDefault("DEFAULT_WIDTH", pkg.DEFAULT_WIDTH)
	viper.SetDefault("DEFAULT_HEIGHT", pkg.DEFAULT_HEIGHT)
	viper.SetDefault("DEFAULT_ALGORITHM", pkg.DEFAULT_ALGORITHM)
	viper.SetDefault("DEFAULT_SPEED_MS", pkg.DEFAULT_SPEED_MS)
	viper.SetDefault("MAX_DIMENSION", pkg.MAX_DIMENSION)
	viper.SetDefault("MAZE_CACHE_SIZE", 256)

	return engine.Config{
		DefaultWidth:     viper.GetInt("DEFAULT_WIDTH"),
		DefaultHeight:    viper.GetInt("DEFAULT_HEIGHT"),
		DefaultAlgorithm: viper.GetString("DEFAULT_ALGORITHM"),
		DefaultSpeed:     time.Duration(viper.GetFloat64("DEFAULT_SPEED_MS") * float64(time.Millisecond)),
		MaxDimension:     viper.GetInt("MAX_DIMENSION"),
		MazeCacheSize:    viper.GetInt("MAZE_CACHE_SIZE"),
	}
}
