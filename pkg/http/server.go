package http

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"
	http_router "github.com/teja123git/Maze-Generator/pkg/http/router"
	"github.com/teja123git/Maze-Generator/pkg/http/router/controllers"
	http_server "github.com/teja123git/Maze-Generator/pkg/http/server"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger

	g *errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// ServerConfig reads the listener settings from viper.
func ServerConfig() http_server.Config {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("WEBSOCKET_PORT", 6666)
	viper.SetDefault("PROXY_PORT", 6767)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("USE_RATE_LIMIT", false)
	viper.SetDefault("RATE_LIMIT_RPS", 10)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("WS_HANDSHAKE_TIMEOUT", "10s")
	viper.SetDefault("WS_POOL_WORKERS", 64)
	viper.SetDefault("WS_POOL_QUEUE", 32)

	return http_server.Config{
		Port:          viper.GetInt("API_PORT"),
		WebsocketPort: viper.GetInt("WEBSOCKET_PORT"),
		ProxyPort:     viper.GetInt("PROXY_PORT"),
		Timeout:       viper.GetDuration("API_TIMEOUT"),
		UseRateLimit:  viper.GetBool("USE_RATE_LIMIT"),
		PoolWorkers:   viper.GetInt("WS_POOL_WORKERS"),
		PoolQueue:     viper.GetInt("WS_POOL_QUEUE"),
	}
}

// Use starts the rest api, the websocket server and its proxy in the background. They stop when ctx is done.
func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,
	config http_server.Config,
	generationService controllers.GenerationService,
) (*Server, error) {
	if config.PoolWorkers <= 0 {
		return nil, errors.New("websocket pool needs at least one worker")
	}

	api := http_router.NewAPI(log)

	s.g = &errgroup.Group{}
	s.g.Go(func() error {
		err := api.Run(ctx, config, generationService)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	return s, nil
}

// Wait blocks until every server started by Use returned.
func (s *Server) Wait() error {
	if s.g == nil {
		return nil
	}
	return s.g.Wait()
}

// GracefulShutdown blocks until the process receives SIGINT or SIGTERM.
func GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)
	return <-quit
}
