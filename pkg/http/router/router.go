package router

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/mailru/easygo/netpoll"
	"github.com/rs/cors"
	"github.com/teja123git/Maze-Generator/pkg/concurrent"
	"github.com/teja123git/Maze-Generator/pkg/http/router/controllers"
	router_helper "github.com/teja123git/Maze-Generator/pkg/http/router/routerhelper"
	http_server "github.com/teja123git/Maze-Generator/pkg/http/server"
	"go.uber.org/zap"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/teja123git/Maze-Generator/docs"
	_ "net/http/pprof"
)

type API struct {
	log    *zap.Logger
	hub    *controllers.Hub
	poller netpoll.Poller
	pool   *concurrent.Pool
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

//	@title			Maze Generator API
//	@version		1.0
//	@description	Streaming maze generation engine.

//	@license.name	MIT

// @host		localhost
// @BasePath	/api
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	generationService controllers.GenerationService,
) error {
	api.log.Info("Run httprouter API")

	router := httprouter.New()
	router.GET("/doc/*any", swaggerHandler)
	router.Handler(http.MethodGet, "/debug/pprof/*item", http.DefaultServeMux)

	group := router_helper.NewRouteGroup(router, "/api")
	controllers.New(generationService, api.log).Routes(group)

	var (
		errChan      = make(chan error, 1)
		errProxyChan = make(chan error, 1)
	)

	wsReady := make(chan struct{})
	go func() {
		if err := api.handleWebsocket(ctx, config, generationService, wsReady); err != nil {
			errChan <- err
		}
	}()

	proxyMux := http.NewServeMux()
	proxyMux.HandleFunc("/ws", api.upstream("maze websocket", "tcp", "localhost:"+strconv.Itoa(config.WebsocketPort)))
	proxySrv := http_server.New(ctx, proxyMux, config, true)
	go func() {
		api.log.Info(fmt.Sprintf("WebSocket proxy running on port %d", config.ProxyPort))
		if err := proxySrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errProxyChan <- err
		}
	}()

	srv := http_server.New(ctx, api.middleware(config.UseRateLimit).Then(router), config, false)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		api.log.Error("Websocket error, shutting down server", zap.Error(err))
		_ = srv.Shutdown(context.Background())
		_ = proxySrv.Shutdown(context.Background())
		return err
	case err := <-errProxyChan:
		api.log.Error("Websocket proxy error, shutting down server", zap.Error(err))
		_ = srv.Shutdown(context.Background())
		_ = proxySrv.Shutdown(context.Background())
		return err
	case err := <-serverErr:
		api.log.Info("HTTP server stopped", zap.Error(err))
		_ = proxySrv.Shutdown(context.Background())
		return err
	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		_ = srv.Shutdown(context.Background())
		_ = proxySrv.Shutdown(context.Background())
		return ctx.Err()
	}
}

// middleware. chain shared by every REST route.
func (api *API) middleware(useRateLimit bool) alice.Chain {
	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log), Labels}
	if useRateLimit {
		mwChain = append(mwChain, Limit)
	}
	return alice.New(mwChain...)
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
