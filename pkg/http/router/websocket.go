package router

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/gobwas/ws"
	"github.com/mailru/easygo/netpoll"
	"github.com/spf13/viper"
	"github.com/teja123git/Maze-Generator/pkg/concurrent"
	"github.com/teja123git/Maze-Generator/pkg/http/router/controllers"
	http_server "github.com/teja123git/Maze-Generator/pkg/http/server"
	"go.uber.org/zap"
)

/*
handleWebsocket. accept websocket connections on the websocket port.

connections are not served by one goroutine each: the listener and every upgraded connection are
registered with epoll (netpoll), and a goroutine from the pool is borrowed only when a connection has
a frame to read. the maze stream of a connection is written by its session's drive goroutine.
ref: https://sergey.kamardin.org/articles/million-websocket-and-go/
*/
func (api *API) handleWebsocket(ctx context.Context, config http_server.Config,
	generationService controllers.GenerationService, ready chan<- struct{},
) error {
	ln, err := net.Listen("tcp", ":"+strconv.Itoa(config.WebsocketPort))
	if err != nil {
		return err
	}
	defer ln.Close()
	api.log.Info(fmt.Sprintf("maze websocket server run on port %d", config.WebsocketPort))

	api.poller, err = netpoll.New(nil)
	if err != nil {
		return err
	}

	acceptDesc, err := netpoll.HandleListener(ln, netpoll.EventRead|netpoll.EventOneShot)
	if err != nil {
		return err
	}

	api.pool = concurrent.NewPool(config.PoolWorkers, config.PoolQueue)
	api.hub = controllers.NewHub(generationService, api.log)
	api.pool.Spawn(config.PoolWorkers / 4)

	// accept is a channel to signal about next incoming connection Accept() results.
	accept := make(chan error, 1)

	err = api.poller.Start(acceptDesc, func(ev netpoll.Event) {
		defer api.poller.Resume(acceptDesc)

		err := api.pool.ScheduleTimeout(time.Millisecond, func() {
			conn, err := ln.Accept()
			if err != nil {
				accept <- err
				return
			}

			accept <- nil
			api.handle(conn)
		})
		if err == nil {
			err = <-accept
		}
		if err != nil {
			var ne net.Error
			switch {
			case errors.Is(err, concurrent.ErrScheduleTimeout):
				// the pool is saturated, cool down before taking the next connection
				api.log.Warn("accept error, retrying", zap.Error(err), zap.Duration("delay", 5*time.Millisecond))
				time.Sleep(5 * time.Millisecond)
			case errors.As(err, &ne) && ne.Timeout():
				api.log.Warn("accept error, retrying", zap.Error(err), zap.Duration("delay", 5*time.Millisecond))
				time.Sleep(5 * time.Millisecond)
			case errors.Is(err, net.ErrClosed), errors.Is(err, concurrent.ErrPoolClosed):
			default:
				api.log.Error("accept error", zap.Error(err))
			}
		}
	})
	if err != nil {
		return err
	}
	if ready != nil {
		close(ready)
	}

	<-ctx.Done()

	_ = api.poller.Stop(acceptDesc)
	api.hub.RemoveAllUser()
	api.pool.Close()

	api.log.Info("websocket server stopped")
	return nil
}

/*
handle. upgrade conn and register it with the poller.

reads use one-shot notifications: after a frame was handled the descriptor is resumed, so the
commands of one connection are handled one at a time and in the order they were sent.
*/
func (api *API) handle(conn net.Conn) {
	if d := viper.GetDuration("WS_HANDSHAKE_TIMEOUT"); d > 0 {
		_ = conn.SetDeadline(time.Now().Add(d))
	}
	hs, err := ws.Upgrade(conn)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("connection", nameConn(conn)))
		conn.Close()
		return
	}
	_ = conn.SetDeadline(time.Time{})

	user := api.hub.Register(conn)
	api.log.Info("established websocket connection", zap.String("connection", nameConn(conn)),
		zap.String("conn_id", user.ID()), zap.String("protocol", hs.Protocol))

	desc, err := netpoll.HandleReadOnce(conn)
	if err != nil {
		api.log.Error("failed to register connection with poller", zap.Error(err))
		api.hub.Remove(user)
		return
	}
	user.OnClose(func() {
		_ = api.poller.Stop(desc)
		_ = desc.Close()
	})

	err = api.poller.Start(desc, func(ev netpoll.Event) {
		if ev&(netpoll.EventReadHup|netpoll.EventHup) != 0 {
			// the peer closed its end, any frame still buffered is dropped with the session
			api.log.Info("user disconnected from websocket server", zap.String("conn_id", user.ID()))
			api.hub.Remove(user)
			return
		}

		api.pool.Schedule(func() {
			if err := user.Receive(); err != nil {
				api.log.Info("closing websocket connection", zap.String("conn_id", user.ID()), zap.Error(err))
				api.hub.Remove(user)
				return
			}
			_ = api.poller.Resume(desc)
		})
	})
	if err != nil {
		api.log.Error("failed to start polling connection", zap.Error(err))
		api.hub.Remove(user)
	}
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}
