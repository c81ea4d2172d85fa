package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	viper.Set("HTTP_SERVER_WRITE_TIMEOUT", "2s")
	viper.Set("HTTP_SERVER_READ_TIMEOUT", "3s")
	t.Cleanup(viper.Reset)

	cfg := Config{Port: 6060, WebsocketPort: 6666, ProxyPort: 6767, Timeout: 10 * time.Second}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	api := New(context.Background(), handler, cfg, false)
	assert.Equal(t, ":6060", api.Addr)
	assert.Equal(t, 12*time.Second, api.WriteTimeout)
	assert.Equal(t, 3*time.Second, api.ReadTimeout)

	ws := New(context.Background(), handler, cfg, true)
	assert.Equal(t, ":6767", ws.Addr)
	assert.Equal(t, time.Duration(0), ws.WriteTimeout)

	rec := httptest.NewRecorder()
	api.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestNewTimesOut(t *testing.T) {
	cfg := Config{Port: 6060, Timeout: 10 * time.Millisecond}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})

	srv := New(context.Background(), handler, cfg, false)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "request timed out")
}
