package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-explorer/backend/config"
)

func TestNew(t *testing.T) {
	cfg := config.Default()
	cfg.ServerHost = "localhost"
	cfg.ServerPort = "8080"
	log, _ := test.NewNullLogger()

	srv := New(cfg, http.NotFoundHandler(), log)
	require.NotNil(t, srv)
	assert.Equal(t, "localhost:8080", srv.http.Addr)
}

func TestShutdownStopsStart(t *testing.T) {
	cfg := config.Default()
	cfg.ServerHost = "127.0.0.1"
	cfg.ServerPort = "0"
	log, _ := test.NewNullLogger()
	srv := New(cfg, http.NotFoundHandler(), log)

	errChan := make(chan error, 1)
	go func() { errChan <- srv.Start() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
