package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/repository"
	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/service"
	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/pkg/config"
)

// newTestService builds a Service over a real snapshot store in a temp dir,
// hydrated with the built-in seed set.
func newTestService(t *testing.T) *service.Service {
	t.Helper()

	store, err := repository.Open(filepath.Join(t.TempDir(), "techservice.db"))
	require.NoError(t, err)

	t.Cleanup(func() { _ = store.Close() })

	snap, err := store.Load(context.Background())
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:  "test-secret",
		SessionTTL: time.Hour,
	}

	return service.NewService(cfg, store, snap)
}
