package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/creator-payout/internal/config"
	"github.com/AngelCh415/creator-payout/internal/httpx"
	"github.com/AngelCh415/creator-payout/internal/models"
)

func TestNewFileBackedAppSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Store.Dir = t.TempDir()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	a, err := New(ctx, cfg, log)
	require.NoError(t, err)
	rec, err := a.Store.Create(ctx, models.CreatorDraft{Name: "Dana"})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	b, err := New(ctx, cfg, log)
	require.NoError(t, err)
	defer b.Close()
	got, ok := b.Store.Get(rec.ID)
	require.True(t, ok)
	assert.Equal(t, rec, got)

	h := httpx.NewRouter(b.Deps())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/creators/"+rec.ID+"/offer", strings.NewReader("")))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestNewRejectsBadBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Backend = "nope"
	_, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
