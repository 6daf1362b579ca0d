// Package app wires configuration, storage and the core for the binaries.
package app

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AngelCh415/creator-payout/internal/config"
	"github.com/AngelCh415/creator-payout/internal/engine"
	"github.com/AngelCh415/creator-payout/internal/httpx"
	"github.com/AngelCh415/creator-payout/internal/metrics"
	"github.com/AngelCh415/creator-payout/internal/store"
	"github.com/AngelCh415/creator-payout/internal/transfer"
)

type App struct {
	Cfg      config.Config
	Log      *slog.Logger
	Model    engine.Model
	Backend  store.Backend
	Store    *store.CreatorStore
	Leads    *store.LeadLog
	Recorder *metrics.Recorder
	Report   *metrics.Service
	Importer *transfer.Importer
	Registry *prometheus.Registry

	closeFn func() error
}

func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	b, closeFn, err := store.OpenBackend(ctx, cfg.Store, log)
	if err != nil {
		return nil, err
	}
	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)
	model := engine.NewModel(cfg.Pricing)
	st := store.Open(ctx, store.NewDocumentRepository(b, store.CreatorsKey),
		store.WithLogger(log), store.WithObserver(rec))
	log.Info("store ready",
		slog.String("backend", cfg.Store.Backend),
		slog.Int("creators", len(st.List())),
		slog.Float64("avg_ltv", model.AvgLTV()))
	return &App{
		Cfg:      cfg,
		Log:      log,
		Model:    model,
		Backend:  b,
		Store:    st,
		Leads:    store.NewLeadLog(b, store.WithLogger(log), store.WithObserver(rec)),
		Recorder: rec,
		Report:   metrics.NewService(st, model, rec),
		Importer: transfer.NewImporter(transfer.NewHTTPClient(cfg.HTTPTimeout), st, log, cfg.ExportSecret),
		Registry: reg,
		closeFn:  closeFn,
	}, nil
}

func (a *App) Deps() httpx.Deps {
	return httpx.Deps{
		Log:          a.Log,
		Model:        a.Model,
		Store:        a.Store,
		Leads:        a.Leads,
		Report:       a.Report,
		Recorder:     a.Recorder,
		Importer:     a.Importer,
		ExportSecret: a.Cfg.ExportSecret,
		Backend:      a.Backend,
		Gatherer:     a.Registry,
	}
}

func (a *App) Close() error { return a.closeFn() }
