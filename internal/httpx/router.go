package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AngelCh415/creator-payout/internal/calculator"
	"github.com/AngelCh415/creator-payout/internal/engine"
	"github.com/AngelCh415/creator-payout/internal/metrics"
	"github.com/AngelCh415/creator-payout/internal/models"
	"github.com/AngelCh415/creator-payout/internal/offer"
	"github.com/AngelCh415/creator-payout/internal/store"
	"github.com/AngelCh415/creator-payout/internal/transfer"
	"github.com/AngelCh415/creator-payout/internal/utils"
)

const maxBody = 1 << 20

type Deps struct {
	Log          *slog.Logger
	Model        engine.Model
	Store        *store.CreatorStore
	Leads        *store.LeadLog
	Report       *metrics.Service
	Recorder     *metrics.Recorder
	Importer     *transfer.Importer
	ExportSecret string
	Backend      store.Backend
	Gatherer     prometheus.Gatherer
}

type api struct{ Deps }

func NewRouter(d Deps) http.Handler {
	a := &api{Deps: d}
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(d.Log))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", a.ready)
	if d.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	mux.Post("/estimate", a.estimate)
	mux.Post("/reverse", a.reverse)
	mux.Post("/offer", a.composeOffer)

	mux.Route("/creators", func(r chi.Router) {
		r.Get("/", a.listCreators)
		r.Post("/", a.createCreator)
		r.Get("/{id}", a.getCreator)
		r.Put("/{id}", a.updateCreator)
		r.Delete("/{id}", a.deleteCreator)
		r.Get("/{id}/estimate", a.replayEstimate)
		r.Get("/{id}/offer", a.replayOffer)
	})

	mux.Get("/leads", a.listLeads)
	mux.Post("/leads", a.captureLead)

	mux.Get("/export", a.export)
	mux.Post("/import", a.importBundle)

	return mux
}

func (a *api) ready(w http.ResponseWriter, r *http.Request) {
	if p, ok := a.Backend.(store.Pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(200)
	w.Write([]byte("ready"))
}

type estimateResponse struct {
	calculator.Estimate
	Formatted map[string]string `json:"formatted"`
	Breakdown []offer.Row        `json:"breakdown"`
	ShareText string             `json:"share_text"`
}

func (a *api) estimateFor(ws *calculator.Workspace) estimateResponse {
	est := ws.Estimate(a.Model)
	a.Recorder.ObserveEstimate(ws.CampaignType)
	res := est.Result
	return estimateResponse{
		Estimate: est,
		Formatted: map[string]string{
			"unique_engaged": offer.Count(res.UniqueEngaged),
			"installs":       offer.Count(res.Installs),
			"paid_users":     offer.Count(res.PaidUsers),
			"revenue":        offer.Currency(res.Revenue),
			"payout":         offer.Currency(res.Payout),
			"cpm":            offer.CPM(res.CPM),
			"cac":            offer.Money(res.CAC),
			"low":            offer.Currency(est.Low),
			"high":           offer.Currency(est.High),
			"revenue_share":  offer.Percent(est.RevShare),
		},
		Breakdown: offer.Breakdown(res, ws.CampaignType, est.RevShare, a.Model.AvgLTV()),
		ShareText: offer.ShareText(res.Payout),
	}
}

func (a *api) estimate(w http.ResponseWriter, r *http.Request) {
	var in estimateInput
	if !decode(w, r, &in) {
		return
	}
	writeJSON(w, http.StatusOK, a.estimateFor(in.workspace()))
}

type reverseResponse struct {
	engine.ReverseResult
	Revenue   float64           `json:"revenue"`
	Formatted map[string]string `json:"formatted"`
}

func (a *api) reverse(w http.ResponseWriter, r *http.Request) {
	var in reverseInput
	if !decode(w, r, &in) {
		return
	}
	ws := in.workspace()
	m := ws.Metrics()
	res := a.Model.Evaluate(m, ws.CampaignType, ws.RevShare())
	a.Recorder.ObserveEstimate(ws.CampaignType)
	rev := engine.Solve(engine.ParseMetric(string(in.ProposedCPM)), m.Views, res.Revenue)
	writeJSON(w, http.StatusOK, reverseResponse{
		ReverseResult: rev,
		Revenue:       res.Revenue,
		Formatted: map[string]string{
			"implied_payout":   offer.Money(rev.ImpliedPayout),
			"profit_per_video": offer.Money(rev.ProfitPerVideo),
			"roas":             offer.Ratio(rev.ROAS),
			"profit_percent":   offer.OptionalPercent(rev.ProfitPercent),
		},
	})
}

func (a *api) composeOffer(w http.ResponseWriter, r *http.Request) {
	var in estimateInput
	if !decode(w, r, &in) {
		return
	}
	ws := in.workspace()
	est := ws.Estimate(a.Model)
	a.Recorder.ObserveEstimate(ws.CampaignType)
	writeText(w, offer.Compose(est.Result, est.Result.CPM, ws.Metrics().Views, ws.PaymentPackage))
}

func (a *api) listCreators(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Report.Query(r.URL.Query()))
}

func (a *api) createCreator(w http.ResponseWriter, r *http.Request) {
	var d models.CreatorDraft
	if !decode(w, r, &d) {
		return
	}
	rec, err := a.Store.Create(r.Context(), d)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (a *api) getCreator(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.Store.Get(chi.URLParam(r, "id"))
	if !ok {
		writeErr(w, store.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (a *api) updateCreator(w http.ResponseWriter, r *http.Request) {
	var d models.CreatorDraft
	if !decode(w, r, &d) {
		return
	}
	rec, err := a.Store.Update(r.Context(), chi.URLParam(r, "id"), d)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (a *api) deleteCreator(w http.ResponseWriter, r *http.Request) {
	if err := a.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) replayWorkspace(w http.ResponseWriter, r *http.Request) (models.CreatorRecord, *calculator.Workspace, bool) {
	id := chi.URLParam(r, "id")
	set, err := a.Store.LoadForReplay(id)
	if err != nil {
		writeErr(w, err)
		return models.CreatorRecord{}, nil, false
	}
	rec, _ := a.Store.Get(id)
	ws := calculator.New()
	ws.Apply(set)
	return rec, ws, true
}

func (a *api) replayEstimate(w http.ResponseWriter, r *http.Request) {
	rec, ws, ok := a.replayWorkspace(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"creator":  rec,
		"estimate": a.estimateFor(ws),
	})
}

func (a *api) replayOffer(w http.ResponseWriter, r *http.Request) {
	rec, ws, ok := a.replayWorkspace(w, r)
	if !ok {
		return
	}
	est := ws.Estimate(a.Model)
	a.Recorder.ObserveEstimate(ws.CampaignType)
	writeText(w, offer.ComposeFor(rec.Name, est.Result, est.Result.CPM, ws.Metrics().Views, ws.PaymentPackage))
}

type leadInput struct {
	Email  string  `json:"email"`
	Payout float64 `json:"payout"`
}

func (a *api) captureLead(w http.ResponseWriter, r *http.Request) {
	var in leadInput
	if !decode(w, r, &in) {
		return
	}
	lead, err := a.Leads.Capture(r.Context(), in.Email, in.Payout)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lead)
}

func (a *api) listLeads(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Leads.List(r.Context()))
}

func (a *api) export(w http.ResponseWriter, r *http.Request) {
	body, sig, err := transfer.Export(a.Store.List(), a.ExportSecret, time.Now())
	if err != nil {
		writeErr(w, err)
		return
	}
	if sig != "" {
		w.Header().Set(transfer.SignatureHeader, sig)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="creators.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (a *api) importBundle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 32*maxBody))
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}
	n, err := a.Importer.Apply(r.Context(), body, r.Header.Get(transfer.SignatureHeader))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"imported": n})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNameRequired), errors.Is(err, store.ErrEmailRequired):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, transfer.ErrMalformed):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, transfer.ErrBadSignature):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}

func writeText(w http.ResponseWriter, s string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, s)
}
