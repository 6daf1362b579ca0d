package metrics

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/AngelCh415/creator-payout/internal/engine"
	"github.com/AngelCh415/creator-payout/internal/models"
	"github.com/AngelCh415/creator-payout/internal/store"
)

// Row is one creator with its estimate replayed from the saved settings.
type Row struct {
	Creator    models.CreatorRecord `json:"creator"`
	Result     models.FunnelResult  `json:"result"`
	Tier       engine.Tier          `json:"tier"`
	Overpriced bool                 `json:"overpriced"`
	Total      float64              `json:"package_total"`
}

type Page struct {
	Total  int   `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Rows   []Row `json:"rows"`
}

type Service struct {
	st    *store.CreatorStore
	model engine.Model
	rec   *Recorder
}

func NewService(st *store.CreatorStore, model engine.Model, rec *Recorder) *Service {
	return &Service{st: st, model: model, rec: rec}
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func csvSet(s string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, p := range strings.Split(s, ",") {
		p = norm(p)
		if p != "" {
			out[p] = struct{}{}
		}
	}
	return out
}

// Replay evaluates one saved record.
func (s *Service) Replay(r models.CreatorRecord) Row {
	pct := models.ClampRevShare(r.RevenueSharePercent)
	res := s.model.Evaluate(r.Metrics.Clamped(), r.CampaignType, pct)
	s.rec.ObserveEstimate(r.CampaignType)
	return Row{
		Creator:    r,
		Result:     res,
		Tier:       engine.Classify(pct),
		Overpriced: engine.IsOverpriced(res.Revenue, res.Payout),
		Total:      res.Payout * float64(r.PaymentPackage.N()),
	}
}

// Query filters by campaign_type, tier and q, sorts by sort and paginates with limit/offset.
func (s *Service) Query(v url.Values) Page {
	types := csvSet(v.Get("campaign_type"))
	tiers := csvSet(v.Get("tier"))
	q := norm(v.Get("q"))
	limit := atoiDef(v.Get("limit"), 100)
	offset := atoiDef(v.Get("offset"), 0)

	var rows []Row
	for _, r := range s.st.List() {
		if len(types) > 0 {
			if _, ok := types[string(r.CampaignType)]; !ok {
				continue
			}
		}
		if q != "" && !strings.Contains(norm(r.Name), q) {
			continue
		}
		row := s.Replay(r)
		if len(tiers) > 0 {
			if _, ok := tiers[norm(row.Tier.String())]; !ok {
				continue
			}
		}
		rows = append(rows, row)
	}

	switch norm(v.Get("sort")) {
	case "payout":
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Result.Payout > rows[j].Result.Payout })
	case "name":
		sort.SliceStable(rows, func(i, j int) bool { return norm(rows[i].Creator.Name) < norm(rows[j].Creator.Name) })
	case "created":
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Creator.CreatedAt.Before(rows[j].Creator.CreatedAt) })
	}

	limit, offset = clampLimitOffset(limit, offset, len(rows))
	return Page{Total: len(rows), Limit: limit, Offset: offset, Rows: paginate(rows, limit, offset)}
}

func paginate[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func atoiDef(s string, d int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}

func clampLimitOffset(limit, offset, n int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset > n {
		offset = n
	}
	return limit, offset
}
