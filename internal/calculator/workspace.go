// Package calculator holds the active, editable state of the estimate screen.
package calculator

import (
	"strconv"

	"github.com/AngelCh415/creator-payout/internal/engine"
	"github.com/AngelCh415/creator-payout/internal/models"
)

// Workspace keeps metric fields as typed text; they are coerced on every read.
type Workspace struct {
	Views    string
	Likes    string
	Comments string
	Shares   string

	CampaignType        models.CampaignType
	PaymentPackage      models.PaymentPackage
	RevenueSharePercent float64
	// CurrentOffer is what brands offer today. Empty means no offer.
	CurrentOffer string
}

func New() *Workspace {
	return &Workspace{
		CampaignType:        models.LinkInBio,
		PaymentPackage:      models.Single,
		RevenueSharePercent: models.DefaultRevShare,
	}
}

func (w *Workspace) Metrics() models.Metrics {
	return engine.ParseMetrics(w.Views, w.Likes, w.Comments, w.Shares)
}

func (w *Workspace) RevShare() float64 { return models.ClampRevShare(w.RevenueSharePercent) }

// Offer is the parsed current offer, nil when absent or zero.
func (w *Workspace) Offer() *float64 {
	v := engine.ParseMetric(w.CurrentOffer)
	if v == 0 {
		return nil
	}
	return &v
}

// Apply overwrites the working state with a saved record's settings.
func (w *Workspace) Apply(s models.Settings) {
	w.Views = formatMetric(s.Metrics.Views)
	w.Likes = formatMetric(s.Metrics.Likes)
	w.Comments = formatMetric(s.Metrics.Comments)
	w.Shares = formatMetric(s.Metrics.Shares)
	w.CampaignType = models.ParseCampaignType(string(s.CampaignType))
	w.PaymentPackage = models.ParsePaymentPackage(string(s.PaymentPackage))
	w.RevenueSharePercent = models.ClampRevShare(s.RevenueSharePercent)
}

// Settings snapshots the working state for saving.
func (w *Workspace) Settings() models.Settings {
	return models.Settings{
		Metrics:             w.Metrics(),
		CampaignType:        models.ParseCampaignType(string(w.CampaignType)),
		PaymentPackage:      models.ParsePaymentPackage(string(w.PaymentPackage)),
		RevenueSharePercent: w.RevShare(),
	}
}

// Estimate is everything the estimate screen derives from the workspace.
type Estimate struct {
	Result       models.FunnelResult `json:"result"`
	Tier         engine.Tier         `json:"tier"`
	Overpriced   bool                `json:"overpriced"`
	Low          float64             `json:"low"`
	High         float64             `json:"high"`
	Underpaid    bool                `json:"underpaid"`
	RevShare     float64             `json:"revenue_share_percent"`
	HasViews     bool                `json:"has_views"`
	CurrentOffer *float64            `json:"current_offer"`
}

func (w *Workspace) Estimate(m engine.Model) Estimate {
	in := w.Metrics()
	pct := w.RevShare()
	res := m.Evaluate(in, models.ParseCampaignType(string(w.CampaignType)), pct)
	low, high := engine.EarningRange(res.Payout)
	offer := w.Offer()
	return Estimate{
		Result:       res,
		Tier:         engine.Classify(pct),
		Overpriced:   engine.IsOverpriced(res.Revenue, res.Payout),
		Low:          low,
		High:         high,
		Underpaid:    engine.IsUnderpaid(offer, res.Payout),
		RevShare:     pct,
		HasViews:     in.Views > 0,
		CurrentOffer: offer,
	}
}

func formatMetric(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
