// Package engine turns per-post engagement into modeled revenue and payout.
package engine

import "github.com/AngelCh415/creator-payout/internal/models"

// Conversion presets. Do not tune these per creator.
const (
	LinkProfileCTR     = 0.025
	LinkInstallRate    = 0.45
	LinkPaidConversion = 0.12
	BioAttributionLift = 1.08

	MentionSearchRate     = 0.0035
	MentionInstallRate    = 0.40
	MentionPaidConversion = 0.10

	likeWeight = 0.5
)

// Pricing is the subscription price list the lifetime value is derived from.
type Pricing struct {
	MonthlyPrice float64 `yaml:"monthly_price" env:"MONTHLY_PRICE"`
	AnnualPrice  float64 `yaml:"annual_price" env:"ANNUAL_PRICE"`
}

var DefaultPricing = Pricing{MonthlyPrice: 7.99, AnnualPrice: 64.99}

// AvgLTV averages a year of monthly billing with the annual plan.
func (p Pricing) AvgLTV() float64 {
	return (p.MonthlyPrice*12 + p.AnnualPrice) / 2
}

// Model evaluates the funnel against a fixed lifetime value.
type Model struct {
	avgLTV float64
}

var DefaultModel = NewModel(DefaultPricing)

func NewModel(p Pricing) Model { return Model{avgLTV: p.AvgLTV()} }

func (m Model) AvgLTV() float64 { return m.avgLTV }

// Evaluate is total over non-negative input. Callers clamp before calling.
func (m Model) Evaluate(in models.Metrics, ct models.CampaignType, revSharePct float64) models.FunnelResult {
	res := models.FunnelResult{
		UniqueEngaged: in.Shares + in.Comments + in.Likes*likeWeight,
	}

	switch ct {
	case models.MentionOnly:
		res.Installs = in.Views * MentionSearchRate * MentionInstallRate
		res.PaidUsers = res.Installs * MentionPaidConversion
	default:
		clicks := in.Views * LinkProfileCTR
		res.ProfileClicks = &clicks
		res.Installs = clicks * LinkInstallRate
		res.PaidUsers = res.Installs * LinkPaidConversion * BioAttributionLift
	}

	res.Revenue = res.PaidUsers * m.avgLTV
	res.Payout = res.Revenue * (revSharePct / 100)
	if in.Views > 0 {
		cpm := res.Payout / (in.Views / 1000)
		res.CPM = &cpm
	}
	if res.PaidUsers > 0 {
		cac := res.Payout / res.PaidUsers
		res.CAC = &cac
	}
	return res
}

// Evaluate runs DefaultModel.
func Evaluate(in models.Metrics, ct models.CampaignType, revSharePct float64) models.FunnelResult {
	return DefaultModel.Evaluate(in, ct, revSharePct)
}

// EarningRange is the ±25% band shown around the payout.
func EarningRange(payout float64) (low, high float64) {
	return payout * 0.75, payout * 1.25
}

// IsUnderpaid reports whether a brand offer falls below 90% of payout.
// A missing offer counts as underpaid.
func IsUnderpaid(offer *float64, payout float64) bool {
	if offer == nil {
		return true
	}
	return *offer < payout*0.9
}
