package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/creator-payout/internal/models"
)

func TestAvgLTVFromPricing(t *testing.T) {
	assert.InDelta(t, 80.435, DefaultModel.AvgLTV(), 1e-9)

	m := NewModel(Pricing{MonthlyPrice: 10, AnnualPrice: 100})
	assert.InDelta(t, 110.0, m.AvgLTV(), 1e-9)
}

func TestEvaluateLinkInBio(t *testing.T) {
	res := Evaluate(models.Metrics{Views: 100000}, models.LinkInBio, 15)

	require.NotNil(t, res.ProfileClicks)
	assert.InDelta(t, 2500, *res.ProfileClicks, 1e-9)
	assert.InDelta(t, 1125, res.Installs, 1e-9)
	assert.InDelta(t, 145.8, res.PaidUsers, 1e-9)
	assert.InDelta(t, 11727.42, res.Revenue, 0.01)
	assert.InDelta(t, 1759.11, res.Payout, 0.01)
	require.NotNil(t, res.CPM)
	assert.InDelta(t, 17.59, *res.CPM, 0.01)
	require.NotNil(t, res.CAC)
	assert.InDelta(t, res.Payout/res.PaidUsers, *res.CAC, 1e-9)
}

func TestEvaluateMentionOnly(t *testing.T) {
	res := Evaluate(models.Metrics{Views: 100000}, models.MentionOnly, 15)

	assert.Nil(t, res.ProfileClicks)
	assert.InDelta(t, 140, res.Installs, 1e-9)
	assert.InDelta(t, 14, res.PaidUsers, 1e-9)
	assert.InDelta(t, 1126.09, res.Revenue, 1e-6)
	assert.InDelta(t, 168.91, res.Payout, 0.01)
}

func TestEvaluateZeroViews(t *testing.T) {
	for _, ct := range []models.CampaignType{models.LinkInBio, models.MentionOnly} {
		res := Evaluate(models.Metrics{Likes: 500, Comments: 40, Shares: 12}, ct, 20)
		assert.Nil(t, res.CPM, ct)
		assert.Nil(t, res.CAC, ct)
		assert.Zero(t, res.Installs, ct)
		assert.Zero(t, res.PaidUsers, ct)
		assert.Zero(t, res.Revenue, ct)
		assert.Zero(t, res.Payout, ct)
		assert.InDelta(t, 302, res.UniqueEngaged, 1e-9, ct)
	}
}

func TestUniqueEngagedMayExceedViews(t *testing.T) {
	res := Evaluate(models.Metrics{Views: 10, Likes: 100, Comments: 5, Shares: 5}, models.LinkInBio, 15)
	assert.InDelta(t, 60, res.UniqueEngaged, 1e-9)
	assert.Greater(t, res.UniqueEngaged, 10.0)
}

func TestPayoutMonotonic(t *testing.T) {
	base := models.Metrics{Views: 50000, Likes: 2000, Comments: 100, Shares: 50}
	bump := []func(models.Metrics) models.Metrics{
		func(m models.Metrics) models.Metrics { m.Views *= 2; return m },
		func(m models.Metrics) models.Metrics { m.Likes *= 2; return m },
		func(m models.Metrics) models.Metrics { m.Comments *= 2; return m },
		func(m models.Metrics) models.Metrics { m.Shares *= 2; return m },
	}
	for _, ct := range []models.CampaignType{models.LinkInBio, models.MentionOnly} {
		before := Evaluate(base, ct, 15).Payout
		for i, f := range bump {
			after := Evaluate(f(base), ct, 15).Payout
			assert.GreaterOrEqual(t, after, before, "bump %d %s", i, ct)
		}
		prev := 0.0
		for pct := 10.0; pct <= 30; pct += 2.5 {
			p := Evaluate(base, ct, pct).Payout
			assert.GreaterOrEqual(t, p, prev)
			prev = p
		}
	}
}

func TestEarningRangeAndUnderpaid(t *testing.T) {
	low, high := EarningRange(1000)
	assert.InDelta(t, 750, low, 1e-9)
	assert.InDelta(t, 1250, high, 1e-9)

	assert.True(t, IsUnderpaid(nil, 1000))
	offer := 899.0
	assert.True(t, IsUnderpaid(&offer, 1000))
	offer = 900
	assert.False(t, IsUnderpaid(&offer, 1000))
}
