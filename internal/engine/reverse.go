package engine

type ReverseResult struct {
	ImpliedPayout  *float64 `json:"implied_payout"`
	ProfitPerVideo *float64 `json:"profit_per_video"`
	ROAS           *float64 `json:"roas"`
	ProfitPercent  *float64 `json:"profit_percent"`
}

// Solve prices a proposed CPM against the funnel revenue for the same views.
func Solve(proposedCPM, views, revenue float64) ReverseResult {
	if views <= 0 {
		return ReverseResult{}
	}
	implied := proposedCPM * (views / 1000)
	profit := revenue - implied
	out := ReverseResult{ImpliedPayout: &implied, ProfitPerVideo: &profit}
	if implied > 0 {
		roas := revenue / implied
		out.ROAS = &roas
	}
	if revenue > 0 {
		pct := 100 * (revenue - implied) / revenue
		out.ProfitPercent = &pct
	}
	return out
}
