// Package offer renders funnel estimates as outbound text.
package offer

import (
	"strings"

	"github.com/AngelCh415/creator-payout/internal/engine"
	"github.com/AngelCh415/creator-payout/internal/models"
)

// Compose renders the offer block for one estimate.
func Compose(res models.FunnelResult, cpm *float64, views float64, pkg models.PaymentPackage) string {
	return compose("", res, cpm, views, pkg)
}

// ComposeFor is Compose with a greeting for a named creator.
func ComposeFor(name string, res models.FunnelResult, cpm *float64, views float64, pkg models.PaymentPackage) string {
	return compose(strings.TrimSpace(name), res, cpm, views, pkg)
}

func compose(name string, res models.FunnelResult, cpm *float64, views float64, pkg models.PaymentPackage) string {
	var b strings.Builder
	if name != "" {
		b.WriteString("Hi " + name + ",\n\n")
	}
	b.WriteString(printer.Sprintf("Based on your average of %s views per post, we'd like to offer:\n\n", Count(views)))
	b.WriteString(printer.Sprintf("Rate per video: %s\n", Currency(res.Payout)))
	b.WriteString(printer.Sprintf("Effective CPM: %s\n", CPM(cpm)))
	b.WriteString(printer.Sprintf("Package: %s (%d x %s)\n", pkg.Label(), pkg.N(), Currency(res.Payout)))
	b.WriteString(printer.Sprintf("Total: %s\n", Currency(res.Payout*float64(pkg.N()))))
	return b.String()
}

// ShareText is the short blurb a creator can post about their estimate.
func ShareText(payout float64) string {
	return "I should be making ~" + Currency(payout) + " per post based on my stats 👀\n\nCheck what you should be earning →"
}

// Row is one labelled step of the calculation breakdown.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Hint  string `json:"hint"`
}

// Breakdown explains each funnel step the way the estimate screen does.
func Breakdown(res models.FunnelResult, ct models.CampaignType, revSharePct float64, avgLTV float64) []Row {
	rows := []Row{{
		Label: "People who interacted",
		Value: Count(res.UniqueEngaged),
		Hint:  "Weighted sum of likes, comments, and shares",
	}}
	if ct == models.MentionOnly {
		rows = append(rows,
			Row{Label: "Expected installs", Value: Count(res.Installs), Hint: "0.35% of viewers search and install later"},
			Row{Label: "Expected paying customers", Value: Count(res.PaidUsers), Hint: "10% convert to paid"},
		)
	} else {
		clicks := 0.0
		if res.ProfileClicks != nil {
			clicks = *res.ProfileClicks
		}
		rows = append(rows,
			Row{Label: "Estimated profile visitors", Value: Count(clicks), Hint: "2.5% of viewers click through to the profile"},
			Row{Label: "Expected installs", Value: Count(res.Installs), Hint: "45% of profile visitors install"},
			Row{Label: "Expected paying customers", Value: Count(res.PaidUsers), Hint: "12% convert to paid (+8% bio attribution)"},
		)
	}
	return append(rows,
		Row{Label: "Revenue your content generates", Value: Currency(res.Revenue), Hint: printer.Sprintf("$%.2f avg customer lifetime value", avgLTV)},
		Row{Label: "Your fair share (" + SharePercent(revSharePct) + ")", Value: Currency(res.Payout), Hint: engine.Classify(revSharePct).String() + " creator revenue share"},
	)
}
