package offer

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// round mirrors half-up rounding of the display layer.
func round(n float64) int64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return int64(math.Floor(n + 0.5))
}

// Currency renders "$" + round(n) with thousands separators.
func Currency(n float64) string {
	v := round(n)
	if v < 0 {
		return printer.Sprintf("-$%d", -v)
	}
	return printer.Sprintf("$%d", v)
}

// Count renders a rounded plain count.
func Count(n float64) string { return printer.Sprintf("%d", round(n)) }

// Percent renders one decimal place.
func Percent(n float64) string { return printer.Sprintf("%.1f%%", n) }

// SharePercent drops the decimal for whole percentages: "15%", "12.5%".
func SharePercent(n float64) string {
	if n == math.Trunc(n) {
		return printer.Sprintf("%.0f%%", n)
	}
	return Percent(n)
}

// CPM renders two decimals or N/A.
func CPM(cpm *float64) string {
	if cpm == nil {
		return "N/A"
	}
	return printer.Sprintf("$%.2f", *cpm)
}

// Money renders an optional currency figure.
func Money(n *float64) string {
	if n == nil {
		return "N/A"
	}
	return Currency(*n)
}

// Ratio renders an optional multiplier such as ROAS.
func Ratio(n *float64) string {
	if n == nil {
		return "N/A"
	}
	return printer.Sprintf("%.2fx", *n)
}

// OptionalPercent renders an optional percentage.
func OptionalPercent(n *float64) string {
	if n == nil {
		return "N/A"
	}
	return Percent(*n)
}
