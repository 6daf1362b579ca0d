package engine

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/AngelCh415/creator-payout/internal/models"
)

// ParseMetric reads the leading number of s. Anything unparseable or negative is 0.
func ParseMetric(s string) float64 {
	s = strings.TrimSpace(s)
	end := numericPrefix(s)
	if end == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return models.NonNegative(f)
}

// numericPrefix returns the length of the longest prefix shaped like a decimal number.
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && unicode.IsDigit(rune(s[i])) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && unicode.IsDigit(rune(s[j])) {
			j++
			frac++
		}
		if frac > 0 || digits > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && unicode.IsDigit(rune(s[j])) {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}
	return i
}

// ParseMetrics coerces the four raw fields.
func ParseMetrics(views, likes, comments, shares string) models.Metrics {
	return models.Metrics{
		Views:    ParseMetric(views),
		Likes:    ParseMetric(likes),
		Comments: ParseMetric(comments),
		Shares:   ParseMetric(shares),
	}
}
