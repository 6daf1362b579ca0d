package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMetric(t *testing.T) {
	cases := map[string]float64{
		"":         0,
		"abc":      0,
		"12000":    12000,
		" 1.5 ":    1.5,
		"-40":      0,
		"250k":     250,
		".5":       0.5,
		"3.":       3,
		"1e3":      1000,
		"1e":       1,
		"-":        0,
		".":        0,
		"12,000":   12,
		"+7":       7,
		"NaN":      0,
		"Infinity": 0,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseMetric(in), "input %q", in)
	}
}

func TestParseMetrics(t *testing.T) {
	m := ParseMetrics("100", "x", "-3", "2")
	assert.Equal(t, 100.0, m.Views)
	assert.Zero(t, m.Likes)
	assert.Zero(t, m.Comments)
	assert.Equal(t, 2.0, m.Shares)
}
