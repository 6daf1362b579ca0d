package engine

import (
	"encoding/json"
	"strings"
)

type Tier int

const (
	Conservative Tier = iota
	Normal
	GrowthMode
)

func (t Tier) String() string {
	switch t {
	case Conservative:
		return "Conservative"
	case Normal:
		return "Normal"
	default:
		return "Growth mode"
	}
}

func (t Tier) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *Tier) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = ParseTier(s)
	return nil
}

// ParseTier reads a tier label. Unknown labels read as Normal.
func ParseTier(s string) Tier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "conservative":
		return Conservative
	case "growth mode", "growth", "growthmode":
		return GrowthMode
	default:
		return Normal
	}
}

// Classify buckets a revenue-share percentage.
func Classify(revSharePct float64) Tier {
	switch {
	case revSharePct <= 12:
		return Conservative
	case revSharePct <= 18:
		return Normal
	default:
		return GrowthMode
	}
}

// IsOverpriced flags a payout above 35% of revenue. Display only.
func IsOverpriced(revenue, payout float64) bool {
	return revenue > 0 && payout > 0.35*revenue
}
