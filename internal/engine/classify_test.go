package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		pct  float64
		want Tier
	}{
		{10, Conservative},
		{12, Conservative},
		{12.5, Normal},
		{15, Normal},
		{18, Normal},
		{18.1, GrowthMode},
		{30, GrowthMode},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(c.pct), "pct=%v", c.pct)
	}
	assert.Equal(t, "Growth mode", GrowthMode.String())

	b, err := json.Marshal(Normal)
	assert.NoError(t, err)
	assert.JSONEq(t, `"Normal"`, string(b))

	var back Tier
	assert.NoError(t, json.Unmarshal([]byte(`"Growth mode"`), &back))
	assert.Equal(t, GrowthMode, back)
	assert.Equal(t, Conservative, ParseTier(" conservative "))
}

func TestIsOverpriced(t *testing.T) {
	assert.False(t, IsOverpriced(0, 0))
	assert.False(t, IsOverpriced(0, 100))
	assert.False(t, IsOverpriced(100, 35))
	assert.True(t, IsOverpriced(100, 35.01))
	assert.False(t, IsOverpriced(100, 0))
}
