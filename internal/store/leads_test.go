package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadCapture(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	ts := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	obs := &observed{}
	l := NewLeadLog(b, WithLogger(quiet()), WithObserver(obs), WithClock(func() time.Time { return ts }))

	_, err := l.Capture(ctx, "   ", 100)
	assert.ErrorIs(t, err, ErrEmailRequired)
	assert.Empty(t, l.List(ctx))

	lead, err := l.Capture(ctx, " a@b.co ", 1759.6)
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", lead.Email)
	assert.Equal(t, int64(1760), lead.Payout)
	assert.Equal(t, ts.UnixMilli(), lead.TS)

	_, err = l.Capture(ctx, "c@d.co", 10)
	require.NoError(t, err)

	leads := l.List(ctx)
	require.Len(t, leads, 2)
	assert.Equal(t, "a@b.co", leads[0].Email)
	assert.Equal(t, "c@d.co", leads[1].Email)
	assert.Equal(t, []string{OpLeadCapture, OpLeadCapture}, obs.ops)
}

func TestLeadsCorruptListDegrades(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	require.NoError(t, b.Put(ctx, LeadsKey, []byte("oops")))
	l := NewLeadLog(b, WithLogger(quiet()))
	assert.Empty(t, l.List(ctx))

	_, err := l.Capture(ctx, "a@b.co", 1)
	require.NoError(t, err)
	assert.Len(t, l.List(ctx), 1)
}

func TestLeadCaptureKeepsListOnReadFailure(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	obs := &observed{}
	l := NewLeadLog(b, WithLogger(quiet()), WithObserver(obs))
	for _, e := range []string{"a@x.co", "b@x.co", "c@x.co"} {
		_, err := l.Capture(ctx, e, 100)
		require.NoError(t, err)
	}
	before, _, err := b.Get(ctx, LeadsKey)
	require.NoError(t, err)

	b.GetErr = errors.New("connection reset")
	_, err = l.Capture(ctx, "d@x.co", 100)
	assert.ErrorIs(t, err, ErrPersist)
	assert.Error(t, obs.errs[len(obs.errs)-1])
	assert.Empty(t, l.List(ctx))

	b.GetErr = nil
	after, _, err := b.Get(ctx, LeadsKey)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	_, err = l.Capture(ctx, "d@x.co", 100)
	require.NoError(t, err)
	assert.Len(t, l.List(ctx), 4)
}
