package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/creator-payout/internal/metrics"
	"github.com/AngelCh415/creator-payout/internal/models"
	"github.com/AngelCh415/creator-payout/internal/store"
)

func useDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("STORE_BACKEND", "file")
	t.Setenv("STORE_DIR", dir)
	t.Setenv("EXPORT_SECRET", "")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestEstimateTable(t *testing.T) {
	useDir(t)
	out, err := run(t, "estimate", "--views", "100000", "--likes", "abc")
	require.NoError(t, err)
	assert.Contains(t, out, "$1,759")
	assert.Contains(t, out, "$17.59")
	assert.Contains(t, out, "You are likely underpaid")
}

func TestEstimateFairlyPaid(t *testing.T) {
	useDir(t)
	out, err := run(t, "estimate", "--views", "100000", "--offer", "2000")
	require.NoError(t, err)
	assert.Contains(t, out, "You are fairly paid")
}

func TestReverseJSON(t *testing.T) {
	useDir(t)
	out, err := run(t, "reverse", "--views", "100000", "--cpm", "10", "--format", "json")
	require.NoError(t, err)
	var rev struct {
		ImpliedPayout *float64 `json:"implied_payout"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rev))
	require.NotNil(t, rev.ImpliedPayout)
	assert.InDelta(t, 1000, *rev.ImpliedPayout, 1e-9)
}

func TestOfferText(t *testing.T) {
	useDir(t)
	out, err := run(t, "offer", "--views", "100000", "--package", "pack5")
	require.NoError(t, err)
	assert.Contains(t, out, "Package: 5-video pack (5 x $1,759)")
	assert.Contains(t, out, "Total: $8,796")

	out, err = run(t, "offer", "--views", "100000", "--share")
	require.NoError(t, err)
	assert.Contains(t, out, "$1,759")
}

func TestCreatorsPersistAcrossRuns(t *testing.T) {
	useDir(t)

	_, err := run(t, "creators", "add", "--name", "  ")
	assert.ErrorIs(t, err, store.ErrNameRequired)

	out, err := run(t, "creators", "add", "--name", "Dana", "--email", "d@x.co",
		"--views", "100000", "--type", "mention", "--package", "pack3", "--format", "json")
	require.NoError(t, err)
	var rec models.CreatorRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	require.NotEmpty(t, rec.ID)
	assert.Equal(t, models.MentionOnly, rec.CampaignType)

	out, err = run(t, "creators", "list", "--format", "json")
	require.NoError(t, err)
	var page metrics.Page
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Len(t, page.Rows, 1)
	assert.InDelta(t, 168.91, page.Rows[0].Result.Payout, 0.01)

	out, err = run(t, "creators", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Dana")
	assert.Contains(t, out, "1 of 1 creators")

	out, err = run(t, "creators", "replay", rec.ID, "--offer")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Hi Dana,"))
	assert.Contains(t, out, "3-video pack")

	_, err = run(t, "creators", "update", rec.ID, "--name", "Dana R")
	require.NoError(t, err)
	out, err = run(t, "creators", "show", rec.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Dana R")
	assert.NotContains(t, out, "d@x.co")

	_, err = run(t, "creators", "show", "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = run(t, "creators", "delete", rec.ID)
	require.NoError(t, err)
	out, err = run(t, "creators", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "0 of 0 creators")
}

func TestLeads(t *testing.T) {
	useDir(t)
	_, err := run(t, "leads", "add", "--email", " ")
	assert.ErrorIs(t, err, store.ErrEmailRequired)

	out, err := run(t, "leads", "add", "--email", "a@b.co", "--payout", "1759.6")
	require.NoError(t, err)
	assert.Contains(t, out, "a@b.co ($1,760)")

	out, err = run(t, "leads", "list", "--format", "json")
	require.NoError(t, err)
	var leads []models.Lead
	require.NoError(t, json.Unmarshal([]byte(out), &leads))
	require.Len(t, leads, 1)
	assert.Equal(t, int64(1760), leads[0].Payout)
}

func TestExportImport(t *testing.T) {
	useDir(t)
	t.Setenv("EXPORT_SECRET", "k")
	_, err := run(t, "creators", "add", "--name", "Dana")
	require.NoError(t, err)

	bundle := filepath.Join(t.TempDir(), "creators.json")
	_, err = run(t, "export", "--out", bundle)
	require.NoError(t, err)
	sig, err := os.ReadFile(bundle + ".sig")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(string(sig)))

	t.Setenv("STORE_DIR", t.TempDir())
	out, err := run(t, "import", bundle)
	require.NoError(t, err)
	assert.Equal(t, "imported 1 creators\n", out)

	require.NoError(t, os.WriteFile(bundle+".sig", []byte("bad"), 0o644))
	_, err = run(t, "import", bundle)
	assert.Error(t, err)
}
