package transfer

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/creator-payout/internal/models"
	"github.com/AngelCh415/creator-payout/internal/store"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newStore(t *testing.T) *store.CreatorStore {
	t.Helper()
	return store.Open(context.Background(),
		store.NewDocumentRepository(store.NewMemoryBackend(), store.CreatorsKey),
		store.WithLogger(quiet()))
}

func TestExportSignVerify(t *testing.T) {
	at := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	recs := []models.CreatorRecord{{ID: "a", Name: "A", CampaignType: models.LinkInBio}}

	body, sig, err := Export(recs, "s3cret", at)
	require.NoError(t, err)
	assert.Len(t, sig, 64)
	assert.NoError(t, Verify(body, sig, "s3cret"))
	assert.ErrorIs(t, Verify(body, sig, "other"), ErrBadSignature)
	assert.ErrorIs(t, Verify(append(body, ' '), sig, "s3cret"), ErrBadSignature)
	assert.NoError(t, Verify(body, "", ""))

	got, err := Decode(body)
	require.NoError(t, err)
	assert.Equal(t, recs, got)

	_, sig, err = Export(nil, "", at)
	require.NoError(t, err)
	assert.Empty(t, sig)
}

func TestDecodeBareArray(t *testing.T) {
	got, err := Decode([]byte(`[{"id":"x","name":"X"}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "X", got[0].Name)

	_, err = Decode([]byte(`nope`))
	assert.Error(t, err)
}

func TestImportFromFileWithSignature(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	body, sig, err := Export([]models.CreatorRecord{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}, "k", time.Now())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bundle.json")
	require.NoError(t, os.WriteFile(path, body, 0o600))

	im := NewImporter(NewHTTPClient(time.Second), st, quiet(), "k")
	_, err = im.Run(ctx, path)
	assert.ErrorIs(t, err, ErrBadSignature)
	assert.Empty(t, st.List())

	require.NoError(t, os.WriteFile(path+".sig", []byte(sig+"\n"), 0o600))
	n, err := im.Run(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, st.List(), 2)
}

func TestImportFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"creators":[{"id":"u1","name":"Remote"}]}`))
	}))
	defer srv.Close()

	st := newStore(t)
	im := NewImporter(NewHTTPClient(time.Second), st, quiet(), "")
	n, err := im.Run(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	rec, ok := st.Get("u1")
	require.True(t, ok)
	assert.Equal(t, "Remote", rec.Name)
}

func TestImportEmptySource(t *testing.T) {
	im := NewImporter(NewHTTPClient(time.Second), newStore(t), quiet(), "")
	_, err := im.Run(context.Background(), " ")
	assert.Error(t, err)
}
