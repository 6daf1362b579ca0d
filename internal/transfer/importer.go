package transfer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/AngelCh415/creator-payout/internal/store"
)

type Importer struct {
	c      HTTPClient
	st     *store.CreatorStore
	log    *slog.Logger
	secret string
}

func NewImporter(c HTTPClient, st *store.CreatorStore, log *slog.Logger, secret string) *Importer {
	return &Importer{c: c, st: st, log: log, secret: secret}
}

// Fetch reads a bundle from an http(s) URL or a file path. A file's signature
// is read from a sibling "<path>.sig" file when present.
func (im *Importer) Fetch(ctx context.Context, source string) ([]byte, string, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, "", errors.New("empty source")
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return getWithRetry(ctx, im.c, source)
	}
	body, err := os.ReadFile(source)
	if err != nil {
		return nil, "", fmt.Errorf("read bundle: %w", err)
	}
	sig, err := os.ReadFile(source + ".sig")
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, "", fmt.Errorf("read signature: %w", err)
	}
	return body, strings.TrimSpace(string(sig)), nil
}

// Apply verifies and merges an already fetched bundle.
func (im *Importer) Apply(ctx context.Context, body []byte, sig string) (int, error) {
	if err := Verify(body, sig, im.secret); err != nil {
		return 0, err
	}
	recs, err := Decode(body)
	if err != nil {
		return 0, err
	}
	n, err := im.st.Import(ctx, recs)
	if err != nil {
		return 0, err
	}
	im.log.Info("import complete", slog.Int("received", len(recs)), slog.Int("applied", n))
	return n, nil
}

func (im *Importer) Run(ctx context.Context, source string) (int, error) {
	body, sig, err := im.Fetch(ctx, source)
	if err != nil {
		return 0, err
	}
	return im.Apply(ctx, body, sig)
}
