package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/AngelCh415/creator-payout/internal/models"
)

// LeadLog is an append-only list of captured emails kept under LeadsKey.
type LeadLog struct {
	mu   sync.Mutex
	b    Backend
	opts options
}

func NewLeadLog(b Backend, opts ...Option) *LeadLog {
	return &LeadLog{b: b, opts: buildOptions(opts)}
}

// Capture appends one lead with the payout rounded to whole currency units.
func (l *LeadLog) Capture(ctx context.Context, email string, payout float64) (models.Lead, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.Lead{}, ErrEmailRequired
	}
	lead := models.Lead{
		Email:  email,
		Payout: int64(math.Floor(models.NonNegative(payout) + 0.5)),
		TS:     l.opts.now().UnixMilli(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	leads, err := l.read(ctx)
	if err == nil {
		err = l.write(ctx, append(leads, lead))
	}
	if l.opts.obs != nil {
		l.opts.obs.ObserveMutation(OpLeadCapture, err)
	}
	if err != nil {
		l.opts.log.Error("persist leads failed", slog.String("err", err.Error()))
		return models.Lead{}, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return lead, nil
}

// List returns every captured lead. An unreadable list is empty.
func (l *LeadLog) List(ctx context.Context) []models.Lead {
	l.mu.Lock()
	defer l.mu.Unlock()
	leads, err := l.read(ctx)
	if err != nil {
		l.opts.log.Warn("read leads failed", slog.String("err", err.Error()))
		return []models.Lead{}
	}
	return leads
}

// read fails only when the backend does. Stored content that does not decode
// is treated as an empty list.
func (l *LeadLog) read(ctx context.Context) ([]models.Lead, error) {
	raw, ok, err := l.b.Get(ctx, LeadsKey)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", LeadsKey, err)
	}
	if !ok {
		return []models.Lead{}, nil
	}
	var out []models.Lead
	if err := json.Unmarshal(raw, &out); err != nil {
		l.opts.log.Warn("leads unreadable, starting empty", slog.String("err", err.Error()))
		return []models.Lead{}, nil
	}
	if out == nil {
		out = []models.Lead{}
	}
	return out, nil
}

func (l *LeadLog) write(ctx context.Context, leads []models.Lead) error {
	b, err := json.Marshal(leads)
	if err != nil {
		return fmt.Errorf("encode %s: %w", LeadsKey, err)
	}
	return l.b.Put(ctx, LeadsKey, b)
}
