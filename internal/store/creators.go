package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AngelCh415/creator-payout/internal/models"
)

// Mutation names reported to an Observer.
const (
	OpCreate      = "create"
	OpUpdate      = "update"
	OpDelete      = "delete"
	OpImport      = "import"
	OpLeadCapture = "lead_capture"
)

// Observer is told about every persisted mutation.
type Observer interface {
	ObserveMutation(op string, err error)
}

type Option func(*options)

type options struct {
	log   *slog.Logger
	obs   Observer
	now   func() time.Time
	newID func() string
}

func WithLogger(l *slog.Logger) Option      { return func(o *options) { o.log = l } }
func WithObserver(obs Observer) Option      { return func(o *options) { o.obs = obs } }
func WithClock(now func() time.Time) Option { return func(o *options) { o.now = now } }
func WithIDs(newID func() string) Option    { return func(o *options) { o.newID = newID } }

func buildOptions(opts []Option) options {
	o := options{
		log:   slog.Default(),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// CreatorStore owns the creator collection. Writes are serialized and the
// in-memory snapshot only changes after the repository accepted the new collection.
type CreatorStore struct {
	mu      sync.RWMutex
	repo    Repository
	records []models.CreatorRecord
	opts    options
	loadErr error
}

// Open loads the collection. An unreadable collection starts empty. When the
// backend itself failed, mutations are refused until a reload succeeds.
func Open(ctx context.Context, repo Repository, opts ...Option) *CreatorStore {
	s := &CreatorStore{repo: repo, opts: buildOptions(opts)}
	if err := s.load(ctx); err != nil {
		s.opts.log.Warn("creator collection unreadable, starting empty", slog.String("err", err.Error()))
	}
	return s
}

// LoadErr is the error of the last load, nil once the collection was read.
func (s *CreatorStore) LoadErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

func (s *CreatorStore) load(ctx context.Context) error {
	recs, err := s.repo.Load(ctx)
	s.loadErr = err
	s.records = nil
	if err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(recs))
	for _, r := range recs {
		if r.ID == "" {
			continue
		}
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		s.records = append(s.records, r)
	}
	s.opts.log.Debug("creator collection loaded", slog.Int("count", len(s.records)))
	return nil
}

// writable must be called with s.mu held. A collection that could not be read
// from the backend is reloaded before any write.
func (s *CreatorStore) writable(ctx context.Context) error {
	if s.loadErr == nil || errors.Is(s.loadErr, ErrCorrupt) {
		return nil
	}
	if err := s.load(ctx); err != nil {
		return fmt.Errorf("%w: collection not loaded: %w", ErrPersist, err)
	}
	s.opts.log.Info("creator collection recovered", slog.Int("count", len(s.records)))
	return nil
}

func (s *CreatorStore) Create(ctx context.Context, draft models.CreatorDraft) (models.CreatorRecord, error) {
	d, ok := draft.Normalize()
	if !ok {
		return models.CreatorRecord{}, ErrNameRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(ctx); err != nil {
		return models.CreatorRecord{}, err
	}

	rec := models.NewRecord(s.opts.newID(), d, s.opts.now())
	next := make([]models.CreatorRecord, 0, len(s.records)+1)
	next = append(next, s.records...)
	next = append(next, rec)
	if err := s.commit(ctx, OpCreate, next); err != nil {
		return models.CreatorRecord{}, err
	}
	return rec, nil
}

// Update fully replaces the record at id. Only ID and CreatedAt survive.
func (s *CreatorStore) Update(ctx context.Context, id string, draft models.CreatorDraft) (models.CreatorRecord, error) {
	d, ok := draft.Normalize()
	if !ok {
		return models.CreatorRecord{}, ErrNameRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(ctx); err != nil {
		return models.CreatorRecord{}, err
	}

	i := s.indexOf(id)
	if i < 0 {
		return models.CreatorRecord{}, ErrNotFound
	}
	rec := models.NewRecord(id, d, s.opts.now())
	rec.CreatedAt = s.records[i].CreatedAt
	next := append([]models.CreatorRecord(nil), s.records...)
	next[i] = rec
	if err := s.commit(ctx, OpUpdate, next); err != nil {
		return models.CreatorRecord{}, err
	}
	return rec, nil
}

// Delete removes id. An unknown id is a no-op and issues no write.
func (s *CreatorStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(ctx); err != nil {
		return err
	}

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	next := make([]models.CreatorRecord, 0, len(s.records)-1)
	next = append(next, s.records[:i]...)
	next = append(next, s.records[i+1:]...)
	return s.commit(ctx, OpDelete, next)
}

// Import merges records by id in one write: known ids are replaced, new ones appended.
// Records without a name are skipped; records without an id get a fresh one.
func (s *CreatorStore) Import(ctx context.Context, recs []models.CreatorRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(ctx); err != nil {
		return 0, err
	}

	next := append([]models.CreatorRecord(nil), s.records...)
	pos := make(map[string]int, len(next))
	for i, r := range next {
		pos[r.ID] = i
	}
	n := 0
	for _, r := range recs {
		d, ok := r.Draft().Normalize()
		if !ok {
			continue
		}
		id := strings.TrimSpace(r.ID)
		if id == "" {
			id = s.opts.newID()
		}
		created := r.CreatedAt
		if created.IsZero() {
			created = s.opts.now()
		}
		rec := models.NewRecord(id, d, created)
		rec.UpdatedAt = s.opts.now()
		if i, ok := pos[id]; ok {
			rec.CreatedAt = next[i].CreatedAt
			next[i] = rec
		} else {
			pos[id] = len(next)
			next = append(next, rec)
		}
		n++
	}
	if n == 0 {
		return 0, nil
	}
	if err := s.commit(ctx, OpImport, next); err != nil {
		return 0, err
	}
	return n, nil
}

// List returns a copy of the current snapshot in storage order.
func (s *CreatorStore) List() []models.CreatorRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CreatorRecord(nil), s.records...)
}

func (s *CreatorStore) Get(id string) (models.CreatorRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.CreatorRecord{}, false
	}
	return s.records[i], true
}

// LoadForReplay copies the calculator settings of a record.
func (s *CreatorStore) LoadForReplay(id string) (models.Settings, error) {
	rec, ok := s.Get(id)
	if !ok {
		return models.Settings{}, ErrNotFound
	}
	return rec.Settings(), nil
}

func (s *CreatorStore) indexOf(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

// commit must be called with s.mu held.
func (s *CreatorStore) commit(ctx context.Context, op string, next []models.CreatorRecord) error {
	err := s.repo.SaveAll(ctx, next)
	if s.opts.obs != nil {
		s.opts.obs.ObserveMutation(op, err)
	}
	if err != nil {
		s.opts.log.Error("persist creators failed", slog.String("op", op), slog.String("err", err.Error()))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.records = next
	s.opts.log.Info("creators persisted", slog.String("op", op), slog.Int("count", len(next)))
	return nil
}
