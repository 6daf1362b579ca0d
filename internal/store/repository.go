// Package store persists the creator collection and captured leads.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AngelCh415/creator-payout/internal/models"
)

// Fixed storage identifiers.
const (
	CreatorsKey = "creators"
	LeadsKey    = "creator_leads"
)

var (
	ErrNameRequired  = errors.New("creator name is required")
	ErrEmailRequired = errors.New("email is required")
	ErrNotFound      = errors.New("creator not found")
	ErrPersist       = errors.New("persist collection")
)

// ErrCorrupt marks stored content that was read but does not decode.
var ErrCorrupt = errors.New("stored collection is corrupt")

// Repository loads and replaces the whole creator collection.
type Repository interface {
	Load(ctx context.Context) ([]models.CreatorRecord, error)
	SaveAll(ctx context.Context, records []models.CreatorRecord) error
}

// Backend is a single-key document store.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Pinger is implemented by backends that can report readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DocumentRepository keeps the collection as one JSON array under a key.
type DocumentRepository struct {
	b   Backend
	key string
}

func NewDocumentRepository(b Backend, key string) *DocumentRepository {
	if key == "" {
		key = CreatorsKey
	}
	return &DocumentRepository{b: b, key: key}
}

func (r *DocumentRepository) Load(ctx context.Context) ([]models.CreatorRecord, error) {
	raw, ok, err := r.b.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.key, err)
	}
	if !ok || len(raw) == 0 {
		return nil, nil
	}
	var out []models.CreatorRecord
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %w", r.key, ErrCorrupt, err)
	}
	return out, nil
}

func (r *DocumentRepository) SaveAll(ctx context.Context, records []models.CreatorRecord) error {
	if records == nil {
		records = []models.CreatorRecord{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.key, err)
	}
	return r.b.Put(ctx, r.key, b)
}
