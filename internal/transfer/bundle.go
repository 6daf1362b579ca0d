// Package transfer moves the creator collection in and out as signed JSON bundles.
package transfer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AngelCh415/creator-payout/internal/models"
)

const SignatureHeader = "X-Signature"

var (
	ErrBadSignature = errors.New("bundle signature mismatch")
	ErrMalformed    = errors.New("malformed bundle")
)

type Bundle struct {
	ExportedAt time.Time              `json:"exported_at"`
	Creators   []models.CreatorRecord `json:"creators"`
}

// Export encodes the records and signs them when secret is set.
func Export(records []models.CreatorRecord, secret string, at time.Time) ([]byte, string, error) {
	if records == nil {
		records = []models.CreatorRecord{}
	}
	b, err := json.Marshal(Bundle{ExportedAt: at.UTC(), Creators: records})
	if err != nil {
		return nil, "", fmt.Errorf("encode bundle: %w", err)
	}
	return b, Sign(b, secret), nil
}

// Sign is the hex HMAC-SHA256 of body, or "" without a secret.
func Sign(body []byte, secret string) string {
	if secret == "" {
		return ""
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify accepts anything when secret is empty.
func Verify(body []byte, sig, secret string) error {
	if secret == "" {
		return nil
	}
	want := Sign(body, secret)
	if !hmac.Equal([]byte(want), []byte(sig)) {
		return ErrBadSignature
	}
	return nil
}

// Decode accepts a bundle or a bare JSON array of records.
func Decode(body []byte) ([]models.CreatorRecord, error) {
	var b Bundle
	if err := json.Unmarshal(body, &b); err == nil {
		return b.Creators, nil
	}
	var recs []models.CreatorRecord
	if err := json.Unmarshal(body, &recs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return recs, nil
}
