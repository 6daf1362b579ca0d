package models

import (
	"math"
	"strings"
	"time"
)

// Metrics are average per-post counts.
type Metrics struct {
	Views    float64 `json:"views"`
	Likes    float64 `json:"likes"`
	Comments float64 `json:"comments"`
	Shares   float64 `json:"shares"`
}

// Clamped returns m with every field forced to a finite non-negative value.
func (m Metrics) Clamped() Metrics {
	return Metrics{
		Views:    NonNegative(m.Views),
		Likes:    NonNegative(m.Likes),
		Comments: NonNegative(m.Comments),
		Shares:   NonNegative(m.Shares),
	}
}

func NonNegative(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

type CampaignType string

const (
	LinkInBio   CampaignType = "link"
	MentionOnly CampaignType = "mention"
)

// ParseCampaignType falls back to LinkInBio for unknown input.
func ParseCampaignType(s string) CampaignType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mention", "mention_only", "mentiononly":
		return MentionOnly
	default:
		return LinkInBio
	}
}

func (c CampaignType) Valid() bool { return c == LinkInBio || c == MentionOnly }

func (c CampaignType) Label() string {
	if c == MentionOnly {
		return "Mention only"
	}
	return "Link in bio"
}

type PaymentPackage string

const (
	Single PaymentPackage = "single"
	Pack3  PaymentPackage = "pack3"
	Pack5  PaymentPackage = "pack5"
)

func ParsePaymentPackage(s string) PaymentPackage {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pack3", "3", "3-pack":
		return Pack3
	case "pack5", "5", "5-pack":
		return Pack5
	default:
		return Single
	}
}

// N is the number of posts the package pays for.
func (p PaymentPackage) N() int {
	switch p {
	case Pack3:
		return 3
	case Pack5:
		return 5
	default:
		return 1
	}
}

func (p PaymentPackage) Label() string {
	switch p {
	case Pack3:
		return "3-video pack"
	case Pack5:
		return "5-video pack"
	default:
		return "Single video"
	}
}

const (
	MinRevShare     = 10.0
	MaxRevShare     = 30.0
	DefaultRevShare = 15.0
)

// ClampRevShare maps the unset value (0) to DefaultRevShare and clamps the rest to [10,30].
func ClampRevShare(pct float64) float64 {
	if math.IsNaN(pct) || pct == 0 {
		return DefaultRevShare
	}
	if pct < MinRevShare {
		return MinRevShare
	}
	if pct > MaxRevShare {
		return MaxRevShare
	}
	return pct
}

// FunnelResult is derived on demand and never persisted.
type FunnelResult struct {
	UniqueEngaged float64  `json:"unique_engaged"`
	ProfileClicks *float64 `json:"profile_clicks"` // nil for MentionOnly
	Installs      float64  `json:"installs"`
	PaidUsers     float64  `json:"paid_users"`
	Revenue       float64  `json:"revenue"`
	Payout        float64  `json:"payout"`
	CPM           *float64 `json:"cpm"`
	CAC           *float64 `json:"cac"`
}

// Settings is the calculator state a record carries.
type Settings struct {
	Metrics             Metrics        `json:"metrics"`
	CampaignType        CampaignType   `json:"campaign_type"`
	PaymentPackage      PaymentPackage `json:"payment_package"`
	RevenueSharePercent float64        `json:"revenue_share_percent"`
}

// CreatorDraft is the validated input of create and update.
type CreatorDraft struct {
	Name                string         `json:"name"`
	Email               string         `json:"email,omitempty"`
	TikTokURL           string         `json:"tiktok_url,omitempty"`
	InstagramURL        string         `json:"instagram_url,omitempty"`
	YouTubeURL          string         `json:"youtube_url,omitempty"`
	Metrics             Metrics        `json:"metrics"`
	CampaignType        CampaignType   `json:"campaign_type"`
	PaymentPackage      PaymentPackage `json:"payment_package"`
	RevenueSharePercent float64        `json:"revenue_share_percent"`
}

// Normalize trims text fields and clamps every numeric and enum field.
// It returns false when the name is empty after trimming.
func (d CreatorDraft) Normalize() (CreatorDraft, bool) {
	out := CreatorDraft{
		Name:                strings.TrimSpace(d.Name),
		Email:               strings.TrimSpace(d.Email),
		TikTokURL:           strings.TrimSpace(d.TikTokURL),
		InstagramURL:        strings.TrimSpace(d.InstagramURL),
		YouTubeURL:          strings.TrimSpace(d.YouTubeURL),
		Metrics:             d.Metrics.Clamped(),
		CampaignType:        ParseCampaignType(string(d.CampaignType)),
		PaymentPackage:      ParsePaymentPackage(string(d.PaymentPackage)),
		RevenueSharePercent: ClampRevShare(d.RevenueSharePercent),
	}
	return out, out.Name != ""
}

type CreatorRecord struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Email               string         `json:"email,omitempty"`
	TikTokURL           string         `json:"tiktok_url,omitempty"`
	InstagramURL        string         `json:"instagram_url,omitempty"`
	YouTubeURL          string         `json:"youtube_url,omitempty"`
	Metrics             Metrics        `json:"metrics"`
	CampaignType        CampaignType   `json:"campaign_type"`
	PaymentPackage      PaymentPackage `json:"payment_package"`
	RevenueSharePercent float64        `json:"revenue_share_percent"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// NewRecord promotes an already normalized draft.
func NewRecord(id string, d CreatorDraft, at time.Time) CreatorRecord {
	return CreatorRecord{
		ID:                  id,
		Name:                d.Name,
		Email:               d.Email,
		TikTokURL:           d.TikTokURL,
		InstagramURL:        d.InstagramURL,
		YouTubeURL:          d.YouTubeURL,
		Metrics:             d.Metrics,
		CampaignType:        d.CampaignType,
		PaymentPackage:      d.PaymentPackage,
		RevenueSharePercent: d.RevenueSharePercent,
		CreatedAt:           at,
		UpdatedAt:           at,
	}
}

func (r CreatorRecord) Settings() Settings {
	return Settings{
		Metrics:             r.Metrics,
		CampaignType:        r.CampaignType,
		PaymentPackage:      r.PaymentPackage,
		RevenueSharePercent: r.RevenueSharePercent,
	}
}

func (r CreatorRecord) Draft() CreatorDraft {
	return CreatorDraft{
		Name:                r.Name,
		Email:               r.Email,
		TikTokURL:           r.TikTokURL,
		InstagramURL:        r.InstagramURL,
		YouTubeURL:          r.YouTubeURL,
		Metrics:             r.Metrics,
		CampaignType:        r.CampaignType,
		PaymentPackage:      r.PaymentPackage,
		RevenueSharePercent: r.RevenueSharePercent,
	}
}

// Lead is one captured email with the payout it was shown.
type Lead struct {
	Email  string `json:"email"`
	Payout int64  `json:"payout"`
	TS     int64  `json:"ts"` // unix millis
}
