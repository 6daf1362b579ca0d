package httpx

import (
	"bytes"
	"encoding/json"

	"github.com/AngelCh415/creator-payout/internal/calculator"
	"github.com/AngelCh415/creator-payout/internal/models"
)

// rawText accepts a JSON string, number or null and keeps it as typed text.
// Coercion to a number happens later, so bad input reads as zero instead of failing the request.
type rawText string

func (t *rawText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = rawText(s)
		return nil
	}
	if string(b) == "null" {
		*t = ""
		return nil
	}
	*t = rawText(b)
	return nil
}

type estimateInput struct {
	Views               rawText `json:"views"`
	Likes               rawText `json:"likes"`
	Comments            rawText `json:"comments"`
	Shares              rawText `json:"shares"`
	CampaignType        string  `json:"campaign_type"`
	PaymentPackage      string  `json:"payment_package"`
	RevenueSharePercent float64 `json:"revenue_share_percent"`
	CurrentOffer        rawText `json:"current_offer"`
}

func (in estimateInput) workspace() *calculator.Workspace {
	ws := calculator.New()
	ws.Views = string(in.Views)
	ws.Likes = string(in.Likes)
	ws.Comments = string(in.Comments)
	ws.Shares = string(in.Shares)
	ws.CampaignType = models.ParseCampaignType(in.CampaignType)
	ws.PaymentPackage = models.ParsePaymentPackage(in.PaymentPackage)
	ws.RevenueSharePercent = models.ClampRevShare(in.RevenueSharePercent)
	ws.CurrentOffer = string(in.CurrentOffer)
	return ws
}

type reverseInput struct {
	estimateInput
	ProposedCPM rawText `json:"proposed_cpm"`
}
