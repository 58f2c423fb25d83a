package domain

import "time"

type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignExhausted CampaignStatus = "exhausted"
)

// Campaign is a paid boost that promotes a venue in listings.
type Campaign struct {
	ID          int64          `json:"id"`
	VenueID     int64          `json:"venue_id"`
	Name        string         `json:"name"`
	BudgetCents int64          `json:"budget_cents"`
	SpentCents  int64          `json:"spent_cents"`
	Impressions int64          `json:"impressions"`
	Clicks      int64          `json:"clicks"`
	Status      CampaignStatus `json:"status"`
	StartsAt    time.Time      `json:"starts_at"`
	EndsAt      time.Time      `json:"ends_at"`
	CreatedAt   time.Time      `json:"created_at"`
}

type CampaignMetrics struct {
	CTR      float64 `json:"ctr"`
	CPCCents int64   `json:"cpc_cents"`
	CPMCents int64   `json:"cpm_cents"`
}

type CampaignWithMetrics struct {
	Campaign
	Metrics CampaignMetrics `json:"metrics"`
}
