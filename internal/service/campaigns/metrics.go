package campaigns

import "github.com/kirinyoku/wedgo/internal/domain"

// Metrics derives the campaign's rates. Each figure is zero when its
// denominator is zero; cost figures are rounded half-up to the cent.
func Metrics(c domain.Campaign) domain.CampaignMetrics {
	var m domain.CampaignMetrics

	if c.Impressions > 0 {
		m.CTR = float64(c.Clicks) / float64(c.Impressions)
		m.CPMCents = divRound(c.SpentCents*1000, c.Impressions)
	}
	if c.Clicks > 0 {
		m.CPCCents = divRound(c.SpentCents, c.Clicks)
	}

	return m
}

func withMetrics(c domain.Campaign) domain.CampaignWithMetrics {
	return domain.CampaignWithMetrics{Campaign: c, Metrics: Metrics(c)}
}

func divRound(n, d int64) int64 {
	return (n + d/2) / d
}
