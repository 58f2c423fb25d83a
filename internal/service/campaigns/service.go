package campaigns

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kirinyoku/wedgo/internal/domain"
	"github.com/kirinyoku/wedgo/internal/repository"
	postgresrepo "github.com/kirinyoku/wedgo/internal/repository/postgres"
)

var (
	ErrInvalidCampaign  = errors.New("invalid campaign")
	ErrInvalidStats     = errors.New("stats must not be negative")
	ErrVenueNotFound    = errors.New("venue not found")
	ErrCampaignNotFound = errors.New("campaign not found")
)

type CreateParams struct {
	VenueID     int64
	Name        string
	BudgetCents int64
	StartsAt    time.Time
	EndsAt      time.Time
}

type Service struct {
	store *postgresrepo.Store
}

func New(store *postgresrepo.Store) *Service {
	return &Service{store: store}
}

// Create starts an active campaign for a venue.
//
// Returns:
//   - error: campaigns.ErrInvalidCampaign if the name, budget or window is invalid.
//   - error: campaigns.ErrVenueNotFound if the venue does not exist.
func (s *Service) Create(ctx context.Context, p CreateParams) (*domain.CampaignWithMetrics, error) {
	const op = "service.campaigns.Create"

	name := strings.TrimSpace(p.Name)
	switch {
	case name == "":
		return nil, fmt.Errorf("%s:%w: name is required", op, ErrInvalidCampaign)
	case p.BudgetCents <= 0:
		return nil, fmt.Errorf("%s:%w: budget must be positive", op, ErrInvalidCampaign)
	case !p.EndsAt.After(p.StartsAt):
		return nil, fmt.Errorf("%s:%w: ends_at must be after starts_at", op, ErrInvalidCampaign)
	}

	c, err := s.store.Campaigns().Create(ctx, domain.Campaign{
		VenueID:     p.VenueID,
		Name:        name,
		BudgetCents: p.BudgetCents,
		Status:      domain.CampaignActive,
		StartsAt:    p.StartsAt.UTC(),
		EndsAt:      p.EndsAt.UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrVenueNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	out := withMetrics(*c)
	return &out, nil
}

func (s *Service) ListByVenue(ctx context.Context, venueID int64) ([]domain.CampaignWithMetrics, error) {
	const op = "service.campaigns.ListByVenue"

	cs, err := s.store.Campaigns().ListByVenue(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	out := make([]domain.CampaignWithMetrics, 0, len(cs))
	for _, c := range cs {
		out = append(out, withMetrics(c))
	}

	return out, nil
}

// RecordStats adds a reporting interval's counters to a campaign.
//
// Returns:
//   - error: campaigns.ErrInvalidStats if any counter is negative.
//   - error: campaigns.ErrCampaignNotFound if the campaign does not exist.
func (s *Service) RecordStats(
	ctx context.Context,
	id int64,
	impressions, clicks, spendCents int64,
) (*domain.CampaignWithMetrics, error) {
	const op = "service.campaigns.RecordStats"

	if impressions < 0 || clicks < 0 || spendCents < 0 {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidStats)
	}

	c, err := s.store.Campaigns().AddStats(ctx, id, impressions, clicks, spendCents)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrCampaignNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	out := withMetrics(*c)
	return &out, nil
}
