package postgresrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/kirinyoku/wedgo/internal/domain"
)

type CampaignRepo struct {
	pool Pool
	db   DB
}

func (r *CampaignRepo) With(db DB) *CampaignRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *CampaignRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const campaignColumns = `id, venue_id, name, budget_cents, spent_cents, impressions, clicks, status, starts_at, ends_at, created_at`

func (r *CampaignRepo) Create(ctx context.Context, c domain.Campaign) (*domain.Campaign, error) {
	const op = "postgresrepo.CampaignRepo.Create"

	out, err := scanCampaign(r.handle().QueryRow(ctx,
		`INSERT INTO campaigns(venue_id, name, budget_cents, status, starts_at, ends_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+campaignColumns,
		c.VenueID, c.Name, c.BudgetCents, string(c.Status), c.StartsAt, c.EndsAt,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *CampaignRepo) ListByVenue(ctx context.Context, venueID int64) ([]domain.Campaign, error) {
	const op = "postgresrepo.CampaignRepo.ListByVenue"

	rows, err := r.handle().Query(ctx,
		`SELECT `+campaignColumns+`
		 FROM campaigns
		 WHERE venue_id = $1
		 ORDER BY created_at DESC, id DESC`,
		venueID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	out := []domain.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// AddStats increments a campaign's counters and marks it exhausted once spend
// reaches the budget.
//
// Returns:
//   - error: repository.ErrNotFound if the campaign is not found.
func (r *CampaignRepo) AddStats(
	ctx context.Context,
	id int64,
	impressions, clicks, spendCents int64,
) (*domain.Campaign, error) {
	const op = "postgresrepo.CampaignRepo.AddStats"

	out, err := scanCampaign(r.handle().QueryRow(ctx,
		`UPDATE campaigns
		 SET impressions = impressions + $2,
		     clicks = clicks + $3,
		     spent_cents = spent_cents + $4,
		     status = CASE WHEN spent_cents + $4 >= budget_cents THEN 'exhausted' ELSE status END
		 WHERE id = $1
		 RETURNING `+campaignColumns,
		id, impressions, clicks, spendCents,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var (
		c      domain.Campaign
		status string
	)
	if err := row.Scan(
		&c.ID,
		&c.VenueID,
		&c.Name,
		&c.BudgetCents,
		&c.SpentCents,
		&c.Impressions,
		&c.Clicks,
		&status,
		&c.StartsAt,
		&c.EndsAt,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	c.Status = domain.CampaignStatus(status)
	return &c, nil
}
