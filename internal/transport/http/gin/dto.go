package httpgin

import (
	"errors"
	"fmt"
	"time"

	"github.com/kirinyoku/wedgo/internal/domain"
	"github.com/kirinyoku/wedgo/internal/service/booking"
)

type ScheduleInput struct {
	Date            string `json:"date"`
	SlotID          int64  `json:"slot_id"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
}

type ItemInput struct {
	ServiceID      int64             `json:"service_id" binding:"required"`
	Quantity       int               `json:"quantity"`
	Customizations map[string]string `json:"customizations"`
}

// CreateBookingRequest is the booking draft. Only vendor and item IDs are
// checked at bind time so the service reports the remaining problems.
type CreateBookingRequest struct {
	VendorID    int64           `json:"vendor_id" binding:"required,gt=0"`
	VenueID     *int64          `json:"venue_id"`
	RequesterID int64           `json:"requester_id"`
	Items       []ItemInput     `json:"items" binding:"dive"`
	Schedule    ScheduleInput   `json:"schedule"`
	Pricing     *domain.Pricing `json:"pricing"`
	Notes       string          `json:"notes"`
}

func (r CreateBookingRequest) toService() (booking.CreateRequest, error) {
	var date time.Time
	if r.Schedule.Date != "" {
		d, err := domain.ParseDate(r.Schedule.Date)
		if err != nil {
			return booking.CreateRequest{}, errors.New("invalid schedule.date (YYYY-MM-DD)")
		}
		date = d
	}

	items := make([]domain.SelectedService, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, domain.SelectedService{
			ServiceID:      it.ServiceID,
			Quantity:       it.Quantity,
			Customizations: it.Customizations,
		})
	}

	return booking.CreateRequest{
		VendorID:    r.VendorID,
		VenueID:     r.VenueID,
		RequesterID: r.RequesterID,
		Items:       items,
		SlotID:      r.Schedule.SlotID,
		Date:        date,
		Pricing:     r.Pricing,
		Notes:       r.Notes,
	}, nil
}

type ConfirmBookingRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
}

type RecordStatsRequest struct {
	Impressions int64 `json:"impressions" binding:"gte=0"`
	Clicks      int64 `json:"clicks" binding:"gte=0"`
	SpendCents  int64 `json:"spend_cents" binding:"gte=0"`
}

type CreateVendorRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

func (r CreateVendorRequest) toDomain() domain.Vendor {
	return domain.Vendor{
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		Location:    r.Location,
	}
}

type CreateVenueRequest struct {
	VendorID int64  `json:"vendor_id" binding:"required,gt=0"`
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity" binding:"gte=0"`
}

func (r CreateVenueRequest) toDomain() domain.Venue {
	return domain.Venue{
		VendorID: r.VendorID,
		Name:     r.Name,
		Address:  r.Address,
		Capacity: r.Capacity,
	}
}

type CreateServiceRequest struct {
	Name            string                 `json:"name" binding:"required"`
	Description     string                 `json:"description"`
	PriceCents      int64                  `json:"price_cents" binding:"gte=0"`
	DurationMinutes int                    `json:"duration_minutes" binding:"gte=0"`
	MaxCapacity     *int                   `json:"max_capacity"`
	Customizations  []domain.Customization `json:"customizations"`
}

func (r CreateServiceRequest) toDomain(vendorID int64) domain.Service {
	return domain.Service{
		VendorID:        vendorID,
		Name:            r.Name,
		Description:     r.Description,
		PriceCents:      r.PriceCents,
		DurationMinutes: r.DurationMinutes,
		MaxCapacity:     r.MaxCapacity,
		Customizations:  r.Customizations,
	}
}

type BatchCreateSlotsRequest struct {
	Slots []SlotInput `json:"slots" binding:"required,min=1,dive"`
}

type SlotInput struct {
	VenueID    *int64 `json:"venue_id"`
	Date       string `json:"date" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	PriceCents int64  `json:"price_cents" binding:"gte=0"`
	Capacity   int    `json:"capacity" binding:"gte=0"`
}

func (r BatchCreateSlotsRequest) toDomain() ([]domain.TimeSlot, error) {
	out := make([]domain.TimeSlot, 0, len(r.Slots))
	for i, s := range r.Slots {
		d, err := domain.ParseDate(s.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid slots[%d].date (YYYY-MM-DD)", i)
		}
		out = append(out, domain.TimeSlot{
			VenueID:     s.VenueID,
			Date:        d,
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			IsAvailable: true,
			PriceCents:  s.PriceCents,
			Capacity:    s.Capacity,
		})
	}
	return out, nil
}

type SetSlotAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

type CreateCampaignRequest struct {
	Name        string `json:"name" binding:"required"`
	BudgetCents int64  `json:"budget_cents" binding:"required,gt=0"`
	StartsAt    string `json:"starts_at" binding:"required"`
	EndsAt      string `json:"ends_at" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type CreatedResponse struct {
	ID int64 `json:"id"`
}

func parseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
