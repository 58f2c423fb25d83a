package domain

import (
	"time"

	"github.com/google/uuid"
)

type CustomizationType string

const (
	CustomizationText    CustomizationType = "text"
	CustomizationNumber  CustomizationType = "number"
	CustomizationBoolean CustomizationType = "boolean"
	CustomizationSelect  CustomizationType = "select"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type Vendor struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
}

type Venue struct {
	ID       int64  `json:"id"`
	VendorID int64  `json:"vendor_id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
}

type Customization struct {
	Name     string            `json:"name"`
	Type     CustomizationType `json:"type"`
	Options  []string          `json:"options,omitempty"`
	Required bool              `json:"required"`
}

// Service is a priced offering owned by a vendor.
type Service struct {
	ID              int64           `json:"id"`
	VendorID        int64           `json:"vendor_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	PriceCents      int64           `json:"price_cents"`
	DurationMinutes int             `json:"duration_minutes"`
	MaxCapacity     *int            `json:"max_capacity,omitempty"`
	Customizations  []Customization `json:"customizations"`
}

// SelectedService is a service chosen by the requester. Quantity is never below 1.
type SelectedService struct {
	ServiceID      int64             `json:"service_id"`
	Quantity       int               `json:"quantity"`
	Customizations map[string]string `json:"customizations,omitempty"`
}

type TimeSlot struct {
	ID          int64     `json:"id"`
	VendorID    int64     `json:"vendor_id"`
	VenueID     *int64    `json:"venue_id,omitempty"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
	PriceCents  int64     `json:"price_cents"`
	Capacity    int       `json:"capacity"`
	BookedCount int       `json:"booked_count"`
}

// Availability holds the slots declared for one calendar day.
type Availability struct {
	Date  time.Time  `json:"date"`
	Slots []TimeSlot `json:"slots"`
}

type Schedule struct {
	Date            time.Time `json:"date"`
	SlotID          int64     `json:"slot_id"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
}

type Pricing struct {
	BaseCents          int64  `json:"base_cents"`
	TaxRateBasisPoints int64  `json:"tax_rate_bps"`
	TaxCents           int64  `json:"tax_cents"`
	FinalCents         int64  `json:"final_cents"`
	Currency           string `json:"currency"`
}

// BookingItem is a selected service frozen at booking time.
type BookingItem struct {
	ServiceID      int64             `json:"service_id"`
	Name           string            `json:"name"`
	UnitPriceCents int64             `json:"unit_price_cents"`
	Quantity       int               `json:"quantity"`
	Customizations map[string]string `json:"customizations,omitempty"`
}

type Booking struct {
	ID              uuid.UUID     `json:"id"`
	VendorID        int64         `json:"vendor_id"`
	VenueID         *int64        `json:"venue_id,omitempty"`
	RequesterID     int64         `json:"requester_id"`
	Items           []BookingItem `json:"items"`
	Schedule        Schedule      `json:"schedule"`
	Pricing         Pricing       `json:"pricing"`
	Status          BookingStatus `json:"status"`
	Notes           string        `json:"notes,omitempty"`
	PaymentIntentID string        `json:"payment_intent_id,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
