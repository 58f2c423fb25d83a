// Package draft holds the transient booking state a requester edits before submitting.
//
// A Draft is driven from a single goroutine (a UI loop or a CLI command) and is not
// safe for concurrent use.
package draft

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/kirinyoku/wedgo/internal/availability"
	"github.com/kirinyoku/wedgo/internal/client"
	"github.com/kirinyoku/wedgo/internal/domain"
	"github.com/kirinyoku/wedgo/internal/pricing"
)

var (
	ErrUnknownService  = errors.New("service is not offered by this vendor")
	ErrIndexOutOfRange = errors.New("no selected service at that position")
	ErrUnknownSlot     = errors.New("time slot is not available on the selected date")
	ErrNoDate          = errors.New("please select a date")

	ErrEmptySelection = errors.New("please select at least one service")
	ErrNoSlot         = errors.New("please select a time slot")
)

// ValidationError collects every reason the draft cannot be submitted.
type ValidationError struct {
	Problems []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() []error { return e.Problems }

type Draft struct {
	catalog     *Catalog
	services    map[int64]domain.Service
	requesterID int64

	selections []domain.SelectedService
	date       time.Time
	slots      []domain.TimeSlot
	slot       *domain.TimeSlot
	notes      string

	pricing domain.Pricing
}

func New(c *Catalog, requesterID int64) *Draft {
	d := &Draft{
		catalog:     c,
		services:    pricing.Index(c.Services),
		requesterID: requesterID,
	}
	d.recompute()
	return d
}

// Add selects a service with quantity 1. Selecting it again is a no-op.
func (d *Draft) Add(serviceID int64) error {
	if _, ok := d.services[serviceID]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownService, serviceID)
	}
	if slices.ContainsFunc(d.selections, func(s domain.SelectedService) bool { return s.ServiceID == serviceID }) {
		return nil
	}
	d.selections = append(d.selections, domain.SelectedService{ServiceID: serviceID, Quantity: 1})
	d.recompute()
	return nil
}

func (d *Draft) Remove(index int) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	d.selections = slices.Delete(d.selections, index, index+1)
	d.recompute()
	return nil
}

// SetQuantity sets the quantity at index, clamping anything below 1 to 1.
func (d *Draft) SetQuantity(index, n int) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	d.selections[index].Quantity = max(n, 1)
	d.recompute()
	return nil
}

func (d *Draft) Increment(index int) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	return d.SetQuantity(index, d.selections[index].Quantity+1)
}

func (d *Draft) Decrement(index int) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	return d.SetQuantity(index, d.selections[index].Quantity-1)
}

// SetCustomization records an answer for a customization the service defines.
// Values are checked by Validate, so partial input is accepted here.
func (d *Draft) SetCustomization(index int, key, value string) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	sel := &d.selections[index]
	svc := d.services[sel.ServiceID]
	if _, ok := svc.Customization(key); !ok {
		return &domain.CustomizationError{Service: svc.Name, Key: key, Err: domain.ErrUnknownCustomization}
	}
	if sel.Customizations == nil {
		sel.Customizations = make(map[string]string)
	}
	sel.Customizations[key] = value
	d.recompute()
	return nil
}

// SelectDate switches the schedule to date and returns its available slots.
// Any previously chosen slot is cleared.
func (d *Draft) SelectDate(date time.Time) []domain.TimeSlot {
	d.date = domain.Day(date)
	d.slot = nil
	d.slots = availability.Resolve(d.catalog.Availability, d.date)
	return slices.Clone(d.slots)
}

// SelectSlot picks one of the slots offered for the selected date.
func (d *Draft) SelectSlot(slotID int64) error {
	if d.date.IsZero() {
		return ErrNoDate
	}
	i := slices.IndexFunc(d.slots, func(s domain.TimeSlot) bool { return s.ID == slotID })
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownSlot, slotID)
	}
	s := d.slots[i]
	if _, err := domain.DurationMinutes(s.StartTime, s.EndTime); err != nil {
		return err
	}
	d.slot = &s
	return nil
}

func (d *Draft) SetNotes(notes string) { d.notes = strings.TrimSpace(notes) }

// Selections returns a copy of the current selection.
func (d *Draft) Selections() []domain.SelectedService {
	out := make([]domain.SelectedService, len(d.selections))
	for i, s := range d.selections {
		out[i] = s
		if s.Customizations != nil {
			out[i].Customizations = make(map[string]string, len(s.Customizations))
			for k, v := range s.Customizations {
				out[i].Customizations[k] = v
			}
		}
	}
	return out
}

func (d *Draft) Pricing() domain.Pricing { return d.pricing }

func (d *Draft) Date() time.Time { return d.date }

// Slots returns the available slots for the selected date.
func (d *Draft) Slots() []domain.TimeSlot { return slices.Clone(d.slots) }

// Schedule reports the chosen schedule, if both date and slot are set.
func (d *Draft) Schedule() (domain.Schedule, bool) {
	if d.date.IsZero() || d.slot == nil {
		return domain.Schedule{}, false
	}
	s, err := domain.ScheduleFromSlot(*d.slot)
	if err != nil {
		return domain.Schedule{}, false
	}
	return s, true
}

// Service returns the catalog entry for a selected service.
func (d *Draft) Service(id int64) (domain.Service, bool) {
	s, ok := d.services[id]
	return s, ok
}

// Validate reports everything that blocks submission. It never touches the network.
func (d *Draft) Validate() error {
	var problems []error
	if len(d.selections) == 0 {
		problems = append(problems, ErrEmptySelection)
	}
	if d.date.IsZero() {
		problems = append(problems, ErrNoDate)
	}
	if d.slot == nil {
		problems = append(problems, ErrNoSlot)
	}
	for _, sel := range d.selections {
		svc := d.services[sel.ServiceID]
		if svc.MaxCapacity != nil && sel.Quantity > *svc.MaxCapacity {
			problems = append(problems, fmt.Errorf("%s: at most %d can be booked", svc.Name, *svc.MaxCapacity))
		}
		if err := svc.ValidateCustomizations(sel.Customizations); err != nil {
			problems = append(problems, err)
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Request serializes the draft for submission.
func (d *Draft) Request() (client.CreateBookingRequest, error) {
	if err := d.Validate(); err != nil {
		return client.CreateBookingRequest{}, err
	}
	sched, _ := d.Schedule()

	items := make([]client.ItemRequest, 0, len(d.selections))
	for _, s := range d.Selections() {
		items = append(items, client.ItemRequest{
			ServiceID:      s.ServiceID,
			Quantity:       s.Quantity,
			Customizations: s.Customizations,
		})
	}

	var venueID *int64
	if d.catalog.Venue != nil {
		id := d.catalog.Venue.ID
		venueID = &id
	}

	return client.CreateBookingRequest{
		VendorID:    d.catalog.Vendor.ID,
		VenueID:     venueID,
		RequesterID: d.requesterID,
		Items:       items,
		Schedule: client.ScheduleRequest{
			Date:            sched.Date.Format(domain.DateLayout),
			SlotID:          sched.SlotID,
			StartTime:       sched.StartTime,
			EndTime:         sched.EndTime,
			DurationMinutes: sched.DurationMinutes,
		},
		Pricing: d.pricing,
		Notes:   d.notes,
	}, nil
}

func (d *Draft) checkIndex(index int) error {
	if index < 0 || index >= len(d.selections) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return nil
}

// recompute refreshes the pricing snapshot. Selections only ever hold catalog
// services with quantity >= 1, so Calculate cannot fail here.
func (d *Draft) recompute() {
	p, err := pricing.Calculate(d.selections, d.services)
	if err != nil {
		return
	}
	d.pricing = p
}
