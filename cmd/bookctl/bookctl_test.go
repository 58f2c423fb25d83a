package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/wedgo/internal/client"
	"github.com/kirinyoku/wedgo/internal/domain"
)

type backend struct {
	mu      sync.Mutex
	posts   []client.CreateBookingRequest
	postErr string
}

func (b *backend) handler(t *testing.T) http.Handler {
	day := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		assert.NoError(t, json.NewEncoder(w).Encode(v))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /vendors/1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, domain.Vendor{ID: 1, Name: "Bloom & Co", Category: "florist"})
	})
	mux.HandleFunc("GET /venues/3", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, domain.Venue{ID: 3, VendorID: 1, Name: "Garden Hall", Address: "1 Rose St"})
	})
	mux.HandleFunc("GET /services", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []domain.Service{
			{ID: 10, VendorID: 1, Name: "Bouquet", PriceCents: 1500},
			{ID: 11, VendorID: 1, Name: "Arch", PriceCents: 500, Customizations: []domain.Customization{
				{Name: "color", Type: domain.CustomizationSelect, Options: []string{"white", "red"}, Required: true},
			}},
		})
	})
	mux.HandleFunc("GET /availability", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []domain.Availability{{Date: day, Slots: []domain.TimeSlot{
			{ID: 5, VendorID: 1, Date: day, StartTime: "10:00", EndTime: "14:00", IsAvailable: true},
			{ID: 6, VendorID: 1, Date: day, StartTime: "15:00", EndTime: "18:00", IsAvailable: false},
		}}})
	})
	mux.HandleFunc("POST /bookings", func(w http.ResponseWriter, r *http.Request) {
		var req client.CreateBookingRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		b.mu.Lock()
		b.posts = append(b.posts, req)
		postErr := b.postErr
		b.mu.Unlock()

		if postErr != "" {
			writeJSON(w, http.StatusConflict, map[string]string{"error": postErr})
			return
		}
		writeJSON(w, http.StatusCreated, domain.Booking{
			ID:       uuid.MustParse("7b0c4d39-8f0e-4f55-9a43-0d3f18f3c8a1"),
			VendorID: req.VendorID,
			Status:   domain.BookingPending,
			Schedule: domain.Schedule{Date: day, SlotID: req.Schedule.SlotID, StartTime: "10:00", EndTime: "14:00"},
			Pricing:  req.Pricing,
		})
	})
	mux.HandleFunc("POST /bookings/{id}/cancel", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, domain.Booking{
			ID:     uuid.MustParse(r.PathValue("id")),
			Status: domain.BookingCancelled,
		})
	})
	return mux
}

func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api", srv.URL}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func newBackend(t *testing.T) (*backend, *httptest.Server) {
	b := &backend{}
	srv := httptest.NewServer(b.handler(t))
	t.Cleanup(srv.Close)
	return b, srv
}

func TestCatalog(t *testing.T) {
	_, srv := newBackend(t)

	out, err := run(t, srv, "catalog", "--vendor", "1", "--venue", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Bloom & Co (florist)")
	assert.Contains(t, out, "venue: Garden Hall, 1 Rose St")
	assert.Contains(t, out, "15.00 USD")
	assert.Contains(t, out, "color:select(white|red)*")
}

func TestSlotsListsOnlyOpen(t *testing.T) {
	_, srv := newBackend(t)

	out, err := run(t, srv, "slots", "--vendor", "1", "--date", "2026-06-20")
	require.NoError(t, err)
	assert.Contains(t, out, "10:00")
	assert.NotContains(t, out, "15:00")

	out, err = run(t, srv, "slots", "--vendor", "1", "--date", "2026-06-21")
	require.NoError(t, err)
	assert.Contains(t, out, "no open slots on 2026-06-21")
}

func TestQuote(t *testing.T) {
	_, srv := newBackend(t)

	out, err := run(t, srv, "quote", "--vendor", "1", "-s", "10:2", "-s", "11", "-c", "11:color=red")
	require.NoError(t, err)
	assert.Contains(t, out, "35.00 USD")
	assert.Contains(t, out, "5.25 USD")
	assert.Contains(t, out, "40.25 USD")
}

func TestQuoteRejectsBadSelections(t *testing.T) {
	_, srv := newBackend(t)

	_, err := run(t, srv, "quote", "--vendor", "1", "-s", "ten")
	assert.ErrorContains(t, err, "want ID or ID:QTY")

	_, err = run(t, srv, "quote", "--vendor", "1", "-s", "10", "-c", "11:color=red")
	assert.ErrorContains(t, err, "service 11 is not selected")
}

func TestBook(t *testing.T) {
	b, srv := newBackend(t)

	out, err := run(t, srv, "book", "--vendor", "1", "--requester", "77",
		"-s", "10", "--date", "2026-06-20", "--slot", "5", "--notes", "garden")
	require.NoError(t, err)
	assert.Contains(t, out, "booked 7b0c4d39-8f0e-4f55-9a43-0d3f18f3c8a1 (pending) for 2026-06-20 10:00-14:00")

	require.Len(t, b.posts, 1)
	got := b.posts[0]
	assert.Equal(t, int64(77), got.RequesterID)
	assert.Equal(t, "2026-06-20", got.Schedule.Date)
	assert.Equal(t, int64(5), got.Schedule.SlotID)
	assert.Equal(t, int64(1725), got.Pricing.FinalCents)
	assert.Equal(t, "garden", got.Notes)
}

func TestBookWithoutSlotNeverCallsBackend(t *testing.T) {
	b, srv := newBackend(t)

	_, err := run(t, srv, "book", "--vendor", "1", "--requester", "77", "-s", "10", "--date", "2026-06-20")
	assert.ErrorContains(t, err, "please select a time slot")
	assert.Empty(t, b.posts)
}

func TestBookShowsBackendMessage(t *testing.T) {
	b, srv := newBackend(t)
	b.postErr = "Slot unavailable"

	_, err := run(t, srv, "book", "--vendor", "1", "--requester", "77",
		"-s", "10", "--date", "2026-06-20", "--slot", "5")
	require.Error(t, err)
	assert.Equal(t, "Slot unavailable", err.Error())
}

func TestCancel(t *testing.T) {
	_, srv := newBackend(t)

	out, err := run(t, srv, "cancel", "7b0c4d39-8f0e-4f55-9a43-0d3f18f3c8a1")
	require.NoError(t, err)
	assert.Contains(t, out, "is cancelled")

	_, err = run(t, srv, "cancel", "nope")
	assert.ErrorContains(t, err, "invalid booking id")
}
