package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/wedgo/internal/domain"
)

func TestListAvailability_Query(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/availability", r.URL.Path)
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]domain.Availability{{
			Date:  time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC),
			Slots: []domain.TimeSlot{{ID: 1, StartTime: "10:00", EndTime: "12:00", IsAvailable: true}},
		}})
	}))
	defer srv.Close()

	venue := int64(3)
	out, err := New(srv.URL+"/").ListAvailability(context.Background(), 7, &venue)
	require.NoError(t, err)
	assert.Equal(t, "vendorId=7&venueId=3", gotQuery)
	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].Slots[0].ID)
}

func TestCreateBooking_Success(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req CreateBookingRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(7), req.VendorID)
		assert.Len(t, req.Items, 1)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(domain.Booking{ID: id, VendorID: 7, Status: domain.BookingPending})
	}))
	defer srv.Close()

	b, err := New(srv.URL).CreateBooking(context.Background(), CreateBookingRequest{
		VendorID: 7,
		Items:    []ItemRequest{{ServiceID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, id, b.ID)
	assert.Equal(t, domain.BookingPending, b.Status)
}

func TestCreateBooking_ErrorPayloadVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"Slot unavailable"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).CreateBooking(context.Background(), CreateBookingRequest{VendorID: 1})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "Slot unavailable", apiErr.Error())
	assert.True(t, IsStatus(err, http.StatusConflict))
}

func TestGetVendor_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetVendor(context.Background(), 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "request failed with status 502", apiErr.Message)
}

func TestRequestHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(srv.URL).ListServices(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithTimeoutKeepsSharedClient(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}

	c := New("http://example.test", WithHTTPClient(shared), WithTimeout(5*time.Second))
	assert.Equal(t, 5*time.Second, c.http.Timeout)
	assert.Equal(t, time.Minute, shared.Timeout)

	New("http://example.test", WithHTTPClient(http.DefaultClient), WithTimeout(time.Second))
	assert.Zero(t, http.DefaultClient.Timeout)
}
