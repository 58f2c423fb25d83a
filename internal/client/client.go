// Package client talks to the WedGo HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirinyoku/wedgo/internal/domain"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx response. Message is the server's error field verbatim
// when the body carries one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

type ScheduleRequest struct {
	Date            string `json:"date"`
	SlotID          int64  `json:"slot_id"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
}

type ItemRequest struct {
	ServiceID      int64             `json:"service_id"`
	Quantity       int               `json:"quantity"`
	Customizations map[string]string `json:"customizations,omitempty"`
}

// CreateBookingRequest is the serialized booking draft.
type CreateBookingRequest struct {
	VendorID    int64           `json:"vendor_id"`
	VenueID     *int64          `json:"venue_id,omitempty"`
	RequesterID int64           `json:"requester_id"`
	Items       []ItemRequest   `json:"items"`
	Schedule    ScheduleRequest `json:"schedule"`
	Pricing     domain.Pricing  `json:"pricing"`
	Notes       string          `json:"notes,omitempty"`
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the request timeout on a copy of the current HTTP client,
// leaving one passed to WithHTTPClient untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) GetVendor(ctx context.Context, id int64) (*domain.Vendor, error) {
	var v domain.Vendor
	if err := c.do(ctx, http.MethodGet, "/vendors/"+strconv.FormatInt(id, 10), nil, nil, &v); err != nil {
		return nil, fmt.Errorf("client.GetVendor: %w", err)
	}
	return &v, nil
}

func (c *Client) GetVenue(ctx context.Context, id int64) (*domain.Venue, error) {
	var v domain.Venue
	if err := c.do(ctx, http.MethodGet, "/venues/"+strconv.FormatInt(id, 10), nil, nil, &v); err != nil {
		return nil, fmt.Errorf("client.GetVenue: %w", err)
	}
	return &v, nil
}

func (c *Client) ListServices(ctx context.Context, vendorID int64) ([]domain.Service, error) {
	q := url.Values{"vendorId": {strconv.FormatInt(vendorID, 10)}}
	var out []domain.Service
	if err := c.do(ctx, http.MethodGet, "/services", q, nil, &out); err != nil {
		return nil, fmt.Errorf("client.ListServices: %w", err)
	}
	return out, nil
}

// ListAvailability fetches availability records; venueID is optional.
func (c *Client) ListAvailability(ctx context.Context, vendorID int64, venueID *int64) ([]domain.Availability, error) {
	q := url.Values{"vendorId": {strconv.FormatInt(vendorID, 10)}}
	if venueID != nil {
		q.Set("venueId", strconv.FormatInt(*venueID, 10))
	}
	var out []domain.Availability
	if err := c.do(ctx, http.MethodGet, "/availability", q, nil, &out); err != nil {
		return nil, fmt.Errorf("client.ListAvailability: %w", err)
	}
	return out, nil
}

// CreateBooking posts the booking once. It never retries.
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	var b domain.Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", nil, req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var b domain.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings/"+id.String(), nil, nil, &b); err != nil {
		return nil, fmt.Errorf("client.GetBooking: %w", err)
	}
	return &b, nil
}

func (c *Client) CancelBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var b domain.Booking
	if err := c.do(ctx, http.MethodPost, "/bookings/"+id.String()+"/cancel", nil, nil, &b); err != nil {
		return nil, fmt.Errorf("client.CancelBooking: %w", err)
	}
	return &b, nil
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil && eb.Error != "" {
			apiErr.Message = eb.Error
		} else {
			apiErr.Message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
