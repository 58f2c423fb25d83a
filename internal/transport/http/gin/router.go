package httpgin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kirinyoku/wedgo/internal/domain"
	redisrepo "github.com/kirinyoku/wedgo/internal/repository/redis"
	"github.com/kirinyoku/wedgo/internal/service/booking"
	"github.com/kirinyoku/wedgo/internal/service/campaigns"
	"github.com/kirinyoku/wedgo/internal/service/payments"
)

type CatalogService interface {
	GetVendor(ctx context.Context, id int64) (*domain.Vendor, error)
	GetVenue(ctx context.Context, id int64) (*domain.Venue, error)
	ListServices(ctx context.Context, vendorID int64) ([]domain.Service, error)
	Availability(ctx context.Context, vendorID int64, venueID *int64, date *time.Time) ([]domain.Availability, error)
}

type BookingService interface {
	Create(ctx context.Context, req booking.CreateRequest, rlKey string) (*domain.Booking, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Cancel(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Confirm(ctx context.Context, id uuid.UUID, paymentRef string) (*domain.Booking, error)
}

type PaymentService interface {
	Checkout(ctx context.Context, bookingID uuid.UUID) (*payments.Checkout, error)
}

type CampaignService interface {
	Create(ctx context.Context, p campaigns.CreateParams) (*domain.CampaignWithMetrics, error)
	ListByVenue(ctx context.Context, venueID int64) ([]domain.CampaignWithMetrics, error)
	RecordStats(ctx context.Context, id int64, impressions, clicks, spendCents int64) (*domain.CampaignWithMetrics, error)
}

type AdminService interface {
	CreateVendor(ctx context.Context, v domain.Vendor) (int64, error)
	CreateVenue(ctx context.Context, v domain.Venue) (int64, error)
	CreateService(ctx context.Context, s domain.Service) (int64, error)
	BatchCreateSlots(ctx context.Context, vendorID int64, slots []domain.TimeSlot) (int64, error)
	SetSlotAvailability(ctx context.Context, slotID int64, available bool) error
}

type IdempotencyStore interface {
	Begin(ctx context.Context, key, fingerprint string) (redisrepo.IdemState, *redisrepo.StoredResponse, error)
	Complete(ctx context.Context, key, fingerprint string, resp redisrepo.StoredResponse) error
	Abandon(ctx context.Context, key string) error
}

// Services are the handlers' dependencies. Payments may be nil, in which case
// the checkout route is not mounted.
type Services struct {
	Catalog   CatalogService
	Booking   BookingService
	Payments  PaymentService
	Campaigns CampaignService
	Admin     AdminService
}

func NewRouter(
	svcs Services,
	idem IdempotencyStore,
	logger *slog.Logger,
	corsOrigins []string,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS(corsOrigins...))
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public API
	r.GET("/vendors/:id", handleGetVendor(svcs))
	r.GET("/venues/:id", handleGetVenue(svcs))
	r.GET("/services", handleListServices(svcs))
	r.GET("/availability", handleListAvailability(svcs))

	r.POST("/bookings", handleCreateBooking(svcs, idem, logger))
	r.GET("/bookings/:id", handleGetBooking(svcs))
	r.POST("/bookings/:id/cancel", handleCancelBooking(svcs))
	if svcs.Payments != nil {
		r.POST("/bookings/:id/checkout", handleCheckout(svcs))
	}

	r.GET("/venues/:id/campaigns", handleListCampaigns(svcs))
	r.POST("/campaigns/:id/stats", handleRecordStats(svcs))

	// Admin-API
	// TODO: add admin middleware
	admin := r.Group("/admin")
	{
		admin.POST("/vendors", handleCreateVendor(svcs))
		admin.POST("/venues", handleCreateVenue(svcs))
		admin.POST("/vendors/:id/services", handleCreateService(svcs))
		admin.POST("/vendors/:id/slots", handleBatchCreateSlots(svcs))
		admin.PATCH("/slots/:id", handleSetSlotAvailability(svcs))
		admin.POST("/venues/:id/campaigns", handleCreateCampaign(svcs))
		admin.POST("/bookings/:id/confirm", handleConfirmBooking(svcs))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  Get vendor
// @Param    id  path  int  true  "Vendor ID"
// @Success  200  {object}  domain.Vendor
// @Failure  404  {object}  ErrorResponse
// @Router   /vendors/{id} [get]
func handleGetVendor(svcs Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		v, err := svcs.Catalog.GetVendor(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, v, "public, max-age=60", true)
	}
}

// @Summary  Get venue
// @Param    id  path  int  true  "Venue ID"
// @Success  200  {object}  domain.Venue
// @Failure  404  {object}  ErrorResponse
// @Router   /venues/{id} [get]
func handleGetVenue(svcs Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		v, err := svcs.Catalog.GetVenue(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, v, "public, max-age=60", true)
	}
}

// @Summary  List vendor services
// @Param    vendorId  query  int  true  "Vendor ID"
// @Success  200  {array}  domain.Service
// @Failure  400  {object}  ErrorResponse
// @Router   /services [get]
func handleListServices(svcs Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, ok := parseInt64Query(c, "vendorId")
		if !ok {
			return
		}
		out, err := svcs.Catalog.ListServices(c.Request.Context(), vendorID)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, out, "public, max-age=60", true)
	}
}

// @Summary  List availability
// @Param    vendorId  query  int     true   "Vendor ID"
// @Param    venueId   query  int     false  "Venue ID"
// @Param    date      query  string  false  "YYYY-MM-DD"
// @Success  200  {array}  domain.Availability
// @Failure  400  {object}  ErrorResponse
// @Router   /availability [get]
func handleListAvailability(svcs Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, ok := parseInt64Query(c, "vendorId")
		if !ok {
			return
		}
		var venueID *int64
		if s := c.Query("venueId"); s != "" {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil || v <= 0 {
				badRequest(c, "invalid venueId")
				return
			}
			venueID = &v
		}
		var date *time.Time
		if s := c.Query("date"); s != "" {
			d, err := domain.ParseDate(s)
			if err != nil {
				badRequest(c, "invalid date (YYYY-MM-DD)")
				return
			}
			date = &d
		}
		out, err := svcs.Catalog.Availability(c.Request.Context(), vendorID, venueID, date)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, out, "public, max-age=15", true)
	}
}

// @Summary  Create booking (idempotent)
// @Param    req  body  CreateBookingRequest  true  "booking draft"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201  {object}  domain.Booking
// @Failure  400  {object}  ErrorResponse
// @Failure  409  {object}  ErrorResponse "slot unavailable / idem in progress"
// @Failure  422  {object}  ErrorResponse "idempotency key reused"
// @Failure  429  {object}  ErrorResponse "rate limited"
// @Router   /bookings [post]
func handleCreateBooking(svcs Services, idem IdempotencyStore, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		in, err := req.toService()
		if err != nil {
			badRequest(c, err.Error())
			return
		}

		ctx := c.Request.Context()
		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var storageKey, fingerprint string
		if idem != nil && idemKey != "" {
			storageKey = redisrepo.KeyIdemBooking(idemKey)
			fingerprint = requestFingerprint(req)

			state, stored, err := idem.Begin(ctx, storageKey, fingerprint)
			if err != nil {
				respondErr(c, err)
				return
			}
			switch state {
			case redisrepo.IdemDone:
				c.Header("Idempotency-Key", idemKey)
				c.Data(stored.Status, "application/json; charset=utf-8", stored.Body)
				return
			case redisrepo.IdemInFlight:
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
				return
			case redisrepo.IdemMismatch:
				c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "idempotency key reused with a different request"})
				return
			}
		}

		b, err := svcs.Booking.Create(ctx, in, "ip:"+c.ClientIP())
		if err != nil {
			// Failed attempts are not replayed; the key can be used again.
			if storageKey != "" {
				if aerr := idem.Abandon(ctx, storageKey); aerr != nil {
					logger.Warn("release idempotency key", slog.String("key", idemKey), slog.Any("err", aerr))
				}
			}
			respondErr(c, err)
			return
		}

		if storageKey != "" {
			body, err := json.Marshal(b)
			if err == nil {
				err = idem.Complete(ctx, storageKey, fingerprint, redisrepo.StoredResponse{Status: http.StatusCreated, Body: body})
			}
			if err != nil {
				logger.Warn("store idempotent response", slog.String("key", idemKey), slog.Any("err", err))
			}
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, b)
	}
}

// @Summary  Get booking
// @Param    id  path  string  true  "Booking ID (uuid)"
// @Success  200  {object}  domain.Booking
// @Failure  404  {object}  ErrorResponse
// @Router   /bookings/{id} [get]
func handleGetBooking(svcs Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		b, err := svcs.Booking.Get(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// @Summary  Cancel booking
// @Param    id  path  string  true  "Booking ID (uuid)"
// @Success  200  {object}  domain.Booking
// @Failure  404  {object}  ErrorResponse
// @Failure  409  {object}  ErrorResponse "already cancelled"
// @Router   /bookings/{id}/cancel [post]
func handleCancelBooking(svcs Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		b, err := svcs.Booking.Cancel(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// @Summary  Start payment for a booking
// @Param    id  path  string  true  "Booking ID (uuid)"
// @Success  201  {object}  payments.Checkout
// @Failure  404  {object}  ErrorResponse
// @Failure  409  {object}  ErrorResponse "not payable"
// @Router   /bookings/{id}/checkout [post]
func handleCheckout(svcs Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		out, err := svcs.Payments.Checkout(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

// @Summary  List venue campaigns
// @Param    id  path  int  true  "Venue ID"
// @Success  200  {array}  domain.CampaignWithMetrics
// @Router   /venues/{id}/campaigns [get]
func handleListCampaigns(svcs Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		venueID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		out, err := svcs.Campaigns.ListByVenue(c.Request.Context(), venueID)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, out, "public, max-age=15", true)
	}
}

// @Summary  Record campaign stats
// @Param    id   path  int                 true  "Campaign ID"
// @Param    req  body  RecordStatsRequest  true  "interval counters"
// @Success  200  {object}  domain.CampaignWithMetrics
// @Failure  400  {object}  ErrorResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /campaigns/{id}/stats [post]
func handleRecordStats(svcs Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req RecordStatsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		out, err := svcs.Campaigns.RecordStats(c.Request.Context(), id, req.Impressions, req.Clicks, req.SpendCents)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// --- Helpers ---

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	s := c.Param(name)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func parseInt64Query(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || v <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}
