package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/wedgo/internal/service/campaigns"
)

// @Summary  Create vendor
// @Param    req  body  CreateVendorRequest  true  "payload"
// @Success  201  {object}  CreatedResponse
// @Failure  409  {object}  ErrorResponse
// @Router   /admin/vendors [post]
func handleCreateVendor(svcs Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateVendorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Admin.CreateVendor(c.Request.Context(), req.toDomain())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreatedResponse{ID: id})
	}
}

// @Summary  Create venue
// @Param    req  body  CreateVenueRequest  true  "payload"
// @Success  201  {object}  CreatedResponse
// @Failure  404  {object}  ErrorResponse "vendor not found"
// @Failure  409  {object}  ErrorResponse
// @Router   /admin/venues [post]
func handleCreateVenue(svcs Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateVenueRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Admin.CreateVenue(c.Request.Context(), req.toDomain())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreatedResponse{ID: id})
	}
}

// @Summary  Create vendor service
// @Param    id   path  int                   true  "Vendor ID"
// @Param    req  body  CreateServiceRequest  true  "payload"
// @Success  201  {object}  CreatedResponse
// @Failure  400  {object}  ErrorResponse
// @Router   /admin/vendors/{id}/services [post]
func handleCreateService(svcs Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req CreateServiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Admin.CreateService(c.Request.Context(), req.toDomain(vendorID))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreatedResponse{ID: id})
	}
}

// @Summary  Batch create time slots
// @Param    id   path  int                      true  "Vendor ID"
// @Param    req  body  BatchCreateSlotsRequest  true  "payload"
// @Success  201  {object}  map[string]int
// @Failure  409  {object}  ErrorResponse "all slots exist"
// @Router   /admin/vendors/{id}/slots [post]
func handleBatchCreateSlots(svcs Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req BatchCreateSlotsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		slots, err := req.toDomain()
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		n, err := svcs.Admin.BatchCreateSlots(c.Request.Context(), vendorID, slots)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"created": n})
	}
}

// @Summary  Open or close a slot
// @Param    id   path  int                       true  "Slot ID"
// @Param    req  body  SetSlotAvailabilityRequest  true  "payload"
// @Success  204
// @Failure  404  {object}  ErrorResponse
// @Router   /admin/slots/{id} [patch]
func handleSetSlotAvailability(svcs Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		slotID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req SetSlotAvailabilityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := svcs.Admin.SetSlotAvailability(c.Request.Context(), slotID, *req.IsAvailable); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Create venue campaign
// @Param    id   path  int                    true  "Venue ID"
// @Param    req  body  CreateCampaignRequest  true  "payload"
// @Success  201  {object}  domain.CampaignWithMetrics
// @Failure  400  {object}  ErrorResponse
// @Router   /admin/venues/{id}/campaigns [post]
func handleCreateCampaign(svcs Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		venueID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req CreateCampaignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		starts, err := parseRFC3339(req.StartsAt)
		if err != nil {
			badRequest(c, "invalid starts_at (RFC3339)")
			return
		}
		ends, err := parseRFC3339(req.EndsAt)
		if err != nil {
			badRequest(c, "invalid ends_at (RFC3339)")
			return
		}
		out, err := svcs.Campaigns.Create(c.Request.Context(), campaigns.CreateParams{
			VenueID:     venueID,
			Name:        req.Name,
			BudgetCents: req.BudgetCents,
			StartsAt:    starts,
			EndsAt:      ends,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

// @Summary  Confirm a paid booking
// @Param    id   path  string                 true  "Booking ID (uuid)"
// @Param    req  body  ConfirmBookingRequest  false "payment reference"
// @Success  200  {object}  domain.Booking
// @Failure  409  {object}  ErrorResponse
// @Router   /admin/bookings/{id}/confirm [post]
func handleConfirmBooking(svcs Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req ConfirmBookingRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				badRequest(c, err.Error())
				return
			}
		}
		b, err := svcs.Booking.Confirm(c.Request.Context(), id, req.PaymentIntentID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}
