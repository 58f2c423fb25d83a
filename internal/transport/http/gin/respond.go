package httpgin

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/wedgo/internal/repository"
	"github.com/kirinyoku/wedgo/internal/service/admin"
	"github.com/kirinyoku/wedgo/internal/service/booking"
	"github.com/kirinyoku/wedgo/internal/service/campaigns"
	"github.com/kirinyoku/wedgo/internal/service/catalog"
	"github.com/kirinyoku/wedgo/internal/service/payments"
)

// slotUnavailableMessage is shown to requesters verbatim.
const slotUnavailableMessage = "Slot unavailable"

var errorStatus = []struct {
	err    error
	status int
	msg    string
}{
	// catalog service
	{catalog.ErrVendorNotFound, http.StatusNotFound, "vendor not found"},
	{catalog.ErrVenueNotFound, http.StatusNotFound, "venue not found"},
	// booking service
	{booking.ErrSlotUnavailable, http.StatusConflict, slotUnavailableMessage},
	{booking.ErrBookingNotFound, http.StatusNotFound, "booking not found"},
	{booking.ErrAlreadyCancelled, http.StatusConflict, "booking is already cancelled"},
	{booking.ErrNotPending, http.StatusConflict, "booking is not pending"},
	{booking.ErrPaymentMissing, http.StatusConflict, "booking has no payment attached"},
	// payments service
	{payments.ErrBookingNotFound, http.StatusNotFound, "booking not found"},
	{payments.ErrNotPayable, http.StatusConflict, "booking cannot be paid"},
	// campaigns service
	{campaigns.ErrInvalidCampaign, http.StatusBadRequest, ""},
	{campaigns.ErrInvalidStats, http.StatusBadRequest, ""},
	{campaigns.ErrVenueNotFound, http.StatusNotFound, "venue not found"},
	{campaigns.ErrCampaignNotFound, http.StatusNotFound, "campaign not found"},
	// admin service
	{admin.ErrInvalidInput, http.StatusBadRequest, ""},
	{admin.ErrVendorConflict, http.StatusConflict, "vendor conflict"},
	{admin.ErrVenueConflict, http.StatusConflict, "venue conflict"},
	{admin.ErrSlotsConflict, http.StatusConflict, "slots conflict"},
	{admin.ErrVendorNotFound, http.StatusNotFound, "vendor not found"},
	{admin.ErrSlotNotFound, http.StatusNotFound, "slot not found"},
	// rows the schema's CHECK constraints refuse
	{repository.ErrConstraint, http.StatusBadRequest, "constraint violated"},
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var rl *booking.RateLimitedError
	if errors.As(err, &rl) {
		secs := int(math.Ceil(rl.RetryAfter.Seconds()))
		if secs < 1 {
			secs = 1
		}
		c.Header("Retry-After", strconv.Itoa(secs))
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limited"})
		return
	}

	var ve *booking.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: ve.Error()})
		return
	}

	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			msg := e.msg
			if msg == "" {
				msg = fromSentinel(err, e.err)
			}
			c.JSON(e.status, ErrorResponse{Error: msg})
			return
		}
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// fromSentinel drops the operation prefixes in front of a sentinel's text,
// keeping any detail that follows it.
func fromSentinel(err, sentinel error) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()); i >= 0 {
		return msg[i:]
	}
	return sentinel.Error()
}
