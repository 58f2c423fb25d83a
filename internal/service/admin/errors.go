package admin

import (
	"errors"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrVendorConflict = errors.New("vendor already exists")
	ErrVenueConflict  = errors.New("venue already exists")
	ErrSlotsConflict  = errors.New("all slots already exist")
	ErrVendorNotFound = errors.New("vendor not found")
	ErrSlotNotFound   = errors.New("slot not found")
)
