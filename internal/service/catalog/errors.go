package catalog

import "errors"

var (
	ErrVendorNotFound = errors.New("vendor not found")
	ErrVenueNotFound  = errors.New("venue not found")
)
