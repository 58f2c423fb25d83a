package redisrepo

import "fmt"

const ns = "wedgo:v1"

func KeyVendor(vendorID int64) string {
	return fmt.Sprintf("%s:vendor:%d", ns, vendorID)
}

func KeyVenue(venueID int64) string {
	return fmt.Sprintf("%s:venue:%d", ns, venueID)
}

func KeyVendorServices(vendorID int64) string {
	return fmt.Sprintf("%s:vendor:%d:services", ns, vendorID)
}

// KeyAvailability holds the availability of one vendor at one venue.
func KeyAvailability(vendorID, venueID int64) string {
	return fmt.Sprintf("%s:vendor:%d:availability:%d", ns, vendorID, venueID)
}

// KeyAvailabilityAllVenues holds the availability of a vendor across venues.
func KeyAvailabilityAllVenues(vendorID int64) string {
	return fmt.Sprintf("%s:vendor:%d:availability:all", ns, vendorID)
}

// KeyAvailabilityPattern matches every availability key of a vendor.
func KeyAvailabilityPattern(vendorID int64) string {
	return fmt.Sprintf("%s:vendor:%d:availability:*", ns, vendorID)
}

func ChannelAvailabilityChanged() string {
	return ns + ":availability:changed"
}
