package repository

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrConstraint      = errors.New("constraint violated")
	ErrSlotUnavailable = errors.New("slot unavailable")
)
