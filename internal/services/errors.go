package services

import "errors"

var (
	ErrZoneNotFound              = errors.New("zone not found")
	ErrZoneInactive              = errors.New("zone is inactive")
	ErrAssignmentNotFound        = errors.New("zone assignment not found")
	ErrAssignmentAlreadyActive   = errors.New("zone assignment is already active")
	ErrAssignmentAlreadyInactive = errors.New("zone assignment is already inactive")
	ErrInvalidPolygon            = errors.New("invalid zone polygon")
	ErrInvalidDeliveryFee        = errors.New("invalid delivery fee")
	ErrNoZoneAvailable           = errors.New("no zone available for location")
)
