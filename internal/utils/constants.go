package utils

import "time"

// Application Constants
const (
	AppName    = "ZoneDispatch"
	AppVersion = "1.0.0"

	DefaultCurrency = "USD"

	// Zone cache
	DefaultZoneCacheTTL = 10 * time.Minute

	// Request limits
	MaxPendingOrders  = 100000
	MaxPolygonPoints  = 10000
	MaxZoneNameLength = 100
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidInput     = "invalid input"
	ErrInternalServer   = "internal server error"
	ErrNotFound         = "not found"
	ErrConflict         = "conflict"
	ErrValidationFailed = "validation failed"
	ErrZoneInactive     = "zone is inactive"
	ErrZoneNotFound     = "zone not found"
	ErrNoZoneAvailable  = "no zone available for location"
)

// Cache Keys
const (
	CacheZonePrefix         = "zone:"
	CacheBusinessZonePrefix = "zones:business:"
	CacheAllZonesKey        = "zones:all"
)

// Event Types
const (
	EventZoneCreated          = "zone_created"
	EventZoneUpdated          = "zone_updated"
	EventZoneDeleted          = "zone_deleted"
	EventDriverAssigned       = "driver_assigned"
	EventAssignmentActivated  = "assignment_activated"
	EventAssignmentDeactivate = "assignment_deactivated"
	EventZoneRecommended      = "zone_recommended"
)

// Geographic Constants
const (
	EarthRadiusKM    = 6371.0
	EarthRadiusMiles = 3959.0
)
