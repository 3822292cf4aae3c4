package errors

import "net/http"

var (
	ErrLocationNotFound = New(
		"LOCATION_NOT_FOUND",
		"Location not found",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrUnknownCabinClass = New(
		"UNKNOWN_CABIN_CLASS",
		"Unknown cabin class",
		http.StatusBadRequest,
	)

	ErrInvalidPassengers = New(
		"INVALID_PASSENGERS",
		"Passenger count must be positive",
		http.StatusBadRequest,
	)

	ErrInvalidCargo = New(
		"INVALID_CARGO",
		"Cargo tons must be non-negative",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrLookupFailed = New(
		"LOOKUP_FAILED",
		"Route lookup failed, retry later",
		http.StatusServiceUnavailable,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

func init() {
	ErrLookupFailed.Retryable = true
}
