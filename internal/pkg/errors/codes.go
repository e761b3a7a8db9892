package errors

import "net/http"

// Статус 499 (client closed request) - отмена запроса вызывающей стороной,
// это не сбой сервиса
const statusClientClosedRequest = 499

var (
	ErrLocationUnresolved = New(
		"LOCATION_UNRESOLVED",
		"Accommodation address could not be resolved to coordinates",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidTravelMode = New(
		"INVALID_TRAVEL_MODE",
		"Invalid travel mode",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrDiscoveryCancelled = New(
		"DISCOVERY_CANCELLED",
		"Discovery request was cancelled by the caller",
		statusClientClosedRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
