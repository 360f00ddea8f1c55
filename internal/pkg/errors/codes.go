package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidSessionID = New(
		"INVALID_SESSION_ID",
		"Invalid session ID",
		http.StatusBadRequest,
	)

	ErrSessionNotFound = New(
		"SESSION_NOT_FOUND",
		"Session not found or expired",
		http.StatusNotFound,
	)

	ErrUpstreamUnavailable = New(
		"UPSTREAM_UNAVAILABLE",
		"Crossing dataset could not be loaded",
		http.StatusBadGateway,
	)

	ErrStaleRefresh = New(
		"STALE_REFRESH",
		"A newer refresh for this session has already been applied",
		http.StatusConflict,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
