package errors

import "net/http"

var (
	ErrAOINotRegistered = New(
		"AOI_NOT_REGISTERED",
		"AOI is not registered in the counter store",
		http.StatusNotFound,
	)

	ErrNegativeCount = New(
		"NEGATIVE_COUNT",
		"Scene count must not be negative",
		http.StatusBadRequest,
	)

	ErrInvalidAOI = New(
		"INVALID_AOI",
		"AOI vector file does not contain a polygon",
		http.StatusBadRequest,
	)

	ErrInvalidSearch = New(
		"INVALID_SEARCH",
		"Invalid search parameters",
		http.StatusBadRequest,
	)

	ErrNotAuthenticated = New(
		"NOT_AUTHENTICATED",
		"Catalog client is not authenticated",
		http.StatusUnauthorized,
	)

	ErrCatalogAuth = New(
		"CATALOG_AUTH_FAILED",
		"Catalog authentication failed",
		http.StatusBadGateway,
	)

	ErrCounterStore = New(
		"COUNTER_STORE_ERROR",
		"Counter store operation failed",
		http.StatusInternalServerError,
	)

	ErrNoCycleYet = New(
		"NO_CYCLE_YET",
		"No alert cycle has completed yet",
		http.StatusNotFound,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
