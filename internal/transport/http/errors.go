package http

import (
	"errors"
	"net/http"

	"github.com/light-bringer/procat-browser/internal/app/catalog/domain"
)

// mapErrorToStatus converts provider and domain errors to HTTP status codes.
func mapErrorToStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidPageRequest):
		return http.StatusBadRequest, "page must be at least 1 and limit positive"

	case errors.Is(err, domain.ErrInvalidProductID):
		return http.StatusBadRequest, "product id must be a positive integer"

	case domain.IsFetchError(err):
		return http.StatusBadGateway, "catalog source unavailable"

	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
