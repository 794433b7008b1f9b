package rest

import (
	"net/http"

	"devMart/pkg/apperr"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// errStatus maps a classified business error to its HTTP status.
func errStatus(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindPermission:
		return http.StatusForbidden
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindPersistence:
		return http.StatusInternalServerError
	}

	return http.StatusInternalServerError
}
