package httpdto

import (
	"errors"
	"net/http"

	beacon_errors "beacon-chat/pkg/errors"
)

type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func NewSuccessResponse[T any](data T) Response[T] {
	return Response[T]{
		Success: true,
		Data:    data,
	}
}

func NewErrorResponse(err string, code string) Response[any] {
	return Response[any]{
		Success: false,
		Error:   err,
		Code:    code,
	}
}

// StatusFromError maps the service error taxonomy onto HTTP statuses.
func StatusFromError(err error) (int, Response[any]) {
	switch {
	case errors.Is(err, beacon_errors.ErrInvalidInput):
		return http.StatusBadRequest, NewErrorResponse(err.Error(), "INVALID_REQUEST")
	case errors.Is(err, beacon_errors.ErrUnauthorized):
		return http.StatusUnauthorized, NewErrorResponse(err.Error(), "UNAUTHORIZED")
	case errors.Is(err, beacon_errors.ErrForbidden):
		return http.StatusForbidden, NewErrorResponse(err.Error(), "FORBIDDEN")
	case errors.Is(err, beacon_errors.ErrNotFound):
		return http.StatusNotFound, NewErrorResponse(err.Error(), "NOT_FOUND")
	case errors.Is(err, beacon_errors.ErrConflict), errors.Is(err, beacon_errors.ErrAlreadyExists):
		return http.StatusConflict, NewErrorResponse(err.Error(), "CONFLICT")
	default:
		return http.StatusInternalServerError, NewErrorResponse(err.Error(), "INTERNAL_ERROR")
	}
}
