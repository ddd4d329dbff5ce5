package httpdto

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	beacon_errors "beacon-chat/pkg/errors"
)

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{beacon_errors.ErrInvalidInput, http.StatusBadRequest, "INVALID_REQUEST"},
		{beacon_errors.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{beacon_errors.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{beacon_errors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{beacon_errors.ErrConflict, http.StatusConflict, "CONFLICT"},
		{beacon_errors.ErrAlreadyExists, http.StatusConflict, "CONFLICT"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		status, resp := StatusFromError(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, resp.Code, tc.err.Error())
		assert.False(t, resp.Success)
	}
}

func TestStatusFromErrorWrapped(t *testing.T) {
	status, _ := StatusFromError(fmt.Errorf("channel lookup: %w", beacon_errors.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, status)
}
