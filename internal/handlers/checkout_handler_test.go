package handlers

import (
	"errors"
	"net/http"
	"testing"

	"booking-system/internal/status"

	"github.com/pocketbase/pocketbase/tools/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutError_StatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"expired draft", status.ErrDraftNotFound, http.StatusNotFound},
		{"empty selection", status.ErrEmptySelection, http.StatusBadRequest},
		{"missing contact", status.ErrMissingContact, http.StatusBadRequest},
		{"invalid email", status.ErrInvalidEmail, http.StatusBadRequest},
		{"missing proof", status.ErrMissingProof, http.StatusBadRequest},
		{"oversize proof", status.ErrProofTooLarge, http.StatusBadRequest},
		{"bad proof type", status.ErrProofBadType, http.StatusBadRequest},
		{"bad transition", status.ErrBadTransition, http.StatusBadRequest},
		{"unexpected", errors.New("redis timeout"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var apiErr *router.ApiError
			require.ErrorAs(t, checkoutError(tt.err), &apiErr)
			assert.Equal(t, tt.want, apiErr.Status)
		})
	}
}

func TestCheckoutError_WrappedSentinel(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), status.ErrInvalidEmail)

	var apiErr *router.ApiError
	require.ErrorAs(t, checkoutError(wrapped), &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}
