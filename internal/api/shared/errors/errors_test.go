package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-token-registry/internal/domain"
)

func TestFromDomainError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    ErrorCode
		wantDetails string
		wantOK      bool
	}{
		{
			name:        "missing authority",
			err:         domain.RequireAuth(domain.Signers{"bob"}, "alice"),
			wantStatus:  http.StatusForbidden,
			wantCode:    "missing_authority",
			wantDetails: "missing required authority alice",
			wantOK:      true,
		},
		{
			name:       "bare sentinel has no details",
			err:        domain.ErrDuplicateTicker,
			wantStatus: http.StatusConflict,
			wantCode:   "duplicate_ticker",
			wantOK:     true,
		},
		{
			name:        "wrapped validation error",
			err:         fmt.Errorf("%w: ticker too short", domain.ErrValidation),
			wantStatus:  http.StatusUnprocessableEntity,
			wantCode:    "validation_failed",
			wantDetails: "validation failed: ticker too short",
			wantOK:      true,
		},
		{
			name:       "not found",
			err:        domain.ErrTickerNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "ticker_not_found",
			wantOK:     true,
		},
		{
			name:        "invariant",
			err:         fmt.Errorf("failed to distribute: %w", domain.ErrAllocationMismatch),
			wantStatus:  http.StatusUnprocessableEntity,
			wantCode:    "allocation_mismatch",
			wantOK:      true,
			wantDetails: "failed to distribute: invalid token distribution",
		},
		{
			name:       "non-domain error",
			err:        fmt.Errorf("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantOK:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, apiErr, ok := FromDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Nil(t, apiErr)
				return
			}
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, tt.wantDetails, apiErr.Details)
		})
	}
}

func TestAPIErrorJSON(t *testing.T) {
	err := NewValidationError("ticker is required")
	assert.JSONEq(t, `{"code":"validation_failed","message":"Validation failed","details":"ticker is required"}`, err.Error())
}
