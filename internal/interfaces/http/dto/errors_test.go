package dto

import (
	"net/http"
	"testing"

	"github.com/smbc/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{shared.CodeValidation, http.StatusBadRequest},
		{shared.CodeConcurrency, http.StatusConflict},
		{shared.CodeDuplicateRequest, http.StatusConflict},
		{shared.CodeAggregationInput, http.StatusUnprocessableEntity},
		{shared.CodeStorageUnavailable, http.StatusServiceUnavailable},
		{shared.CodeNotFound, http.StatusNotFound},
		{shared.CodeInvalidState, http.StatusUnprocessableEntity},
		{shared.CodeForbidden, http.StatusForbidden},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewListResponse(t *testing.T) {
	resp := NewListResponse([]int{1, 2}, 2)
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Meta.Total)
	assert.Nil(t, resp.Error)
}
