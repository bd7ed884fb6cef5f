package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("missing %s", "email"), http.StatusBadRequest},
		{"conflict", Conflict("already reviewed"), http.StatusBadRequest},
		{"not found", NotFound("request not found"), http.StatusNotFound},
		{"auth", Auth("invalid credentials"), http.StatusUnauthorized},
		{"forbidden", Forbidden("insufficient permissions"), http.StatusForbidden},
		{"rate limited", RateLimited("slow down"), http.StatusTooManyRequests},
		{"wrapped not found", fmt.Errorf("approve: %w", NotFound("gone")), http.StatusNotFound},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(fmt.Errorf("create: %w", &pq.Error{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("other")))
}
