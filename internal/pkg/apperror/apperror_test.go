package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestIdentifierOfWrappedError(t *testing.T) {
	err := fmt.Errorf("creating draft: %w", MissingPermission("nope"))

	assert.Equal(t, IdentifierMissingPermission, IdentifierOf(err))
	assert.True(t, Is(err, IdentifierMissingPermission))
	assert.False(t, Is(err, IdentifierNotFound))
}

func TestIdentifierOfPlainError(t *testing.T) {
	assert.Equal(t, "", IdentifierOf(errors.New("plain")))
	assert.False(t, Is(nil, IdentifierMissingPermission))
}

func TestConstructors(t *testing.T) {
	cause := errors.New("bad json")

	tests := []struct {
		name       string
		err        *APIError
		status     int
		identifier string
	}{
		{"missing permission", MissingPermission("x"), fiber.StatusForbidden, IdentifierMissingPermission},
		{"not found", NotFound("x"), fiber.StatusNotFound, IdentifierNotFound},
		{"invalid query", InvalidQuery(cause), fiber.StatusBadRequest, IdentifierInvalidQuery},
		{"invalid body", InvalidRequestBody(cause), fiber.StatusBadRequest, IdentifierInvalidRequestBody},
		{"constraint", PropertyConstraintViolation(cause), fiber.StatusUnprocessableEntity, IdentifierPropertyConstraintViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.identifier, tt.err.ErrorIdentifier)
		})
	}

	assert.ErrorIs(t, InvalidQuery(cause), cause)
}
