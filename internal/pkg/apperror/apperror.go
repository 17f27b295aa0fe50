// Package apperror carries API errors together with the identifier clients
// use to tell them apart.
package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	IdentifierMissingPermission           = "urn:openproject-org:api:v3:errors:MissingPermission"
	IdentifierNotFound                    = "urn:openproject-org:api:v3:errors:NotFound"
	IdentifierInvalidQuery                = "urn:openproject-org:api:v3:errors:InvalidQuery"
	IdentifierInvalidRequestBody          = "urn:openproject-org:api:v3:errors:InvalidRequestBody"
	IdentifierPropertyConstraintViolation = "urn:openproject-org:api:v3:errors:PropertyConstraintViolation"
	IdentifierInternal                    = "urn:openproject-org:api:v3:errors:InternalServerError"
)

type APIError struct {
	Status          int
	ErrorIdentifier string
	Message         string
	Err             error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func MissingPermission(message string) *APIError {
	return &APIError{
		Status:          fiber.StatusForbidden,
		ErrorIdentifier: IdentifierMissingPermission,
		Message:         message,
	}
}

func NotFound(message string) *APIError {
	return &APIError{
		Status:          fiber.StatusNotFound,
		ErrorIdentifier: IdentifierNotFound,
		Message:         message,
	}
}

func InvalidQuery(err error) *APIError {
	return &APIError{
		Status:          fiber.StatusBadRequest,
		ErrorIdentifier: IdentifierInvalidQuery,
		Message:         "The query parameters are invalid",
		Err:             err,
	}
}

func InvalidRequestBody(err error) *APIError {
	return &APIError{
		Status:          fiber.StatusBadRequest,
		ErrorIdentifier: IdentifierInvalidRequestBody,
		Message:         "The request body is invalid",
		Err:             err,
	}
}

func PropertyConstraintViolation(err error) *APIError {
	return &APIError{
		Status:          fiber.StatusUnprocessableEntity,
		ErrorIdentifier: IdentifierPropertyConstraintViolation,
		Message:         err.Error(),
		Err:             err,
	}
}

// IdentifierOf returns the identifier of the first APIError in err's chain.
func IdentifierOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorIdentifier
	}
	return ""
}

func Is(err error, identifier string) bool {
	return err != nil && IdentifierOf(err) == identifier
}
