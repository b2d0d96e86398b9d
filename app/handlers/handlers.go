// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cobraops/cobra-core/app/dto"
	businessflow "github.com/cobraops/cobra-core/business_flow"
	"github.com/cobraops/cobra-core/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// responder carries the response helpers shared by all handlers
type responder struct{}

func (responder) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (responder) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// createRequestContext builds a request-scoped context with a hard timeout
func (responder) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}

// businessErrorResponse maps a business error's taxonomy code onto an HTTP
// status. Unknown codes degrade to 500 without leaking internals.
func (r responder) businessErrorResponse(c fiber.Ctx, err error, fallbackMessage string) error {
	var be *businessflow.BusinessError
	if !errors.As(err, &be) {
		return r.ErrorResponse(c, fiber.StatusInternalServerError, fallbackMessage, "INTERNAL_ERROR", nil)
	}
	status := fiber.StatusInternalServerError
	switch be.Code {
	case businessflow.CodeValidationFailed:
		status = fiber.StatusBadRequest
	case businessflow.CodeNotFound:
		status = fiber.StatusNotFound
	case businessflow.CodeConflict:
		status = fiber.StatusConflict
	case businessflow.CodeProviderFailure:
		status = fiber.StatusBadGateway
	}
	return r.ErrorResponse(c, status, be.Message, be.Code, nil)
}

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "min":
		return err.Field() + " must be at least " + err.Param()
	case "max":
		return err.Field() + " must be at most " + err.Param()
	case "len":
		return err.Field() + " must be exactly " + err.Param() + " characters"
	case "oneof":
		return err.Field() + " must be one of: " + err.Param()
	case "numeric":
		return err.Field() + " must contain only numbers"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", err.Field(), err.Param())
	default:
		return err.Field() + " is invalid"
	}
}

func validationDetails(err error) []string {
	var messages []string
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		for _, fe := range fieldErrors {
			messages = append(messages, getValidationErrorMessage(fe))
		}
	}
	return messages
}
