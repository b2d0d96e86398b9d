package handlers

import (
	"log"
	"strconv"

	"github.com/cobraops/cobra-core/app/dto"
	businessflow "github.com/cobraops/cobra-core/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// ScheduleHandlerInterface defines the contract for schedule handlers
type ScheduleHandlerInterface interface {
	ReplaceSchedule(c fiber.Ctx) error
	GetSchedule(c fiber.Ctx) error
}

// ScheduleHandler manages per-company contact window configuration
type ScheduleHandler struct {
	responder
	scheduleFlow businessflow.ScheduleConfigFlow
	validator    *validator.Validate
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(scheduleFlow businessflow.ScheduleConfigFlow) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleFlow: scheduleFlow,
		validator:    validator.New(),
	}
}

// ReplaceSchedule swaps a company's whole contact window
func (h *ScheduleHandler) ReplaceSchedule(c fiber.Ctx) error {
	var req dto.ReplaceScheduleRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	result, err := h.scheduleFlow.ReplaceSchedule(h.createRequestContext(c, "/api/v1/schedules"), &req)
	if err != nil {
		if businessflow.IsCompanyNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Company not found", "COMPANY_NOT_FOUND", nil)
		}
		log.Println("Schedule replacement failed", err)
		return h.businessErrorResponse(c, err, "Schedule replacement failed")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Schedule replaced", result)
}

// GetSchedule returns the stored contact window for a company
func (h *ScheduleHandler) GetSchedule(c fiber.Ctx) error {
	companyID, err := strconv.ParseUint(c.Params("company_id"), 10, 32)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid company_id", "INVALID_REQUEST", nil)
	}

	result, err := h.scheduleFlow.GetSchedule(h.createRequestContext(c, "/api/v1/schedules/:company_id"), uint(companyID))
	if err != nil {
		log.Println("Schedule lookup failed", err)
		return h.businessErrorResponse(c, err, "Schedule lookup failed")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Schedule retrieved", result)
}
