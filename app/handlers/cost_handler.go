package handlers

import (
	"log"
	"strconv"
	"time"

	"github.com/cobraops/cobra-core/app/dto"
	businessflow "github.com/cobraops/cobra-core/business_flow"
	"github.com/gofiber/fiber/v3"
)

// CostHandlerInterface defines the contract for cost handlers
type CostHandlerInterface interface {
	ListCosts(c fiber.Ctx) error
}

// CostHandler exposes the per-company cost ledger
type CostHandler struct {
	responder
	costFlow businessflow.CostFlow
}

// NewCostHandler creates a new cost handler
func NewCostHandler(costFlow businessflow.CostFlow) *CostHandler {
	return &CostHandler{costFlow: costFlow}
}

// ListCosts returns ledger rows for a company, optionally bounded by the
// RFC 3339 "after" and "before" query parameters.
func (h *CostHandler) ListCosts(c fiber.Ctx) error {
	companyID, err := strconv.ParseUint(c.Params("company_id"), 10, 32)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid company_id", "INVALID_REQUEST", nil)
	}

	req := dto.ListCostsRequest{CompanyID: uint(companyID)}
	if raw := c.Query("after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid after timestamp", "INVALID_REQUEST", nil)
		}
		req.After = &t
	}
	if raw := c.Query("before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid before timestamp", "INVALID_REQUEST", nil)
		}
		req.Before = &t
	}

	result, err := h.costFlow.ListCosts(h.createRequestContext(c, "/api/v1/costs/:company_id"), &req)
	if err != nil {
		if businessflow.IsCompanyNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Company not found", "COMPANY_NOT_FOUND", nil)
		}
		log.Println("Cost listing failed", err)
		return h.businessErrorResponse(c, err, "Cost listing failed")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Costs retrieved", result)
}
