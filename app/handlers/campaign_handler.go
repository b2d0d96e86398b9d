package handlers

import (
	"io"
	"log"
	"strconv"

	"github.com/cobraops/cobra-core/app/dto"
	businessflow "github.com/cobraops/cobra-core/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// CampaignHandlerInterface defines the contract for campaign handlers
type CampaignHandlerInterface interface {
	RunCampaign(c fiber.Ctx) error
}

// CampaignHandler handles outbound campaign HTTP requests
type CampaignHandler struct {
	responder
	campaignFlow businessflow.CampaignFlow
	validator    *validator.Validate
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaignFlow businessflow.CampaignFlow) *CampaignHandler {
	return &CampaignHandler{
		campaignFlow: campaignFlow,
		validator:    validator.New(),
	}
}

// RunCampaign accepts a multipart workbook upload and fans it out over the
// requested channel. The workbook file field is named "workbook"; the
// remaining parameters arrive as ordinary form values.
func (h *CampaignHandler) RunCampaign(c fiber.Ctx) error {
	fileHeader, err := c.FormFile("workbook")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Workbook file is required", "MISSING_WORKBOOK", err.Error())
	}

	companyID, err := strconv.ParseUint(c.FormValue("company_id"), 10, 32)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid company_id", "INVALID_REQUEST", nil)
	}

	req := dto.RunCampaignRequest{
		CompanyID:   uint(companyID),
		Channel:     c.FormValue("channel"),
		FromNumber:  c.FormValue("from_number"),
		CountryCode: c.FormValue("country_code"),
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Failed to open workbook", "INVALID_WORKBOOK", err.Error())
	}
	defer file.Close()
	req.Workbook, err = io.ReadAll(file)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Failed to read workbook", "INVALID_WORKBOOK", err.Error())
	}

	summary, err := h.campaignFlow.RunCampaign(h.createRequestContext(c, "/api/v1/campaigns/run"), &req)
	if err != nil {
		if businessflow.IsCompanyNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Company not found", "COMPANY_NOT_FOUND", nil)
		}
		log.Println("Campaign run failed", err)
		return h.businessErrorResponse(c, err, "Campaign run failed")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Campaign executed", summary)
}
