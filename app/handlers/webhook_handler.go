package handlers

import (
	"log"

	"github.com/cobraops/cobra-core/app/dto"
	businessflow "github.com/cobraops/cobra-core/business_flow"
	"github.com/cobraops/cobra-core/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// WebhookHandlerInterface defines the contract for provider webhook handlers
type WebhookHandlerInterface interface {
	InboundWhatsApp(c fiber.Ctx) error
	InboundSMS(c fiber.Ctx) error
	InboundVoice(c fiber.Ctx) error
}

// WebhookHandler receives provider callbacks for inbound debtor traffic.
// Providers retry on non-2xx, so handler failures that the flow already
// absorbed still answer 200.
type WebhookHandler struct {
	responder
	inboundFlow businessflow.InboundFlow
	validator   *validator.Validate
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(inboundFlow businessflow.InboundFlow) *WebhookHandler {
	return &WebhookHandler{
		inboundFlow: inboundFlow,
		validator:   validator.New(),
	}
}

// InboundWhatsApp handles one inbound WhatsApp message callback
func (h *WebhookHandler) InboundWhatsApp(c fiber.Ctx) error {
	return h.inboundMessage(c, models.ChatChannelWhatsApp, "/api/v1/webhooks/whatsapp")
}

// InboundSMS handles one inbound SMS callback
func (h *WebhookHandler) InboundSMS(c fiber.Ctx) error {
	return h.inboundMessage(c, models.ChatChannelSMS, "/api/v1/webhooks/sms")
}

func (h *WebhookHandler) inboundMessage(c fiber.Ctx, channel models.ChatChannel, endpoint string) error {
	var req dto.InboundMessageRequest
	if err := c.Bind().Form(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	if err := h.inboundFlow.HandleMessage(h.createRequestContext(c, endpoint), &req, channel); err != nil {
		log.Println("Inbound message handling failed", err)
		return h.businessErrorResponse(c, err, "Inbound message handling failed")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// InboundVoice handles one speech-recognition turn of an active call. The
// response body is call-control markup and must never be empty; every
// failure path still speaks something to the caller.
func (h *WebhookHandler) InboundVoice(c fiber.Ctx) error {
	var req dto.InboundVoiceRequest
	if err := c.Bind().Form(&req); err != nil {
		log.Println("Inbound voice bind failed", err)
		req = dto.InboundVoiceRequest{From: c.FormValue("From"), To: c.FormValue("To")}
	}

	markup := h.inboundFlow.HandleVoice(h.createRequestContext(c, "/api/v1/webhooks/voice"), &req)
	c.Set(fiber.HeaderContentType, "text/xml")
	return c.Status(fiber.StatusOK).SendString(markup)
}
