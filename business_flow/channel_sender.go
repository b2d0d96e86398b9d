package businessflow

import (
	"context"
	"log"

	"github.com/cobraops/cobra-core/app/services"
	"github.com/cobraops/cobra-core/models"
	"github.com/cobraops/cobra-core/repository"
	"github.com/cobraops/cobra-core/utils"
)

// SendResult is the normalized outcome of one contact attempt. A failed
// provider call yields Success=false rather than an error; one failed
// contact must never abort a campaign batch.
type SendResult struct {
	Success         bool
	Cost            float64
	ProviderMessage string
}

// ChannelSender sends one message on one channel and records the chat-log
// and cost-ledger side effects. The chat row is written first; a ledger
// write failure is logged and swallowed, so delivery tracking is never
// blocked by cost accounting.
type ChannelSender interface {
	Channel() models.CostChannel
	Send(ctx context.Context, companyID uint, from, to, message string) (*SendResult, error)
}

// ChannelSenders bundles one sender per supported channel
type ChannelSenders struct {
	WhatsApp ChannelSender
	SMS      ChannelSender
	Call     ChannelSender
	Email    ChannelSender
}

// ForChannel returns the sender for a cost channel, or nil for channels
// without a sender (agent rental is ledger-only).
func (c *ChannelSenders) ForChannel(channel models.CostChannel) ChannelSender {
	switch channel {
	case models.CostChannelWhatsApp:
		return c.WhatsApp
	case models.CostChannelSMS:
		return c.SMS
	case models.CostChannelCall:
		return c.Call
	case models.CostChannelEmail:
		return c.Email
	default:
		return nil
	}
}

// senderDeps carries the side-effect recording shared by all senders
type senderDeps struct {
	chatRepo repository.ChatMessageRepository
	costRepo repository.CostEntryRepository
}

func (d *senderDeps) recordOutcome(ctx context.Context, companyID uint, chatChannel models.ChatChannel, costChannel models.CostChannel, from, to, body string, success bool, cost float64) {
	msg := &models.ChatMessage{
		CompanyID:  companyID,
		Channel:    chatChannel,
		Direction:  models.ChatDirectionOutbound,
		FromNumber: from,
		ToNumber:   to,
		Body:       body,
		Success:    success,
	}
	if err := d.chatRepo.Save(ctx, msg); err != nil {
		log.Printf("sender: failed to record chat message for company %d: %v", companyID, err)
	}
	if !success {
		return
	}
	entry := &models.CostEntry{CompanyID: companyID, Amount: cost, Channel: costChannel}
	if err := d.costRepo.Save(ctx, entry); err != nil {
		// Cost accuracy is best-effort; the chat row already records delivery.
		log.Printf("sender: failed to record cost entry for company %d: %v", companyID, err)
	}
}

// WhatsAppSender sends through the WhatsApp gateway
type WhatsAppSender struct {
	senderDeps
	svc services.WhatsAppService
}

// NewWhatsAppSender creates a WhatsApp channel sender
func NewWhatsAppSender(svc services.WhatsAppService, chatRepo repository.ChatMessageRepository, costRepo repository.CostEntryRepository) ChannelSender {
	return &WhatsAppSender{senderDeps: senderDeps{chatRepo: chatRepo, costRepo: costRepo}, svc: svc}
}

func (s *WhatsAppSender) Channel() models.CostChannel { return models.CostChannelWhatsApp }

func (s *WhatsAppSender) Send(ctx context.Context, companyID uint, from, to, message string) (*SendResult, error) {
	result, err := s.svc.SendMessage(ctx, from, to, message)
	if err != nil {
		log.Printf("sender: whatsapp delivery to %s failed: %v", to, err)
		s.recordOutcome(ctx, companyID, models.ChatChannelWhatsApp, models.CostChannelWhatsApp, from, to, FailedSendBody, false, 0)
		return &SendResult{Success: false}, nil
	}

	cost := utils.DefaultWhatsAppCost
	if result.Price != nil {
		cost = *result.Price
	}
	s.recordOutcome(ctx, companyID, models.ChatChannelWhatsApp, models.CostChannelWhatsApp, from, to, message, true, cost)
	return &SendResult{Success: true, Cost: cost, ProviderMessage: result.Message}, nil
}

// SMSSender sends through the SMS gateway
type SMSSender struct {
	senderDeps
	svc services.SMSService
}

// NewSMSSender creates an SMS channel sender
func NewSMSSender(svc services.SMSService, chatRepo repository.ChatMessageRepository, costRepo repository.CostEntryRepository) ChannelSender {
	return &SMSSender{senderDeps: senderDeps{chatRepo: chatRepo, costRepo: costRepo}, svc: svc}
}

func (s *SMSSender) Channel() models.CostChannel { return models.CostChannelSMS }

func (s *SMSSender) Send(ctx context.Context, companyID uint, from, to, message string) (*SendResult, error) {
	result, err := s.svc.SendSMS(ctx, from, to, message)
	if err != nil {
		log.Printf("sender: sms delivery to %s failed: %v", to, err)
		s.recordOutcome(ctx, companyID, models.ChatChannelSMS, models.CostChannelSMS, from, to, FailedSendBody, false, 0)
		return &SendResult{Success: false}, nil
	}

	cost := utils.DefaultSMSCost
	if result.Price != nil {
		cost = *result.Price
	}
	s.recordOutcome(ctx, companyID, models.ChatChannelSMS, models.CostChannelSMS, from, to, message, true, cost)
	return &SendResult{Success: true, Cost: cost, ProviderMessage: result.Message}, nil
}

// CallSender places voice calls that speak the message
type CallSender struct {
	senderDeps
	svc services.VoiceService
}

// NewCallSender creates a voice channel sender
func NewCallSender(svc services.VoiceService, chatRepo repository.ChatMessageRepository, costRepo repository.CostEntryRepository) ChannelSender {
	return &CallSender{senderDeps: senderDeps{chatRepo: chatRepo, costRepo: costRepo}, svc: svc}
}

func (s *CallSender) Channel() models.CostChannel { return models.CostChannelCall }

func (s *CallSender) Send(ctx context.Context, companyID uint, from, to, message string) (*SendResult, error) {
	result, err := s.svc.PlaceCall(ctx, from, to, message)
	if err != nil {
		log.Printf("sender: call to %s failed: %v", to, err)
		s.recordOutcome(ctx, companyID, models.ChatChannelCall, models.CostChannelCall, from, to, FailedSendBody, false, 0)
		return &SendResult{Success: false}, nil
	}

	// The voice gateway reports no per-call pricing; the flat rate applies.
	cost := utils.DefaultCallCost
	s.recordOutcome(ctx, companyID, models.ChatChannelCall, models.CostChannelCall, from, to, message, true, cost)
	return &SendResult{Success: true, Cost: cost, ProviderMessage: result.Message}, nil
}

// EmailSender sends collection emails
type EmailSender struct {
	senderDeps
	svc     services.EmailService
	subject string
}

// NewEmailSender creates an email channel sender with a fixed subject line
func NewEmailSender(svc services.EmailService, chatRepo repository.ChatMessageRepository, costRepo repository.CostEntryRepository, subject string) ChannelSender {
	if subject == "" {
		subject = "Recordatorio de deuda pendiente"
	}
	return &EmailSender{senderDeps: senderDeps{chatRepo: chatRepo, costRepo: costRepo}, svc: svc, subject: subject}
}

func (s *EmailSender) Channel() models.CostChannel { return models.CostChannelEmail }

func (s *EmailSender) Send(ctx context.Context, companyID uint, from, to, message string) (*SendResult, error) {
	result, err := s.svc.SendEmail(ctx, to, s.subject, message)
	if err != nil {
		log.Printf("sender: email delivery to %s failed: %v", to, err)
		s.recordOutcome(ctx, companyID, models.ChatChannelEmail, models.CostChannelEmail, from, to, FailedSendBody, false, 0)
		return &SendResult{Success: false}, nil
	}

	s.recordOutcome(ctx, companyID, models.ChatChannelEmail, models.CostChannelEmail, from, to, message, true, utils.DefaultEmailCost)
	return &SendResult{Success: true, Cost: utils.DefaultEmailCost, ProviderMessage: result.Message}, nil
}
