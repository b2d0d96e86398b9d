package businessflow

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cobraops/cobra-core/app/dto"
	"github.com/cobraops/cobra-core/app/services"
	"github.com/cobraops/cobra-core/models"
	"github.com/cobraops/cobra-core/repository"
	"github.com/cobraops/cobra-core/utils"
)

// paymentProofKeywords are matched against normalized OCR text together with
// the debt amount to decide whether an inbound image is a payment receipt.
var paymentProofKeywords = []string{"pago", "transferencia", "deposito", "comprobante", "voucher", "operacion"}

const paymentProofReply = "Hemos recibido su comprobante de pago. Gracias por regularizar su deuda."

// InboundFlow resolves inbound webhook traffic back to a debtor, runs one
// agent turn over the stored conversation, and dispatches the reply.
// Messages from numbers the platform never contacted are dropped without
// error so the webhook endpoint stays quiet toward probers.
type InboundFlow interface {
	HandleMessage(ctx context.Context, req *dto.InboundMessageRequest, channel models.ChatChannel) error
	HandleVoice(ctx context.Context, req *dto.InboundVoiceRequest) string
}

// InboundFlowImpl implements the inbound message business flow
type InboundFlowImpl struct {
	phoneLinkRepo repository.PhoneLinkRepository
	debtorRepo    repository.DebtorRepository
	chatRepo      repository.ChatMessageRepository
	debtImageRepo repository.DebtImageRepository
	contextFlow   ConversationContextFlow
	agentFlow     CollectionAgentFlow
	senders       *ChannelSenders
	whatsapp      services.WhatsAppService
	ocr           services.OCRService
	voice         services.VoiceService
}

// NewInboundFlow creates a new inbound flow instance
func NewInboundFlow(
	phoneLinkRepo repository.PhoneLinkRepository,
	debtorRepo repository.DebtorRepository,
	chatRepo repository.ChatMessageRepository,
	debtImageRepo repository.DebtImageRepository,
	contextFlow ConversationContextFlow,
	agentFlow CollectionAgentFlow,
	senders *ChannelSenders,
	whatsapp services.WhatsAppService,
	ocr services.OCRService,
	voice services.VoiceService,
) InboundFlow {
	return &InboundFlowImpl{
		phoneLinkRepo: phoneLinkRepo,
		debtorRepo:    debtorRepo,
		chatRepo:      chatRepo,
		debtImageRepo: debtImageRepo,
		contextFlow:   contextFlow,
		agentFlow:     agentFlow,
		senders:       senders,
		whatsapp:      whatsapp,
		ocr:           ocr,
		voice:         voice,
	}
}

// HandleMessage processes one inbound text (or image) reply end to end.
func (f *InboundFlowImpl) HandleMessage(ctx context.Context, req *dto.InboundMessageRequest, channel models.ChatChannel) error {
	debtorNumber := utils.NormalizePhone(req.From)
	companyNumber := utils.NormalizePhone(req.To)

	debtor, err := f.resolveSender(ctx, companyNumber, debtorNumber)
	if err != nil {
		return err
	}
	if debtor == nil {
		log.Printf("inbound: dropping message from unknown number %s", debtorNumber)
		return nil
	}

	body := req.Body
	inbound := &models.ChatMessage{
		CompanyID:  debtor.CompanyID,
		Channel:    channel,
		Direction:  models.ChatDirectionInbound,
		FromNumber: debtorNumber,
		ToNumber:   companyNumber,
		Body:       body,
		Success:    true,
	}
	if req.MediaURL != "" {
		inbound.ImageURL = utils.ToPtr(req.MediaURL)
		if req.MediaMime != "" {
			inbound.ImageMime = utils.ToPtr(req.MediaMime)
		}
	}
	if err := f.chatRepo.Save(ctx, inbound); err != nil {
		return NewBusinessError("CHAT_PERSIST_FAILED", "Failed to persist inbound message", err)
	}

	if channel == models.ChatChannelWhatsApp && req.MediaURL != "" {
		reply, handled := f.handleImage(ctx, debtor, req, &body)
		if handled {
			return f.dispatchReply(ctx, debtor, channel, companyNumber, debtorNumber, reply)
		}
	}

	reply := f.converse(ctx, debtor, channel, companyNumber, debtorNumber, body)
	return f.dispatchReply(ctx, debtor, channel, companyNumber, debtorNumber, reply)
}

// HandleVoice processes one speech-recognition turn of an active call and
// returns the call-control markup to play. Every failure path still
// produces speakable markup; a live call must never receive an empty body.
func (f *InboundFlowImpl) HandleVoice(ctx context.Context, req *dto.InboundVoiceRequest) string {
	debtorNumber := utils.NormalizePhone(req.From)
	companyNumber := utils.NormalizePhone(req.To)

	debtor, err := f.resolveSender(ctx, companyNumber, debtorNumber)
	if err != nil || debtor == nil {
		log.Printf("inbound voice: cannot resolve caller %s: %v", debtorNumber, err)
		return f.voice.SayMarkup(VoiceErrorReply)
	}

	inbound := &models.ChatMessage{
		CompanyID:  debtor.CompanyID,
		Channel:    models.ChatChannelCall,
		Direction:  models.ChatDirectionInbound,
		FromNumber: debtorNumber,
		ToNumber:   companyNumber,
		Body:       req.SpeechResult,
		Success:    true,
	}
	if err := f.chatRepo.Save(ctx, inbound); err != nil {
		log.Printf("inbound voice: failed to persist turn: %v", err)
		return f.voice.SayMarkup(VoiceErrorReply)
	}

	reply := f.converse(ctx, debtor, models.ChatChannelCall, companyNumber, debtorNumber, req.SpeechResult)

	// The call itself was charged at placement; the reply is spoken inside
	// the same call, so only the chat row is recorded here.
	outbound := &models.ChatMessage{
		CompanyID:  debtor.CompanyID,
		Channel:    models.ChatChannelCall,
		Direction:  models.ChatDirectionOutbound,
		FromNumber: companyNumber,
		ToNumber:   debtorNumber,
		Body:       reply,
		Success:    true,
	}
	if err := f.chatRepo.Save(ctx, outbound); err != nil {
		log.Printf("inbound voice: failed to persist reply: %v", err)
	}
	return f.voice.SayMarkup(reply)
}

// resolveSender maps (company number, debtor number) back to the debtor via
// the phone link created at campaign time. A missing link returns (nil, nil).
func (f *InboundFlowImpl) resolveSender(ctx context.Context, companyNumber, debtorNumber string) (*models.Debtor, error) {
	link, err := f.phoneLinkRepo.ByPair(ctx, companyNumber, debtorNumber)
	if err != nil {
		return nil, NewBusinessError("LINK_LOOKUP_FAILED", "Failed to lookup phone link", err)
	}
	if link == nil {
		return nil, nil
	}
	debtor, err := f.debtorRepo.ByID(ctx, link.DebtorID)
	if err != nil {
		return nil, NewBusinessError("DEBTOR_LOOKUP_FAILED", "Failed to lookup debtor", err)
	}
	return debtor, nil
}

// handleImage downloads and OCRs an inbound WhatsApp attachment. When the
// extracted text reads like a receipt for the full debt the debtor is
// marked paid and a fixed acknowledgement is returned (handled=true).
// Otherwise the image is kept for manual review and, when the message had
// no caption, the OCR text stands in as the inbound body.
func (f *InboundFlowImpl) handleImage(ctx context.Context, debtor *models.Debtor, req *dto.InboundMessageRequest, body *string) (string, bool) {
	image, mime, err := f.whatsapp.DownloadMedia(ctx, req.MediaURL)
	if err != nil {
		log.Printf("inbound: media download failed: %v", err)
		return "", false
	}
	text, err := f.ocr.ExtractText(ctx, image, mime)
	if err != nil {
		log.Printf("inbound: OCR failed: %v", err)
		return "", false
	}

	record := &models.DebtImage{DebtorID: debtor.ID, ImageURL: req.MediaURL, Text: text}
	if err := f.debtImageRepo.Save(ctx, record); err != nil {
		log.Printf("inbound: failed to persist debt image: %v", err)
	}

	if isPaymentProof(text, debtor.DebtAmount) {
		debtor.PaymentStatus = models.PaymentStatusPaid
		if err := f.debtorRepo.Update(ctx, debtor); err != nil {
			log.Printf("inbound: failed to mark debtor %d paid: %v", debtor.ID, err)
		}
		f.audit(ctx, debtor, "Comprobante de pago recibido y validado por OCR")
		return paymentProofReply, true
	}

	if strings.TrimSpace(*body) == "" {
		*body = text
	}
	return "", false
}

// isPaymentProof requires both a payment keyword and the exact debt amount
// in the extracted text. Amounts are compared with and without decimals.
func isPaymentProof(text string, amount float64) bool {
	normalized := utils.NormalizeAnswer(text)
	if !utils.ContainsAny(normalized, paymentProofKeywords) {
		return false
	}
	if amount <= 0 {
		return false
	}
	withDecimals := fmt.Sprintf("%.2f", amount)
	whole := fmt.Sprintf("%.0f", amount)
	return strings.Contains(normalized, withDecimals) || strings.Contains(normalized, whole)
}

// converse runs one agent turn over the stored conversation and applies the
// verdict to the debtor record. It always returns a non-empty reply.
func (f *InboundFlowImpl) converse(ctx context.Context, debtor *models.Debtor, channel models.ChatChannel, companyNumber, debtorNumber, inboundBody string) string {
	history, err := f.contextFlow.BuildContext(ctx, debtor.CompanyID, companyNumber, debtorNumber, channel)
	if err != nil {
		log.Printf("inbound: failed to build context for debtor %d: %v", debtor.ID, err)
		return AgentFallbackReply
	}

	verdict := f.agentFlow.ConverseAndClassify(ctx, history, debtData(debtor), inboundBody, debtor.Name)
	if verdict.ActionRecord != "" {
		f.audit(ctx, debtor, verdict.ActionRecord)
	}
	if verdict.Status != models.PaymentStatusError {
		debtor.PaymentStatus = verdict.Status
		if err := f.debtorRepo.Update(ctx, debtor); err != nil {
			log.Printf("inbound: failed to update debtor %d: %v", debtor.ID, err)
		}
	}

	if followUp := f.agentFlow.CheckPaymentIntent(ctx, history, debtor); followUp != "" {
		return followUp
	}
	return verdict.UserResponse
}

// dispatchReply sends the agent's reply back over the same channel. Chat
// and cost rows are recorded by the sender; a provider failure is already
// logged there and does not fail the webhook.
func (f *InboundFlowImpl) dispatchReply(ctx context.Context, debtor *models.Debtor, channel models.ChatChannel, companyNumber, debtorNumber, reply string) error {
	sender := f.senders.ForChannel(models.CostChannel(channel))
	if sender == nil {
		return NewBusinessErrorf(CodeValidationFailed, "Unsupported channel %q", nil, channel)
	}
	if _, err := sender.Send(ctx, debtor.CompanyID, companyNumber, debtorNumber, reply); err != nil {
		return NewBusinessError(CodeProviderFailure, "Failed to dispatch reply", err)
	}
	return nil
}

func (f *InboundFlowImpl) audit(ctx context.Context, debtor *models.Debtor, text string) {
	entry := fmt.Sprintf("[%s] %s", utils.UTCNowRFC3339(), text)
	if err := f.debtorRepo.AppendEvent(ctx, debtor.ID, entry); err != nil {
		log.Printf("inbound: failed to append event for debtor %d: %v", debtor.ID, err)
	}
}

// debtData renders the debtor's situation for the classifier prompt
func debtData(debtor *models.Debtor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Nombre: %s. Documento: %s. Monto adeudado: %.2f. Estado actual: %s.",
		debtor.Name, debtor.Document, debtor.DebtAmount, debtor.PaymentStatus)
	if debtor.DebtDate != nil {
		fmt.Fprintf(&b, " Fecha de la deuda: %s.", debtor.DebtDate.Format("2006-01-02"))
	}
	return b.String()
}
