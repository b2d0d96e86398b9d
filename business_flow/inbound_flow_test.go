package businessflow_test

import (
	"context"
	"testing"

	"github.com/cobraops/cobra-core/app/dto"
	"github.com/cobraops/cobra-core/app/services"
	businessflow "github.com/cobraops/cobra-core/business_flow"
	"github.com/cobraops/cobra-core/models"
	apptest "github.com/cobraops/cobra-core/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inboundEnv struct {
	fixtures *apptest.Fixtures
	whatsapp *services.MockWhatsAppService
	agent    *services.MockAgentService
	ocr      *services.MockOCRService
	voice    *services.MockVoiceService
	flow     businessflow.InboundFlow
}

func newInboundEnv(t *testing.T, agentResponses ...string) *inboundEnv {
	t.Helper()
	f := apptest.NewFixtures()
	wa := services.NewMockWhatsAppService()
	agent := services.NewMockAgentService(agentResponses...)
	ocr := services.NewMockOCRService("")
	voice := services.NewMockVoiceService()

	senders := &businessflow.ChannelSenders{
		WhatsApp: businessflow.NewWhatsAppSender(wa, f.Chats, f.Costs),
		SMS:      businessflow.NewSMSSender(services.NewMockSMSService(), f.Chats, f.Costs),
		Call:     businessflow.NewCallSender(voice, f.Chats, f.Costs),
		Email:    businessflow.NewEmailSender(services.NewMockEmailService(), f.Chats, f.Costs, ""),
	}
	contextFlow := businessflow.NewConversationContextFlow(f.Chats)
	agentFlow := businessflow.NewCollectionAgentFlow(agent, f.Debtors)
	flow := businessflow.NewInboundFlow(f.Links, f.Debtors, f.Chats, f.Images, contextFlow, agentFlow, senders, wa, ocr, voice)

	return &inboundEnv{fixtures: f, whatsapp: wa, agent: agent, ocr: ocr, voice: voice, flow: flow}
}

func TestHandleMessageUnknownSenderIsSilentlyDropped(t *testing.T) {
	env := newInboundEnv(t)

	err := env.flow.HandleMessage(context.Background(), &dto.InboundMessageRequest{
		From: "whatsapp:+51922222222",
		To:   "whatsapp:+51911111111",
		Body: "hola",
	}, models.ChatChannelWhatsApp)
	require.NoError(t, err)

	// Nothing persisted, nothing sent, no agent call
	chats, err := env.fixtures.Chats.ByFilter(context.Background(), models.ChatMessageFilter{}, "", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, chats)
	assert.Empty(t, env.agent.Prompts)
	assert.Empty(t, env.whatsapp.GetSentMessages())
}

func TestHandleMessageRunsAgentTurnAndAppliesVerdict(t *testing.T) {
	env := newInboundEnv(t,
		apptest.VerdictJSON("Gracias por confirmar su pago, [Nombre del deudor]", "pago registrado", "Paid"),
		"ninguna",
	)
	ctx := context.Background()
	company := env.fixtures.CreateCompany("Cobranzas SAC")
	debtor := env.fixtures.CreateDebtor(company.ID, "Maria", "45781236", 300)
	env.fixtures.CreateLink(debtor.ID, "51911111111", "51922222222")

	err := env.flow.HandleMessage(ctx, &dto.InboundMessageRequest{
		From: "whatsapp:+51922222222",
		To:   "whatsapp:+51911111111",
		Body: "ya pagué",
	}, models.ChatChannelWhatsApp)
	require.NoError(t, err)

	stored, err := env.fixtures.Debtors.ByID(ctx, debtor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)

	events, err := env.fixtures.Debtors.ListEvents(ctx, debtor.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Contains(t, events[0].Text, "pago registrado")

	sent := env.whatsapp.GetSentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "Gracias por confirmar su pago, Maria", sent[0].Body)
	assert.Equal(t, "51911111111", sent[0].From)
	assert.Equal(t, "51922222222", sent[0].To)

	// Inbound row plus the sender's outbound row
	chats, err := env.fixtures.Chats.ByFilter(ctx, models.ChatMessageFilter{}, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, chats, 2)
}

func TestHandleMessageAgentFailureStillReplies(t *testing.T) {
	env := newInboundEnv(t, "respuesta sin json", "ninguna")
	ctx := context.Background()
	company := env.fixtures.CreateCompany("Cobranzas SAC")
	debtor := env.fixtures.CreateDebtor(company.ID, "Maria", "45781236", 300)
	env.fixtures.CreateLink(debtor.ID, "51911111111", "51922222222")

	err := env.flow.HandleMessage(ctx, &dto.InboundMessageRequest{
		From: "+51922222222",
		To:   "+51911111111",
		Body: "hola",
	}, models.ChatChannelWhatsApp)
	require.NoError(t, err)

	sent := env.whatsapp.GetSentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, businessflow.AgentFallbackReply, sent[0].Body)

	// The fallback verdict must not touch the debtor's status
	stored, err := env.fixtures.Debtors.ByID(ctx, debtor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusNoContact, stored.PaymentStatus)
}

func TestHandleMessagePaymentProofImageMarksPaid(t *testing.T) {
	env := newInboundEnv(t)
	env.whatsapp.MediaBytes = []byte("imagen")
	env.whatsapp.MediaMime = "image/jpeg"
	env.ocr.Text = "Comprobante de transferencia por 300.00 operacion 5521"
	ctx := context.Background()

	company := env.fixtures.CreateCompany("Cobranzas SAC")
	debtor := env.fixtures.CreateDebtor(company.ID, "Maria", "45781236", 300)
	env.fixtures.CreateLink(debtor.ID, "51911111111", "51922222222")

	err := env.flow.HandleMessage(ctx, &dto.InboundMessageRequest{
		From:      "whatsapp:+51922222222",
		To:        "whatsapp:+51911111111",
		MediaURL:  "https://media.example.com/img1",
		MediaMime: "image/jpeg",
	}, models.ChatChannelWhatsApp)
	require.NoError(t, err)

	stored, err := env.fixtures.Debtors.ByID(ctx, debtor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)

	images, err := env.fixtures.Images.ListByDebtor(ctx, debtor.ID)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, env.ocr.Text, images[0].Text)

	// The fixed acknowledgement goes out without an agent turn
	assert.Empty(t, env.agent.Prompts)
	sent := env.whatsapp.GetSentMessages()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Body, "comprobante de pago")
}

func TestHandleMessageNonProofImageFallsThroughToAgent(t *testing.T) {
	env := newInboundEnv(t,
		apptest.VerdictJSON("Recibimos su imagen", "imagen revisada", "Contact"),
		"ninguna",
	)
	env.whatsapp.MediaBytes = []byte("imagen")
	env.whatsapp.MediaMime = "image/jpeg"
	env.ocr.Text = "una foto cualquiera"
	ctx := context.Background()

	company := env.fixtures.CreateCompany("Cobranzas SAC")
	debtor := env.fixtures.CreateDebtor(company.ID, "Maria", "45781236", 300)
	env.fixtures.CreateLink(debtor.ID, "51911111111", "51922222222")

	err := env.flow.HandleMessage(ctx, &dto.InboundMessageRequest{
		From:     "whatsapp:+51922222222",
		To:       "whatsapp:+51911111111",
		MediaURL: "https://media.example.com/img2",
	}, models.ChatChannelWhatsApp)
	require.NoError(t, err)

	stored, err := env.fixtures.Debtors.ByID(ctx, debtor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusContact, stored.PaymentStatus)

	// The image is kept for review even when it is not a receipt
	images, err := env.fixtures.Images.ListByDebtor(ctx, debtor.ID)
	require.NoError(t, err)
	assert.Len(t, images, 1)
	assert.NotEmpty(t, env.agent.Prompts)
}

func TestHandleVoiceUnknownCallerSpeaksError(t *testing.T) {
	env := newInboundEnv(t)

	markup := env.flow.HandleVoice(context.Background(), &dto.InboundVoiceRequest{
		From:         "+51922222222",
		To:           "+51911111111",
		SpeechResult: "hola",
	})

	assert.Contains(t, markup, "<Response>")
	assert.Contains(t, markup, "Ha ocurrido un error")
}

func TestHandleVoiceRepliesWithSpeakableMarkup(t *testing.T) {
	env := newInboundEnv(t,
		apptest.VerdictJSON("Su deuda es de 300 soles", "informado", "Contact"),
		"ninguna",
	)
	ctx := context.Background()
	company := env.fixtures.CreateCompany("Cobranzas SAC")
	debtor := env.fixtures.CreateDebtor(company.ID, "Maria", "45781236", 300)
	env.fixtures.CreateLink(debtor.ID, "51911111111", "51922222222")

	markup := env.flow.HandleVoice(ctx, &dto.InboundVoiceRequest{
		From:         "+51922222222",
		To:           "+51911111111",
		SpeechResult: "cuánto debo",
	})

	assert.Contains(t, markup, "Su deuda es de 300 soles")
	assert.Contains(t, markup, "<Say>")

	// Both turns of the call are on the chat log; no new call is placed
	chats, err := env.fixtures.Chats.ByFilter(ctx, models.ChatMessageFilter{}, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, chats, 2)
	assert.Empty(t, env.voice.GetPlacedCalls())
}
