package businessflow_test

import (
	"context"
	"testing"

	"github.com/cobraops/cobra-core/app/services"
	businessflow "github.com/cobraops/cobra-core/business_flow"
	"github.com/cobraops/cobra-core/models"
	apptest "github.com/cobraops/cobra-core/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockSenders(f *apptest.Fixtures, wa *services.MockWhatsAppService) *businessflow.ChannelSenders {
	return &businessflow.ChannelSenders{
		WhatsApp: businessflow.NewWhatsAppSender(wa, f.Chats, f.Costs),
		SMS:      businessflow.NewSMSSender(services.NewMockSMSService(), f.Chats, f.Costs),
		Call:     businessflow.NewCallSender(services.NewMockVoiceService(), f.Chats, f.Costs),
		Email:    businessflow.NewEmailSender(services.NewMockEmailService(), f.Chats, f.Costs, ""),
	}
}

func pendingFlow(f *apptest.Fixtures, wa *services.MockWhatsAppService) businessflow.PendingQueueFlow {
	window := businessflow.NewScheduleWindowFlow(f.Schedules, nil, "test")
	return businessflow.NewPendingQueueFlow(f.Pending, f.Links, f.Debtors, window, mockSenders(f, wa))
}

func TestEnqueueDeduplicatesPendingAttempts(t *testing.T) {
	f := apptest.NewFixtures()
	flow := pendingFlow(f, services.NewMockWhatsAppService())
	ctx := context.Background()

	require.NoError(t, flow.Enqueue(ctx, 1, "51922222222", "hola", models.CostChannelWhatsApp, "51911111111"))
	require.NoError(t, flow.Enqueue(ctx, 1, "51922222222", "hola", models.CostChannelWhatsApp, "51911111111"))

	entries, err := f.Pending.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestEnqueueSameAttemptOnAnotherChannelIsDistinct(t *testing.T) {
	f := apptest.NewFixtures()
	flow := pendingFlow(f, services.NewMockWhatsAppService())
	ctx := context.Background()

	require.NoError(t, flow.Enqueue(ctx, 1, "51922222222", "hola", models.CostChannelWhatsApp, "51911111111"))
	require.NoError(t, flow.Enqueue(ctx, 1, "51922222222", "hola", models.CostChannelSMS, "51911111111"))

	entries, err := f.Pending.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestEnqueueDistinctBodiesAreBothQueued(t *testing.T) {
	f := apptest.NewFixtures()
	flow := pendingFlow(f, services.NewMockWhatsAppService())
	ctx := context.Background()

	// Same recipient and channel, but a later campaign carries an updated
	// debt amount. Both deferred attempts must survive.
	require.NoError(t, flow.Enqueue(ctx, 1, "51922222222", "deuda de 100.00", models.CostChannelWhatsApp, "51911111111"))
	require.NoError(t, flow.Enqueue(ctx, 1, "51922222222", "deuda de 250.00", models.CostChannelWhatsApp, "51911111111"))

	entries, err := f.Pending.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestDrainLeavesEntriesBehindClosedWindows(t *testing.T) {
	f := apptest.NewFixtures()
	wa := services.NewMockWhatsAppService()
	flow := pendingFlow(f, wa)
	ctx := context.Background()

	// No schedule rows for company 1, so its window never opens
	require.NoError(t, flow.Enqueue(ctx, 1, "51922222222", "hola", models.CostChannelWhatsApp, "51911111111"))
	require.NoError(t, flow.DrainAll(ctx))

	entries, err := f.Pending.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Empty(t, wa.GetSentMessages())
}

func TestDrainDispatchesThroughOpenWindow(t *testing.T) {
	f := apptest.NewFixtures()
	wa := services.NewMockWhatsAppService()
	flow := pendingFlow(f, wa)
	ctx := context.Background()

	company := f.CreateCompany("Cobranzas SAC")
	f.OpenAllWeek(company.ID)
	debtor := f.CreateDebtor(company.ID, "Maria", "45781236", 300)
	f.CreateLink(debtor.ID, "51911111111", "51922222222")

	require.NoError(t, flow.Enqueue(ctx, company.ID, "51922222222", "hola", models.CostChannelWhatsApp, "51911111111"))
	require.NoError(t, flow.DrainAll(ctx))

	assert.Empty(t, mustListPending(t, f))
	sent := wa.GetSentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "51922222222", sent[0].To)

	events, err := f.Debtors.ListEvents(ctx, debtor.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Contains(t, events[0].Text, "Mensaje diferido enviado")

	entry, err := f.Pending.ByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.PendingStatusSent, entry.Status)
}

func TestDrainMarksProviderFailureTerminal(t *testing.T) {
	f := apptest.NewFixtures()
	wa := services.NewMockWhatsAppService()
	wa.FailNext = true
	flow := pendingFlow(f, wa)
	ctx := context.Background()

	company := f.CreateCompany("Cobranzas SAC")
	f.OpenAllWeek(company.ID)

	require.NoError(t, flow.Enqueue(ctx, company.ID, "51922222222", "hola", models.CostChannelWhatsApp, "51911111111"))
	require.NoError(t, flow.DrainAll(ctx))

	entry, err := f.Pending.ByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.PendingStatusError, entry.Status)

	// Errored entries are terminal; a later drain does not retry them
	require.NoError(t, flow.DrainAll(ctx))
	assert.Empty(t, wa.GetSentMessages())
}

func mustListPending(t *testing.T, f *apptest.Fixtures) []*models.PendingMessage {
	t.Helper()
	entries, err := f.Pending.ListPending(context.Background())
	require.NoError(t, err)
	return entries
}
