package businessflow_test

import (
	"context"
	"testing"

	"github.com/cobraops/cobra-core/app/services"
	businessflow "github.com/cobraops/cobra-core/business_flow"
	"github.com/cobraops/cobra-core/models"
	apptest "github.com/cobraops/cobra-core/testing"
	"github.com/cobraops/cobra-core/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhatsAppSenderSuccessRecordsChatAndCost(t *testing.T) {
	f := apptest.NewFixtures()
	svc := services.NewMockWhatsAppService()
	sender := businessflow.NewWhatsAppSender(svc, f.Chats, f.Costs)
	ctx := context.Background()

	result, err := sender.Send(ctx, 1, "51911111111", "51922222222", "hola")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, utils.DefaultWhatsAppCost, result.Cost)

	chats, err := f.Chats.ByFilter(ctx, models.ChatMessageFilter{}, "", 0, 0)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.True(t, chats[0].Success)
	assert.Equal(t, "hola", chats[0].Body)
	assert.Equal(t, models.ChatDirectionOutbound, chats[0].Direction)

	costs, err := f.Costs.ListByCompany(ctx, 1, nil, nil)
	require.NoError(t, err)
	require.Len(t, costs, 1)
	assert.Equal(t, utils.DefaultWhatsAppCost, costs[0].Amount)
	assert.Equal(t, models.CostChannelWhatsApp, costs[0].Channel)
}

func TestWhatsAppSenderUsesProviderPrice(t *testing.T) {
	f := apptest.NewFixtures()
	svc := services.NewMockWhatsAppService()
	svc.Price = utils.ToPtr(0.05)
	sender := businessflow.NewWhatsAppSender(svc, f.Chats, f.Costs)

	result, err := sender.Send(context.Background(), 1, "51911111111", "51922222222", "hola")
	require.NoError(t, err)
	assert.Equal(t, 0.05, result.Cost)
}

func TestSenderFailureRecordsFailedChatRowWithoutCost(t *testing.T) {
	type sendCase struct {
		name   string
		sender businessflow.ChannelSender
	}
	f := apptest.NewFixtures()

	wa := services.NewMockWhatsAppService()
	wa.FailNext = true
	sms := services.NewMockSMSService()
	sms.FailNext = true
	voice := services.NewMockVoiceService()
	voice.FailNext = true
	email := services.NewMockEmailService()
	email.FailNext = true

	cases := []sendCase{
		{"whatsapp", businessflow.NewWhatsAppSender(wa, f.Chats, f.Costs)},
		{"sms", businessflow.NewSMSSender(sms, f.Chats, f.Costs)},
		{"call", businessflow.NewCallSender(voice, f.Chats, f.Costs)},
		{"email", businessflow.NewEmailSender(email, f.Chats, f.Costs, "")},
	}

	ctx := context.Background()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := tc.sender.Send(ctx, 1, "51911111111", "51922222222", "hola")
			// Provider failures are absorbed, never surfaced as errors
			require.NoError(t, err)
			assert.False(t, result.Success)
		})
	}

	chats, err := f.Chats.ByFilter(ctx, models.ChatMessageFilter{}, "", 0, 0)
	require.NoError(t, err)
	require.Len(t, chats, len(cases))
	for _, chat := range chats {
		assert.False(t, chat.Success)
		assert.Equal(t, businessflow.FailedSendBody, chat.Body)
	}

	costs, err := f.Costs.ListByCompany(ctx, 1, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, costs)
}

func TestForChannelMapsEveryBillableChannel(t *testing.T) {
	f := apptest.NewFixtures()
	senders := &businessflow.ChannelSenders{
		WhatsApp: businessflow.NewWhatsAppSender(services.NewMockWhatsAppService(), f.Chats, f.Costs),
		SMS:      businessflow.NewSMSSender(services.NewMockSMSService(), f.Chats, f.Costs),
		Call:     businessflow.NewCallSender(services.NewMockVoiceService(), f.Chats, f.Costs),
		Email:    businessflow.NewEmailSender(services.NewMockEmailService(), f.Chats, f.Costs, ""),
	}

	assert.Equal(t, models.CostChannelWhatsApp, senders.ForChannel(models.CostChannelWhatsApp).Channel())
	assert.Equal(t, models.CostChannelSMS, senders.ForChannel(models.CostChannelSMS).Channel())
	assert.Equal(t, models.CostChannelCall, senders.ForChannel(models.CostChannelCall).Channel())
	assert.Equal(t, models.CostChannelEmail, senders.ForChannel(models.CostChannelEmail).Channel())
	assert.Nil(t, senders.ForChannel(models.CostChannelAgentRental))
}
