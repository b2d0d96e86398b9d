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

type campaignEnv struct {
	fixtures *apptest.Fixtures
	whatsapp *services.MockWhatsAppService
	flow     businessflow.CampaignFlow
}

func newCampaignEnv(t *testing.T) *campaignEnv {
	t.Helper()
	f := apptest.NewFixtures()
	wa := services.NewMockWhatsAppService()
	senders := mockSenders(f, wa)
	window := businessflow.NewScheduleWindowFlow(f.Schedules, nil, "test")
	resolver := businessflow.NewEntityResolverFlow(f.Debtors, f.Links)
	pending := businessflow.NewPendingQueueFlow(f.Pending, f.Links, f.Debtors, window, senders)
	flow := businessflow.NewCampaignFlow(f.Companies, f.Debtors, resolver, window, pending, senders, "51900000000")
	return &campaignEnv{fixtures: f, whatsapp: wa, flow: flow}
}

func standardWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	data, err := apptest.BuildWorkbook([]string{"Nombre", "Cedula", "Celular", "Monto"}, rows)
	require.NoError(t, err)
	return data
}

func TestRunCampaignClosedWindowEnqueuesEverything(t *testing.T) {
	env := newCampaignEnv(t)
	company := env.fixtures.CreateCompany("Cobranzas SAC")
	// No schedule configured, so the window reads closed

	summary, err := env.flow.RunCampaign(context.Background(), &dto.RunCampaignRequest{
		CompanyID: company.ID,
		Channel:   "whatsapp",
		Workbook: standardWorkbook(t, [][]string{
			{"Maria Lopez", "45781236", "51922222222", "300"},
			{"Jose Perez", "45781237", "51933333333", "150"},
		}),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Rows)
	assert.Equal(t, 2, summary.Enqueued)
	assert.Zero(t, summary.Sent)
	assert.Zero(t, summary.Failed)

	entries := mustListPending(t, env.fixtures)
	assert.Len(t, entries, 2)
	assert.Empty(t, env.whatsapp.GetSentMessages())

	chats, err := env.fixtures.Chats.ByFilter(context.Background(), models.ChatMessageFilter{}, "", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, chats)
	costs, err := env.fixtures.Costs.ListByCompany(context.Background(), company.ID, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, costs)
}

func TestRunCampaignOpenWindowSendsAndRecords(t *testing.T) {
	env := newCampaignEnv(t)
	company := env.fixtures.CreateCompany("Cobranzas SAC")
	env.fixtures.OpenAllWeek(company.ID)
	ctx := context.Background()

	summary, err := env.flow.RunCampaign(ctx, &dto.RunCampaignRequest{
		CompanyID: company.ID,
		Channel:   "whatsapp",
		Workbook: standardWorkbook(t, [][]string{
			{"Maria Lopez", "45781236", "51922222222", "300"},
		}),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Sent)
	assert.Zero(t, summary.Enqueued)
	assert.NotEmpty(t, summary.TrackingID)

	// Debtor and link were resolved
	debtor, err := env.fixtures.Debtors.ByDocument(ctx, "45781236", company.ID)
	require.NoError(t, err)
	require.NotNil(t, debtor)
	assert.Equal(t, "Maria Lopez", debtor.Name)
	assert.Equal(t, float64(300), debtor.DebtAmount)
	// First contact does not advance the lifecycle on its own
	assert.Equal(t, models.PaymentStatusNoContact, debtor.PaymentStatus)

	link, err := env.fixtures.Links.ByPair(ctx, *company.AgentNumber, "51922222222")
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, debtor.ID, link.DebtorID)

	chats, err := env.fixtures.Chats.ByFilter(ctx, models.ChatMessageFilter{}, "", 0, 0)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.True(t, chats[0].Success)

	costs, err := env.fixtures.Costs.ListByCompany(ctx, company.ID, nil, nil)
	require.NoError(t, err)
	assert.Len(t, costs, 1)

	events, err := env.fixtures.Debtors.ListEvents(ctx, debtor.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Contains(t, events[0].Text, "Contacto enviado")
}

func TestRunCampaignRerunReusesDebtorAndLink(t *testing.T) {
	env := newCampaignEnv(t)
	company := env.fixtures.CreateCompany("Cobranzas SAC")
	env.fixtures.OpenAllWeek(company.ID)
	ctx := context.Background()

	req := &dto.RunCampaignRequest{
		CompanyID: company.ID,
		Channel:   "whatsapp",
		Workbook: standardWorkbook(t, [][]string{
			{"Maria Lopez", "45781236", "51922222222", "300"},
		}),
	}
	_, err := env.flow.RunCampaign(ctx, req)
	require.NoError(t, err)
	_, err = env.flow.RunCampaign(ctx, req)
	require.NoError(t, err)

	debtors, err := env.fixtures.Debtors.Count(ctx, models.DebtorFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), debtors)
	links, err := env.fixtures.Links.Count(ctx, models.PhoneLinkFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), links)
}

func TestRunCampaignSkipsInvalidNumbersWithoutAborting(t *testing.T) {
	env := newCampaignEnv(t)
	company := env.fixtures.CreateCompany("Cobranzas SAC")
	env.fixtures.OpenAllWeek(company.ID)

	summary, err := env.flow.RunCampaign(context.Background(), &dto.RunCampaignRequest{
		CompanyID: company.ID,
		Channel:   "whatsapp",
		Workbook: standardWorkbook(t, [][]string{
			{"Maria Lopez", "45781236", "no-es-un-numero", "300"},
			{"Jose Perez", "45781237", "51933333333", "150"},
		}),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Sent)
}

func TestRunCampaignParsesAmountSeparatorConventions(t *testing.T) {
	env := newCampaignEnv(t)
	company := env.fixtures.CreateCompany("Cobranzas SAC")
	env.fixtures.OpenAllWeek(company.ID)
	ctx := context.Background()

	summary, err := env.flow.RunCampaign(ctx, &dto.RunCampaignRequest{
		CompanyID: company.ID,
		Channel:   "whatsapp",
		Workbook: standardWorkbook(t, [][]string{
			{"Maria Lopez", "45781236", "51922222222", "1.234,56"},
			{"Jose Perez", "45781237", "51933333333", "1,234.56"},
			{"Ana Ruiz", "45781238", "51944444444", "250,50"},
			{"Luis Soto", "45781239", "51955555555", "monto pendiente"},
		}),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Sent)
	assert.Equal(t, 1, summary.Skipped)

	for _, tc := range []struct {
		document string
		amount   float64
	}{
		{"45781236", 1234.56},
		{"45781237", 1234.56},
		{"45781238", 250.50},
	} {
		debtor, err := env.fixtures.Debtors.ByDocument(ctx, tc.document, company.ID)
		require.NoError(t, err)
		require.NotNil(t, debtor)
		assert.Equal(t, tc.amount, debtor.DebtAmount)
	}

	unparsed, err := env.fixtures.Debtors.ByDocument(ctx, "45781239", company.ID)
	require.NoError(t, err)
	assert.Nil(t, unparsed)
}

func TestRunCampaignMissingColumnsFails(t *testing.T) {
	env := newCampaignEnv(t)
	company := env.fixtures.CreateCompany("Cobranzas SAC")

	data, err := apptest.BuildWorkbook([]string{"Nombre", "Monto"}, [][]string{{"Maria", "300"}})
	require.NoError(t, err)

	_, err = env.flow.RunCampaign(context.Background(), &dto.RunCampaignRequest{
		CompanyID: company.ID,
		Channel:   "whatsapp",
		Workbook:  data,
	})
	require.Error(t, err)

	var be *businessflow.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, businessflow.CodeValidationFailed, be.Code)
}

func TestRunCampaignUnknownCompanyFails(t *testing.T) {
	env := newCampaignEnv(t)

	_, err := env.flow.RunCampaign(context.Background(), &dto.RunCampaignRequest{
		CompanyID: 99,
		Channel:   "whatsapp",
		Workbook:  standardWorkbook(t, [][]string{{"Maria", "45781236", "51922222222", "300"}}),
	})
	assert.True(t, businessflow.IsCompanyNotFound(err))
}

func TestRunCampaignSuperadminUsesServiceNumber(t *testing.T) {
	env := newCampaignEnv(t)
	company := &models.Company{Name: "Plataforma", Role: models.CompanyRoleSuperadmin}
	require.NoError(t, env.fixtures.Companies.Save(context.Background(), company))
	env.fixtures.OpenAllWeek(company.ID)

	summary, err := env.flow.RunCampaign(context.Background(), &dto.RunCampaignRequest{
		CompanyID:  company.ID,
		Channel:    "whatsapp",
		FromNumber: "51999999999",
		Workbook:   standardWorkbook(t, [][]string{{"Maria", "45781236", "51922222222", "300"}}),
	})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Sent)

	sent := env.whatsapp.GetSentMessages()
	require.Len(t, sent, 1)
	// The requested sender is ignored for superadmin accounts
	assert.Equal(t, "51900000000", sent[0].From)
}
