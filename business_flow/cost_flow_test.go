package businessflow_test

import (
	"context"
	"testing"
	"time"

	"github.com/cobraops/cobra-core/app/dto"
	businessflow "github.com/cobraops/cobra-core/business_flow"
	"github.com/cobraops/cobra-core/models"
	apptest "github.com/cobraops/cobra-core/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCostsTotalsTheLedger(t *testing.T) {
	f := apptest.NewFixtures()
	flow := businessflow.NewCostFlow(f.Companies, f.Costs)
	ctx := context.Background()
	company := f.CreateCompany("Cobranzas SAC")
	other := f.CreateCompany("Otra SAC")

	for _, amount := range []float64{0.0339, 0.0075, 0.238} {
		require.NoError(t, f.Costs.Save(ctx, &models.CostEntry{
			CompanyID: company.ID,
			Amount:    amount,
			Channel:   models.CostChannelWhatsApp,
		}))
	}
	require.NoError(t, f.Costs.Save(ctx, &models.CostEntry{
		CompanyID: other.ID,
		Amount:    5,
		Channel:   models.CostChannelSMS,
	}))

	resp, err := flow.ListCosts(ctx, &dto.ListCostsRequest{CompanyID: company.ID})
	require.NoError(t, err)
	assert.Len(t, resp.Entries, 3)
	assert.InDelta(t, 0.2794, resp.Total, 1e-9)
}

func TestListCostsHonorsTimeRange(t *testing.T) {
	f := apptest.NewFixtures()
	flow := businessflow.NewCostFlow(f.Companies, f.Costs)
	ctx := context.Background()
	company := f.CreateCompany("Cobranzas SAC")

	old := &models.CostEntry{CompanyID: company.ID, Amount: 1, Channel: models.CostChannelSMS}
	recent := &models.CostEntry{CompanyID: company.ID, Amount: 2, Channel: models.CostChannelSMS}
	require.NoError(t, f.Costs.Save(ctx, old))
	require.NoError(t, f.Costs.Save(ctx, recent))
	old.CreatedAt = time.Now().UTC().Add(-48 * time.Hour)

	after := time.Now().UTC().Add(-24 * time.Hour)
	resp, err := flow.ListCosts(ctx, &dto.ListCostsRequest{CompanyID: company.ID, After: &after})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, float64(2), resp.Total)
}

func TestListCostsUnknownCompany(t *testing.T) {
	f := apptest.NewFixtures()
	flow := businessflow.NewCostFlow(f.Companies, f.Costs)

	_, err := flow.ListCosts(context.Background(), &dto.ListCostsRequest{CompanyID: 42})
	assert.True(t, businessflow.IsCompanyNotFound(err))
}
