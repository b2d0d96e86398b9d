package businessflow_test

import (
	"context"
	"testing"
	"time"

	businessflow "github.com/cobraops/cobra-core/business_flow"
	"github.com/cobraops/cobra-core/models"
	apptest "github.com/cobraops/cobra-core/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDebtorIsIdempotent(t *testing.T) {
	f := apptest.NewFixtures()
	resolver := businessflow.NewEntityResolverFlow(f.Debtors, f.Links)
	ctx := context.Background()

	first, err := resolver.ResolveDebtor(ctx, "Maria Lopez", "45781236", 1, nil, 1500)
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := resolver.ResolveDebtor(ctx, "Maria L.", "45781236", 1, nil, 2000)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	// The record created first wins; later workbooks do not rewrite it
	assert.Equal(t, "Maria Lopez", second.Name)
	assert.Equal(t, float64(1500), second.DebtAmount)

	count, err := f.Debtors.Count(ctx, models.DebtorFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestResolveDebtorSameDocumentDifferentCompanies(t *testing.T) {
	f := apptest.NewFixtures()
	resolver := businessflow.NewEntityResolverFlow(f.Debtors, f.Links)
	ctx := context.Background()

	a, err := resolver.ResolveDebtor(ctx, "Maria Lopez", "45781236", 1, nil, 1500)
	require.NoError(t, err)
	b, err := resolver.ResolveDebtor(ctx, "Maria Lopez", "45781236", 2, nil, 1500)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestResolveDebtorClassifiesDebtAge(t *testing.T) {
	f := apptest.NewFixtures()
	resolver := businessflow.NewEntityResolverFlow(f.Debtors, f.Links)
	ctx := context.Background()

	recent := time.Now().UTC().AddDate(0, 0, -10)
	fresh, err := resolver.ResolveDebtor(ctx, "A", "1", 1, &recent, 100)
	require.NoError(t, err)
	assert.Equal(t, models.DebtClassChargedOff, fresh.DebtClass)

	old := time.Now().UTC().AddDate(0, 0, -90)
	stale, err := resolver.ResolveDebtor(ctx, "B", "2", 1, &old, 100)
	require.NoError(t, err)
	assert.Equal(t, models.DebtClassOverdue, stale.DebtClass)

	noDate, err := resolver.ResolveDebtor(ctx, "C", "3", 1, nil, 100)
	require.NoError(t, err)
	assert.Equal(t, models.DebtClassChargedOff, noDate.DebtClass)
}

func TestResolveDebtorStartsWithoutContact(t *testing.T) {
	f := apptest.NewFixtures()
	resolver := businessflow.NewEntityResolverFlow(f.Debtors, f.Links)

	debtor, err := resolver.ResolveDebtor(context.Background(), "Maria Lopez", "45781236", 1, nil, 1500)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusNoContact, debtor.PaymentStatus)
}

func TestResolvePhoneLinkIsIdempotent(t *testing.T) {
	f := apptest.NewFixtures()
	resolver := businessflow.NewEntityResolverFlow(f.Debtors, f.Links)
	ctx := context.Background()

	first, err := resolver.ResolvePhoneLink(ctx, 7, "51911111111", "51922222222", models.PhoneLinkKindCellphone)
	require.NoError(t, err)
	second, err := resolver.ResolvePhoneLink(ctx, 7, "51911111111", "51922222222", models.PhoneLinkKindTelephone)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.PhoneLinkKindCellphone, second.Kind)

	count, err := f.Links.Count(ctx, models.PhoneLinkFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
