package businessflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cobraops/cobra-core/app/services"
	businessflow "github.com/cobraops/cobra-core/business_flow"
	"github.com/cobraops/cobra-core/models"
	apptest "github.com/cobraops/cobra-core/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyResponseParsesVerdict(t *testing.T) {
	f := apptest.NewFixtures()
	flow := businessflow.NewCollectionAgentFlow(services.NewMockAgentService(), f.Debtors)

	raw := apptest.VerdictJSON("Gracias [Nombre del deudor], registramos su pago", "pago confirmado", "Paid")
	verdict := flow.ClassifyResponse(raw, "Maria")

	assert.Equal(t, "Gracias Maria, registramos su pago", verdict.UserResponse)
	assert.Equal(t, "pago confirmado", verdict.ActionRecord)
	assert.Equal(t, models.PaymentStatusPaid, verdict.Status)
}

func TestClassifyResponseStripsCodeFences(t *testing.T) {
	f := apptest.NewFixtures()
	flow := businessflow.NewCollectionAgentFlow(services.NewMockAgentService(), f.Debtors)

	raw := "```json\n" + apptest.VerdictJSON("Entendido", "seguimiento", "Contact") + "\n```"
	verdict := flow.ClassifyResponse(raw, "Maria")

	assert.Equal(t, "Entendido", verdict.UserResponse)
	assert.Equal(t, models.PaymentStatusContact, verdict.Status)
}

func TestClassifyResponseMalformedPayloadFallsBack(t *testing.T) {
	f := apptest.NewFixtures()
	flow := businessflow.NewCollectionAgentFlow(services.NewMockAgentService(), f.Debtors)

	for _, raw := range []string{
		"no es json",
		`{"respuesta": ""}`,
		`{"accion": "algo", "estado": "Paid"}`,
	} {
		verdict := flow.ClassifyResponse(raw, "Maria")
		assert.Equal(t, businessflow.AgentFallbackReply, verdict.UserResponse)
		assert.Empty(t, verdict.ActionRecord)
		assert.Equal(t, models.PaymentStatusError, verdict.Status)
	}
}

func TestClassifyResponseUnknownStatusMapsToError(t *testing.T) {
	f := apptest.NewFixtures()
	flow := businessflow.NewCollectionAgentFlow(services.NewMockAgentService(), f.Debtors)

	verdict := flow.ClassifyResponse(apptest.VerdictJSON("ok", "", "Quizas"), "Maria")
	assert.Equal(t, models.PaymentStatusError, verdict.Status)
}

func TestConverseAndClassifyProviderFailureFallsBack(t *testing.T) {
	f := apptest.NewFixtures()
	agent := services.NewMockAgentService()
	agent.Err = errors.New("upstream timeout")
	flow := businessflow.NewCollectionAgentFlow(agent, f.Debtors)

	verdict := flow.ConverseAndClassify(context.Background(), nil, "deuda de 100", "hola", "Maria")

	assert.Equal(t, businessflow.AgentFallbackReply, verdict.UserResponse)
	assert.Equal(t, models.PaymentStatusError, verdict.Status)
}

func TestCheckPaymentIntentDebtConfirmed(t *testing.T) {
	f := apptest.NewFixtures()
	debtor := f.CreateDebtor(1, "Maria", "45781236", 300)
	agent := services.NewMockAgentService("El deudor confirmó el monto de su deuda.")
	flow := businessflow.NewCollectionAgentFlow(agent, f.Debtors)

	reply := flow.CheckPaymentIntent(context.Background(), nil, debtor)

	assert.Contains(t, reply, "300.00")
	assert.Contains(t, reply, "3 cuotas")
	assert.Contains(t, reply, "100.00")
}

func TestCheckPaymentIntentRefusalMarksNotPaid(t *testing.T) {
	f := apptest.NewFixtures()
	debtor := f.CreateDebtor(1, "Maria", "45781236", 300)
	agent := services.NewMockAgentService("El deudor se negó a pagar.")
	flow := businessflow.NewCollectionAgentFlow(agent, f.Debtors)

	reply := flow.CheckPaymentIntent(context.Background(), nil, debtor)

	assert.Empty(t, reply)
	stored, err := f.Debtors.ByID(context.Background(), debtor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusNotPaid, stored.PaymentStatus)
}

func TestCheckPaymentIntentIdentityMarksContact(t *testing.T) {
	f := apptest.NewFixtures()
	debtor := f.CreateDebtor(1, "Maria", "45781236", 300)
	agent := services.NewMockAgentService("Solo confirmó su identidad.")
	flow := businessflow.NewCollectionAgentFlow(agent, f.Debtors)

	reply := flow.CheckPaymentIntent(context.Background(), nil, debtor)

	assert.Empty(t, reply)
	stored, err := f.Debtors.ByID(context.Background(), debtor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusContact, stored.PaymentStatus)
}

func TestCheckPaymentIntentProviderFailureIsSilent(t *testing.T) {
	f := apptest.NewFixtures()
	debtor := f.CreateDebtor(1, "Maria", "45781236", 300)
	agent := services.NewMockAgentService()
	agent.Err = errors.New("upstream timeout")
	flow := businessflow.NewCollectionAgentFlow(agent, f.Debtors)

	assert.Empty(t, flow.CheckPaymentIntent(context.Background(), nil, debtor))
	assert.Equal(t, models.PaymentStatusNoContact, debtor.PaymentStatus)
}
