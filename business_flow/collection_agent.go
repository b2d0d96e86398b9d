package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/cobraops/cobra-core/app/services"
	"github.com/cobraops/cobra-core/models"
	"github.com/cobraops/cobra-core/repository"
	"github.com/cobraops/cobra-core/utils"
	openai "github.com/sashabaranov/go-openai"
)

// AgentVerdict is the structured outcome of one agent turn: the reply to
// send to the debtor, a short action-log entry, and the debtor's new
// payment status.
type AgentVerdict struct {
	UserResponse string
	ActionRecord string
	Status       models.PaymentStatus
}

// agentVerdictJSON is the wire shape the model is instructed to produce
type agentVerdictJSON struct {
	Respuesta string `json:"respuesta"`
	Accion    string `json:"accion"`
	Estado    string `json:"estado"`
}

// CollectionAgentFlow drives the LLM side of the conversation. Every path
// degrades to a fixed reply; the conversation always produces something to
// send back.
type CollectionAgentFlow interface {
	Converse(ctx context.Context, history []openai.ChatCompletionMessage, userPrompt string) (string, error)
	ClassifyResponse(raw, debtorName string) *AgentVerdict
	ConverseAndClassify(ctx context.Context, history []openai.ChatCompletionMessage, debtData, inboundMessage, debtorName string) *AgentVerdict
	CheckPaymentIntent(ctx context.Context, history []openai.ChatCompletionMessage, debtor *models.Debtor) string
}

// CollectionAgentFlowImpl implements the collection agent business flow
type CollectionAgentFlowImpl struct {
	agent      services.AgentService
	debtorRepo repository.DebtorRepository
}

// NewCollectionAgentFlow creates a new collection agent flow instance
func NewCollectionAgentFlow(agent services.AgentService, debtorRepo repository.DebtorRepository) CollectionAgentFlow {
	return &CollectionAgentFlowImpl{agent: agent, debtorRepo: debtorRepo}
}

// Converse runs one raw completion over the prepared history
func (f *CollectionAgentFlowImpl) Converse(ctx context.Context, history []openai.ChatCompletionMessage, userPrompt string) (string, error) {
	return f.agent.Complete(ctx, history, userPrompt)
}

// fallbackVerdict is returned whenever the model call or the verdict parse
// fails. Status Error keeps the failure visible on the debtor record while
// the debtor still receives a coherent reply.
func fallbackVerdict() *AgentVerdict {
	return &AgentVerdict{
		UserResponse: AgentFallbackReply,
		ActionRecord: "",
		Status:       models.PaymentStatusError,
	}
}

// ClassifyResponse parses the model's raw text into a verdict: strip
// Markdown code fences, trim, substitute the debtor-name placeholder, and
// decode the three-field JSON. Any malformed payload yields the fixed
// fallback verdict instead of an error.
func (f *CollectionAgentFlowImpl) ClassifyResponse(raw, debtorName string) *AgentVerdict {
	cleaned := utils.StripCodeFences(raw)
	cleaned = strings.ReplaceAll(cleaned, utils.DebtorNamePlaceholder, debtorName)

	var wire agentVerdictJSON
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		log.Printf("agent: verdict decode failed: %v", err)
		return fallbackVerdict()
	}
	if wire.Respuesta == "" || wire.Estado == "" {
		log.Printf("agent: verdict missing required fields")
		return fallbackVerdict()
	}

	return &AgentVerdict{
		UserResponse: wire.Respuesta,
		ActionRecord: wire.Accion,
		Status:       models.ParsePaymentStatus(wire.Estado),
	}
}

// ConverseAndClassify runs the classifier prompt over the history and
// parses the verdict. A provider failure yields the fallback verdict.
func (f *CollectionAgentFlowImpl) ConverseAndClassify(ctx context.Context, history []openai.ChatCompletionMessage, debtData, inboundMessage, debtorName string) *AgentVerdict {
	prompt := fmt.Sprintf(classifierPromptTemplate, debtData, inboundMessage)
	raw, err := f.Converse(ctx, history, prompt)
	if err != nil {
		log.Printf("agent: completion failed: %v", err)
		return fallbackVerdict()
	}
	return f.ClassifyResponse(raw, debtorName)
}

// CheckPaymentIntent asks the narrow second prompt and matches its
// normalized answer against the three keyword sets. Debt confirmation
// returns a payment-quota message; a refusal silently marks the debtor
// NotPaid; an identity confirmation silently marks Contact. Everything
// else, including any failure, yields no follow-up message.
func (f *CollectionAgentFlowImpl) CheckPaymentIntent(ctx context.Context, history []openai.ChatCompletionMessage, debtor *models.Debtor) string {
	raw, err := f.Converse(ctx, history, paymentIntentPrompt)
	if err != nil {
		log.Printf("agent: payment intent check failed: %v", err)
		return ""
	}
	answer := utils.NormalizeAnswer(raw)

	switch {
	case utils.ContainsAny(answer, debtConfirmationKeywords):
		quota := debtor.DebtAmount / utils.PaymentQuotaParts
		return fmt.Sprintf("Puede cancelar su deuda de %.2f en %d cuotas de %.2f cada una. ¿Desea acordar un plan de pagos?",
			debtor.DebtAmount, utils.PaymentQuotaParts, quota)

	case utils.ContainsAny(answer, noPaymentKeywords):
		f.updateStatus(ctx, debtor, models.PaymentStatusNotPaid)
		return ""

	case utils.ContainsAny(answer, identityKeywords):
		f.updateStatus(ctx, debtor, models.PaymentStatusContact)
		return ""

	default:
		return ""
	}
}

func (f *CollectionAgentFlowImpl) updateStatus(ctx context.Context, debtor *models.Debtor, status models.PaymentStatus) {
	debtor.PaymentStatus = status
	if err := f.debtorRepo.Update(ctx, debtor); err != nil {
		log.Printf("agent: failed to update debtor %d status: %v", debtor.ID, err)
	}
}
