package businessflow

import (
	"context"

	"github.com/cobraops/cobra-core/models"
	"github.com/cobraops/cobra-core/repository"
	openai "github.com/sashabaranov/go-openai"
)

// ConversationContextFlow reconstructs the ordered message history for one
// debtor on one channel, shaped as the agent's chat-completion input.
type ConversationContextFlow interface {
	BuildContext(ctx context.Context, companyID uint, companyNumber, debtorNumber string, channel models.ChatChannel) ([]openai.ChatCompletionMessage, error)
}

// ConversationContextFlowImpl implements the context builder
type ConversationContextFlowImpl struct {
	chatRepo repository.ChatMessageRepository
}

// NewConversationContextFlow creates a new conversation context flow instance
func NewConversationContextFlow(chatRepo repository.ChatMessageRepository) ConversationContextFlow {
	return &ConversationContextFlowImpl{chatRepo: chatRepo}
}

// BuildContext loads both directions of the conversation in creation order,
// prepends the compliance instruction, and appends the voice-specific
// instruction when the exchange happens over a call. Empty bodies are
// dropped; they carry no signal for the model.
func (f *ConversationContextFlowImpl) BuildContext(ctx context.Context, companyID uint, companyNumber, debtorNumber string, channel models.ChatChannel) ([]openai.ChatCompletionMessage, error) {
	history, err := f.chatRepo.Conversation(ctx, companyID, companyNumber, debtorNumber, channel)
	if err != nil {
		return nil, NewBusinessError("CONTEXT_BUILD_FAILED", "Failed to load conversation history", err)
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: legalContextInstruction,
	})
	if channel == models.ChatChannelCall {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: voiceChannelInstruction,
		})
	}

	for _, msg := range history {
		if msg.Body == "" {
			continue
		}
		role := openai.ChatMessageRoleAssistant
		if msg.Direction == models.ChatDirectionInbound {
			role = openai.ChatMessageRoleUser
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Body,
		})
	}

	return messages, nil
}
