package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/cobraops/cobra-core/config"
	openai "github.com/sashabaranov/go-openai"
)

// AgentService is the chat-completion capability behind the collection
// agent: an ordered history plus one user turn in, free text out.
type AgentService interface {
	Complete(ctx context.Context, history []openai.ChatCompletionMessage, userPrompt string) (string, error)
}

// AgentServiceImpl implements AgentService on an OpenAI-compatible API
type AgentServiceImpl struct {
	client *openai.Client
	config *config.AgentConfig
}

// NewAgentService creates a new agent service instance
func NewAgentService(cfg *config.AgentConfig) AgentService {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &AgentServiceImpl{
		client: openai.NewClientWithConfig(clientCfg),
		config: cfg,
	}
}

// Complete runs one chat completion with the configured model. The request
// is bounded by the configured timeout; the gateway otherwise offers no
// caller control over latency.
func (s *AgentServiceImpl) Complete(ctx context.Context, history []openai.ChatCompletionMessage, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userPrompt,
	})

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.config.Model,
		Messages:    messages,
		Temperature: s.config.Temperature,
		MaxTokens:   s.config.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// MockAgentService implements AgentService for testing. Responses are
// consumed in order; when exhausted the last one repeats.
type MockAgentService struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Prompts   []string
	Histories [][]openai.ChatCompletionMessage
	calls     int
}

// NewMockAgentService creates a mock agent returning the given responses
func NewMockAgentService(responses ...string) *MockAgentService {
	return &MockAgentService{Responses: responses}
}

func (m *MockAgentService) Complete(ctx context.Context, history []openai.ChatCompletionMessage, userPrompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, userPrompt)
	m.Histories = append(m.Histories, history)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", fmt.Errorf("mock agent has no responses configured")
	}
	idx := m.calls
	if idx >= len(m.Responses) {
		idx = len(m.Responses) - 1
	}
	m.calls++
	return m.Responses[idx], nil
}
