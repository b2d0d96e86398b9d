package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cobraops/cobra-core/config"
	"github.com/cobraops/cobra-core/utils"
)

// SMSService handles SMS sending operations
type SMSService interface {
	SendSMS(ctx context.Context, from, to, message string) (*ProviderResult, error)
}

// SMSServiceImpl implements SMSService
type SMSServiceImpl struct {
	config *config.SMSConfig
	client *http.Client
}

// SMSRequest represents the request payload for the SMS API
type SMSRequest struct {
	SrcNum         string `json:"srcNum"`
	Recipient      string `json:"recipient"`
	Body           string `json:"body"`
	RetryCount     int    `json:"retryCount"`
	ValidityPeriod int    `json:"validityPeriod"`
}

// SMSResponse represents individual message result from the SMS API
type SMSResponse struct {
	MessageID  int64    `json:"messageId"`
	Recipient  string   `json:"recipient"`
	Status     string   `json:"status"`
	StatusCode int      `json:"statusCode"`
	Price      *float64 `json:"price,omitempty"`
}

// NewSMSService creates a new SMS service instance
func NewSMSService(cfg *config.SMSConfig) SMSService {
	return &SMSServiceImpl{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// SendSMS sends a single SMS message
func (s *SMSServiceImpl) SendSMS(ctx context.Context, from, to, message string) (*ProviderResult, error) {
	requests := []SMSRequest{{
		SrcNum:         from,
		Recipient:      to,
		Body:           message,
		RetryCount:     s.config.RetryCount,
		ValidityPeriod: s.config.ValidityPeriod,
	}}

	requestBody, err := json.Marshal(requests)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal SMS request: %w", err)
	}

	url := fmt.Sprintf("https://%s/api/v3.0.1/send", s.config.ProviderDomain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send SMS request: %w", err)
	}
	defer resp.Body.Close()

	var results []SMSResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode SMS response: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("empty SMS response for %s", to)
	}
	r := results[0]
	if r.StatusCode != 200 || r.Status != "ACCEPTED" {
		return nil, fmt.Errorf("SMS delivery failed for %s: %s (%d)", r.Recipient, r.Status, r.StatusCode)
	}
	return &ProviderResult{Price: r.Price, Message: fmt.Sprintf("%d", r.MessageID)}, nil
}

// MockSMSService implements SMSService for testing
type MockSMSService struct {
	mu           sync.Mutex
	SentMessages []MockSMSMessage
	Price        *float64
	FailNext     bool
}

// MockSMSMessage represents a mock SMS message
type MockSMSMessage struct {
	From    string
	To      string
	Message string
	SentAt  time.Time
}

// NewMockSMSService creates a new mock SMS service
func NewMockSMSService() *MockSMSService {
	return &MockSMSService{SentMessages: make([]MockSMSMessage, 0)}
}

func (m *MockSMSService) SendSMS(ctx context.Context, from, to, message string) (*ProviderResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailNext {
		m.FailNext = false
		return nil, fmt.Errorf("mock SMS delivery failure")
	}
	m.SentMessages = append(m.SentMessages, MockSMSMessage{From: from, To: to, Message: message, SentAt: utils.UTCNow()})
	return &ProviderResult{Price: m.Price, Message: fmt.Sprintf("%d", len(m.SentMessages))}, nil
}

// GetSentMessages returns a copy of recorded sends
func (m *MockSMSService) GetSentMessages() []MockSMSMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockSMSMessage, len(m.SentMessages))
	copy(out, m.SentMessages)
	return out
}
