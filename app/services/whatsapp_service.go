package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cobraops/cobra-core/config"
	"github.com/cobraops/cobra-core/utils"
)

// WhatsAppService handles WhatsApp message delivery through the gateway
type WhatsAppService interface {
	SendMessage(ctx context.Context, from, to, body string) (*ProviderResult, error)
	DownloadMedia(ctx context.Context, mediaURL string) ([]byte, string, error)
}

// WhatsAppServiceImpl implements WhatsAppService against a Twilio-compatible API
type WhatsAppServiceImpl struct {
	config *config.WhatsAppConfig
	client *http.Client
}

// whatsAppSendResponse is the subset of the gateway response we consume
type whatsAppSendResponse struct {
	SID          string  `json:"sid"`
	Status       string  `json:"status"`
	Price        *string `json:"price"`
	ErrorMessage *string `json:"error_message"`
}

// NewWhatsAppService creates a new WhatsApp service instance
func NewWhatsAppService(cfg *config.WhatsAppConfig) WhatsAppService {
	return &WhatsAppServiceImpl{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// SendMessage delivers one WhatsApp message and returns the normalized result
func (s *WhatsAppServiceImpl) SendMessage(ctx context.Context, from, to, body string) (*ProviderResult, error) {
	form := url.Values{}
	form.Set("From", "whatsapp:+"+from)
	form.Set("To", "whatsapp:+"+to)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("https://%s/2010-04-01/Accounts/%s/Messages.json", s.config.APIDomain, s.config.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create WhatsApp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.config.AccountSID, s.config.AuthToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send WhatsApp message: %w", err)
	}
	defer resp.Body.Close()

	var result whatsAppSendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode WhatsApp response: %w", err)
	}
	if resp.StatusCode >= 300 {
		msg := "unknown gateway error"
		if result.ErrorMessage != nil {
			msg = *result.ErrorMessage
		}
		return nil, fmt.Errorf("WhatsApp delivery failed for %s: %s (%d)", to, msg, resp.StatusCode)
	}

	out := &ProviderResult{Message: result.SID}
	if result.Price != nil {
		if price, err := strconv.ParseFloat(strings.TrimPrefix(*result.Price, "-"), 64); err == nil {
			out.Price = &price
		}
	}
	return out, nil
}

// DownloadMedia fetches an inbound media attachment and returns its bytes and MIME type
func (s *WhatsAppServiceImpl) DownloadMedia(ctx context.Context, mediaURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create media request: %w", err)
	}
	req.SetBasicAuth(s.config.AccountSID, s.config.AuthToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("media download failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read media body: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// MockWhatsAppService implements WhatsAppService for testing
type MockWhatsAppService struct {
	mu           sync.Mutex
	SentMessages []MockWhatsAppMessage
	Price        *float64
	FailNext     bool
	MediaBytes   []byte
	MediaMime    string
}

// MockWhatsAppMessage represents a recorded mock send
type MockWhatsAppMessage struct {
	From   string
	To     string
	Body   string
	SentAt time.Time
}

// NewMockWhatsAppService creates a new mock WhatsApp service
func NewMockWhatsAppService() *MockWhatsAppService {
	return &MockWhatsAppService{SentMessages: make([]MockWhatsAppMessage, 0)}
}

func (m *MockWhatsAppService) SendMessage(ctx context.Context, from, to, body string) (*ProviderResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailNext {
		m.FailNext = false
		return nil, fmt.Errorf("mock WhatsApp delivery failure")
	}
	m.SentMessages = append(m.SentMessages, MockWhatsAppMessage{From: from, To: to, Body: body, SentAt: utils.UTCNow()})
	return &ProviderResult{Price: m.Price, Message: fmt.Sprintf("SM%d", len(m.SentMessages))}, nil
}

func (m *MockWhatsAppService) DownloadMedia(ctx context.Context, mediaURL string) ([]byte, string, error) {
	if m.MediaBytes == nil {
		return nil, "", fmt.Errorf("mock media not configured")
	}
	return m.MediaBytes, m.MediaMime, nil
}

// GetSentMessages returns a copy of recorded sends
func (m *MockWhatsAppService) GetSentMessages() []MockWhatsAppMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockWhatsAppMessage, len(m.SentMessages))
	copy(out, m.SentMessages)
	return out
}
