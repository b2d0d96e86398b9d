package services

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cobraops/cobra-core/config"
	"github.com/cobraops/cobra-core/utils"
)

// VoiceService handles outbound calls and call-control markup synthesis
type VoiceService interface {
	PlaceCall(ctx context.Context, from, to, say string) (*ProviderResult, error)
	SayMarkup(text string) string
}

// VoiceServiceImpl implements VoiceService against a Twilio-compatible voice API
type VoiceServiceImpl struct {
	config *config.VoiceConfig
	client *http.Client
}

type voiceCallResponse struct {
	SID          string  `json:"sid"`
	Status       string  `json:"status"`
	ErrorMessage *string `json:"error_message"`
}

// NewVoiceService creates a new voice service instance
func NewVoiceService(cfg *config.VoiceConfig) VoiceService {
	return &VoiceServiceImpl{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// PlaceCall starts an outbound call that speaks the given text
func (s *VoiceServiceImpl) PlaceCall(ctx context.Context, from, to, say string) (*ProviderResult, error) {
	form := url.Values{}
	form.Set("From", "+"+from)
	form.Set("To", "+"+to)
	form.Set("Twiml", s.SayMarkup(say))

	endpoint := fmt.Sprintf("https://%s/2010-04-01/Accounts/%s/Calls.json", s.config.APIDomain, s.config.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create call request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.config.AccountSID, s.config.AuthToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to place call: %w", err)
	}
	defer resp.Body.Close()

	var result voiceCallResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode call response: %w", err)
	}
	if resp.StatusCode >= 300 {
		msg := "unknown gateway error"
		if result.ErrorMessage != nil {
			msg = *result.ErrorMessage
		}
		return nil, fmt.Errorf("call failed for %s: %s (%d)", to, msg, resp.StatusCode)
	}

	// The voice provider does not report per-call pricing; callers apply the flat rate.
	return &ProviderResult{Message: result.SID}, nil
}

// SayMarkup wraps text in well-formed call-control markup. Every voice
// response handed back to the gateway must be valid markup, never raw text.
func (s *VoiceServiceImpl) SayMarkup(text string) string {
	var escaped strings.Builder
	xml.EscapeText(&escaped, []byte(text))
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?><Response><Say voice="%s" language="%s">%s</Say></Response>`,
		s.config.Voice, s.config.Language, escaped.String())
}

// MockVoiceService implements VoiceService for testing
type MockVoiceService struct {
	mu          sync.Mutex
	PlacedCalls []MockVoiceCall
	FailNext    bool
}

// MockVoiceCall represents a recorded mock call
type MockVoiceCall struct {
	From     string
	To       string
	Say      string
	PlacedAt time.Time
}

// NewMockVoiceService creates a new mock voice service
func NewMockVoiceService() *MockVoiceService {
	return &MockVoiceService{PlacedCalls: make([]MockVoiceCall, 0)}
}

func (m *MockVoiceService) PlaceCall(ctx context.Context, from, to, say string) (*ProviderResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailNext {
		m.FailNext = false
		return nil, fmt.Errorf("mock call failure")
	}
	m.PlacedCalls = append(m.PlacedCalls, MockVoiceCall{From: from, To: to, Say: say, PlacedAt: utils.UTCNow()})
	return &ProviderResult{Message: fmt.Sprintf("CA%d", len(m.PlacedCalls))}, nil
}

func (m *MockVoiceService) SayMarkup(text string) string {
	var escaped strings.Builder
	xml.EscapeText(&escaped, []byte(text))
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?><Response><Say>%s</Say></Response>`, escaped.String())
}

// GetPlacedCalls returns a copy of recorded calls
func (m *MockVoiceService) GetPlacedCalls() []MockVoiceCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockVoiceCall, len(m.PlacedCalls))
	copy(out, m.PlacedCalls)
	return out
}
