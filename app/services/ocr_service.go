package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cobraops/cobra-core/config"
)

// OCRService extracts text from inbound payment-proof images
type OCRService interface {
	ExtractText(ctx context.Context, image []byte, mime string) (string, error)
}

// OCRServiceImpl implements OCRService against an HTTP OCR API
type OCRServiceImpl struct {
	config *config.OCRConfig
	client *http.Client
}

type ocrParsedResult struct {
	ParsedText string `json:"ParsedText"`
}

type ocrResponse struct {
	ParsedResults []ocrParsedResult `json:"ParsedResults"`
	IsErrored     bool              `json:"IsErroredOnProcessing"`
	ErrorMessage  any               `json:"ErrorMessage"`
}

// NewOCRService creates a new OCR service instance
func NewOCRService(cfg *config.OCRConfig) OCRService {
	return &OCRServiceImpl{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// ExtractText sends the image as a base64 payload and returns the parsed text
func (s *OCRServiceImpl) ExtractText(ctx context.Context, image []byte, mime string) (string, error) {
	encoded := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(image))

	form := url.Values{}
	form.Set("base64Image", encoded)
	form.Set("language", "spa")

	endpoint := fmt.Sprintf("https://%s/parse/image", s.config.APIDomain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBufferString(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create OCR request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apikey", s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call OCR provider: %w", err)
	}
	defer resp.Body.Close()

	var result ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode OCR response: %w", err)
	}
	if result.IsErrored || len(result.ParsedResults) == 0 {
		return "", fmt.Errorf("OCR processing failed: %v", result.ErrorMessage)
	}

	parts := make([]string, 0, len(result.ParsedResults))
	for _, r := range result.ParsedResults {
		parts = append(parts, r.ParsedText)
	}
	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}

// MockOCRService implements OCRService for testing
type MockOCRService struct {
	Text string
	Err  error
}

// NewMockOCRService creates a mock OCR service returning fixed text
func NewMockOCRService(text string) *MockOCRService {
	return &MockOCRService{Text: text}
}

func (m *MockOCRService) ExtractText(ctx context.Context, image []byte, mime string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}
