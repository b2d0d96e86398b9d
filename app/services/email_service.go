package services

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"sync"
	"time"

	"github.com/cobraops/cobra-core/config"
	"github.com/cobraops/cobra-core/utils"
)

// EmailService handles outbound collection emails
type EmailService interface {
	SendEmail(ctx context.Context, to, subject, message string) (*ProviderResult, error)
}

// SMTPEmailService implements EmailService over plain SMTP
type SMTPEmailService struct {
	config *config.EmailConfig
}

// NewSMTPEmailService creates a new SMTP email service
func NewSMTPEmailService(cfg *config.EmailConfig) EmailService {
	return &SMTPEmailService{config: cfg}
}

// SendEmail sends one email. SMTP reports no per-message pricing, so the
// result carries no price and callers apply the flat rate. The whole
// session runs under the context deadline (or the configured timeout) so a
// hung server cannot stall a campaign loop.
func (s *SMTPEmailService) SendEmail(ctx context.Context, to, subject, message string) (*ProviderResult, error) {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	dialer := &net.Dialer{Timeout: s.config.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial SMTP server %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else if s.config.Timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(s.config.Timeout))
	}

	client, err := smtp.NewClient(conn, s.config.SMTPHost)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open SMTP session with %s: %w", addr, err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.config.SMTPHost}); err != nil {
			return nil, fmt.Errorf("failed to start TLS: %w", err)
		}
	}
	if ok, _ := client.Extension("AUTH"); ok {
		auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return nil, fmt.Errorf("failed to authenticate with SMTP server: %w", err)
		}
	}

	if err := client.Mail(s.config.FromEmail); err != nil {
		return nil, fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return nil, fmt.Errorf("failed to set recipient %s: %w", to, err)
	}

	w, err := client.Data()
	if err != nil {
		return nil, fmt.Errorf("failed to open message body: %w", err)
	}
	body := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		s.config.FromName, s.config.FromEmail, to, subject, message)
	if _, err := w.Write([]byte(body)); err != nil {
		return nil, fmt.Errorf("failed to write message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish message body: %w", err)
	}

	if err := client.Quit(); err != nil {
		return nil, fmt.Errorf("failed to close SMTP session: %w", err)
	}
	return &ProviderResult{Message: "sent"}, nil
}

// MockEmailService implements EmailService for testing
type MockEmailService struct {
	mu         sync.Mutex
	SentEmails []MockEmail
	FailNext   bool
}

// MockEmail represents a recorded mock email
type MockEmail struct {
	To      string
	Subject string
	Message string
	SentAt  time.Time
}

// NewMockEmailService creates a new mock email service
func NewMockEmailService() *MockEmailService {
	return &MockEmailService{SentEmails: make([]MockEmail, 0)}
}

func (m *MockEmailService) SendEmail(ctx context.Context, to, subject, message string) (*ProviderResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailNext {
		m.FailNext = false
		return nil, fmt.Errorf("mock email failure")
	}
	m.SentEmails = append(m.SentEmails, MockEmail{To: to, Subject: subject, Message: message, SentAt: utils.UTCNow()})
	return &ProviderResult{Message: "sent"}, nil
}

// GetSentEmails returns a copy of recorded emails
func (m *MockEmailService) GetSentEmails() []MockEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockEmail, len(m.SentEmails))
	copy(out, m.SentEmails)
	return out
}
