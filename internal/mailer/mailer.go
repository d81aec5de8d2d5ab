// Package mailer delivers the daily summary email over authenticated SMTP.
package mailer

import (
	"context"
	"fmt"

	mail "github.com/wneessen/go-mail"
)

// Service defines the interface for summary delivery.
type Service interface {
	// SendSummary sends one HTML summary email to the configured recipients.
	SendSummary(ctx context.Context, subject, htmlBody string) error
}

// Subject builds the fixed daily subject line for a target date.
func Subject(date string) string {
	return "Daily SDR Performance Summary - " + date
}

// SMTPService implements Service over STARTTLS submission.
type SMTPService struct {
	host     string
	port     int
	username string
	password string
	to       []string
}

// NewSMTPService creates a new SMTP mailer. The sender address doubles as
// the submission username.
func NewSMTPService(host string, port int, username, password string, to []string) *SMTPService {
	return &SMTPService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		to:       to,
	}
}

// SendSummary sends the email in a single attempt. Encryption is mandatory;
// a server that refuses STARTTLS fails the send.
func (s *SMTPService) SendSummary(ctx context.Context, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.username); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(s.to...); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(s.host,
		mail.WithPort(s.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.username),
		mail.WithPassword(s.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send summary email: %w", err)
	}
	return nil
}

// MockService is a mock implementation for testing.
type MockService struct {
	SentSubjects []string
	SentBodies   []string
	ShouldFail   bool
	FailError    error
}

// NewMockService creates a new mock mailer.
func NewMockService() *MockService {
	return &MockService{}
}

// SendSummary records the email for testing.
func (m *MockService) SendSummary(ctx context.Context, subject, htmlBody string) error {
	if m.ShouldFail {
		if m.FailError != nil {
			return m.FailError
		}
		return fmt.Errorf("mock mailer failure")
	}
	m.SentSubjects = append(m.SentSubjects, subject)
	m.SentBodies = append(m.SentBodies, htmlBody)
	return nil
}
