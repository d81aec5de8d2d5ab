package mailer

import (
	"context"
	"errors"
	"testing"
)

func TestSubject(t *testing.T) {
	if got := Subject("2025-02-10"); got != "Daily SDR Performance Summary - 2025-02-10" {
		t.Errorf("unexpected subject: %q", got)
	}
}

func TestMockService(t *testing.T) {
	m := NewMockService()
	if err := m.SendSummary(context.Background(), "subject", "<p>body</p>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.SentSubjects) != 1 || m.SentSubjects[0] != "subject" {
		t.Errorf("expected recorded subject, got %v", m.SentSubjects)
	}
	if len(m.SentBodies) != 1 || m.SentBodies[0] != "<p>body</p>" {
		t.Errorf("expected recorded body, got %v", m.SentBodies)
	}

	m.ShouldFail = true
	m.FailError = errors.New("smtp down")
	if err := m.SendSummary(context.Background(), "s", "b"); err == nil || err.Error() != "smtp down" {
		t.Errorf("expected configured failure, got %v", err)
	}
	if len(m.SentSubjects) != 1 {
		t.Error("failed send must not be recorded")
	}
}

func TestSMTPServiceRejectsBadAddresses(t *testing.T) {
	s := NewSMTPService("smtp.example.com", 587, "not-an-address", "pass", []string{"to@example.com"})
	if err := s.SendSummary(context.Background(), "s", "b"); err == nil {
		t.Fatal("expected error for invalid sender address")
	}

	s = NewSMTPService("smtp.example.com", 587, "from@example.com", "pass", []string{"broken"})
	if err := s.SendSummary(context.Background(), "s", "b"); err == nil {
		t.Fatal("expected error for invalid recipient address")
	}
}
