package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/habitrail/habit-tracker-api/internal/logger"
)

// Mailer sends transactional mail.
type Mailer interface {
	SendVerificationEmail(email, token string) error
}

const resendEndpoint = "https://api.resend.com/emails"

// ResendMailer sends mail through the Resend REST API.
type ResendMailer struct {
	apiKey          string
	verificationURL string
	client          *http.Client
}

// NewResendMailer creates a mailer backed by the Resend API.
func NewResendMailer(apiKey, verificationURL string) *ResendMailer {
	return &ResendMailer{
		apiKey:          apiKey,
		verificationURL: verificationURL,
		client:          &http.Client{Timeout: 10 * time.Second},
	}
}

// SendVerificationEmail emails the verification link for the given token.
func (m *ResendMailer) SendVerificationEmail(email, token string) error {
	link := fmt.Sprintf("%s?token=%s", m.verificationURL, token)

	payload := map[string]interface{}{
		"from":    "onboarding@resend.dev",
		"to":      []string{email},
		"subject": "Habit Tracker - Verify Your Email Address",
		"html": fmt.Sprintf(`<h1>Email Verification</h1>
<p>Please click the link below to verify your email address:</p>
<a href="%s">Verify Email</a>
<p><strong>Note:</strong> The link will expire in 24 hours.</p>`, link),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode mail payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mail provider returned status %d", resp.StatusCode)
	}
	return nil
}

// LogMailer writes verification links to the log instead of sending mail.
// Used when no mail provider is configured.
type LogMailer struct {
	verificationURL string
	log             *logger.Logger
}

// NewLogMailer creates a mailer that only logs.
func NewLogMailer(verificationURL string, log *logger.Logger) *LogMailer {
	return &LogMailer{verificationURL: verificationURL, log: log}
}

// SendVerificationEmail logs the verification link.
func (m *LogMailer) SendVerificationEmail(email, token string) error {
	m.log.Info("verification email suppressed, no mail provider configured",
		"email", email,
		"link", fmt.Sprintf("%s?token=%s", m.verificationURL, token),
	)
	return nil
}
