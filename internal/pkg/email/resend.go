// internal/pkg/email/resend.go
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const resendEndpoint = "https://api.resend.com/emails"

// resendRequest is the Resend API payload
type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// sendResend sends email through the Resend API
func (s *Service) sendResend(ctx context.Context, email *Email) error {
	apiKey := s.config.External.Email.APIKey
	if apiKey == "" {
		return fmt.Errorf("resend API key not configured")
	}

	fromEmail := s.config.External.Email.FromEmail
	from := fromEmail
	if name := s.config.External.Email.FromName; name != "" {
		from = fmt.Sprintf("%s <%s>", name, fromEmail)
	}

	payload, err := json.Marshal(resendRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		HTML:    email.HTMLContent,
		ReplyTo: email.ReplyTo,
	})
	if err != nil {
		return fmt.Errorf("failed to encode resend request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build resend request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call resend API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("resend API returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
