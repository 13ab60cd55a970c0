package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SendGridChannel sends email through the SendGrid v3 mail API.
type SendGridChannel struct {
	APIKey      string
	FromAddress string
	FromName    string
	client      *http.Client
}

func NewSendGridChannel(apiKey, fromAddress, fromName string) *SendGridChannel {
	return &SendGridChannel{
		APIKey:      apiKey,
		FromAddress: fromAddress,
		FromName:    fromName,
		client:      &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *SendGridChannel) Send(ctx context.Context, toAddress, subject, body string) (*SendResult, error) {
	payload := map[string]interface{}{
		"personalizations": []map[string]interface{}{
			{"to": []map[string]string{{"email": toAddress}}},
		},
		"from":    map[string]string{"email": c.FromAddress, "name": c.FromName},
		"subject": subject,
		"content": []map[string]string{
			{"type": "text/plain", "value": body},
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://api.sendgrid.com/v3/mail/send", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("email API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return &SendResult{SID: resp.Header.Get("X-Message-Id"), Status: "accepted"}, nil
}
