package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TwilioChannel sends SMS through the Twilio Messages API.
type TwilioChannel struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	client     *http.Client
}

func NewTwilioChannel(accountSID, authToken, fromNumber string) *TwilioChannel {
	return &TwilioChannel{
		AccountSID: accountSID,
		AuthToken:  authToken,
		FromNumber: fromNumber,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *TwilioChannel) Send(ctx context.Context, toPhoneNumber, body string) (*SendResult, error) {
	form := url.Values{}
	form.Set("To", toPhoneNumber)
	form.Set("From", c.FromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", c.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create SMS request: %w", err)
	}
	req.SetBasicAuth(c.AccountSID, c.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send SMS: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("SMS API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var apiResp struct {
		SID    string `json:"sid"`
		Status string `json:"status"`
	}
	json.Unmarshal(respBody, &apiResp)

	return &SendResult{SID: apiResp.SID, Status: apiResp.Status}, nil
}
