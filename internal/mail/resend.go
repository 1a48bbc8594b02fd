package mail

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

// DefaultResendEndpoint is the base URL of the Resend API.
const DefaultResendEndpoint = "https://api.resend.com/"

// ResendTransport delivers messages through the Resend API.
type ResendTransport struct {
	client *resend.Client
}

// NewResendTransport constructs a Resend transport. endpoint overrides the API base URL.
func NewResendTransport(endpoint, apiKey string) (*ResendTransport, error) {
	client := resend.NewCustomClient(&http.Client{Timeout: 10 * time.Second}, apiKey)
	if endpoint != "" && endpoint != DefaultResendEndpoint {
		if !strings.HasSuffix(endpoint, "/") {
			endpoint += "/"
		}
		base, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("invalid resend endpoint: %w", err)
		}
		client.BaseURL = base
	}
	return &ResendTransport{client: client}, nil
}

// Send hands the message to Resend.
func (t *ResendTransport) Send(ctx context.Context, msg Message) error {
	_, err := t.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("resend api error: %w", err)
	}
	return nil
}
