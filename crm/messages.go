package crm

import (
	"context"
	"net/http"
)

// EmailMessage is the email composer payload.
type EmailMessage struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
	LeadID  string   `json:"leadId,omitempty"`
}

// SMSMessage is the SMS composer payload.
type SMSMessage struct {
	To     []string `json:"to"`
	Body   string   `json:"body"`
	LeadID string   `json:"leadId,omitempty"`
}

// SendEmail hands a composed email to the server for delivery.
func (c *Client) SendEmail(ctx context.Context, message EmailMessage) error {
	return c.do(ctx, http.MethodPost, "/messages/email", nil, message, nil)
}

// SendSMS hands a composed SMS to the server for delivery.
func (c *Client) SendSMS(ctx context.Context, message SMSMessage) error {
	return c.do(ctx, http.MethodPost, "/messages/sms", nil, message, nil)
}
