package sms

import (
	"fmt"
	"os"
	"strings"

	twilio "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/wobblehealth/checkin-api/pkg/config"
)

// Client sends check-in summaries to caregivers over SMS via Twilio
type Client struct {
	rest       *twilio.RestClient
	fromNumber string
}

// NewClient creates a Twilio SMS client using values from the provided
// config. Pass a nil config to fall back to environment variables.
func NewClient(cfg *config.TwilioConfig) *Client {
	var accountSID, authToken, fromNumber string
	if cfg != nil {
		accountSID = cfg.AccountSID
		authToken = cfg.AuthToken
		fromNumber = cfg.FromNumber
	}
	if accountSID == "" {
		accountSID = os.Getenv("TWILIO_SID")
	}
	if authToken == "" {
		authToken = os.Getenv("TWILIO_TOKEN")
	}
	if fromNumber == "" {
		fromNumber = os.Getenv("TWILIO_NUMBER")
	}

	rest := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &Client{
		rest:       rest,
		fromNumber: fromNumber,
	}
}

// ComposeSummaryBody builds the two-line SMS text: a header naming the child
// when known, then the summary.
func ComposeSummaryBody(childName, summary string) string {
	header := "Check-up summary:"
	if childName != "" {
		header = fmt.Sprintf("Report for %s:", childName)
	}
	return strings.Join([]string{header, summary}, "\n\n")
}

// SendSummary delivers a summary to the caregiver's number and returns the
// provider message SID.
func (c *Client) SendSummary(to, childName, summary string) (string, error) {
	if c.fromNumber == "" {
		return "", fmt.Errorf("TWILIO_NUMBER not configured")
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(c.fromNumber)
	params.SetBody(ComposeSummaryBody(childName, summary))

	msg, err := c.rest.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("failed to send SMS: %w", err)
	}

	sid := ""
	if msg.Sid != nil {
		sid = *msg.Sid
	}
	return sid, nil
}
