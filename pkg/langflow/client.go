package langflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wobblehealth/checkin-api/pkg/config"
)

// Client is a minimal client for the Langflow analysis endpoint. A transcript
// goes in, a generated parent-readable message comes back in one of several
// nested shapes (see extract.go).
type Client struct {
	apiURL      string
	runEndpoint string
	client      *http.Client
	logger      *zap.Logger
}

// NewClient creates a Langflow client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewClient(cfg *config.LangflowConfig, logger *zap.Logger) *Client {
	var apiURL, runEndpoint string
	if cfg != nil {
		apiURL = cfg.APIURL
		runEndpoint = cfg.RunEndpoint()
	}
	if apiURL == "" {
		apiURL = os.Getenv("LANGFLOW_API_URL")
	}

	return &Client{
		apiURL:      apiURL,
		runEndpoint: runEndpoint,
		// A hung provider must not hang the handling request indefinitely.
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// runPayload is the request shape for a Langflow flow run
type runPayload struct {
	InputValue string `json:"input_value"`
	OutputType string `json:"output_type"`
	InputType  string `json:"input_type"`
	SessionID  string `json:"session_id"`
}

// RelayResult is the outcome of relaying a transcript for analysis. It is
// always well formed: provider failures land in Error, never in a panic or
// an escaped error value.
type RelayResult struct {
	Success          bool
	Response         map[string]interface{}
	ExtractedMessage string
	Error            string
}

// RelayTranscript posts a formatted transcript to the analysis endpoint and
// extracts the generated message. A fresh session id is attached to each
// request so the provider does not serve a cached run.
func (c *Client) RelayTranscript(ctx context.Context, transcript, conversationID string) RelayResult {
	if c.apiURL == "" {
		return RelayResult{Success: false, Error: "LANGFLOW_API_URL environment variable not configured"}
	}

	sessionID := fmt.Sprintf("%s-%d-%s", conversationID, time.Now().UnixMilli(), randomSuffix())

	if c.logger != nil {
		c.logger.Info("📤 Sending transcript to Langflow",
			zap.String("conversation_id", conversationID),
			zap.String("session_id", sessionID),
			zap.Int("transcript_length", len(transcript)),
		)
	}

	response, err := c.run(ctx, c.apiURL, runPayload{
		InputValue: transcript,
		OutputType: "chat",
		InputType:  "chat",
		SessionID:  sessionID,
	})
	if err != nil {
		if c.logger != nil {
			c.logger.Error("❌ Langflow relay failed", zap.Error(err))
		}
		return RelayResult{Success: false, Error: err.Error()}
	}

	result := RelayResult{Success: true, Response: response}
	if msg, ok := ExtractMessage(response); ok {
		result.ExtractedMessage = FormatMessage(msg)
		if c.logger != nil {
			c.logger.Info("✅ Extracted Langflow message",
				zap.Int("message_length", len(result.ExtractedMessage)),
			)
		}
	} else if c.logger != nil {
		c.logger.Warn("⚠️ No message found in Langflow response",
			zap.String("conversation_id", conversationID),
		)
	}
	return result
}

// Summarize runs the configured flow against a raw transcript string and
// returns the extracted summary. Unlike RelayTranscript the caller handles
// the error directly.
func (c *Client) Summarize(ctx context.Context, transcript string) (string, error) {
	endpoint := c.runEndpoint
	if endpoint == "" {
		endpoint = c.apiURL
	}
	if endpoint == "" {
		return "", fmt.Errorf("langflow endpoint not configured")
	}

	response, err := c.run(ctx, endpoint, runPayload{
		InputValue: transcript,
		OutputType: "chat",
		InputType:  "chat",
		SessionID:  fmt.Sprintf("summarize_%d", time.Now().UnixMilli()),
	})
	if err != nil {
		return "", err
	}

	msg, ok := ExtractMessage(response)
	if !ok {
		return "", fmt.Errorf("no summary generated")
	}
	return FormatMessage(msg), nil
}

// run posts a flow-run payload and decodes the JSON response
func (c *Client) run(ctx context.Context, endpoint string, payload runPayload) (map[string]interface{}, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if os.IsTimeout(err) {
			return nil, fmt.Errorf("langflow request timed out: %w", err)
		}
		return nil, fmt.Errorf("langflow request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API request failed with status: %d", resp.StatusCode)
	}

	var response map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode langflow response: %w", err)
	}
	return response, nil
}

// randomSuffix returns a short uniqueness token for session ids
func randomSuffix() string {
	return uuid.NewString()[:8]
}
