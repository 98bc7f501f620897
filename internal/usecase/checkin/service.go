package checkin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	apperrors "github.com/wobblehealth/checkin-api/errors"
	"github.com/wobblehealth/checkin-api/internal/domain/entities"
	"github.com/wobblehealth/checkin-api/internal/domain/repositories"
	"github.com/wobblehealth/checkin-api/internal/infrastructure/cache"
	"github.com/wobblehealth/checkin-api/pkg/config"
	"github.com/wobblehealth/checkin-api/pkg/langflow"
	"github.com/wobblehealth/checkin-api/pkg/signature"
)

// LangflowStatus summarizes the outcome of relaying one transcript for
// analysis. It is embedded verbatim in endpoint responses, so failures stay
// structured instead of failing the outer request.
type LangflowStatus struct {
	Success          bool   `json:"success"`
	Error            string `json:"error,omitempty"`
	ResponseReceived bool   `json:"response_received"`
	ExtractedMessage string `json:"extracted_message,omitempty"`
	MessageLength    int    `json:"message_length"`
}

// SubmissionResult is the outcome of a browser-submitted transcript
type SubmissionResult struct {
	Stored         bool
	ConversationID string
	Langflow       LangflowStatus
}

// ForwardPayload is the body accepted by the transcript forwarding endpoint
type ForwardPayload struct {
	ConversationID string      `json:"conversation_id"`
	Transcript     interface{} `json:"transcript"`
	Analysis       interface{} `json:"analysis"`
	Metadata       interface{} `json:"metadata"`
	ForwardedAt    string      `json:"forwarded_at,omitempty"`
}

// Service orchestrates the check-in pipeline: webhook ingestion, transcript
// relay, conversation persistence and downstream forwarding.
type Service struct {
	eventLog         *cache.EventLog
	langflowClient   *langflow.Client
	conversationRepo repositories.ConversationRepository
	webhookSecret    string
	forwardCfg       config.ForwardConfig
	httpClient       *http.Client
	logger           *zap.Logger
}

// NewService constructs a check-in service
func NewService(
	eventLog *cache.EventLog,
	langflowClient *langflow.Client,
	conversationRepo repositories.ConversationRepository,
	webhookSecret string,
	forwardCfg config.ForwardConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		eventLog:         eventLog,
		langflowClient:   langflowClient,
		conversationRepo: conversationRepo,
		webhookSecret:    webhookSecret,
		forwardCfg:       forwardCfg,
		httpClient:       &http.Client{Timeout: 30 * time.Second},
		logger:           logger,
	}
}

// FormatTranscript joins speaker-tagged turns into the linear transcript
// string sent to the analysis provider. Turn order is conversation order.
func FormatTranscript(turns []entities.TranscriptTurn) string {
	lines := make([]string, 0, len(turns))
	for _, turn := range turns {
		speaker := "User"
		if turn.Role == "agent" || turn.Role == "ai" {
			speaker = "Agent"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", speaker, turn.Message))
	}
	return strings.Join(lines, "\n\n")
}

// HandleWebhook verifies and processes one webhook delivery. The returned
// event is non-nil whenever verification succeeded; the LangflowStatus is
// non-nil only for transcription events that were relayed.
func (s *Service) HandleWebhook(ctx context.Context, body []byte, signatureHeader string) (*entities.WebhookEvent, *LangflowStatus, error) {
	if err := signature.Verify(s.webhookSecret, body, signatureHeader, time.Now()); err != nil {
		return nil, nil, err
	}

	// A body that fails to parse after a valid signature is a provider bug,
	// not a bad request; propagate it.
	var event entities.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, nil, apperrors.ErrInternal(fmt.Errorf("failed to parse webhook body: %w", err))
	}

	if event.Type != entities.EventTypePostCallTranscription {
		return &event, nil, nil
	}

	s.eventLog.Append(event)

	if s.logger != nil {
		s.logger.Info("📞 New call completed",
			zap.String("conversation_id", event.Data.ConversationID),
			zap.Int("transcript_entries", len(event.Data.Transcript)),
			zap.String("call_successful", event.Data.Analysis.CallSuccessful),
		)
	}

	status := s.processTranscription(ctx, &event)
	return &event, &status, nil
}

// processTranscription relays the call transcript for analysis
func (s *Service) processTranscription(ctx context.Context, event *entities.WebhookEvent) LangflowStatus {
	if len(event.Data.Transcript) == 0 {
		return LangflowStatus{Success: false, Error: "No transcript data available"}
	}

	formatted := FormatTranscript(event.Data.Transcript)
	result := s.langflowClient.RelayTranscript(ctx, formatted, event.Data.ConversationID)

	return LangflowStatus{
		Success:          result.Success,
		Error:            result.Error,
		ResponseReceived: result.Response != nil,
		ExtractedMessage: result.ExtractedMessage,
		MessageLength:    len(result.ExtractedMessage),
	}
}

// RecentEvents returns the most recent webhook events, oldest first
func (s *Service) RecentEvents(n int) []entities.WebhookEvent {
	return s.eventLog.Recent(n)
}

// SubmitTranscript stores a browser-submitted transcript for a user and
// relays it for analysis. Relay failures are folded into the result; only
// storage failures error out.
func (s *Service) SubmitTranscript(ctx context.Context, userID uuid.UUID, turns []entities.TranscriptTurn) (*SubmissionResult, error) {
	if len(turns) == 0 {
		return nil, apperrors.ErrInvalidArgument("transcript is required")
	}

	formatted := FormatTranscript(turns)
	conversation := entities.NewConversation(userID)
	conversation.Summary = formatted

	result := s.langflowClient.RelayTranscript(ctx, formatted, conversation.ConversationID)
	if result.Success {
		conversation.ExtractedMessage = result.ExtractedMessage
		if b, err := json.Marshal(result.Response); err == nil {
			conversation.LangflowResponse = datatypes.JSON(b)
		}
	}

	if err := s.conversationRepo.Create(ctx, conversation); err != nil {
		return nil, apperrors.ErrDBQueryFailed("insert conversation", err)
	}

	if s.logger != nil {
		s.logger.Info("✅ Conversation stored",
			zap.String("conversation_id", conversation.ConversationID),
			zap.String("user_id", userID.String()),
			zap.Bool("langflow_success", result.Success),
		)
	}

	return &SubmissionResult{
		Stored:         true,
		ConversationID: conversation.ConversationID,
		Langflow: LangflowStatus{
			Success:          result.Success,
			Error:            result.Error,
			ResponseReceived: result.Response != nil,
			ExtractedMessage: result.ExtractedMessage,
			MessageLength:    len(result.ExtractedMessage),
		},
	}, nil
}

// History returns a user's stored conversations, newest first
func (s *Service) History(ctx context.Context, userID uuid.UUID, limit int) ([]entities.Conversation, error) {
	conversations, err := s.conversationRepo.FindByUserID(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("list conversations", err)
	}
	return conversations, nil
}

// Summarize runs a raw transcript string through the analysis flow
func (s *Service) Summarize(ctx context.Context, transcript string) (string, error) {
	summary, err := s.langflowClient.Summarize(ctx, transcript)
	if err != nil {
		return "", apperrors.ErrUpstreamFailed("langflow", err)
	}
	return summary, nil
}

// ForwardTranscript relays a transcript payload verbatim, plus a timestamp,
// to the configured downstream collector.
func (s *Service) ForwardTranscript(ctx context.Context, payload ForwardPayload) (map[string]interface{}, error) {
	if s.forwardCfg.URL == "" {
		return nil, apperrors.ErrConfigMissing("FORWARD_SERVER_URL")
	}

	payload.ForwardedAt = time.Now().UTC().Format(time.RFC3339)
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.forwardCfg.URL, bytes.NewReader(b))
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.forwardCfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.forwardCfg.Token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.ErrUpstreamFailed("forward server", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.ErrUpstreamFailed("forward server",
			fmt.Errorf("failed to forward transcript: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	// Downstream body is optional; an unparseable response is treated as empty.
	serverResponse := map[string]interface{}{}
	if err := json.NewDecoder(resp.Body).Decode(&serverResponse); err != nil {
		serverResponse = map[string]interface{}{}
	}

	if s.logger != nil {
		s.logger.Info("✅ Transcript forwarded",
			zap.String("conversation_id", payload.ConversationID),
		)
	}

	return serverResponse, nil
}
