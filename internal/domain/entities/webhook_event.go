package entities

// EventTypePostCallTranscription is the only webhook event type the service
// acts on; other types are acknowledged and dropped.
const EventTypePostCallTranscription = "post_call_transcription"

// TranscriptTurn is a single speaker-tagged utterance from a voice session.
// Turns are immutable once appended and their order is conversation order.
type TranscriptTurn struct {
	Role           string  `json:"role"`
	Message        string  `json:"message"`
	TimeInCallSecs float64 `json:"time_in_call_secs"`
}

// CallFeedback carries listener feedback attached to call metadata
type CallFeedback struct {
	OverallScore *float64 `json:"overall_score"`
	Likes        int      `json:"likes"`
	Dislikes     int      `json:"dislikes"`
}

// CallMetadata describes timing and cost of a completed call
type CallMetadata struct {
	StartTimeUnixSecs int64        `json:"start_time_unix_secs"`
	CallDurationSecs  int          `json:"call_duration_secs"`
	Cost              float64      `json:"cost"`
	Feedback          CallFeedback `json:"feedback"`
}

// CallAnalysis is the provider's own analysis of a completed call
type CallAnalysis struct {
	EvaluationCriteriaResults map[string]interface{} `json:"evaluation_criteria_results"`
	DataCollectionResults     map[string]interface{} `json:"data_collection_results"`
	CallSuccessful            string                 `json:"call_successful"`
	TranscriptSummary         string                 `json:"transcript_summary"`
}

// WebhookEventData is the payload body of a post-call transcription event
type WebhookEventData struct {
	AgentID        string           `json:"agent_id"`
	ConversationID string           `json:"conversation_id"`
	Status         string           `json:"status"`
	Transcript     []TranscriptTurn `json:"transcript"`
	Metadata       CallMetadata     `json:"metadata"`
	Analysis       CallAnalysis     `json:"analysis"`
}

// WebhookEvent is a verified provider notification that a call completed.
// Events live only in the in-memory recent-event log; anything that must
// survive a restart goes to the database instead.
type WebhookEvent struct {
	Type           string           `json:"type"`
	EventTimestamp int64            `json:"event_timestamp"`
	Data           WebhookEventData `json:"data"`
}
