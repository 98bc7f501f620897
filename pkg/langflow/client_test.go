package langflow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wobblehealth/checkin-api/pkg/config"
)

func TestRelayTranscript_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload["input_value"] != "Agent: hi\n\nUser: hello" {
			t.Fatalf("unexpected input_value %v", payload["input_value"])
		}
		if payload["output_type"] != "chat" || payload["input_type"] != "chat" {
			t.Fatalf("unexpected io types: %v / %v", payload["output_type"], payload["input_type"])
		}
		sessionID, _ := payload["session_id"].(string)
		if !strings.HasPrefix(sessionID, "conv_123-") {
			t.Fatalf("session id %q does not carry the conversation id", sessionID)
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"outputs": []interface{}{
				map[string]interface{}{
					"artifacts": map[string]interface{}{"message": "**Hi** - there"},
				},
			},
		})
	}))
	defer ts.Close()

	client := NewClient(&config.LangflowConfig{APIURL: ts.URL}, nil)

	result := client.RelayTranscript(context.Background(), "Agent: hi\n\nUser: hello", "conv_123")
	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.Response == nil {
		t.Fatal("expected raw response to be retained")
	}
	if result.ExtractedMessage != "Hi • there" {
		t.Fatalf("unexpected extracted message %q", result.ExtractedMessage)
	}
}

func TestRelayTranscript_UpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewClient(&config.LangflowConfig{APIURL: ts.URL}, nil)

	result := client.RelayTranscript(context.Background(), "User: hello", "conv_err")
	if result.Success {
		t.Fatal("expected failure on upstream 500")
	}
	if result.Error == "" {
		t.Fatal("expected a non-empty error message")
	}
	if result.ExtractedMessage != "" {
		t.Fatalf("expected no extracted message, got %q", result.ExtractedMessage)
	}
}

func TestRelayTranscript_NotConfigured(t *testing.T) {
	client := &Client{}

	result := client.RelayTranscript(context.Background(), "User: hello", "conv_cfg")
	if result.Success {
		t.Fatal("expected failure when endpoint is not configured")
	}
	if result.Error != "LANGFLOW_API_URL environment variable not configured" {
		t.Fatalf("unexpected error %q", result.Error)
	}
}

func TestRelayTranscript_NoMessageInResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{"outputs": []interface{}{}})
	}))
	defer ts.Close()

	client := NewClient(&config.LangflowConfig{APIURL: ts.URL}, nil)

	result := client.RelayTranscript(context.Background(), "User: hello", "conv_empty")
	if !result.Success {
		t.Fatalf("relay itself should succeed, got error %q", result.Error)
	}
	if result.ExtractedMessage != "" {
		t.Fatalf("expected no extracted message, got %q", result.ExtractedMessage)
	}
}

func TestSummarize_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		sessionID, _ := payload["session_id"].(string)
		if !strings.HasPrefix(sessionID, "summarize_") {
			t.Fatalf("unexpected session id %q", sessionID)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"outputs": []interface{}{
				map[string]interface{}{
					"messages": []interface{}{
						map[string]interface{}{"message": "All good today."},
					},
				},
			},
		})
	}))
	defer ts.Close()

	client := NewClient(&config.LangflowConfig{APIURL: ts.URL}, nil)

	summary, err := client.Summarize(context.Background(), "User: hello")
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if summary != "All good today." {
		t.Fatalf("unexpected summary %q", summary)
	}
}

func TestSummarize_NoSummaryGenerated(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"outputs": []interface{}{}})
	}))
	defer ts.Close()

	client := NewClient(&config.LangflowConfig{APIURL: ts.URL}, nil)

	if _, err := client.Summarize(context.Background(), "User: hello"); err == nil {
		t.Fatal("expected an error when no summary is generated")
	}
}
