package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/wobblehealth/checkin-api/internal/domain/entities"
	"github.com/wobblehealth/checkin-api/internal/infrastructure/cache"
	"github.com/wobblehealth/checkin-api/internal/usecase/checkin"
	"github.com/wobblehealth/checkin-api/pkg/config"
	"github.com/wobblehealth/checkin-api/pkg/langflow"
	pkgvalidator "github.com/wobblehealth/checkin-api/pkg/validator"
)

// stubConversationRepo records created rows and serves canned listings
type stubConversationRepo struct {
	created []*entities.Conversation
	list    []entities.Conversation
	err     error
}

func (s *stubConversationRepo) Create(ctx context.Context, conversation *entities.Conversation) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, conversation)
	return nil
}

func (s *stubConversationRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]entities.Conversation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

func newConversationFixture(t *testing.T, langflowURL string, repo *stubConversationRepo) (*ConversationHandler, *echo.Echo) {
	t.Helper()
	client := langflow.NewClient(&config.LangflowConfig{APIURL: langflowURL}, nil)
	svc := checkin.NewService(cache.NewEventLog(cache.DefaultCapacity), client, repo, "secret", config.ForwardConfig{}, nil)
	e := echo.New()
	e.Validator = pkgvalidator.New()
	return NewConversationHandler(svc, nil), e
}

func submitConversation(t *testing.T, e *echo.Echo, h *ConversationHandler, body string, userID interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/conversation", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != nil {
		c.Set("user_id", userID)
	}
	if err := h.SubmitConversation(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestSubmitConversation_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"outputs": []interface{}{
				map[string]interface{}{
					"artifacts": map[string]interface{}{"message": "**Hi** - there"},
				},
			},
		})
	}))
	defer ts.Close()

	repo := &stubConversationRepo{}
	h, e := newConversationFixture(t, ts.URL, repo)

	body := `{"transcript":[{"role":"agent","message":"Hi, how was today?"},{"role":"user","message":"Pretty good."}]}`
	rec := submitConversation(t, e, h, body, uuid.New())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["stored"] != true {
		t.Fatalf("expected stored=true, got %v", resp["stored"])
	}
	if id, _ := resp["conversation_id"].(string); id == "" {
		t.Fatalf("expected a conversation id, got %v", resp["conversation_id"])
	}
	api, ok := resp["langflow_api"].(map[string]interface{})
	if !ok || api["success"] != true {
		t.Fatalf("expected langflow success, got %v", resp["langflow_api"])
	}
	if api["extracted_message"] != "Hi • there" {
		t.Fatalf("unexpected extracted message %v", api["extracted_message"])
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected 1 stored conversation, got %d", len(repo.created))
	}
	if repo.created[0].ExtractedMessage != "Hi • there" {
		t.Fatalf("stored row missing extracted message: %q", repo.created[0].ExtractedMessage)
	}
}

func TestSubmitConversation_RelayFailureStillStored(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	repo := &stubConversationRepo{}
	h, e := newConversationFixture(t, ts.URL, repo)

	body := `{"transcript":[{"role":"user","message":"hello"}]}`
	rec := submitConversation(t, e, h, body, uuid.New())
	if rec.Code != http.StatusOK {
		t.Fatalf("relay failure must not fail the submission, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["stored"] != true {
		t.Fatalf("expected stored=true, got %v", resp["stored"])
	}
	api, ok := resp["langflow_api"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected langflow_api object, got %v", resp["langflow_api"])
	}
	if api["success"] != false {
		t.Fatalf("expected langflow failure to be reported, got %v", api)
	}
	if errMsg, _ := api["error"].(string); errMsg == "" {
		t.Fatalf("expected a non-empty relay error, got %v", api)
	}

	if len(repo.created) != 1 {
		t.Fatalf("transcript must be stored despite relay failure, got %d rows", len(repo.created))
	}
	if repo.created[0].ExtractedMessage != "" {
		t.Fatalf("expected no extracted message on failed relay, got %q", repo.created[0].ExtractedMessage)
	}
}

func TestSubmitConversation_Unauthenticated(t *testing.T) {
	repo := &stubConversationRepo{}
	h, e := newConversationFixture(t, "http://unused.invalid", repo)

	body := `{"transcript":[{"role":"user","message":"hello"}]}`
	rec := submitConversation(t, e, h, body, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := resp["error"]; !ok {
		t.Fatalf("expected an error field, got %v", resp)
	}
	if len(repo.created) != 0 {
		t.Fatalf("nothing must be stored for an unresolved identity, got %d rows", len(repo.created))
	}
}

func TestSubmitConversation_EmptyTranscriptRejected(t *testing.T) {
	repo := &stubConversationRepo{}
	h, e := newConversationFixture(t, "http://unused.invalid", repo)

	rec := submitConversation(t, e, h, `{"transcript":[]}`, uuid.New())
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	// Validation failures use the same error shape as every other failure.
	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if msg, _ := resp["error"].(string); msg == "" {
		t.Fatalf("expected an error field, got %v", resp)
	}
}

func TestListConversations(t *testing.T) {
	userID := uuid.New()
	repo := &stubConversationRepo{
		list: []entities.Conversation{
			{ID: uuid.New(), UserID: userID, ConversationID: "conv_new", Summary: "User: hi"},
			{ID: uuid.New(), UserID: userID, ConversationID: "conv_old", Summary: "User: bye"},
		},
	}
	h, e := newConversationFixture(t, "http://unused.invalid", repo)

	req := httptest.NewRequest(http.MethodGet, "/conversation", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	if err := h.ListConversations(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Conversations []entities.Conversation `json:"conversations"`
		Count         int                     `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 2 || len(resp.Conversations) != 2 {
		t.Fatalf("expected 2 conversations, got count=%d len=%d", resp.Count, len(resp.Conversations))
	}
	if resp.Conversations[0].ConversationID != "conv_new" {
		t.Fatalf("unexpected ordering, first is %s", resp.Conversations[0].ConversationID)
	}
}
