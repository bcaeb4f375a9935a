package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/arvinlabs/arvin-backend/internal/analysis/sentiment"
	chatModel "github.com/arvinlabs/arvin-backend/internal/model/chat"
	"github.com/arvinlabs/arvin-backend/internal/service/session"
	"github.com/arvinlabs/arvin-backend/internal/service/turn"
)

type stubGenerator struct {
	reply string
	calls int
}

func (s *stubGenerator) Generate(_ context.Context, _ []chatModel.Message) (string, error) {
	s.calls++
	return s.reply, nil
}

func setupRouter(gen turn.Generator) (*chi.Mux, session.Store) {
	store := session.NewMemoryStore(0)
	orch := turn.NewOrchestrator(store, sentiment.NewClassifier(), gen, 0)
	handler := New(orch, store)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, store
}

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestChatSuccess(t *testing.T) {
	gen := &stubGenerator{reply: "I'm ARVIN. It sounds like today went alright."}
	r, store := setupRouter(gen)

	resp := postJSON(t, r, "/chat", map[string]string{
		"user_id": "u1",
		"message": "I feel okay today",
	})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		IsCrisis  bool   `json:"is_crisis"`
		Message   string `json:"message"`
		Sentiment *struct {
			Score float64 `json:"score"`
			Mood  string  `json:"mood"`
		} `json:"sentiment"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if body.IsCrisis {
		t.Fatal("unexpected crisis flag")
	}
	if body.Message != gen.reply {
		t.Fatalf("unexpected message: %q", body.Message)
	}
	if body.Sentiment == nil {
		t.Fatal("expected sentiment payload")
	}
	if body.Sentiment.Mood != string(sentiment.ClassifyMood(body.Sentiment.Score)) {
		t.Fatalf("mood %s inconsistent with score %v", body.Sentiment.Mood, body.Sentiment.Score)
	}
	if body.Timestamp == "" {
		t.Fatal("expected timestamp")
	}

	history, err := store.Recent(context.Background(), "u1", 10)
	if err != nil {
		t.Fatalf("Recent err: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 messages in history, got %d", len(history))
	}
}

func TestChatCrisis(t *testing.T) {
	gen := &stubGenerator{reply: "unused"}
	r, _ := setupRouter(gen)

	resp := postJSON(t, r, "/chat", map[string]string{
		"user_id": "u1",
		"message": "I want to kill myself",
	})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		IsCrisis bool `json:"is_crisis"`
		Hotlines []struct {
			Name    string `json:"name"`
			Number  string `json:"number"`
			Country string `json:"country"`
		} `json:"hotlines"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if !body.IsCrisis {
		t.Fatal("expected crisis flag")
	}
	if len(body.Hotlines) != 3 {
		t.Fatalf("expected 3 hotlines, got %d", len(body.Hotlines))
	}
	if gen.calls != 0 {
		t.Fatalf("generator must not be called, got %d calls", gen.calls)
	}

	statsResp := postJSON(t, r, "/session-stats", map[string]string{"user_id": "u1"})
	var stats struct {
		SessionActive bool `json:"session_active"`
	}
	if err := json.Unmarshal(statsResp.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.SessionActive {
		t.Fatal("crisis turn must not create session history")
	}
}

func TestChatEmptyMessage(t *testing.T) {
	r, _ := setupRouter(&stubGenerator{reply: "x"})

	resp := postJSON(t, r, "/chat", map[string]string{"user_id": "u1", "message": "  "})

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error == "" {
		t.Fatal("expected error field")
	}
}

type failingGenerator struct{}

func (failingGenerator) Generate(_ context.Context, _ []chatModel.Message) (string, error) {
	return "", errors.New("upstream timeout")
}

func TestChatGenerationFailure(t *testing.T) {
	r, store := setupRouter(failingGenerator{})

	resp := postJSON(t, r, "/chat", map[string]string{"user_id": "u1", "message": "rough day at work"})

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}

	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error != "Failed to process message" || body.Details == "" {
		t.Fatalf("unexpected error body: %+v", body)
	}

	// The user message stays recorded; only the reply is missing.
	history, err := store.Recent(context.Background(), "u1", 10)
	if err != nil {
		t.Fatalf("Recent err: %v", err)
	}
	if len(history) != 1 || history[0].Role != chatModel.RoleUser {
		t.Fatalf("expected only the user message after failure, got %+v", history)
	}
}

func TestChatGeneratorUnavailable(t *testing.T) {
	r, _ := setupRouter(nil)

	resp := postJSON(t, r, "/chat", map[string]string{"user_id": "u1", "message": "hello"})

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

func TestClearSessionAbsentUser(t *testing.T) {
	r, _ := setupRouter(&stubGenerator{reply: "x"})

	resp := postJSON(t, r, "/clear-session", map[string]string{"user_id": "ghost"})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success {
		t.Fatal("clearing an absent session must succeed")
	}
}

func TestSessionStatsAfterTurns(t *testing.T) {
	gen := &stubGenerator{reply: "ack"}
	r, _ := setupRouter(gen)

	for i := 0; i < 3; i++ {
		resp := postJSON(t, r, "/chat", map[string]string{"user_id": "u1", "message": "all good here"})
		if resp.Code != http.StatusOK {
			t.Fatalf("turn %d: expected 200, got %d", i, resp.Code)
		}
	}

	resp := postJSON(t, r, "/session-stats", map[string]string{"user_id": "u1"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var stats struct {
		UserMessages      int  `json:"user_messages"`
		AssistantMessages int  `json:"assistant_messages"`
		TotalExchanges    int  `json:"total_exchanges"`
		SessionActive     bool `json:"session_active"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.UserMessages != 3 || stats.AssistantMessages != 3 || stats.TotalExchanges != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if !stats.SessionActive {
		t.Fatal("expected active session")
	}
}

func TestResourcesEndpoint(t *testing.T) {
	r, _ := setupRouter(&stubGenerator{reply: "x"})

	req := httptest.NewRequest(http.MethodGet, "/resources", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		CrisisHotlines []struct {
			Name      string `json:"name"`
			Available string `json:"available"`
		} `json:"crisis_hotlines"`
		Resources []struct {
			Type string `json:"type"`
		} `json:"resources"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.CrisisHotlines) != 3 {
		t.Fatalf("expected 3 hotlines, got %d", len(body.CrisisHotlines))
	}
	if body.CrisisHotlines[0].Available != "24/7" {
		t.Fatalf("expected availability in directory, got %q", body.CrisisHotlines[0].Available)
	}
	if len(body.Resources) != 2 {
		t.Fatalf("expected 2 resources, got %d", len(body.Resources))
	}
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := setupRouter(&stubGenerator{reply: "x"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Fatalf("unexpected status: %q", body["status"])
	}
	if body["service"] != serviceName {
		t.Fatalf("unexpected service identity: %q", body["service"])
	}
}
