package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/yungbote/retirepath-backend/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func responsesPayload(text string) map[string]any {
	return map[string]any{
		"output": []map[string]any{
			{
				"type": "message",
				"role": "assistant",
				"content": []map[string]any{
					{"type": "output_text", "text": text},
				},
			},
		},
	}
}

func newTestClient(t *testing.T, baseURL string) Client {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_BASE_URL", baseURL)
	t.Setenv("OPENAI_MODEL", "gpt-4.1-mini")
	t.Setenv("OPENAI_MAX_RETRIES", "2")

	c, err := NewClient(testLogger(t))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewClient(testLogger(t)); err == nil {
		t.Fatal("NewClient without OPENAI_API_KEY should fail")
	}
}

func TestGenerateJSONTextReturnsRawOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/responses" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		_ = json.NewEncoder(w).Encode(responsesPayload(`{"title":"t"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	got, err := c.GenerateJSONText(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("GenerateJSONText: %v", err)
	}
	if got != `{"title":"t"}` {
		t.Fatalf("GenerateJSONText=%q, want raw model text", got)
	}
}

func TestGenerateJSONTextRetriesOn5xx(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(responsesPayload("ok"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	got, err := c.GenerateJSONText(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("GenerateJSONText after retry: %v", err)
	}
	if got != "ok" {
		t.Fatalf("GenerateJSONText=%q, want %q", got, "ok")
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("upstream called %d times, want 2", n)
	}
}

func TestGenerateJSONTextDoesNotRetryOn4xx(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.GenerateJSONText(context.Background(), "prompt"); err == nil {
		t.Fatal("GenerateJSONText should fail on 400")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("upstream called %d times, want 1", n)
	}
}

func TestGenerateJSONTextEmptyOutputFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"output": []any{}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.GenerateJSONText(context.Background(), "prompt"); err == nil {
		t.Fatal("GenerateJSONText should fail on empty output")
	}
}
