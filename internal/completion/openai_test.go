package completion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rshoplabs/shopbot/internal/config"
)

func TestOpenAIClientComplete(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("unexpected auth header %q", got)
		}
		var req openAIRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": `{"action":"list_products"}`}},
			},
		})
	}))
	defer srv.Close()

	client := NewOpenAIClient(nil, "sk-test", srv.URL, "test-model", time.Second)
	got, err := client.Complete(context.Background(), "you are a catalog assistant", "list the products")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"action":"list_products"}` {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestOpenAIClientStatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(nil, "sk-test", srv.URL, "test-model", time.Second)
	_, err := client.Complete(context.Background(), "sys", "user")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Fatalf("error must carry the status: %v", err)
	}
}

func TestOpenAIClientNoChoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(nil, "sk-test", srv.URL, "test-model", time.Second)
	if _, err := client.Complete(context.Background(), "sys", "user"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestAnthropicClientComplete(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "sk-ant" {
			t.Errorf("unexpected api key header %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got == "" {
			t.Error("anthropic-version header missing")
		}
		w.Write([]byte(`{"content":[{"type":"text","text":"{\"action\":\"list_brands\"}"}]}`))
	}))
	defer srv.Close()

	client := NewAnthropicClient(nil, "sk-ant", srv.URL, "test-model", time.Second)
	got, err := client.Complete(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"action":"list_brands"}` {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestNewSelectsClient(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, config.CompletionConfig{Client: "openai", APIKey: "k"}); err != nil {
		t.Fatalf("openai: %v", err)
	}
	if _, err := New(nil, config.CompletionConfig{Client: "anthropic", APIKey: "k"}); err != nil {
		t.Fatalf("anthropic: %v", err)
	}
	if _, err := New(nil, config.CompletionConfig{Client: "smoke-signals"}); err == nil {
		t.Fatal("unknown client must error")
	}
}
