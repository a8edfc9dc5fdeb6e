package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/learnio/learnio/internal/model"
)

func textResponse(t *testing.T, w http.ResponseWriter, text string) {
	t.Helper()

	resp := apiResponse{
		Type: "message",
		Role: "assistant",
		Content: []apiContentBlock{
			{Type: "text", Text: text},
		},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Fatalf("encoding response: %v", err)
	}
}

func TestGenerateResponse(t *testing.T) {
	var gotReq apiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		textResponse(t, w, "1. **Plan:** Start with an outline.\n")
	}))
	defer srv.Close()

	c := New("test-key", srv.URL, "", 0)
	got := c.GenerateResponse(context.Background(), "How do I start?", model.LanguageEnglish)
	if got != "1. **Plan:** Start with an outline." {
		t.Errorf("unexpected reply: %q", got)
	}

	if !strings.Contains(gotReq.System, "Your entire response must be in English.") {
		t.Errorf("system instruction missing language constraint: %q", gotReq.System)
	}
	if !strings.Contains(gotReq.System, "numbered list") {
		t.Errorf("system instruction missing format rules: %q", gotReq.System)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Content[0].Text != "How do I start?" {
		t.Errorf("unexpected messages: %+v", gotReq.Messages)
	}
}

func TestGenerateResponseTamil(t *testing.T) {
	var gotReq apiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		textResponse(t, w, "ok")
	}))
	defer srv.Close()

	c := New("test-key", srv.URL, "", 0)
	c.GenerateResponse(context.Background(), "hello", model.LanguageTamil)
	if !strings.Contains(gotReq.System, "Your entire response must be in Tamil.") {
		t.Errorf("system instruction missing Tamil constraint: %q", gotReq.System)
	}
}

func TestGenerateResponseFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(apiErrorResponse{})
	}))
	defer srv.Close()

	c := New("test-key", srv.URL, "", 0)
	got := c.GenerateResponse(context.Background(), "hello", model.LanguageEnglish)
	if got != chatFallback {
		t.Errorf("expected chat fallback, got %q", got)
	}

	// Unreachable server also falls back.
	srv.Close()
	got = c.GenerateResponse(context.Background(), "hello", model.LanguageEnglish)
	if got != chatFallback {
		t.Errorf("expected chat fallback on transport error, got %q", got)
	}
}

func TestSummarize(t *testing.T) {
	var gotReq apiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		textResponse(t, w, "1. Key point.")
	}))
	defer srv.Close()

	c := New("test-key", srv.URL, "", 0)
	got := c.Summarize(context.Background(), "a long conversation")
	if got != "1. Key point." {
		t.Errorf("unexpected summary: %q", got)
	}
	if gotReq.System != "" {
		t.Errorf("expected no system instruction for summarize, got %q", gotReq.System)
	}
	if !strings.Contains(gotReq.Messages[0].Content[0].Text, "a long conversation") {
		t.Errorf("prompt missing source text: %+v", gotReq.Messages)
	}
}

func TestSummarizeFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New("test-key", srv.URL, "", 0)
	if got := c.Summarize(context.Background(), "text"); got != summarizeFallback {
		t.Errorf("expected summarize fallback, got %q", got)
	}
}
