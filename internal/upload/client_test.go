package upload

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/claude/repbook/internal/transfer"
)

func newFastClient(url, apiKey string) *Client {
	c := NewClient(url, apiKey)
	c.backoff = time.Millisecond
	return c
}

// TestPushSendsDocument checks the request path, policy, headers and body.
func TestPushSendsDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/v1/import/exercises" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("policy"); got != "merge" {
			t.Errorf("policy = %q, want merge", got)
		}
		if got := r.Header.Get("X-API-Key"); got != "secret" {
			t.Errorf("X-API-Key = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `[{"id":"1"}]` {
			t.Errorf("body = %s", body)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transfer.Result{Key: "exercises", Policy: transfer.PolicyMerge, Received: 1, Imported: 1})
	}))
	defer srv.Close()

	c := newFastClient(srv.URL+"/", "secret")
	result, err := c.Push(context.Background(), "exercises", transfer.PolicyMerge, []byte(`[{"id":"1"}]`))
	if err != nil {
		t.Fatalf("Push: %v", err)
	}
	if result.Imported != 1 || result.Key != "exercises" {
		t.Errorf("result = %+v", result)
	}
}

// TestPushRetriesServerErrors retries 5xx responses and succeeds on the third attempt.
func TestPushRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(transfer.Result{Key: "sessions"})
	}))
	defer srv.Close()

	if _, err := newFastClient(srv.URL, "").Push(context.Background(), "sessions", transfer.PolicyReplace, []byte(`[]`)); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

// TestPushGivesUpAfterThreeAttempts reports the last failure.
func TestPushGivesUpAfterThreeAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newFastClient(srv.URL, "").Push(context.Background(), "sessions", transfer.PolicyReplace, []byte(`[]`))
	if err == nil || !strings.Contains(err.Error(), "after 3 attempts") {
		t.Fatalf("err = %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

// TestPushDoesNotRetryClientErrors fails on the first 4xx response.
func TestPushDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid import document"}`))
	}))
	defer srv.Close()

	_, err := newFastClient(srv.URL, "").Push(context.Background(), "exercises", transfer.PolicyMerge, []byte(`{}`))
	if err == nil || !strings.Contains(err.Error(), "invalid import document") {
		t.Fatalf("err = %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}
