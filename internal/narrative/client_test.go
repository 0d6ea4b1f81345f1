package narrative

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/talgya/stonefall/internal/game"
)

const validEventBody = `{
  "event": {
    "id": "evt_1",
    "type": "economic",
    "title": "Merchant Caravan",
    "description": "Traders arrived seeking grain.",
    "choices": [
      {"id": "trade", "text": "Trade", "effects": [{"type": "resource", "target": "gold", "value": 10}]},
      {"id": "refuse", "text": "Refuse", "effects": []}
    ]
  },
  "source": "ai"
}`

func testContext() game.EventContext {
	return game.EventContext{
		Era:        game.EraStone,
		Tick:       40,
		Population: 6,
		Resources:  game.Resources{Food: 120, Wood: 50, Stone: 20},
	}
}

func TestClientGenerateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/events/generate" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %q", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(validEventBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, 2)
	ev, err := c.Generate(context.Background(), testContext())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if ev == nil || ev.ID != "evt_1" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if len(ev.Choices) != 2 {
		t.Errorf("choices = %d, want 2", len(ev.Choices))
	}
}

func TestClientNullEventMeansNoEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"event": null}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, 0)
	ev, err := c.Generate(context.Background(), testContext())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if ev != nil {
		t.Errorf("expected no event, got %+v", ev)
	}
}

func TestClient4xxDoesNotRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, 3)
	if _, err := c.Generate(context.Background(), testContext()); err == nil {
		t.Fatal("expected an error for 400")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("4xx retried: %d calls", n)
	}
}

func TestClient5xxRetriesThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(validEventBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, 2)
	ev, err := c.Generate(context.Background(), testContext())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if ev == nil {
		t.Fatal("no event after retries")
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("calls = %d, want 3", n)
	}
}

func TestClientRejectsMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only one choice: below the schema minimum.
		w.Write([]byte(`{"event": {"id": "x", "type": "economic", "title": "t",
			"description": "d", "choices": [{"id": "a", "text": "A", "effects": []}]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, 0)
	if _, err := c.Generate(context.Background(), testContext()); err == nil {
		t.Fatal("schema-invalid payload accepted")
	}
}

func TestClientDisabledWhenNoURL(t *testing.T) {
	if c := NewClient("", time.Second, 2); c != nil {
		t.Error("empty URL should yield a nil client")
	}
	var c *Client
	if c.Enabled() {
		t.Error("nil client reports enabled")
	}
}

func TestValidateResponse(t *testing.T) {
	if err := ValidateResponse([]byte(validEventBody)); err != nil {
		t.Errorf("valid body rejected: %v", err)
	}
	if err := ValidateResponse([]byte(`{"event": null}`)); err != nil {
		t.Errorf("null event rejected: %v", err)
	}
	if err := ValidateResponse([]byte(`{}`)); err == nil {
		t.Error("missing event field accepted")
	}
	if err := ValidateResponse([]byte(`not json`)); err == nil {
		t.Error("non-JSON body accepted")
	}
}
