package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"adpulse/internal/models"
)

func fakeAgent(t *testing.T, scheduleResp string) (*httptest.Server, *[]string) {
	t.Helper()
	var bodies []string

	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "t-123"})
	})
	mux.HandleFunc("/campaigns/schedule", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer t-123" {
			t.Errorf("missing bearer token, got %q", got)
		}
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(scheduleResp))
	})
	mux.HandleFunc("/campaigns/c1/effectiveness", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"score":87}`))
	})

	return httptest.NewServer(mux), &bodies
}

func TestScheduleCampaignPassesInputThrough(t *testing.T) {
	srv, bodies := fakeAgent(t, `{"job_id":"j-1"}`)
	defer srv.Close()

	c := NewAgentClient(srv.URL, "user", "pass", 5*time.Second)
	input := models.ScheduleCampaignInput{
		ID:        "c1",
		Name:      "Spring Sale",
		Platforms: []string{"meta", "google"},
	}

	result, err := c.ScheduleCampaign(context.Background(), input)
	if err != nil {
		t.Fatalf("ScheduleCampaign: %v", err)
	}
	if string(result) != `{"job_id":"j-1"}` {
		t.Fatalf("result not verbatim: %s", result)
	}

	if len(*bodies) != 1 {
		t.Fatalf("expected 1 schedule request, got %d", len(*bodies))
	}
	var sent models.ScheduleCampaignInput
	if err := json.Unmarshal([]byte((*bodies)[0]), &sent); err != nil {
		t.Fatalf("agent received invalid json: %v", err)
	}
	if sent.ID != input.ID || sent.Name != input.Name || len(sent.Platforms) != 2 {
		t.Fatalf("agent received %+v, want %+v", sent, input)
	}
}

func TestEvaluateCampaignEffectiveness(t *testing.T) {
	srv, _ := fakeAgent(t, `{}`)
	defer srv.Close()

	c := NewAgentClient(srv.URL, "user", "pass", 5*time.Second)
	result, err := c.EvaluateCampaignEffectiveness(context.Background(), "c1")
	if err != nil {
		t.Fatalf("EvaluateCampaignEffectiveness: %v", err)
	}
	if string(result) != `{"score":87}` {
		t.Fatalf("result not verbatim: %s", result)
	}
}

func TestEvaluateRequiresID(t *testing.T) {
	c := NewAgentClient("http://localhost:1", "user", "pass", time.Second)
	if _, err := c.EvaluateCampaignEffectiveness(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for blank id")
	}
}

func TestTokenIsCachedAcrossCalls(t *testing.T) {
	logins := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		logins++
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "t-123"})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewAgentClient(srv.URL, "user", "pass", 5*time.Second)
	for i := 0; i < 3; i++ {
		if _, err := c.EvaluateCampaignEffectiveness(context.Background(), "c1"); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if logins != 1 {
		t.Fatalf("expected 1 login, got %d", logins)
	}
}

func TestAgentErrorIncludesStatusAndBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "t-123"})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "window already booked", http.StatusConflict)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewAgentClient(srv.URL, "user", "pass", 5*time.Second)
	_, err := c.ScheduleCampaign(context.Background(), models.ScheduleCampaignInput{ID: "c1", Name: "x"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "409") || !strings.Contains(err.Error(), "window already booked") {
		t.Fatalf("error should carry agent status and body: %v", err)
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	c := NewAgentClient("http://localhost:1", "", "", time.Second)
	if _, err := c.EvaluateCampaignEffectiveness(context.Background(), "c1"); err == nil {
		t.Fatalf("expected error without credentials")
	}
}
