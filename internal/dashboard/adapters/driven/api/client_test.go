package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"shuttle-admin/internal/dashboard/core/domain/dto"
	"shuttle-admin/internal/dashboard/core/myerrors"
	"shuttle-admin/internal/mylogger"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

func TestClientSendsBearerAndBody(t *testing.T) {
	var gotAuth, gotMethod, gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotMethod = r.Method
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":"c1","name":"Acme"},"isSuccess":true,"message":"ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", 5*time.Second, mylogger.Discard()).WithTokens(staticToken("abc"))

	var env dto.Envelope[map[string]string]
	err := c.Do(context.Background(), http.MethodPost, "/companies", map[string]string{"name": "Acme"}, &env)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotAuth != "Bearer abc" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/companies" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
	if gotBody["name"] != "Acme" {
		t.Errorf("body = %v", gotBody)
	}
	want := dto.Envelope[map[string]string]{Data: map[string]string{"id": "c1", "name": "Acme"}, IsSuccess: true, Message: "ok"}
	if diff := cmp.Diff(want, env); diff != "" {
		t.Errorf("envelope mismatch (-want +got):\n%s", diff)
	}
}

func TestClientWithoutTokenSendsNoAuthorization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h := r.Header.Get("Authorization"); h != "" {
			t.Errorf("unexpected Authorization %q", h)
		}
		_, _ = w.Write([]byte(`{"data":[],"isSuccess":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, mylogger.Discard()).WithTokens(staticToken(""))
	var env dto.Envelope[[]string]
	if err := c.Do(context.Background(), http.MethodGet, "/companies", nil, &env); err != nil {
		t.Fatal(err)
	}
}

func TestClientMapsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"isSuccess":false,"messages":[{"propertyName":"Email","message":"Email zaten kayıtlı"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, mylogger.Discard())
	err := c.Do(context.Background(), http.MethodPost, "/users/register", map[string]string{}, nil)

	var apiErr *myerrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d", apiErr.Status)
	}
	if got := apiErr.UserMessage(); got != "Email zaten kayıtlı" {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestClientNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := New(srv.URL, time.Second, mylogger.Discard()).Do(context.Background(), http.MethodGet, "/x", nil, nil)
	if got := myerrors.ServerMessage(err, "fallback"); got != "fallback" {
		t.Errorf("ServerMessage = %q", got)
	}
}

func TestClientHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New(srv.URL, 5*time.Second, mylogger.Discard()).Do(ctx, http.MethodGet, "/slow", nil, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
