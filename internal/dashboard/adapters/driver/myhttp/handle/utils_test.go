package handle

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shuttle-admin/internal/dashboard/core/feature"
	"shuttle-admin/internal/dashboard/core/myerrors"
	"shuttle-admin/internal/dashboard/core/ports/driven"
	"shuttle-admin/internal/dashboard/testutil"
	"shuttle-admin/internal/mylogger"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{myerrors.ErrValidation, http.StatusUnprocessableEntity},
		{fmt.Errorf("submit: %w", myerrors.ErrRejected), http.StatusBadRequest},
		{errors.Join(errBadBody, errors.New("eof")), http.StatusBadRequest},
		{myerrors.ErrNotFound, http.StatusNotFound},
		{myerrors.ErrBusy, http.StatusConflict},
		{myerrors.ErrNoSelection, http.StatusConflict},
		{myerrors.ErrWidgetClosed, http.StatusConflict},
		{myerrors.ErrNotSupported, http.StatusNotImplemented},
		{myerrors.ErrDisposed, http.StatusGone},
		{errors.Join(myerrors.ErrUnauthorized, &myerrors.APIError{Status: 400}), http.StatusUnauthorized},
		{&myerrors.APIError{Status: http.StatusUnauthorized}, http.StatusUnauthorized},
		{&myerrors.APIError{Status: http.StatusInternalServerError}, http.StatusBadGateway},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestAttachIssuesCookie(t *testing.T) {
	api := testutil.NewFakeAPI()
	sessions := NewSessions(testutil.NewMemoryStore(), func(driven.ITokenSource) driven.IAPIClient { return api },
		feature.Env{}, mylogger.Discard(), time.Hour)
	var seen *SessionState
	h := sessions.Attach(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookie || !cookies[0].HttpOnly {
		t.Fatalf("cookies = %v", cookies)
	}
	if seen == nil || seen.ID != cookies[0].Value {
		t.Fatalf("session = %+v", seen)
	}
	first := seen

	// The same cookie maps to the same session and no new cookie is sent.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if len(rec.Result().Cookies()) != 0 || seen != first {
		t.Error("known cookie not reused")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "../../etc"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if len(rec.Result().Cookies()) != 1 || seen.ID == "../../etc" {
		t.Error("malformed cookie accepted")
	}
	if sessions.Len() != 2 {
		t.Errorf("sessions = %d, want 2", sessions.Len())
	}
}

func TestLogoutStartsFreshWorkspace(t *testing.T) {
	sessions := NewSessions(testutil.NewMemoryStore(), func(driven.ITokenSource) driven.IAPIClient { return testutil.NewFakeAPI() },
		feature.Env{}, mylogger.Discard(), time.Hour)
	st := sessions.Get("s1")
	ws := st.Workspace()
	if _, ok := ws.Module(feature.ModuleCompanies); !ok {
		t.Fatal("companies missing")
	}

	if err := st.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, ok := ws.Module(feature.ModuleCompanies); ok {
		t.Error("old workspace still serves modules")
	}
	if st.Workspace() == ws {
		t.Error("workspace reused after logout")
	}
}

func TestSweepDropsIdleSessions(t *testing.T) {
	sessions := NewSessions(testutil.NewMemoryStore(), func(driven.ITokenSource) driven.IAPIClient { return testutil.NewFakeAPI() },
		feature.Env{}, mylogger.Discard(), 30*time.Minute)
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	sessions.now = func() time.Time { return now }

	h := sessions.Attach(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	for i := 0; i < 100; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/theme", nil))
	}
	active := sessions.Get("active")
	ws := active.Workspace()
	idle := sessions.Get("idle")
	idleWS := idle.Workspace()

	now = now.Add(20 * time.Minute)
	sessions.Get("active")
	if n := sessions.Sweep(); n != 0 {
		t.Fatalf("Sweep before timeout removed %d", n)
	}

	now = now.Add(15 * time.Minute)
	if n := sessions.Sweep(); n != 101 {
		t.Errorf("Sweep removed %d, want 101", n)
	}
	if sessions.Len() != 1 {
		t.Errorf("sessions = %d, want 1", sessions.Len())
	}
	if _, ok := idleWS.Module(feature.ModuleCompanies); ok {
		t.Error("idle workspace not disposed")
	}
	if sessions.Get("active").Workspace() != ws {
		t.Error("active session lost its workspace")
	}
}

func TestRemoveDisposesWorkspace(t *testing.T) {
	sessions := NewSessions(testutil.NewMemoryStore(), func(driven.ITokenSource) driven.IAPIClient { return testutil.NewFakeAPI() },
		feature.Env{}, mylogger.Discard(), time.Hour)
	ws := sessions.Get("s1").Workspace()

	sessions.Remove("s1")
	sessions.Remove("missing")
	if sessions.Len() != 0 {
		t.Errorf("sessions = %d", sessions.Len())
	}
	if _, ok := ws.Module(feature.ModuleCompanies); ok {
		t.Error("workspace still serves modules")
	}
}
