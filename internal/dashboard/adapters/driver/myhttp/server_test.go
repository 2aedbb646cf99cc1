package myhttp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shuttle-admin/internal/config"
	"shuttle-admin/internal/dashboard/adapters/driver/myhttp/handle"
	"shuttle-admin/internal/dashboard/core/domain/models"
	"shuttle-admin/internal/dashboard/core/feature"
	"shuttle-admin/internal/dashboard/core/ports/driven"
	"shuttle-admin/internal/dashboard/testutil"
	"shuttle-admin/internal/mylogger"
)

func testConfig() *config.Config {
	return &config.Config{
		API: &config.APIconfig{BaseURL: "http://backend.invalid/api", Timeout: time.Second},
		Srv: &config.Serviceconfig{
			DashboardPort:  "0",
			AllowedOrigins: []string{"http://localhost:5173"},
			SessionIdle:    30 * time.Minute,
		},
		Store: &config.Storeconfig{Driver: config.StoreSQLite},
		UI: &config.UIconfig{
			SuccessCloseDelay: time.Second,
			SuccessMessageTTL: 3 * time.Second,
			ProfileCloseDelay: 1500 * time.Millisecond,
			DefaultLat:        41.0082,
			DefaultLng:        28.9784,
		},
		Log: &config.Loggerconfig{Level: mylogger.LevelError},
	}
}

type harness struct {
	t      *testing.T
	server *Server
	srv    *httptest.Server
	client *http.Client
	api    *testutil.FakeAPI
	store  *testutil.MemoryStore
	sched  *feature.ManualScheduler
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		t:     t,
		api:   testutil.NewFakeAPI(),
		store: testutil.NewMemoryStore(),
		sched: feature.NewManualScheduler(),
	}

	s := NewServer(context.Background(), mylogger.Discard(), testConfig())
	s.store = h.store
	s.scheduler = h.sched
	s.newClient = func(driven.ITokenSource) driven.IAPIClient { return h.api }
	s.Configure()
	h.server = s

	h.srv = httptest.NewServer(s.router)
	t.Cleanup(func() {
		h.srv.Close()
		s.sessions.Close()
	})

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	h.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return h
}

func (h *harness) do(method, path, body string, header ...string) (*http.Response, map[string]any) {
	h.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, h.srv.URL+path, r)
	if err != nil {
		h.t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	resp, err := h.client.Do(req)
	if err != nil {
		h.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(raw, &out); err != nil {
			h.t.Fatalf("decode %s %s: %v (%s)", method, path, err, raw)
		}
	}
	return resp, out
}

func (h *harness) login() {
	h.t.Helper()
	h.api.On(http.MethodPost, "/auth/login", testutil.OK(map[string]any{
		"token": testutil.Token(h.t, time.Now().Add(time.Hour)),
		"user":  models.AuthUser{ID: "u1", FirstName: "Zeynep", LastName: "Kaya", Email: "zeynep@example.com"},
	}))
	resp, body := h.do(http.MethodPost, "/login", `{"email":"zeynep@example.com","password":"secret1"}`)
	if resp.StatusCode != http.StatusOK {
		h.t.Fatalf("login status = %d, body = %v", resp.StatusCode, body)
	}
}

// view returns the screen state of a response, unwrapping error bodies.
func view(body map[string]any) map[string]any {
	if v, ok := body["view"].(map[string]any); ok {
		return v
	}
	return body
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	resp, body := h.do(http.MethodGet, "/healthz", "")
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("healthz = %d %v", resp.StatusCode, body)
	}

	_ = h.store.Close()
	resp, body = h.do(http.MethodGet, "/healthz", "")
	if resp.StatusCode != http.StatusServiceUnavailable || body["store"] != "disconnected" {
		t.Errorf("healthz after close = %d %v", resp.StatusCode, body)
	}
}

func TestGuardRedirectsToLogin(t *testing.T) {
	h := newHarness(t)

	resp, _ := h.do(http.MethodGet, "/app/companies", "")
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/login" {
		t.Fatalf("anonymous = %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
	if h.api.Count(http.MethodGet, "/companies") != 0 {
		t.Error("guarded screen called the backend")
	}

	// An expired token is treated like no token.
	h.api.On(http.MethodPost, "/auth/login", testutil.OK(map[string]any{
		"token": testutil.Token(t, time.Now().Add(-time.Minute)),
		"user":  models.AuthUser{ID: "u1"},
	}))
	if resp, _ := h.do(http.MethodPost, "/login", `{"email":"a@b.co","password":"secret1"}`); resp.StatusCode != http.StatusOK {
		t.Fatalf("login = %d", resp.StatusCode)
	}
	resp, _ = h.do(http.MethodGet, "/app/layout", "")
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("expired token = %d", resp.StatusCode)
	}
}

func TestLoginFailures(t *testing.T) {
	h := newHarness(t)

	resp, body := h.do(http.MethodPost, "/login", `{"email":"nope","password":"1"}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("invalid form = %d", resp.StatusCode)
	}
	if errs, _ := view(body)["form"].(map[string]any)["errors"].(map[string]any); errs["email"] == nil {
		t.Errorf("no email error in %v", body)
	}

	h.api.OnError(http.MethodPost, "/auth/login", http.StatusUnauthorized, "")
	resp, body = h.do(http.MethodPost, "/login", `{"email":"a@b.co","password":"secret1"}`)
	if resp.StatusCode != http.StatusUnauthorized || view(body)["error_message"] != feature.MsgLoginFailed {
		t.Errorf("bad credentials = %d %v", resp.StatusCode, body)
	}
}

func TestModuleFlowOverHTTP(t *testing.T) {
	h := newHarness(t)
	h.api.On(http.MethodGet, "/companies", testutil.OK([]models.Company{{ID: "c1", Name: "Acme"}}))
	h.api.On(http.MethodPost, "/companies", testutil.OK(models.Company{ID: "c2"}))
	h.login()

	resp, body := h.do(http.MethodGet, "/app/companies", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("view = %d %v", resp.StatusCode, body)
	}
	if body["load"] != string(feature.LoadLoaded) || body["total"] != float64(1) {
		t.Errorf("view = %v", body)
	}

	if resp, _ := h.do(http.MethodPost, "/app/companies/modal/add", ""); resp.StatusCode != http.StatusOK {
		t.Fatalf("open add = %d", resp.StatusCode)
	}
	resp, body = h.do(http.MethodPost, "/app/companies/modal/submit", "")
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("empty submit = %d", resp.StatusCode)
	}
	if h.api.Count(http.MethodPost, "/companies") != 0 {
		t.Error("invalid form reached the backend")
	}
	modal, _ := view(body)["modal"].(map[string]any)
	if modal["state"] != string(feature.ModalAdd) {
		t.Errorf("modal = %v", modal)
	}

	resp, _ = h.do(http.MethodPatch, "/app/companies/modal/form", `{"name":"Beta Ltd","address":"Kadıköy","responsiblePerson":"Ali Veli",`+
		`"responsiblePersonPhoneNumber":"5321234567","taxOffice":"Kadıköy","taxNumber":"1234567890",`+
		`"contractDate":"2025-01-01","contractEndDate":"2025-12-31"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("set fields = %d", resp.StatusCode)
	}
	resp, body = h.do(http.MethodPost, "/app/companies/modal/submit", "")
	if resp.StatusCode != http.StatusOK || body["success_message"] == nil {
		t.Fatalf("submit = %d %v", resp.StatusCode, body)
	}
	if h.sched.RunAll() == 0 {
		t.Fatal("close timer not scheduled")
	}
	_, body = h.do(http.MethodGet, "/app/companies/state", "")
	if body["modal"] != nil {
		t.Errorf("modal still open: %v", body["modal"])
	}
	if got := h.api.Count(http.MethodGet, "/companies"); got != 2 {
		t.Errorf("list loads = %d, want 2", got)
	}

	resp, _ = h.do(http.MethodPost, "/app/companies/delete/confirm", "")
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("confirm without request = %d", resp.StatusCode)
	}
	resp, _ = h.do(http.MethodPut, "/app/companies/filters", `{"bogus":"x"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown filter = %d", resp.StatusCode)
	}
	resp, _ = h.do(http.MethodGet, "/app/planes", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown module = %d", resp.StatusCode)
	}
}

func TestLogoutDisposesScreens(t *testing.T) {
	h := newHarness(t)
	h.api.On(http.MethodGet, "/routestops", testutil.OK([]models.RouteStop{}))
	h.api.On(http.MethodGet, "/routes", testutil.OK([]models.Route{}))
	h.login()

	if resp, _ := h.do(http.MethodGet, "/app/stops", ""); resp.StatusCode != http.StatusOK {
		t.Fatalf("view = %d", resp.StatusCode)
	}
	_, body := h.do(http.MethodPost, "/app/stops/modal/add", "")
	modal, _ := body["modal"].(map[string]any)
	if modal["map"] == nil {
		t.Fatal("picker map not attached")
	}

	resp, body := h.do(http.MethodPost, "/logout", "")
	if resp.StatusCode != http.StatusOK || body["redirect"] != "/login" {
		t.Fatalf("logout = %d %v", resp.StatusCode, body)
	}
	if n := h.server.sessions.Len(); n != 0 {
		t.Errorf("live sessions after logout = %d", n)
	}
	resp, _ = h.do(http.MethodGet, "/app/stops/state", "")
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("after logout = %d", resp.StatusCode)
	}

	// Signing back in starts from a fresh screen.
	h.login()
	_, body = h.do(http.MethodGet, "/app/stops/state", "")
	if body["modal"] != nil || body["load"] != string(feature.LoadIdle) {
		t.Errorf("state leaked across logout: %v", body)
	}
}

func TestThemeFollowsOSUntilSaved(t *testing.T) {
	h := newHarness(t)

	_, body := h.do(http.MethodGet, "/theme", "", handle.PrefersColorScheme, "dark")
	if body["theme"] != "dark" {
		t.Errorf("os dark = %v", body)
	}
	_, body = h.do(http.MethodPost, "/theme/toggle", "", handle.PrefersColorScheme, "dark")
	if body["theme"] != "light" {
		t.Errorf("toggled = %v", body)
	}
	_, body = h.do(http.MethodGet, "/theme", "", handle.PrefersColorScheme, "dark")
	if body["theme"] != "light" {
		t.Errorf("saved theme ignored: %v", body)
	}
}

func TestLayout(t *testing.T) {
	h := newHarness(t)
	h.login()

	_, body := h.do(http.MethodGet, "/app/layout", "")
	if body["user_name"] != "Zeynep Kaya" || body["collapsed"] != false {
		t.Errorf("layout = %v", body)
	}
	if menu, _ := body["menu"].([]any); len(menu) != len(feature.Menu) {
		t.Errorf("menu has %d items", len(menu))
	}
	_, body = h.do(http.MethodPost, "/app/layout/sidebar", "")
	if body["collapsed"] != true {
		t.Errorf("sidebar not collapsed: %v", body)
	}
}
