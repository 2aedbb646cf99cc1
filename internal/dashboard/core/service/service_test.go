package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"shuttle-admin/internal/dashboard/core/domain/dto"
	"shuttle-admin/internal/dashboard/core/domain/models"
	"shuttle-admin/internal/dashboard/core/myerrors"
	"shuttle-admin/internal/dashboard/testutil"
)

func TestGuardAllow(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	g := NewGuardAt(func() time.Time { return now })

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"empty", "", false},
		{"garbage", "not-a-token", false},
		{"two segments", "aaa.bbb", false},
		{"expired", testutil.Token(t, now.Add(-time.Minute)), false},
		{"expires now", testutil.Token(t, now), false},
		{"valid", testutil.Token(t, now.Add(time.Hour)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Allow(tt.token); got != tt.want {
				t.Errorf("Allow = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGuardMissingExp(t *testing.T) {
	// header {"alg":"HS256","typ":"JWT"}, payload {"sub":"x"}
	token := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJzdWIiOiJ4In0.c2ln"
	_, err := NewGuard().Expiry(token)
	if !errors.Is(err, ErrNoExpiry) {
		t.Errorf("Expiry = %v, want ErrNoExpiry", err)
	}
}

func TestGuardIgnoresAlgHeader(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	g := NewGuardAt(func() time.Time { return now })
	enc := base64.RawURLEncoding.EncodeToString
	payload := enc([]byte(fmt.Sprintf(`{"exp":%d}`, now.Add(time.Hour).Unix())))

	tests := []struct {
		name   string
		header string
	}{
		{"no alg", `{"typ":"JWT"}`},
		{"unknown alg", `{"alg":"XY512","typ":"JWT"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := enc([]byte(tt.header)) + "." + payload + ".c2ln"
			if !g.Allow(token) {
				t.Errorf("Allow(%s) = false", tt.header)
			}
		})
	}

	// the payload still has to decode
	if g.Allow(enc([]byte(`{"typ":"JWT"}`)) + ".bm90LWpzb24.c2ln") {
		t.Error("Allow accepted a non-JSON payload")
	}
}

func TestResolveTheme(t *testing.T) {
	tests := []struct {
		saved       string
		prefersDark bool
		want        Theme
	}{
		{"dark", false, ThemeDark},
		{"light", true, ThemeLight},
		{"", true, ThemeDark},
		{"", false, ThemeLight},
		{"sepia", true, ThemeLight},
	}
	for _, tt := range tests {
		if got := ResolveTheme(tt.saved, tt.prefersDark); got != tt.want {
			t.Errorf("ResolveTheme(%q, %v) = %s, want %s", tt.saved, tt.prefersDark, got, tt.want)
		}
	}
}

func TestThemeToggleTwiceRestores(t *testing.T) {
	ctx := context.Background()
	themes := NewThemeService(NewSession(testutil.NewMemoryStore(), "s1"))

	first, err := themes.Toggle(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if first != ThemeLight {
		t.Errorf("OS prefers dark, first toggle = %s", first)
	}
	second, _ := themes.Toggle(ctx, true)
	if second != ThemeDark {
		t.Errorf("second toggle = %s", second)
	}
	cur, _ := themes.Current(ctx, false)
	if cur != ThemeDark {
		t.Errorf("saved value must win over OS preference, got %s", cur)
	}
}

func TestSessionLoginAndClear(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemoryStore()
	s := NewSession(store, "s1")
	user := models.AuthUser{ID: "u1", FirstName: "Ayşe", LastName: "Kaya"}

	if err := s.SaveLogin(ctx, "tok", user); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveTheme(ctx, ThemeDark); err != nil {
		t.Fatal(err)
	}
	got, ok, err := s.User(ctx)
	if err != nil || !ok {
		t.Fatalf("User = %v, %v", ok, err)
	}
	if diff := cmp.Diff(user, got); diff != "" {
		t.Errorf("user mismatch (-want +got):\n%s", diff)
	}
	if tok, _ := s.Token(ctx); tok != "tok" {
		t.Errorf("Token = %q", tok)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if tok, _ := s.Token(ctx); tok != "" {
		t.Errorf("token survived Clear")
	}
	if _, ok, _ := s.User(ctx); ok {
		t.Errorf("user survived Clear")
	}
	if theme, _ := s.SavedTheme(ctx); theme != "dark" {
		t.Errorf("theme should survive Clear, got %q", theme)
	}

	other := NewSession(store, "s2")
	if tok, _ := other.Token(ctx); tok != "" {
		t.Errorf("sessions must not share keys")
	}
}

func TestResourcePaths(t *testing.T) {
	ctx := context.Background()
	api := testutil.NewFakeAPI()
	api.On(http.MethodGet, "/routestops/route/r1", testutil.OK([]models.RouteStop{{ID: "s1"}}))
	api.On(http.MethodPost, "/users/register", testutil.OK(models.User{ID: "u1"}))
	api.On(http.MethodPut, "/companies", testutil.OK(models.Company{ID: "c1"}))
	api.On(http.MethodDelete, "/buses/b1", testutil.OK(nil))

	// url.PathEscape keeps the space encoded
	api.On(http.MethodGet, "/drivers/company/c%201", testutil.OK([]models.Driver{{ID: "d1"}}))
	drivers, err := NewDriverService(api).GetByCompanyID(ctx, "c 1")
	if err != nil || len(drivers.Data) != 1 {
		t.Fatalf("GetByCompanyID = %+v, %v", drivers, err)
	}

	stops, err := NewRouteService(api).GetStops(ctx, "r1")
	if err != nil || len(stops.Data) != 1 {
		t.Fatalf("GetStops = %+v, %v", stops, err)
	}

	if _, err := NewUserService(api).Create(ctx, dto.RegisterUserPayload{Email: "a@b.c"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if api.Count(http.MethodPost, "/users") != 0 || api.Count(http.MethodPost, "/users/register") != 1 {
		t.Errorf("user create must go to /users/register")
	}

	if _, err := NewCompanyService(api).Update(ctx, dto.CompanyPayload{ID: "c1", Name: "X"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	calls := api.Calls(http.MethodPut, "/companies")
	var body map[string]any
	_ = json.Unmarshal(calls[0].Body, &body)
	if body["id"] != "c1" {
		t.Errorf("update must carry id in body: %s", calls[0].Body)
	}

	if _, err := NewBusService(api).Delete(ctx, "b1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := NewUserService(api).Delete(ctx, "u1"); !errors.Is(err, myerrors.ErrNotSupported) {
		t.Errorf("user delete = %v", err)
	}
}

func TestResourceWrapsAPIError(t *testing.T) {
	api := testutil.NewFakeAPI()
	api.OnError(http.MethodGet, "/companies", http.StatusBadGateway, "backend down")

	_, err := NewCompanyService(api).GetAll(context.Background())
	var apiErr *myerrors.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadGateway {
		t.Fatalf("err = %v", err)
	}
	if got := myerrors.ServerMessage(err, "fallback"); got != "backend down" {
		t.Errorf("ServerMessage = %q", got)
	}
}

func TestLogin(t *testing.T) {
	api := testutil.NewFakeAPI()
	api.On(http.MethodPost, PathLogin, map[string]any{
		"data": map[string]any{
			"token":          "tok",
			"expirationTime": "2030-01-01T00:00:00Z",
			"user":           map[string]any{"id": "u1", "firstName": "Ali"},
		},
		"isSuccess": true,
	})

	env, err := NewAuthService(api).Login(context.Background(), dto.LoginRequest{Email: "a@b.c", Password: "secret"})
	if err != nil {
		t.Fatal(err)
	}
	if env.Data.Token != "tok" || env.Data.User.FirstName != "Ali" {
		t.Errorf("unexpected login data: %+v", env.Data)
	}
}
