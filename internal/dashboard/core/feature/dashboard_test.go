package feature

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"shuttle-admin/internal/dashboard/core/domain/dto"
	"shuttle-admin/internal/dashboard/core/domain/models"
	"shuttle-admin/internal/dashboard/core/myerrors"
	"shuttle-admin/internal/dashboard/core/service"
	"shuttle-admin/internal/dashboard/testutil"
)

func dashboardAPI() *testutil.FakeAPI {
	api := testutil.NewFakeAPI()
	api.On(http.MethodGet, "/companies", testutil.OK([]models.Company{{ID: "c1"}, {ID: "c2"}}))
	api.On(http.MethodGet, "/drivers", testutil.OK([]models.Driver{{ID: "d1"}}))
	api.On(http.MethodGet, "/buses", testutil.OK([]models.Bus{{ID: "b1"}, {ID: "b2"}, {ID: "b3"}}))
	api.On(http.MethodGet, "/routes", testutil.OK([]models.Route{{ID: "r1", Name: "A"}, {ID: "r2", Name: "B"}, {ID: "r3", Name: "C"}}))
	api.On(http.MethodGet, "/routestops", testutil.OK([]models.RouteStop{
		{ID: "s1", RouteID: "r1", SequenceNumber: 2, Latitude: 41.0, Longitude: 29.0},
		{ID: "s2", RouteID: "r1", SequenceNumber: 1, Latitude: 40.9, Longitude: 28.9},
		{ID: "s3", RouteID: "r2", SequenceNumber: 1, Latitude: 41.1, Longitude: 29.1},
		{ID: "s4", RouteID: "r3", SequenceNumber: 1, Latitude: 41.2, Longitude: 29.2},
		{ID: "s5", RouteID: "r3", SequenceNumber: 2, Latitude: 41.3, Longitude: 29.3},
	}))
	api.On(http.MethodGet, "/tripappusers", testutil.OK([]models.Trip{
		{ID: "t1", ValidFrom: models.NewTimestamp(testNow.Add(-time.Hour)), ValidUntil: models.NewTimestamp(testNow.Add(time.Hour))},
		{ID: "t2", ValidFrom: models.NewTimestamp(testNow.Add(time.Hour)), ValidUntil: models.NewTimestamp(testNow.Add(2 * time.Hour))},
	}))
	return api
}

func TestDashboardCountsAndOverview(t *testing.T) {
	env, _ := testEnv()
	d := NewDashboard(NewServices(dashboardAPI()), env)

	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	v := d.View()
	got := map[string]int{}
	for _, s := range v.Stats {
		got[s.Key] = s.Value
	}
	want := map[string]int{
		ModuleCompanies: 2, ModuleDrivers: 1, ModuleBuses: 3,
		ModuleRoutes: 3, ModuleStops: 5, ModuleTrips: 1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stats (-want +got):\n%s", diff)
	}

	var lines []string
	for _, l := range v.Routes {
		lines = append(lines, l.RouteID+":"+l.Color)
	}
	// r2 has a single stop and is left out; colors follow the drawable order.
	if diff := cmp.Diff([]string{"r1:#3b82f6", "r3:#ef4444"}, lines); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
	if n := len(v.Map.Layers.Lines.Features); n != 2 {
		t.Errorf("polylines = %d, want 2", n)
	}

	if err := d.ToggleRoute("r3"); err != nil {
		t.Fatalf("ToggleRoute: %v", err)
	}
	v = d.View()
	if v.Focused != "r3" || len(v.Map.Layers.Lines.Features) != 1 {
		t.Errorf("focused = %q, lines = %d", v.Focused, len(v.Map.Layers.Lines.Features))
	}
	if w := v.Map.Layers.Lines.Features[0].Properties.Weight; w != 6 {
		t.Errorf("focused weight = %d", w)
	}
	_ = d.ToggleRoute("r3")
	if v := d.View(); v.Focused != "" || len(v.Map.Layers.Lines.Features) != 2 {
		t.Errorf("restore failed: focused = %q", v.Focused)
	}
	if err := d.ToggleRoute("r2"); !errors.Is(err, myerrors.ErrNotFound) {
		t.Errorf("toggle undrawable = %v", err)
	}

	d.Dispose()
	if err := d.ToggleRoute("r1"); !errors.Is(err, myerrors.ErrWidgetClosed) {
		t.Errorf("toggle after dispose = %v", err)
	}
}

func TestDashboardPartialFailure(t *testing.T) {
	api := dashboardAPI()
	api.OnError(http.MethodGet, "/drivers", http.StatusInternalServerError, "boom")
	env, _ := testEnv()
	d := NewDashboard(NewServices(api), env)

	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, s := range d.View().Stats {
		if s.Missing != (s.Key == ModuleDrivers) {
			t.Errorf("%s missing = %v", s.Key, s.Missing)
		}
	}

	api.On(http.MethodGet, "/routestops", testutil.Rejected("x"))
	if err := d.Load(context.Background()); !errors.Is(err, myerrors.ErrRejected) {
		t.Fatalf("Load = %v, want ErrRejected", err)
	}
	v := d.View()
	if v.Load != LoadError || v.ErrorMessage != MsgDashboardLoad || v.Map != nil {
		t.Errorf("view = %+v", v)
	}
}

type fakeAuth struct {
	env dto.Envelope[dto.LoginData]
	err error
	got dto.LoginRequest
}

func (f *fakeAuth) Login(_ context.Context, req dto.LoginRequest) (dto.Envelope[dto.LoginData], error) {
	f.got = req
	return f.env, f.err
}

func TestLogin(t *testing.T) {
	user := models.AuthUser{ID: "u1", FirstName: "Zeynep"}
	tests := []struct {
		name     string
		email    string
		password string
		auth     *fakeAuth
		wantErr  error
		wantMsg  string
		stored   bool
	}{
		{
			name: "invalid form", email: "nope", password: "123",
			auth: &fakeAuth{}, wantErr: myerrors.ErrValidation,
		},
		{
			name: "success", email: "admin@example.com", password: "secret1",
			auth:   &fakeAuth{env: dto.Envelope[dto.LoginData]{IsSuccess: true, Data: dto.LoginData{Token: "tok", User: user}}},
			stored: true,
		},
		{
			name: "rejected with message", email: "admin@example.com", password: "secret1",
			auth:    &fakeAuth{env: dto.Envelope[dto.LoginData]{Messages: []dto.ValidationMessage{{PropertyName: "Email", Message: "Kullanıcı bulunamadı"}}}},
			wantErr: myerrors.ErrRejected, wantMsg: "Kullanıcı bulunamadı",
		},
		{
			name: "rejected with property only", email: "admin@example.com", password: "secret1",
			auth:    &fakeAuth{env: dto.Envelope[dto.LoginData]{Messages: []dto.ValidationMessage{{PropertyName: "Password"}}}},
			wantErr: myerrors.ErrRejected, wantMsg: "Password",
		},
		{
			name: "rejected bare", email: "admin@example.com", password: "secret1",
			auth:    &fakeAuth{},
			wantErr: myerrors.ErrRejected, wantMsg: MsgLoginRejected,
		},
		{
			name: "http error", email: "admin@example.com", password: "secret1",
			auth:    &fakeAuth{err: &myerrors.APIError{Status: http.StatusUnauthorized}},
			wantErr: myerrors.ErrUnauthorized, wantMsg: MsgLoginFailed,
		},
		{
			name: "http error with messages", email: "admin@example.com", password: "secret1",
			auth: &fakeAuth{err: &myerrors.APIError{Status: http.StatusBadRequest,
				Messages: []dto.ValidationMessage{{Message: "Şifre hatalı"}}}},
			wantErr: myerrors.ErrUnauthorized, wantMsg: "Şifre hatalı",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			session := service.NewSession(testutil.NewMemoryStore(), "s")
			res, err := Login(ctx, tt.auth, session, tt.email, tt.password)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Login: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if res.ErrorMessage != tt.wantMsg {
				t.Errorf("message = %q, want %q", res.ErrorMessage, tt.wantMsg)
			}
			tok, _ := session.Token(ctx)
			if (tok != "") != tt.stored {
				t.Errorf("token stored = %q", tok)
			}
			if tt.stored && tt.auth.got.Email != "admin@example.com" {
				t.Errorf("email sent = %q", tt.auth.got.Email)
			}
		})
	}
}

func TestWorkspaceEnterDisposesOthers(t *testing.T) {
	api := testutil.NewFakeAPI()
	env, _ := testEnv()
	ws := NewWorkspace(api, service.NewSession(testutil.NewMemoryStore(), "s"), env)
	ctx := context.Background()

	stops, ok := ws.Enter(ModuleStops)
	if !ok {
		t.Fatal("stops not found")
	}
	_ = stops.OpenAdd(ctx)
	if _, ok := ws.Enter("nope"); ok {
		t.Error("unknown module entered")
	}
	again, _ := ws.Module(ModuleStops)
	if again != stops {
		t.Error("module not reused")
	}

	if _, ok := ws.Enter(ModuleCompanies); !ok {
		t.Fatal("companies not found")
	}
	if err := stops.Reload(ctx); !errors.Is(err, myerrors.ErrDisposed) {
		t.Errorf("left module still alive: %v", err)
	}
	if w := stops.(*Module[models.RouteStop]).WidgetCount(); w != 0 {
		t.Errorf("picker survived navigation")
	}

	ws.Dispose()
	if _, ok := ws.Module(ModuleCompanies); ok {
		t.Error("module available after dispose")
	}
}
