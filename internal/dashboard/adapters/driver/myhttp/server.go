package myhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"shuttle-admin/internal/config"
	"shuttle-admin/internal/dashboard/adapters/driven/api"
	"shuttle-admin/internal/dashboard/adapters/driven/db"
	"shuttle-admin/internal/dashboard/adapters/driver/myhttp/handle"
	"shuttle-admin/internal/dashboard/adapters/driver/myhttp/middleware"
	"shuttle-admin/internal/dashboard/core/feature"
	"shuttle-admin/internal/dashboard/core/mapview"
	"shuttle-admin/internal/dashboard/core/ports/driven"
	"shuttle-admin/internal/dashboard/core/service"
	"shuttle-admin/internal/mylogger"
)

const (
	WaitTime      = 10
	SweepInterval = time.Minute
)

type Server struct {
	router    chi.Router
	cfg       *config.Config
	srv       *http.Server
	mylog     mylogger.Logger
	store     driven.ISettingsStore
	newClient handle.ClientFactory
	sessions  *handle.Sessions
	guard     *service.Guard
	scheduler feature.Scheduler
	ctx       context.Context
	mu        sync.Mutex
}

func NewServer(ctx context.Context, mylog mylogger.Logger, cfg *config.Config) *Server {
	return &Server{
		ctx:       ctx,
		cfg:       cfg,
		mylog:     mylog,
		router:    chi.NewRouter(),
		guard:     service.NewGuard(),
		scheduler: feature.RealScheduler(),
	}
}

// Run opens the settings store, configures routes and starts listening.
// It returns when the server stops.
func (s *Server) Run() error {
	mylog := s.mylog.Action("server_started")
	if err := s.initializeStore(); err != nil {
		mylog.Action("store_connection_failed").Error("Failed to open settings store", err)
		return err
	}
	mylog.Action("store_connected").Info("Settings store opened", "driver", s.cfg.Store.Driver)

	s.Configure()
	go s.sessions.RunSweeper(s.ctx, SweepInterval)

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%v", s.cfg.Srv.DashboardPort),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.mu.Unlock()

	mylog = mylog.WithGroup("details").With("port", s.cfg.Srv.DashboardPort, "api", s.cfg.API.BaseURL)

	mylog.Info("server is running")
	return s.startHTTPServer()
}

// Stop provides a programmatic shutdown. Accepts a context for timeout control.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Action("graceful_shutdown_started").Info("Shutting down HTTP server...")

	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, WaitTime*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Action("graceful_shutdown_failed").Error("Failed to shut down HTTP server gracefully", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	if s.sessions != nil {
		s.sessions.Close()
	}

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.mylog.Action("store_close_failed").Error("Failed to close settings store", err)
			return fmt.Errorf("store close: %w", err)
		}
		s.mylog.Action("store_closed").Info("Settings store closed")
	}

	s.mylog.Action("graceful_shutdown_completed").Info("HTTP server shut down gracefully")

	return nil
}

func (s *Server) startHTTPServer() error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	select {
	case <-s.ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) env() feature.Env {
	ui := s.cfg.UI
	return feature.Env{
		Log:       s.mylog,
		Scheduler: s.scheduler,
		Timing: feature.Timing{
			SuccessCloseDelay: ui.SuccessCloseDelay,
			SuccessMessageTTL: ui.SuccessMessageTTL,
			ProfileCloseDelay: ui.ProfileCloseDelay,
			DefaultCenter:     mapview.LatLng{Lat: ui.DefaultLat, Lng: ui.DefaultLng},
		},
	}
}

// Configure registers the public routes, the guarded /app area and the
// optional static front end.
func (s *Server) Configure() {
	if s.newClient == nil {
		client := api.New(s.cfg.API.BaseURL, s.cfg.API.Timeout, s.mylog)
		s.newClient = func(ts driven.ITokenSource) driven.IAPIClient {
			return client.WithTokens(ts)
		}
	}
	s.sessions = handle.NewSessions(s.store, s.newClient, s.env(), s.mylog, s.cfg.Srv.SessionIdle)

	shellHandler := handle.NewShellHandler(s.mylog, s.store)
	authHandler := handle.NewAuthHandler(s.mylog, s.sessions)
	moduleHandler := handle.NewModuleHandler(s.mylog)
	profileHandler := handle.NewProfileHandler(s.mylog)
	dashboardHandler := handle.NewDashboardHandler(s.mylog)

	guardMiddleware := middleware.NewGuardMiddleware(s.mylog, s.guard)

	r := s.router
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.Srv.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", shellHandler.Health())

	r.Group(func(r chi.Router) {
		r.Use(s.sessions.Attach)

		r.Post("/login", authHandler.Login())
		r.Post("/logout", authHandler.Logout())
		r.Get("/theme", shellHandler.Theme())
		r.Post("/theme/toggle", shellHandler.ToggleTheme())

		r.Route("/app", func(r chi.Router) {
			r.Use(guardMiddleware.Wrap)

			r.Get("/layout", shellHandler.Layout())
			r.Post("/layout/sidebar", shellHandler.ToggleSidebar())

			r.Get("/dashboard", dashboardHandler.GetDashboard())
			r.Post("/dashboard/routes/{id}/toggle", dashboardHandler.ToggleRoute())

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", profileHandler.View())
				r.Post("/edit", profileHandler.Edit())
				r.Post("/edit/cancel", profileHandler.CancelEdit())
				r.Patch("/form", profileHandler.SetFields())
				r.Post("/submit", profileHandler.Submit())
				r.Post("/map/open", profileHandler.OpenMap())
				r.Post("/map/confirm", profileHandler.ConfirmMap())
				r.Post("/map/close", profileHandler.CloseMap())
				r.Post("/map/{event}", profileHandler.MapEvent())
				r.Post("/password", profileHandler.ChangePassword())
			})

			r.Route("/{module}", func(r chi.Router) {
				r.Get("/", moduleHandler.View())
				r.Get("/state", moduleHandler.State())
				r.Post("/reload", moduleHandler.Reload())
				r.Post("/modal/add", moduleHandler.OpenAdd())
				r.Post("/modal/edit/{id}", moduleHandler.OpenEdit())
				r.Patch("/modal/form", moduleHandler.SetFields())
				r.Post("/modal/submit", moduleHandler.Submit())
				r.Post("/modal/close", moduleHandler.CloseModal())
				r.Post("/modal/map/{event}", moduleHandler.MapEvent())
				r.Post("/detail/close", moduleHandler.CloseDetail())
				r.Post("/detail/{id}", moduleHandler.OpenDetail())
				r.Post("/delete/confirm", moduleHandler.ConfirmDelete())
				r.Post("/delete/cancel", moduleHandler.CancelDelete())
				r.Post("/delete/{id}", moduleHandler.RequestDelete())
				r.Put("/filters", moduleHandler.SetFilters())
			})
		})
	})

	if dir := s.cfg.Srv.StaticDir; dir != "" {
		index := func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
		}
		r.Get(middleware.LoginPath, index)
		r.Handle("/*", http.FileServer(http.Dir(dir)))
	}
}

func (s *Server) initializeStore() error {
	store, err := db.Start(s.ctx, s.cfg, s.mylog)
	if err != nil {
		return fmt.Errorf("failed to open settings store: %w", err)
	}
	s.store = store
	return nil
}
