package handle

import (
	"context"
	"net/http"
	"strings"
	"time"

	"shuttle-admin/internal/dashboard/core/feature"
	"shuttle-admin/internal/dashboard/core/ports/driven"
	"shuttle-admin/internal/dashboard/core/service"
	"shuttle-admin/internal/mylogger"
)

const PrefersColorScheme = "Sec-CH-Prefers-Color-Scheme"

// ShellHandler serves what surrounds every screen: layout, theme and health.
type ShellHandler struct {
	store driven.ISettingsStore
	mylog mylogger.Logger
}

func NewShellHandler(mylog mylogger.Logger, store driven.ISettingsStore) *ShellHandler {
	return &ShellHandler{
		store: store,
		mylog: mylog,
	}
}

func prefersDark(r *http.Request) bool {
	return strings.EqualFold(strings.Trim(r.Header.Get(PrefersColorScheme), `" `), "dark")
}

type themeResponse struct {
	Theme service.Theme `json:"theme"`
}

func (sh *ShellHandler) Theme() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Accept-CH", PrefersColorScheme)
		theme, err := SessionFrom(r.Context()).Theme.Current(r.Context(), prefersDark(r))
		if err != nil {
			sh.mylog.Action("theme_read_failed").Error("failed to read theme", err)
		}
		jsonResponse(w, http.StatusOK, themeResponse{Theme: theme})
	}
}

func (sh *ShellHandler) ToggleTheme() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		theme, err := SessionFrom(r.Context()).Theme.Toggle(r.Context(), prefersDark(r))
		if err != nil {
			sh.mylog.Action("theme_save_failed").Error("failed to save theme", err)
			JsonError(w, http.StatusInternalServerError, err)
			return
		}
		jsonResponse(w, http.StatusOK, themeResponse{Theme: theme})
	}
}

func (sh *ShellHandler) layout(r *http.Request) feature.LayoutView {
	state := SessionFrom(r.Context())
	v := feature.LayoutView{
		Menu:      feature.Menu,
		Collapsed: state.Workspace().Layout.Collapsed(),
		Theme:     string(service.ThemeLight),
	}
	if u, ok, err := state.Session.User(r.Context()); err == nil && ok {
		v.UserName = strings.TrimSpace(u.FirstName + " " + u.LastName)
		v.UserEmail = u.Email
	}
	if theme, err := state.Theme.Current(r.Context(), prefersDark(r)); err == nil {
		v.Theme = string(theme)
	}
	return v
}

func (sh *ShellHandler) Layout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, sh.layout(r))
	}
}

func (sh *ShellHandler) ToggleSidebar() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		SessionFrom(r.Context()).Workspace().Layout.ToggleSidebar()
		jsonResponse(w, http.StatusOK, sh.layout(r))
	}
}

// Health reports whether the settings store answers.
func (sh *ShellHandler) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := sh.store.IsAlive(ctx); err != nil {
			jsonResponse(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status":    "error",
				"store":     "disconnected",
				"timestamp": time.Now().UTC(),
				"error":     err.Error(),
			})
			return
		}
		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"status":    "ok",
			"store":     "connected",
			"timestamp": time.Now().UTC(),
		})
	}
}
