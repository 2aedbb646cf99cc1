package handle

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"shuttle-admin/internal/mylogger"
)

type DashboardHandler struct {
	mylog mylogger.Logger
}

func NewDashboardHandler(mylog mylogger.Logger) *DashboardHandler {
	return &DashboardHandler{
		mylog: mylog,
	}
}

func (dh *DashboardHandler) GetDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := SessionFrom(r.Context()).Workspace()
		ws.LeaveAll()
		d := ws.Dashboard()

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		err := d.Load(ctx)
		if err != nil {
			dh.mylog.Action("dashboard_load_failed").Warn("dashboard partially loaded", "error", err.Error())
		}
		viewResult(w, err, d.View())
	}
}

// ToggleRoute isolates one route on the overview map, or restores all of them.
func (dh *DashboardHandler) ToggleRoute() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d := SessionFrom(r.Context()).Workspace().Dashboard()
		err := d.ToggleRoute(chi.URLParam(r, "id"))
		viewResult(w, err, d.View())
	}
}
