package handle

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"shuttle-admin/internal/dashboard/core/feature"
	"shuttle-admin/internal/mylogger"
)

type ProfileHandler struct {
	mylog mylogger.Logger
}

func NewProfileHandler(mylog mylogger.Logger) *ProfileHandler {
	return &ProfileHandler{
		mylog: mylog,
	}
}

func (ph *ProfileHandler) op(fn func(ctx context.Context, p *feature.Profile, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := SessionFrom(r.Context()).Workspace().Profile()

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		err := fn(ctx, p, r)
		if err != nil && statusFor(err) >= http.StatusInternalServerError {
			ph.mylog.Action("profile_request_failed").Error("profile operation failed", err, "path", r.URL.Path)
		}
		viewResult(w, err, p.View())
	}
}

// View opens the profile page and loads the signed-in user.
func (ph *ProfileHandler) View() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := SessionFrom(r.Context()).Workspace()
		ws.LeaveAll()
		ph.op(func(ctx context.Context, p *feature.Profile, _ *http.Request) error {
			return p.Load(ctx)
		})(w, r)
	}
}

func (ph *ProfileHandler) Edit() http.HandlerFunc {
	return ph.op(func(_ context.Context, p *feature.Profile, _ *http.Request) error {
		return p.Edit()
	})
}

func (ph *ProfileHandler) CancelEdit() http.HandlerFunc {
	return ph.op(func(_ context.Context, p *feature.Profile, _ *http.Request) error {
		return p.CancelEdit()
	})
}

func (ph *ProfileHandler) SetFields() http.HandlerFunc {
	return ph.op(func(_ context.Context, p *feature.Profile, r *http.Request) error {
		values := map[string]string{}
		if err := decodeJSON(r, &values); err != nil {
			return errors.Join(errBadBody, err)
		}
		return p.SetFields(values)
	})
}

func (ph *ProfileHandler) Submit() http.HandlerFunc {
	return ph.op(func(ctx context.Context, p *feature.Profile, _ *http.Request) error {
		return p.Submit(ctx)
	})
}

func (ph *ProfileHandler) OpenMap() http.HandlerFunc {
	return ph.op(func(_ context.Context, p *feature.Profile, _ *http.Request) error {
		return p.OpenMap()
	})
}

func (ph *ProfileHandler) MapEvent() http.HandlerFunc {
	return ph.op(func(_ context.Context, p *feature.Profile, r *http.Request) error {
		req := mapEventRequest{}
		if err := decodeJSON(r, &req); err != nil {
			return errors.Join(errBadBody, err)
		}
		return p.MapEvent(chi.URLParam(r, "event"), req.Lat, req.Lng)
	})
}

func (ph *ProfileHandler) ConfirmMap() http.HandlerFunc {
	return ph.op(func(_ context.Context, p *feature.Profile, _ *http.Request) error {
		return p.ConfirmMap()
	})
}

func (ph *ProfileHandler) CloseMap() http.HandlerFunc {
	return ph.op(func(_ context.Context, p *feature.Profile, _ *http.Request) error {
		return p.CloseMap()
	})
}

func (ph *ProfileHandler) ChangePassword() http.HandlerFunc {
	return ph.op(func(_ context.Context, p *feature.Profile, r *http.Request) error {
		values := map[string]string{}
		if err := decodeJSON(r, &values); err != nil {
			return errors.Join(errBadBody, err)
		}
		return p.ChangePassword(values)
	})
}
