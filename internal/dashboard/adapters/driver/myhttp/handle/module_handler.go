package handle

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"shuttle-admin/internal/dashboard/core/ports/driver"
	"shuttle-admin/internal/mylogger"
)

var ErrUnknownModule = errors.New("unknown module")

type ModuleHandler struct {
	mylog mylogger.Logger
}

func NewModuleHandler(mylog mylogger.Logger) *ModuleHandler {
	return &ModuleHandler{
		mylog: mylog,
	}
}

type mapEventRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// op runs fn against the module named in the URL and answers with its state.
func (mh *ModuleHandler) op(fn func(ctx context.Context, m driver.IModule, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "module")
		m, ok := SessionFrom(r.Context()).Workspace().Module(name)
		if !ok {
			JsonError(w, http.StatusNotFound, fmt.Errorf("%w: %s", ErrUnknownModule, name))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		err := fn(ctx, m, r)
		if err != nil && statusFor(err) >= http.StatusInternalServerError {
			mh.mylog.Action("module_request_failed").Error("module operation failed", err, "module", name, "path", r.URL.Path)
		}
		viewResult(w, err, m.Snapshot())
	}
}

// View navigates to the module: other screens are disposed and this one mounts.
func (mh *ModuleHandler) View() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "module")
		m, ok := SessionFrom(r.Context()).Workspace().Enter(name)
		if !ok {
			JsonError(w, http.StatusNotFound, fmt.Errorf("%w: %s", ErrUnknownModule, name))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		err := m.Mount(ctx)
		viewResult(w, err, m.Snapshot())
	}
}

// State returns the current screen state without loading anything.
func (mh *ModuleHandler) State() http.HandlerFunc {
	return mh.op(func(context.Context, driver.IModule, *http.Request) error {
		return nil
	})
}

func (mh *ModuleHandler) Reload() http.HandlerFunc {
	return mh.op(func(ctx context.Context, m driver.IModule, _ *http.Request) error {
		return m.Reload(ctx)
	})
}

func (mh *ModuleHandler) OpenAdd() http.HandlerFunc {
	return mh.op(func(ctx context.Context, m driver.IModule, _ *http.Request) error {
		return m.OpenAdd(ctx)
	})
}

func (mh *ModuleHandler) OpenEdit() http.HandlerFunc {
	return mh.op(func(ctx context.Context, m driver.IModule, r *http.Request) error {
		return m.OpenEdit(ctx, chi.URLParam(r, "id"))
	})
}

func (mh *ModuleHandler) SetFields() http.HandlerFunc {
	return mh.op(func(ctx context.Context, m driver.IModule, r *http.Request) error {
		values := map[string]string{}
		if err := decodeJSON(r, &values); err != nil {
			return errors.Join(errBadBody, err)
		}
		return m.SetFields(ctx, values)
	})
}

func (mh *ModuleHandler) MapEvent() http.HandlerFunc {
	return mh.op(func(ctx context.Context, m driver.IModule, r *http.Request) error {
		req := mapEventRequest{}
		if err := decodeJSON(r, &req); err != nil {
			return errors.Join(errBadBody, err)
		}
		return m.MapEvent(ctx, chi.URLParam(r, "event"), req.Lat, req.Lng)
	})
}

func (mh *ModuleHandler) Submit() http.HandlerFunc {
	return mh.op(func(ctx context.Context, m driver.IModule, _ *http.Request) error {
		return m.Submit(ctx)
	})
}

func (mh *ModuleHandler) CloseModal() http.HandlerFunc {
	return mh.op(func(ctx context.Context, m driver.IModule, _ *http.Request) error {
		return m.CloseModal(ctx)
	})
}

func (mh *ModuleHandler) OpenDetail() http.HandlerFunc {
	return mh.op(func(ctx context.Context, m driver.IModule, r *http.Request) error {
		return m.OpenDetail(ctx, chi.URLParam(r, "id"))
	})
}

func (mh *ModuleHandler) CloseDetail() http.HandlerFunc {
	return mh.op(func(_ context.Context, m driver.IModule, _ *http.Request) error {
		return m.CloseDetail()
	})
}

func (mh *ModuleHandler) RequestDelete() http.HandlerFunc {
	return mh.op(func(_ context.Context, m driver.IModule, r *http.Request) error {
		return m.RequestDelete(chi.URLParam(r, "id"))
	})
}

func (mh *ModuleHandler) ConfirmDelete() http.HandlerFunc {
	return mh.op(func(ctx context.Context, m driver.IModule, _ *http.Request) error {
		return m.ConfirmDelete(ctx)
	})
}

func (mh *ModuleHandler) CancelDelete() http.HandlerFunc {
	return mh.op(func(_ context.Context, m driver.IModule, _ *http.Request) error {
		return m.CancelDelete()
	})
}

// SetFilters replaces the active filters. An empty body clears them all.
func (mh *ModuleHandler) SetFilters() http.HandlerFunc {
	return mh.op(func(_ context.Context, m driver.IModule, r *http.Request) error {
		values := map[string]string{}
		if err := decodeJSON(r, &values); err != nil {
			return errors.Join(errBadBody, err)
		}
		m.ClearFilters()
		var errs []error
		for name, v := range values {
			if err := m.SetFilter(name, v); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}
