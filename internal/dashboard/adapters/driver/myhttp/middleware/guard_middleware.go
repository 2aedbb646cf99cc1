package middleware

import (
	"errors"
	"net/http"

	"shuttle-admin/internal/dashboard/adapters/driver/myhttp/handle"
	"shuttle-admin/internal/dashboard/core/service"
	"shuttle-admin/internal/mylogger"
)

const LoginPath = "/login"

// GuardMiddleware lets a request into the authenticated area only while the
// session token is present and not expired.
type GuardMiddleware struct {
	guard *service.Guard
	mylog mylogger.Logger
}

func NewGuardMiddleware(mylog mylogger.Logger, guard *service.Guard) *GuardMiddleware {
	return &GuardMiddleware{
		guard: guard,
		mylog: mylog,
	}
}

func (gm *GuardMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := handle.SessionFrom(r.Context())
		if state == nil {
			handle.JsonError(w, http.StatusInternalServerError, errors.New("no session attached"))
			return
		}

		token, err := state.Session.Token(r.Context())
		if err != nil {
			gm.mylog.Action("guard_read_failed").Error("failed to read token", err, "session", state.ID)
		}
		if err != nil || !gm.guard.Allow(token) {
			if token != "" {
				gm.mylog.Action("guard_rejected").Info("token expired or malformed", "session", state.ID)
			}
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}
