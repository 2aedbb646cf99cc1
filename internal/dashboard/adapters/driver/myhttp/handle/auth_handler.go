package handle

import (
	"context"
	"net/http"
	"time"

	"shuttle-admin/internal/dashboard/core/domain/dto"
	"shuttle-admin/internal/dashboard/core/feature"
	"shuttle-admin/internal/mylogger"
)

type AuthHandler struct {
	mylog    mylogger.Logger
	sessions *Sessions
}

func NewAuthHandler(mylog mylogger.Logger, sessions *Sessions) *AuthHandler {
	return &AuthHandler{
		mylog:    mylog,
		sessions: sessions,
	}
}

func (ah *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.LoginRequest{}
		if err := decodeJSON(r, &req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		state := SessionFrom(r.Context())
		res, err := feature.Login(ctx, state.Auth, state.Session, req.Email, req.Password)
		if err != nil {
			ah.mylog.Action("login_failed").Warn("login failed", "session", state.ID, "error", err.Error())
			viewResult(w, err, res)
			return
		}
		ah.mylog.Action("login_succeeded").Info("user signed in", "session", state.ID, "user_id", res.User.ID)
		jsonResponse(w, http.StatusOK, res)
	}
}

// Logout clears the stored login, disposes every open screen and drops the
// live session. The cookie stays valid and maps to a fresh session.
func (ah *AuthHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := SessionFrom(r.Context())
		if err := state.Logout(r.Context()); err != nil {
			ah.mylog.Action("logout_failed").Error("failed to clear session", err, "session", state.ID)
			JsonError(w, http.StatusInternalServerError, err)
			return
		}
		ah.sessions.Remove(state.ID)
		ah.mylog.Action("logout").Info("user signed out", "session", state.ID)
		jsonResponse(w, http.StatusOK, map[string]string{"redirect": "/login"})
	}
}
