package feature

import (
	"context"
	"errors"

	"shuttle-admin/internal/dashboard/core/domain/dto"
	"shuttle-admin/internal/dashboard/core/domain/models"
	"shuttle-admin/internal/dashboard/core/myerrors"
	"shuttle-admin/internal/dashboard/core/ports/driver"
)

const (
	MsgLoginRejected = "Giriş başarısız"
	MsgLoginFailed   = "E-posta veya şifre hatalı"
)

type LoginStore interface {
	SaveLogin(ctx context.Context, token string, user models.AuthUser) error
}

type LoginResult struct {
	Form         FormView         `json:"form"`
	ErrorMessage string           `json:"error_message,omitempty"`
	User         *models.AuthUser `json:"user,omitempty"`
}

func loginFields() []Field {
	return []Field{
		{Name: "email", Rules: []Rule{Required(), Email()}},
		{Name: "password", Rules: []Rule{Required(), MinLen(6)}},
	}
}

// Login validates the credentials, calls the backend and stores the token and
// user on success. The returned result is what the login screen renders.
func Login(ctx context.Context, auth driver.IAuthService, store LoginStore, email, password string) (LoginResult, error) {
	form := NewForm(loginFields())
	_ = form.Set("email", email)
	_ = form.Set("password", password)
	if !form.Valid() {
		return LoginResult{Form: form.View()}, myerrors.ErrValidation
	}

	env, err := auth.Login(ctx, dto.LoginRequest{Email: form.Trimmed("email"), Password: form.Value("password")})
	if err != nil {
		msg := MsgLoginFailed
		var apiErr *myerrors.APIError
		if errors.As(err, &apiErr) {
			msg = orDefault(dto.FirstMessage(apiErr.Messages), MsgLoginFailed)
		}
		return LoginResult{Form: form.View(), ErrorMessage: msg}, errors.Join(myerrors.ErrUnauthorized, err)
	}
	if !env.IsSuccess || env.Data.Token == "" {
		msg := orDefault(dto.FirstMessage(env.Messages), MsgLoginRejected)
		return LoginResult{Form: form.View(), ErrorMessage: msg}, myerrors.ErrRejected
	}
	if err := store.SaveLogin(ctx, env.Data.Token, env.Data.User); err != nil {
		return LoginResult{Form: form.View(), ErrorMessage: MsgLoginRejected}, err
	}
	user := env.Data.User
	return LoginResult{Form: form.View(), User: &user}, nil
}
