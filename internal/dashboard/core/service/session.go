package service

import (
	"context"
	"encoding/json"
	"fmt"

	"shuttle-admin/internal/dashboard/core/domain/models"
	"shuttle-admin/internal/dashboard/core/ports/driven"
)

const (
	KeyToken = "token"
	KeyUser  = "user"
	KeyTheme = "theme"
)

// Session is the persisted state of one browser session: auth token,
// signed-in user and theme preference.
type Session struct {
	store driven.ISettingsStore
	id    string
}

func NewSession(store driven.ISettingsStore, id string) *Session {
	return &Session{store: store, id: id}
}

func (s *Session) ID() string {
	return s.id
}

// Token returns the stored token or "" when signed out.
func (s *Session) Token(ctx context.Context) (string, error) {
	tok, _, err := s.store.Get(ctx, s.id, KeyToken)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return tok, nil
}

func (s *Session) SaveLogin(ctx context.Context, token string, user models.AuthUser) error {
	if err := s.store.Set(ctx, s.id, KeyToken, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return s.SaveUser(ctx, user)
}

func (s *Session) User(ctx context.Context) (models.AuthUser, bool, error) {
	raw, ok, err := s.store.Get(ctx, s.id, KeyUser)
	if err != nil || !ok {
		return models.AuthUser{}, false, err
	}
	var u models.AuthUser
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return models.AuthUser{}, false, fmt.Errorf("decode stored user: %w", err)
	}
	return u, true, nil
}

func (s *Session) SaveUser(ctx context.Context, user models.AuthUser) error {
	b, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, s.id, KeyUser, string(b)); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// Clear removes token and user. The theme survives logout.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.id, KeyToken); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	if err := s.store.Delete(ctx, s.id, KeyUser); err != nil {
		return fmt.Errorf("clear user: %w", err)
	}
	return nil
}

func (s *Session) SavedTheme(ctx context.Context) (string, error) {
	v, _, err := s.store.Get(ctx, s.id, KeyTheme)
	return v, err
}

func (s *Session) SaveTheme(ctx context.Context, theme Theme) error {
	return s.store.Set(ctx, s.id, KeyTheme, string(theme))
}
