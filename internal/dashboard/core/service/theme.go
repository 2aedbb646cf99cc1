package service

import "context"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ResolveTheme applies the saved value, falling back to the OS preference
// only when nothing is saved.
func ResolveTheme(saved string, prefersDark bool) Theme {
	switch Theme(saved) {
	case ThemeDark:
		return ThemeDark
	case ThemeLight:
		return ThemeLight
	}
	if saved == "" && prefersDark {
		return ThemeDark
	}
	return ThemeLight
}

type ThemeService struct {
	session *Session
}

func NewThemeService(session *Session) *ThemeService {
	return &ThemeService{session: session}
}

func (s *ThemeService) Current(ctx context.Context, prefersDark bool) (Theme, error) {
	saved, err := s.session.SavedTheme(ctx)
	if err != nil {
		return ThemeLight, err
	}
	return ResolveTheme(saved, prefersDark), nil
}

// Toggle flips the effective theme and persists it.
func (s *ThemeService) Toggle(ctx context.Context, prefersDark bool) (Theme, error) {
	cur, err := s.Current(ctx, prefersDark)
	if err != nil {
		return cur, err
	}
	next := ThemeDark
	if cur == ThemeDark {
		next = ThemeLight
	}
	if err := s.session.SaveTheme(ctx, next); err != nil {
		return cur, err
	}
	return next, nil
}
