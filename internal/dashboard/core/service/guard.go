package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	ErrNoToken    = errors.New("no token")
	ErrNoExpiry   = errors.New("token has no exp claim")
	ErrBadPayload = errors.New("token payload is malformed")
)

// Guard decides whether a stored token may enter the authenticated area.
// The signature is not verified here; the backend does that on every call.
type Guard struct {
	now func() time.Time
}

func NewGuard() *Guard {
	return &Guard{now: time.Now}
}

// NewGuardAt is NewGuard with a fixed clock.
func NewGuardAt(now func() time.Time) *Guard {
	return &Guard{now: now}
}

// Allow is true iff the token decodes and now < exp. Anything else fails closed.
func (g *Guard) Allow(token string) bool {
	exp, err := g.Expiry(token)
	if err != nil {
		return false
	}
	return g.now().UnixMilli() < exp.UnixMilli()
}

func (g *Guard) Expiry(token string) (time.Time, error) {
	if token == "" {
		return time.Time{}, ErrNoToken
	}
	claims := jwt.MapClaims{}
	if _, _, err := (&jwt.Parser{}).ParseUnverified(token, claims); err != nil && !unverifiable(err) {
		return time.Time{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	var secs float64
	switch exp := claims["exp"].(type) {
	case float64:
		secs = exp
	case json.Number:
		v, err := exp.Float64()
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
		}
		secs = v
	case nil:
		return time.Time{}, ErrNoExpiry
	default:
		return time.Time{}, fmt.Errorf("%w: exp is %T", ErrBadPayload, exp)
	}
	return time.UnixMilli(int64(secs * 1000)), nil
}

// unverifiable reports a missing or unknown alg header. The claims are
// already decoded by then and only the payload matters here.
func unverifiable(err error) bool {
	var ve *jwt.ValidationError
	return errors.As(err, &ve) && ve.Errors == jwt.ValidationErrorUnverifiable
}
