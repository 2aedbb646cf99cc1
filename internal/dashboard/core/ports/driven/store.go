package driven

import "context"

// ISettingsStore keeps small string values per scope (one scope per browser session).
type ISettingsStore interface {
	Get(ctx context.Context, scope, key string) (string, bool, error)
	Set(ctx context.Context, scope, key, value string) error
	Delete(ctx context.Context, scope, key string) error
	IsAlive(ctx context.Context) error
	Close() error
}
