package driver

import "context"

// IModule is one entity screen as seen by the HTTP layer.
type IModule interface {
	Name() string
	Mount(ctx context.Context) error
	Reload(ctx context.Context) error

	OpenAdd(ctx context.Context) error
	OpenEdit(ctx context.Context, id string) error
	SetFields(ctx context.Context, values map[string]string) error
	MapEvent(ctx context.Context, event string, lat, lng float64) error
	Submit(ctx context.Context) error
	CloseModal(ctx context.Context) error

	OpenDetail(ctx context.Context, id string) error
	CloseDetail() error

	RequestDelete(id string) error
	ConfirmDelete(ctx context.Context) error
	CancelDelete() error

	SetFilter(name, value string) error
	ClearFilters()

	// Snapshot returns the serializable screen state.
	Snapshot() any
	Dispose()
}
