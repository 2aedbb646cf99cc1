package feature

import (
	"context"
	"time"

	"shuttle-admin/internal/dashboard/core/domain/models"
	"shuttle-admin/internal/dashboard/core/mapview"
	"shuttle-admin/internal/dashboard/core/ports/driver"
	"shuttle-admin/internal/mylogger"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Lookups are the option lists a screen resolves foreign keys against.
type Lookups map[string][]Option

// Label resolves id by linear search, Unknown when absent.
func (l Lookups) Label(set, id string) string {
	for _, o := range l[set] {
		if o.Value == id {
			return o.Label
		}
	}
	return Unknown
}

func (l Lookups) clone() Lookups {
	out := make(Lookups, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// Lookup loads one option list when the screen mounts.
type Lookup struct {
	Name string
	Load func(ctx context.Context) ([]Option, error)
}

// Cascade reloads a dependent option list when Field changes and clears Target.
type Cascade struct {
	Field  string
	Target string
	Lookup string
	Load   func(ctx context.Context, value string) ([]Option, error)
}

type Filter[T any] struct {
	Name  string
	Match func(item T, value string) bool
}

// Picker binds the location picker to two coordinate fields.
type Picker struct {
	Lat string
	Lng string
}

// Spec configures a Module for one entity.
type Spec[T models.Entity] struct {
	Name     string
	Title    string
	Messages Messages
	Service  driver.IResourceService[T]

	Fields    []Field
	Lookups   []Lookup
	Cascades  []Cascade
	Filters   []Filter[T]
	Picker    *Picker
	Deletable bool

	// Sort orders the loaded list. Optional.
	Sort func(a, b T) int
	// Prefill maps a record to edit form values.
	Prefill func(item T) map[string]string
	// Payload builds the create (id == "") or update body from a valid form.
	Payload func(f *Form, id string) (any, error)
	// Display renders the list cells.
	Display func(item T, lk Lookups) map[string]string
	// Label names a record in the delete confirmation.
	Label func(item T) string
	// Detail opens the detail map of a record. Optional.
	Detail func(ctx context.Context, item T, lk Lookups) (*mapview.Widget, error)
}

type Timing struct {
	SuccessCloseDelay time.Duration
	SuccessMessageTTL time.Duration
	ProfileCloseDelay time.Duration
	DefaultCenter     mapview.LatLng
}

func DefaultTiming() Timing {
	return Timing{
		SuccessCloseDelay: time.Second,
		SuccessMessageTTL: 3 * time.Second,
		ProfileCloseDelay: 1500 * time.Millisecond,
		DefaultCenter:     mapview.LatLng{Lat: 41.0082, Lng: 28.9784},
	}
}

// Env is what every module gets from its workspace.
type Env struct {
	Log       mylogger.Logger
	Scheduler Scheduler
	Timing    Timing
	Now       func() time.Time
}

func (e Env) withDefaults() Env {
	if e.Log == nil {
		e.Log = mylogger.Discard()
	}
	if e.Scheduler == nil {
		e.Scheduler = RealScheduler()
	}
	if e.Timing == (Timing{}) {
		e.Timing = DefaultTiming()
	}
	return e
}

func (e Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}
