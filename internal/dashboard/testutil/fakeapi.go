// Package testutil holds fakes shared by the dashboard tests.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"shuttle-admin/internal/dashboard/core/myerrors"
)

// Call is one request seen by FakeAPI.
type Call struct {
	Method string
	Path   string
	Body   json.RawMessage
}

// Responder produces the response body for a request. Returning an error
// simulates a transport or HTTP failure.
type Responder func(ctx context.Context, body json.RawMessage) (any, error)

// FakeAPI is an in-process backend keyed by "METHOD path".
type FakeAPI struct {
	mu     sync.Mutex
	routes map[string]Responder
	calls  []Call
}

func NewFakeAPI() *FakeAPI {
	return &FakeAPI{routes: make(map[string]Responder)}
}

// On answers method+path with a fixed body.
func (f *FakeAPI) On(method, path string, resp any) {
	f.OnFunc(method, path, func(context.Context, json.RawMessage) (any, error) {
		return resp, nil
	})
}

// OnError answers method+path with an HTTP error carrying message.
func (f *FakeAPI) OnError(method, path string, status int, message string) {
	f.OnFunc(method, path, func(context.Context, json.RawMessage) (any, error) {
		return nil, &myerrors.APIError{Status: status, Message: message}
	})
}

func (f *FakeAPI) OnFunc(method, path string, fn Responder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = fn
}

func (f *FakeAPI) Do(ctx context.Context, method, path string, body, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var raw json.RawMessage
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		raw = b
	}

	f.mu.Lock()
	f.calls = append(f.calls, Call{Method: method, Path: path, Body: raw})
	fn, ok := f.routes[method+" "+path]
	f.mu.Unlock()

	if !ok {
		return &myerrors.APIError{Status: http.StatusNotFound, Message: "not found"}
	}
	resp, err := fn(ctx, raw)
	if err != nil {
		return err
	}
	if out == nil || resp == nil {
		return nil
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return json.Unmarshal(b, out)
}

// Calls returns the recorded requests for method+path, all when both are empty.
func (f *FakeAPI) Calls(method, path string) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Call
	for _, c := range f.calls {
		if (method == "" && path == "") || (c.Method == method && c.Path == path) {
			out = append(out, c)
		}
	}
	return out
}

func (f *FakeAPI) Count(method, path string) int {
	return len(f.Calls(method, path))
}

func (f *FakeAPI) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// OK wraps data in a successful envelope.
func OK(data any) map[string]any {
	return map[string]any{"data": data, "isSuccess": true}
}

// Rejected is an envelope with isSuccess false.
func Rejected(message string) map[string]any {
	return map[string]any{"data": nil, "isSuccess": false, "message": message}
}
