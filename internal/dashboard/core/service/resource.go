package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"shuttle-admin/internal/dashboard/core/domain/dto"
	"shuttle-admin/internal/dashboard/core/ports/driven"
)

// Resource is the CRUD surface shared by every backend collection.
// Update sends PUT to the base path with the id inside the body.
type Resource[T any] struct {
	api  driven.IAPIClient
	base string
}

func NewResource[T any](api driven.IAPIClient, base string) *Resource[T] {
	return &Resource[T]{api: api, base: base}
}

func (r *Resource[T]) Base() string {
	return r.base
}

func (r *Resource[T]) GetAll(ctx context.Context) (dto.Envelope[[]T], error) {
	return call[[]T](ctx, r.api, http.MethodGet, r.base, nil)
}

func (r *Resource[T]) GetByID(ctx context.Context, id string) (dto.Envelope[T], error) {
	return call[T](ctx, r.api, http.MethodGet, r.path(id), nil)
}

// GetByParent lists records under base/{parent}/{id}, e.g. /drivers/company/{id}.
func (r *Resource[T]) GetByParent(ctx context.Context, parent, id string) (dto.Envelope[[]T], error) {
	return call[[]T](ctx, r.api, http.MethodGet, r.path(parent, id), nil)
}

func (r *Resource[T]) Create(ctx context.Context, payload any) (dto.Envelope[T], error) {
	return call[T](ctx, r.api, http.MethodPost, r.base, payload)
}

func (r *Resource[T]) Update(ctx context.Context, payload any) (dto.Envelope[T], error) {
	return call[T](ctx, r.api, http.MethodPut, r.base, payload)
}

func (r *Resource[T]) Delete(ctx context.Context, id string) (dto.Envelope[json.RawMessage], error) {
	return call[json.RawMessage](ctx, r.api, http.MethodDelete, r.path(id), nil)
}

func (r *Resource[T]) path(segments ...string) string {
	p := r.base
	for _, s := range segments {
		p += "/" + url.PathEscape(s)
	}
	return p
}

func call[T any](ctx context.Context, api driven.IAPIClient, method, path string, body any) (dto.Envelope[T], error) {
	var env dto.Envelope[T]
	if err := api.Do(ctx, method, path, body, &env); err != nil {
		return env, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return env, nil
}
