package driver

import (
	"context"
	"encoding/json"

	"shuttle-admin/internal/dashboard/core/domain/dto"
	"shuttle-admin/internal/dashboard/core/domain/models"
)

// IResourceService is what a list screen needs from its entity service.
type IResourceService[T any] interface {
	GetAll(ctx context.Context) (dto.Envelope[[]T], error)
	GetByID(ctx context.Context, id string) (dto.Envelope[T], error)
	Create(ctx context.Context, payload any) (dto.Envelope[T], error)
	Update(ctx context.Context, payload any) (dto.Envelope[T], error)
	Delete(ctx context.Context, id string) (dto.Envelope[json.RawMessage], error)
}

type IProfileService interface {
	Get(ctx context.Context, id string) (dto.Envelope[models.User], error)
	Update(ctx context.Context, payload dto.UpdateUserPayload) (dto.Envelope[models.User], error)
}

type IAuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.Envelope[dto.LoginData], error)
}
