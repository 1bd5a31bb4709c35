package usecase

import (
	"context"

	"membership/internal/domain/entity"
)

// WebAddressUsecase defines the business operations for tracked web addresses.
type WebAddressUsecase interface {
	// Create records a new web address. Duplicate URLs are a conflict.
	Create(ctx context.Context, url string) (*entity.WebAddress, error)

	// ResolveByID retrieves a web address by its numeric id.
	ResolveByID(ctx context.Context, id int) (*entity.WebAddress, error)

	// ResolveByURL retrieves a web address by its URL text.
	ResolveByURL(ctx context.Context, url string) (*entity.WebAddress, error)

	// MarkDead flags a web address as dead. The flag is one-way and the call is
	// idempotent.
	MarkDead(ctx context.Context, id int) (*entity.WebAddress, error)
}
