package catalogmapping

import (
	"context"

	"github.com/google/uuid"
)

// CatalogMapping is a read-only snapshot of the pixel→catalog binding and the
// credential needed to dispatch, resolved once per event.
type CatalogMapping struct {
	PixelID    string
	CatalogID  uuid.UUID
	Credential string
}

type Repository interface {
	// ResolveByPixel returns the mapping for a store's pixel, or nil when no
	// catalog is bound, the bound catalog is disabled, or the store has no
	// dispatch credential.
	ResolveByPixel(ctx context.Context, storeID uuid.UUID, pixelID string) (*CatalogMapping, error)

	// DispatchCredential returns the store's ads-API credential regardless of
	// catalog bindings, or empty when none is configured. Used for plain
	// conversion dispatch on the fallback path.
	DispatchCredential(ctx context.Context, storeID uuid.UUID) (string, error)
}
