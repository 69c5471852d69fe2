package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pixelport/pixelport/modules/catalog/domain/entities/catalog"
	"github.com/pixelport/pixelport/modules/tracking/domain/entities/conversion"
)

// ValidationResult is advisory-free: any invalid verdict routes the event to
// the fallback path unconditionally.
type ValidationResult struct {
	Valid  bool
	Reason string
}

type OwnershipValidator struct {
	catalogs catalog.Repository
}

func NewOwnershipValidator(catalogs catalog.Repository) *OwnershipValidator {
	return &OwnershipValidator{catalogs: catalogs}
}

// Validate enforces the store/catalog ownership invariant. A catalog may only
// enrich events originating from the store it belongs to; coincidentally
// matching ids across stores must never pass.
func (v *OwnershipValidator) Validate(ctx context.Context, storeID, catalogID uuid.UUID, contentIDs []string) ValidationResult {
	if catalogID == uuid.Nil {
		return ValidationResult{Reason: "no catalog id"}
	}

	record, err := v.catalogs.GetByID(ctx, catalogID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return ValidationResult{Reason: "catalog does not exist"}
		}
		return ValidationResult{Reason: fmt.Sprintf("catalog lookup failed: %v", err)}
	}
	if !record.Enabled {
		return ValidationResult{Reason: "catalog is disabled"}
	}
	if record.StoreID != storeID {
		return ValidationResult{Reason: "catalog belongs to a different store"}
	}

	if len(contentIDs) == 0 {
		return ValidationResult{Reason: "no content ids"}
	}
	for _, id := range contentIDs {
		if !conversion.ValidContentID(id) {
			return ValidationResult{Reason: fmt.Sprintf("malformed content id %q", id)}
		}
	}

	return ValidationResult{Valid: true}
}
