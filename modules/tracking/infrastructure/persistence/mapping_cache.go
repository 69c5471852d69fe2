package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pixelport/pixelport/modules/tracking/domain/entities/catalogmapping"
	"github.com/pixelport/pixelport/pkg/composables"
)

// CachedCatalogMappingRepository is a read-through Redis cache in front of the
// SQL resolver. Mapping rows change only when a merchant edits a binding, so a
// short TTL keeps the hot path off the database without a purge protocol.
// Cache failures degrade to the inner repository, never to a lost event.
type CachedCatalogMappingRepository struct {
	inner  catalogmapping.Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewCachedCatalogMappingRepository(
	inner catalogmapping.Repository,
	client *redis.Client,
	prefix string,
	ttl time.Duration,
) catalogmapping.Repository {
	if prefix == "" {
		prefix = "pixelport:mapping"
	}
	return &CachedCatalogMappingRepository{
		inner:  inner,
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (r *CachedCatalogMappingRepository) key(storeID uuid.UUID, pixelID string) string {
	return fmt.Sprintf("%s:%s:%s", r.prefix, storeID, pixelID)
}

func (r *CachedCatalogMappingRepository) ResolveByPixel(ctx context.Context, storeID uuid.UUID, pixelID string) (*catalogmapping.CatalogMapping, error) {
	key := r.key(storeID, pixelID)
	if cached, err := r.client.Get(ctx, key).Bytes(); err == nil {
		var mapping catalogmapping.CatalogMapping
		if err := json.Unmarshal(cached, &mapping); err == nil {
			return &mapping, nil
		}
	} else if err != redis.Nil {
		composables.UseLogger(ctx).WithError(err).Debug("mapping cache read failed")
	}

	mapping, err := r.inner.ResolveByPixel(ctx, storeID, pixelID)
	if err != nil {
		return nil, err
	}
	// Only positive results are cached: an absent mapping usually means the
	// merchant is mid-setup and should see the binding take effect immediately.
	if mapping != nil {
		if payload, err := json.Marshal(mapping); err == nil {
			if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
				composables.UseLogger(ctx).WithError(err).Debug("mapping cache write failed")
			}
		}
	}
	return mapping, nil
}

func (r *CachedCatalogMappingRepository) DispatchCredential(ctx context.Context, storeID uuid.UUID) (string, error) {
	return r.inner.DispatchCredential(ctx, storeID)
}
