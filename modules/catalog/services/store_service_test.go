package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pixelport/pixelport/modules/catalog/domain/entities/store"
)

type memStoreRepo struct {
	byID map[uuid.UUID]*store.Store
}

func newMemStoreRepo() *memStoreRepo {
	return &memStoreRepo{byID: map[uuid.UUID]*store.Store{}}
}

func (r *memStoreRepo) GetByID(ctx context.Context, id uuid.UUID) (*store.Store, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memStoreRepo) GetByDomain(ctx context.Context, domain string) (*store.Store, error) {
	for _, s := range r.byID {
		if s.Domain == domain {
			cp := *s
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r *memStoreRepo) List(ctx context.Context, limit, offset int) ([]*store.Store, error) {
	out := []*store.Store{}
	for _, s := range r.byID {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memStoreRepo) Create(ctx context.Context, s *store.Store) error {
	cp := *s
	r.byID[s.ID] = &cp
	return nil
}

func (r *memStoreRepo) Update(ctx context.Context, s *store.Store) error {
	if _, ok := r.byID[s.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *s
	r.byID[s.ID] = &cp
	return nil
}

func TestStoreService_Connect(t *testing.T) {
	ctx := context.Background()
	service := NewStoreService(newMemStoreRepo())

	connected, err := service.Connect(ctx, ConnectStoreDTO{
		Domain:      " Example.MyShopify.com ",
		AccessToken: "token-1",
	})
	require.NoError(t, err)
	require.Equal(t, "example.myshopify.com", connected.Domain)
	require.True(t, connected.Enabled)

	found, err := service.GetByDomain(ctx, "EXAMPLE.myshopify.com")
	require.NoError(t, err)
	require.Equal(t, connected.ID, found.ID)
}

func TestStoreService_UpdateCredential(t *testing.T) {
	ctx := context.Background()
	service := NewStoreService(newMemStoreRepo())

	connected, err := service.Connect(ctx, ConnectStoreDTO{Domain: "shop.example.com", AccessToken: "old"})
	require.NoError(t, err)

	updated, err := service.UpdateCredential(ctx, connected.ID, "new")
	require.NoError(t, err)
	require.Equal(t, "new", updated.AccessToken)
}

func TestStoreService_UpdateCredentialMissingStore(t *testing.T) {
	service := NewStoreService(newMemStoreRepo())
	_, err := service.UpdateCredential(context.Background(), uuid.New(), "token")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestStoreService_SetEnabled(t *testing.T) {
	ctx := context.Background()
	service := NewStoreService(newMemStoreRepo())

	connected, err := service.Connect(ctx, ConnectStoreDTO{Domain: "shop.example.com", AccessToken: "token"})
	require.NoError(t, err)

	disabled, err := service.SetEnabled(ctx, connected.ID, false)
	require.NoError(t, err)
	require.False(t, disabled.Enabled)
}
