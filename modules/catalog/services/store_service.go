package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pixelport/pixelport/modules/catalog/domain/entities/store"
)

type StoreService struct {
	repo store.Repository
}

func NewStoreService(repo store.Repository) *StoreService {
	return &StoreService{repo: repo}
}

type ConnectStoreDTO struct {
	Domain      string
	AccessToken string
}

func (s *StoreService) GetByID(ctx context.Context, id uuid.UUID) (*store.Store, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *StoreService) GetByDomain(ctx context.Context, domain string) (*store.Store, error) {
	return s.repo.GetByDomain(ctx, strings.ToLower(strings.TrimSpace(domain)))
}

func (s *StoreService) List(ctx context.Context, limit, offset int) ([]*store.Store, error) {
	return s.repo.List(ctx, limit, offset)
}

// Connect registers a shop after onboarding. The access token is the ads
// platform credential handed back by the connect flow, stored as-is; token
// acquisition itself happens outside this service.
func (s *StoreService) Connect(ctx context.Context, dto ConnectStoreDTO) (*store.Store, error) {
	now := time.Now()
	st := &store.Store{
		ID:          uuid.New(),
		Domain:      strings.ToLower(strings.TrimSpace(dto.Domain)),
		AccessToken: dto.AccessToken,
		Enabled:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *StoreService) UpdateCredential(ctx context.Context, id uuid.UUID, accessToken string) (*store.Store, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	st.AccessToken = accessToken
	st.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *StoreService) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) (*store.Store, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	st.Enabled = enabled
	st.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}
