package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jobkeeper/internal/client/fallback"
	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/validate"
)

type LeadService interface {
	List(ctx context.Context) ([]models.Lead, error)
	Create(ctx context.Context, l models.Lead) (models.Lead, error)
	Update(ctx context.Context, l models.Lead) (models.Lead, error)
	SetStatus(ctx context.Context, id string, status models.LeadStatus) (models.Lead, error)
	Delete(ctx context.Context, id string) error
}

type leadService struct {
	acc *fallback.Accessor[models.Lead]
	now Clock
}

func NewLeadService(acc *fallback.Accessor[models.Lead], now Clock) LeadService {
	return &leadService{acc: acc, now: now}
}

func (s *leadService) List(ctx context.Context) ([]models.Lead, error) {
	return s.acc.List(ctx, "")
}

func (s *leadService) Create(ctx context.Context, l models.Lead) (models.Lead, error) {
	if l.Status == "" {
		l.Status = models.LeadNew
	}
	if err := validate.Struct(l); err != nil {
		return models.Lead{}, err
	}
	stamp(&l.ID, &l.CreatedAt, &l.UpdatedAt, s.now())
	return s.acc.Create(ctx, l)
}

func (s *leadService) Update(ctx context.Context, l models.Lead) (models.Lead, error) {
	if err := validate.Struct(l); err != nil {
		return models.Lead{}, err
	}
	stamp(&l.ID, &l.CreatedAt, &l.UpdatedAt, s.now())
	return s.acc.Update(ctx, l)
}

func (s *leadService) SetStatus(ctx context.Context, id string, status models.LeadStatus) (models.Lead, error) {
	l, ok, err := s.acc.Get(ctx, id)
	if err != nil {
		return models.Lead{}, err
	}
	if !ok {
		return models.Lead{}, fmt.Errorf("lead %s: %w", id, common.ErrorNotFound)
	}
	l.Status = status
	return s.Update(ctx, l)
}

func (s *leadService) Delete(ctx context.Context, id string) error {
	return s.acc.Delete(ctx, id)
}
