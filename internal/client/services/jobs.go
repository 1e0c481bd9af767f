package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jobkeeper/internal/client/fallback"
	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/validate"
)

type JobService interface {
	List(ctx context.Context, clientID string) ([]models.Job, error)
	Create(ctx context.Context, j models.Job) (models.Job, error)
	Update(ctx context.Context, j models.Job) (models.Job, error)
	SetStatus(ctx context.Context, id string, status models.JobStatus) (models.Job, error)
	Delete(ctx context.Context, id string) error
}

type jobService struct {
	acc *fallback.Accessor[models.Job]
	now Clock
}

func NewJobService(acc *fallback.Accessor[models.Job], now Clock) JobService {
	return &jobService{acc: acc, now: now}
}

func (s *jobService) List(ctx context.Context, clientID string) ([]models.Job, error) {
	return s.acc.List(ctx, clientID)
}

func (s *jobService) Create(ctx context.Context, j models.Job) (models.Job, error) {
	if j.Status == "" {
		j.Status = models.JobScheduled
	}
	if err := validate.Struct(j); err != nil {
		return models.Job{}, err
	}
	stamp(&j.ID, &j.CreatedAt, &j.UpdatedAt, s.now())
	return s.acc.Create(ctx, j)
}

func (s *jobService) Update(ctx context.Context, j models.Job) (models.Job, error) {
	if err := validate.Struct(j); err != nil {
		return models.Job{}, err
	}
	stamp(&j.ID, &j.CreatedAt, &j.UpdatedAt, s.now())
	return s.acc.Update(ctx, j)
}

func (s *jobService) SetStatus(ctx context.Context, id string, status models.JobStatus) (models.Job, error) {
	j, ok, err := s.acc.Get(ctx, id)
	if err != nil {
		return models.Job{}, err
	}
	if !ok {
		return models.Job{}, fmt.Errorf("job %s: %w", id, common.ErrorNotFound)
	}
	j.Status = status
	return s.Update(ctx, j)
}

func (s *jobService) Delete(ctx context.Context, id string) error {
	return s.acc.Delete(ctx, id)
}
