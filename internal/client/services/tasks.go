package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/client/fallback"
	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/validate"
)

type TaskService interface {
	List(ctx context.Context, clientID string) ([]models.Task, error)
	Create(ctx context.Context, t models.Task) (models.Task, error)
	Update(ctx context.Context, t models.Task) (models.Task, error)
	SetStatus(ctx context.Context, id string, status models.TaskStatus) (models.Task, error)
	Delete(ctx context.Context, id string) error
	// Overdue lists tasks past their due day that are not done. An empty
	// clientID covers every client.
	Overdue(ctx context.Context, clientID string, now time.Time) ([]models.Task, error)
}

type taskService struct {
	acc *fallback.Accessor[models.Task]
	now Clock
}

func NewTaskService(acc *fallback.Accessor[models.Task], now Clock) TaskService {
	return &taskService{acc: acc, now: now}
}

func (s *taskService) List(ctx context.Context, clientID string) ([]models.Task, error) {
	return s.acc.List(ctx, clientID)
}

func (s *taskService) Create(ctx context.Context, t models.Task) (models.Task, error) {
	if t.Status == "" {
		t.Status = models.TaskTodo
	}
	if err := validate.Struct(t); err != nil {
		return models.Task{}, err
	}
	stamp(&t.ID, &t.CreatedAt, &t.UpdatedAt, s.now())
	return s.acc.Create(ctx, t)
}

func (s *taskService) Update(ctx context.Context, t models.Task) (models.Task, error) {
	if err := validate.Struct(t); err != nil {
		return models.Task{}, err
	}
	stamp(&t.ID, &t.CreatedAt, &t.UpdatedAt, s.now())
	return s.acc.Update(ctx, t)
}

func (s *taskService) SetStatus(ctx context.Context, id string, status models.TaskStatus) (models.Task, error) {
	t, ok, err := s.acc.Get(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	if !ok {
		return models.Task{}, fmt.Errorf("task %s: %w", id, common.ErrorNotFound)
	}
	t.Status = status
	return s.Update(ctx, t)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.acc.Delete(ctx, id)
}

func (s *taskService) Overdue(ctx context.Context, clientID string, now time.Time) ([]models.Task, error) {
	all, err := s.acc.List(ctx, clientID)
	if err != nil {
		return nil, err
	}
	res := make([]models.Task, 0)
	for _, t := range all {
		if t.IsOverdue(now) {
			res = append(res, t)
		}
	}
	return res, nil
}
