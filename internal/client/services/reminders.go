package services

import (
	"context"

	"github.com/dmitrijs2005/jobkeeper/internal/client/fallback"
	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
	"github.com/dmitrijs2005/jobkeeper/internal/client/notify"
	"github.com/dmitrijs2005/jobkeeper/internal/logging"
	"github.com/dmitrijs2005/jobkeeper/internal/validate"
)

type ReminderService interface {
	List(ctx context.Context, clientID string) ([]models.Reminder, error)
	// Create stores the reminder and schedules a local notification for it.
	// Scheduling failures do not fail the call.
	Create(ctx context.Context, r models.Reminder) (models.Reminder, error)
	Delete(ctx context.Context, id string) error
}

type reminderService struct {
	acc       *fallback.Accessor[models.Reminder]
	scheduler notify.Scheduler
	log       logging.Logger
	now       Clock
}

// NewReminderService builds a ReminderService. scheduler may be nil, in
// which case no notifications are scheduled.
func NewReminderService(acc *fallback.Accessor[models.Reminder], scheduler notify.Scheduler, log logging.Logger, now Clock) ReminderService {
	return &reminderService{acc: acc, scheduler: scheduler, log: log, now: now}
}

func (s *reminderService) List(ctx context.Context, clientID string) ([]models.Reminder, error) {
	return s.acc.List(ctx, clientID)
}

func (s *reminderService) Create(ctx context.Context, r models.Reminder) (models.Reminder, error) {
	if err := validate.Struct(r); err != nil {
		return models.Reminder{}, err
	}
	stamp(&r.ID, &r.CreatedAt, &r.UpdatedAt, s.now())

	if s.scheduler != nil {
		id, err := s.scheduler.Schedule(ctx, notify.Notification{
			Title:   r.Title,
			Body:    r.Body,
			Data:    map[string]string{"reminder_id": r.ID, "client_id": r.ClientID},
			Trigger: notify.Trigger{At: r.RemindAt},
		})
		if err != nil {
			s.log.Debug(ctx, "notification not scheduled", "reminder_id", r.ID, "err", err)
		} else {
			r.NotificationID = id
		}
	}

	return s.acc.Create(ctx, r)
}

func (s *reminderService) Delete(ctx context.Context, id string) error {
	if s.scheduler != nil {
		r, ok, err := s.acc.Get(ctx, id)
		if err == nil && ok && r.NotificationID != "" {
			s.scheduler.Cancel(r.NotificationID)
		}
	}
	return s.acc.Delete(ctx, id)
}
