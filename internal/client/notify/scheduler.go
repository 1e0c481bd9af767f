// Package notify schedules local one-shot notifications for reminders.
package notify

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/logging"
	"github.com/robfig/cron/v3"
)

var (
	ErrPastTrigger = errors.New("trigger time is in the past")
	ErrNoTrigger   = errors.New("trigger needs a time or a delay")
)

// Trigger fires either at an absolute time or after a delay from scheduling.
type Trigger struct {
	At    time.Time
	After time.Duration
}

type Notification struct {
	Title string
	Body  string
	// Data is echoed back on delivery, e.g. the reminder id.
	Data map[string]string
	Trigger
}

// Scheduler is the contract used by the reminder service.
type Scheduler interface {
	Schedule(ctx context.Context, n Notification) (string, error)
	Cancel(id string)
}

// Deliver receives a notification when it fires.
type Deliver func(n Notification)

// once is a cron.Schedule that fires a single time.
type once struct {
	at time.Time
}

func (o once) Next(t time.Time) time.Time {
	if t.Before(o.at) {
		return o.at
	}
	return time.Time{}
}

// CronScheduler runs notifications on a robfig/cron runner.
type CronScheduler struct {
	cron    *cron.Cron
	deliver Deliver
	log     logging.Logger
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

func NewCronScheduler(deliver Deliver, log logging.Logger) *CronScheduler {
	if log == nil {
		log = logging.Nop{}
	}
	return &CronScheduler{
		cron:    cron.New(),
		deliver: deliver,
		log:     log,
		now:     time.Now,
		entries: make(map[string]cron.EntryID),
	}
}

func (s *CronScheduler) Start() { s.cron.Start() }

// Stop halts the runner and waits for running deliveries.
func (s *CronScheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Schedule registers n and returns its id.
func (s *CronScheduler) Schedule(ctx context.Context, n Notification) (string, error) {
	at, err := s.resolve(n.Trigger)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var id string
	entryID := s.cron.Schedule(once{at: at}, cron.FuncJob(func() {
		s.mu.Lock()
		key := id
		s.mu.Unlock()
		s.fire(key, n)
	}))
	id = strconv.Itoa(int(entryID))
	s.entries[id] = entryID

	s.log.Debug(ctx, "notification scheduled", "id", id, "at", at, "title", n.Title)
	return id, nil
}

func (s *CronScheduler) resolve(t Trigger) (time.Time, error) {
	now := s.now()
	switch {
	case !t.At.IsZero():
		if !t.At.After(now) {
			return time.Time{}, ErrPastTrigger
		}
		return t.At, nil
	case t.After > 0:
		return now.Add(t.After), nil
	default:
		return time.Time{}, ErrNoTrigger
	}
}

func (s *CronScheduler) fire(id string, n Notification) {
	s.mu.Lock()
	entryID, ok := s.entries[id]
	delete(s.entries, id)
	s.mu.Unlock()
	if !ok {
		return
	}
	s.cron.Remove(entryID)

	if s.deliver != nil {
		s.deliver(n)
	}
}

// Cancel drops a pending notification. Unknown ids are ignored.
func (s *CronScheduler) Cancel(id string) {
	s.mu.Lock()
	entryID, ok := s.entries[id]
	delete(s.entries, id)
	s.mu.Unlock()
	if ok {
		s.cron.Remove(entryID)
	}
}

// Pending returns the number of notifications not yet delivered.
func (s *CronScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
