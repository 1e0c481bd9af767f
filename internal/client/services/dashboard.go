package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/client/earnings"
	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
)

// Summary holds the dashboard counters.
type Summary struct {
	Clients       int
	OpenTasks     int
	OverdueTasks  int
	Jobs          map[models.JobStatus]int
	UnpaidCount   int
	UnpaidAmount  float64
	Leads         map[models.LeadStatus]int
	MonthEarnings float64
}

type DashboardService interface {
	Summary(ctx context.Context, now time.Time) (Summary, error)
	Earnings(ctx context.Context, now time.Time) (earnings.Summary, error)
}

type dashboardService struct {
	acc *Accessors
}

func NewDashboardService(acc *Accessors) DashboardService {
	return &dashboardService{acc: acc}
}

func (s *dashboardService) Earnings(ctx context.Context, now time.Time) (earnings.Summary, error) {
	invoices, err := s.acc.Invoices.List(ctx, "")
	if err != nil {
		return earnings.Summary{}, err
	}
	return earnings.Summarize(invoices, now), nil
}

func (s *dashboardService) Summary(ctx context.Context, now time.Time) (Summary, error) {
	res := Summary{
		Jobs:  map[models.JobStatus]int{},
		Leads: map[models.LeadStatus]int{},
	}

	clients, err := s.acc.Clients.List(ctx, "")
	if err != nil {
		return res, err
	}
	res.Clients = len(clients)

	tasks, err := s.acc.Tasks.List(ctx, "")
	if err != nil {
		return res, err
	}
	for _, t := range tasks {
		if t.Status != models.TaskDone {
			res.OpenTasks++
		}
		if t.IsOverdue(now) {
			res.OverdueTasks++
		}
	}

	jobs, err := s.acc.Jobs.List(ctx, "")
	if err != nil {
		return res, err
	}
	for _, j := range jobs {
		res.Jobs[j.Status]++
	}

	invoices, err := s.acc.Invoices.List(ctx, "")
	if err != nil {
		return res, err
	}
	for _, inv := range invoices {
		if inv.Status == models.InvoiceSent || inv.Status == models.InvoiceOverdue {
			res.UnpaidCount++
			res.UnpaidAmount += inv.TotalAmount
		}
	}
	res.MonthEarnings = earnings.Summarize(invoices, now).Month(now.Year(), now.Month())

	leads, err := s.acc.Leads.List(ctx, "")
	if err != nil {
		return res, err
	}
	for _, l := range leads {
		res.Leads[l.Status]++
	}

	return res, nil
}
