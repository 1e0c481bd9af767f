// Package services contains the application services of the JobKeeper
// client: per-entity CRUD over the fallback accessors, authentication,
// dashboard aggregation and invoice export.
package services

import (
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/client/fallback"
	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
	"github.com/dmitrijs2005/jobkeeper/internal/logging"
)

// Backend tables and the kv keys of their local copies.
var (
	ClientsLocation   = fallback.Location{Table: "clients", LocalKey: "local:clients"}
	TasksLocation     = fallback.Location{Table: "tasks", LocalKey: "local:tasks", ParentColumn: "client_id"}
	RemindersLocation = fallback.Location{Table: "reminders", LocalKey: "local:reminders", ParentColumn: "client_id"}
	JobsLocation      = fallback.Location{Table: "jobs", LocalKey: "local:jobs", ParentColumn: "client_id"}
	InvoicesLocation  = fallback.Location{Table: "invoices", LocalKey: "local:invoices", ParentColumn: "client_id"}
	LeadsLocation     = fallback.Location{Table: "leads", LocalKey: "local:leads"}
)

// Accessors bundles one fallback accessor per entity.
type Accessors struct {
	Clients   *fallback.Accessor[models.Client]
	Tasks     *fallback.Accessor[models.Task]
	Reminders *fallback.Accessor[models.Reminder]
	Jobs      *fallback.Accessor[models.Job]
	Invoices  *fallback.Accessor[models.Invoice]
	Leads     *fallback.Accessor[models.Lead]
}

// NewAccessors wires every entity to the same backend and local store. A nil
// backend means local-only operation.
func NewAccessors(backend fallback.Backend, store fallback.Store, log logging.Logger) *Accessors {
	return &Accessors{
		Clients:   fallback.New[models.Client](backend, store, log, ClientsLocation),
		Tasks:     fallback.New[models.Task](backend, store, log, TasksLocation),
		Reminders: fallback.New[models.Reminder](backend, store, log, RemindersLocation),
		Jobs:      fallback.New[models.Job](backend, store, log, JobsLocation),
		Invoices:  fallback.New[models.Invoice](backend, store, log, InvoicesLocation),
		Leads:     fallback.New[models.Lead](backend, store, log, LeadsLocation),
	}
}

// Clock returns the current time. Tests swap it for a fixed one.
type Clock func() time.Time

// stamp assigns a fresh id on first write and maintains the timestamps.
func stamp(id *string, createdAt, updatedAt *time.Time, now time.Time) {
	if *id == "" {
		*id = models.NewID()
	}
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}
