// Package records stores the rows of every application table (clients,
// tasks, reminders, jobs, invoices and leads) in one owner-scoped relation.
package records

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/jobkeeper/internal/server/models"
)

type Repository interface {
	// Select returns the owner's rows of q.Table that match every filter.
	Select(ctx context.Context, q models.Query) ([]models.Record, error)

	// Upsert inserts rec or replaces the body of the owner's existing row with
	// the same id. An id held by another owner yields common.ErrAlreadyExists.
	Upsert(ctx context.Context, rec *models.Record) (*models.Record, error)

	// Patch merges patch into the stored body. Missing rows yield
	// common.ErrorNotFound.
	Patch(ctx context.Context, table, ownerID, id string, patch json.RawMessage) (*models.Record, error)

	Delete(ctx context.Context, table, ownerID, id string) error
}
