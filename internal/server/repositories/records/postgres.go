package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/dbx"
	"github.com/dmitrijs2005/jobkeeper/internal/server/models"
)

// PostgresRepository implements record storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// buildSelect renders q as SQL. Column names travel as parameters, so only
// the shape of the statement depends on q.
func buildSelect(q models.Query) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, owner_id, body, created_at, updated_at FROM records
		WHERE table_name = $1 AND owner_id = $2`)
	args := []any{q.Table, q.OwnerID}

	for _, f := range q.Filters {
		args = append(args, f.Column, f.Value)
		fmt.Fprintf(&sb, " AND body->>$%d = $%d", len(args)-1, len(args))
	}

	if q.Order != nil {
		args = append(args, q.Order.Column)
		fmt.Fprintf(&sb, " ORDER BY body->>$%d", len(args))
		if q.Order.Desc {
			sb.WriteString(" DESC")
		}
	} else {
		sb.WriteString(" ORDER BY created_at DESC")
	}

	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	return sb.String(), args
}

// Select returns the rows matching q. No match gives an empty, non-nil slice.
func (r *PostgresRepository) Select(ctx context.Context, q models.Query) ([]models.Record, error) {
	query, args := buildSelect(q)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Record{}
	for rows.Next() {
		rec := models.Record{Table: q.Table}
		var body []byte
		if err := rows.Scan(&rec.ID, &rec.OwnerID, &body, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		rec.Body = json.RawMessage(body)
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Upsert inserts rec or replaces the body of the owner's existing row. An id
// owned by someone else yields common.ErrAlreadyExists.
func (r *PostgresRepository) Upsert(ctx context.Context, rec *models.Record) (*models.Record, error) {
	query := `
		INSERT INTO records (table_name, id, owner_id, body)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (table_name, id)
		DO UPDATE SET
			body = EXCLUDED.body,
			updated_at = now()
			WHERE records.owner_id = EXCLUDED.owner_id
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, rec.Table, rec.ID, rec.OwnerID, []byte(rec.Body)).
		Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		// the conditional update skipped a row held by another owner
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

// Patch merges patch into the row's body and returns the updated row, or
// common.ErrorNotFound.
func (r *PostgresRepository) Patch(ctx context.Context, table, ownerID, id string, patch json.RawMessage) (*models.Record, error) {
	query := `
		UPDATE records
		SET body = body || $4::jsonb, updated_at = now()
		WHERE table_name = $1 AND owner_id = $2 AND id = $3
		RETURNING body, created_at, updated_at
	`
	rec := &models.Record{Table: table, ID: id, OwnerID: ownerID}
	var body []byte
	err := r.db.QueryRowContext(ctx, query, table, ownerID, id, []byte(patch)).
		Scan(&body, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	rec.Body = json.RawMessage(body)
	return rec, nil
}

// Delete removes one row, or returns common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, table, ownerID, id string) error {
	query := `
		DELETE FROM records
		WHERE table_name = $1 AND owner_id = $2 AND id = $3
	`
	res, err := r.db.ExecContext(ctx, query, table, ownerID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.AffectedOne(res)
}
