package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/dbx"
	"github.com/dmitrijs2005/jobkeeper/internal/server/models"
	"github.com/dmitrijs2005/jobkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// tableColumns lists the tables the API serves and the columns a client
// may filter or order by.
var tableColumns = map[string][]string{
	"clients":   {"id", "name", "email", "phone", "created_at", "updated_at"},
	"tasks":     {"id", "client_id", "title", "status", "due_date", "created_at", "updated_at"},
	"reminders": {"id", "client_id", "title", "remind_at", "created_at", "updated_at"},
	"jobs":      {"id", "client_id", "title", "status", "scheduled_date", "created_at", "updated_at"},
	"invoices":  {"id", "client_id", "job_id", "invoice_number", "status", "issued_date", "due_date", "created_at", "updated_at"},
	"leads":     {"id", "name", "email", "status", "source", "created_at", "updated_at"},
}

// reserved query parameters that are not row filters
var reservedParams = map[string]bool{"order": true, "limit": true, "select": true}

func hasColumn(table, column string) bool {
	for _, c := range tableColumns[table] {
		if c == column {
			return true
		}
	}
	return false
}

// RecordService serves the owner-scoped rows of the application tables.
type RecordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRecordService(db *sql.DB, m repomanager.RepositoryManager) *RecordService {
	return &RecordService{db: db, repomanager: m}
}

// ParseQuery turns PostgREST-style parameters (col=eq.value, order=col.desc,
// limit=n) into a models.Query. Operators other than eq are rejected.
func ParseQuery(table, ownerID string, params url.Values) (models.Query, error) {
	if _, ok := tableColumns[table]; !ok {
		return models.Query{}, fmt.Errorf("%w: %s", common.ErrUnknownTable, table)
	}
	q := models.Query{Table: table, OwnerID: ownerID}

	for key, values := range params {
		if reservedParams[key] {
			continue
		}
		if !hasColumn(table, key) {
			return models.Query{}, fmt.Errorf("%w: column %q", common.ErrBadFilter, key)
		}
		for _, v := range values {
			value, ok := strings.CutPrefix(v, "eq.")
			if !ok {
				return models.Query{}, fmt.Errorf("%w: %s=%s", common.ErrBadFilter, key, v)
			}
			q.Filters = append(q.Filters, models.Filter{Column: key, Value: value})
		}
	}

	if o := params.Get("order"); o != "" {
		col, dir, _ := strings.Cut(o, ".")
		if !hasColumn(table, col) {
			return models.Query{}, fmt.Errorf("%w: order %q", common.ErrBadFilter, o)
		}
		switch dir {
		case "", "asc":
			q.Order = &models.Order{Column: col}
		case "desc":
			q.Order = &models.Order{Column: col, Desc: true}
		default:
			return models.Query{}, fmt.Errorf("%w: order %q", common.ErrBadFilter, o)
		}
	}

	if l := params.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			return models.Query{}, fmt.Errorf("%w: limit %q", common.ErrBadFilter, l)
		}
		q.Limit = n
	}
	return q, nil
}

// idFilter extracts the single id=eq.<id> filter required by writes.
func idFilter(table string, params url.Values) (string, error) {
	if _, ok := tableColumns[table]; !ok {
		return "", fmt.Errorf("%w: %s", common.ErrUnknownTable, table)
	}
	id, ok := strings.CutPrefix(params.Get("id"), "eq.")
	if !ok || id == "" {
		return "", fmt.Errorf("%w: id=eq.<id> is required", common.ErrBadFilter)
	}
	return id, nil
}

func bodies(recs []models.Record) []json.RawMessage {
	out := make([]json.RawMessage, len(recs))
	for i, r := range recs {
		out[i] = r.Body
	}
	return out
}

func (s *RecordService) Select(ctx context.Context, ownerID, table string, params url.Values) ([]json.RawMessage, error) {
	q, err := ParseQuery(table, ownerID, params)
	if err != nil {
		return nil, err
	}
	recs, err := s.repomanager.Records(s.db).Select(ctx, q)
	if err != nil {
		return nil, err
	}
	return bodies(recs), nil
}

// normalizeRow checks that row is a JSON object and returns it with an id,
// generating one when the client sent none.
func normalizeRow(row gjson.Result) (string, json.RawMessage, error) {
	if !row.IsObject() {
		return "", nil, fmt.Errorf("%w: row must be a JSON object", common.ErrValidation)
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(row.Raw), &m); err != nil {
		return "", nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	id, _ := m["id"].(string)
	if id == "" {
		id = uuid.NewString()
		m["id"] = id
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", nil, err
	}
	return id, b, nil
}

// Insert stores one row or an array of rows. Posting an id the owner already
// has replaces that row.
func (s *RecordService) Insert(ctx context.Context, ownerID, table string, payload []byte) ([]json.RawMessage, error) {
	if _, ok := tableColumns[table]; !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrUnknownTable, table)
	}
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("%w: malformed JSON", common.ErrValidation)
	}

	parsed := gjson.ParseBytes(payload)
	rows := []gjson.Result{parsed}
	if parsed.IsArray() {
		rows = parsed.Array()
	}

	out := make([]json.RawMessage, 0, len(rows))
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Records(tx)
		for _, row := range rows {
			id, body, err := normalizeRow(row)
			if err != nil {
				return err
			}
			rec, err := repo.Upsert(ctx, &models.Record{Table: table, ID: id, OwnerID: ownerID, Body: body})
			if err != nil {
				return err
			}
			out = append(out, rec.Body)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update merges patch into the row selected by id=eq.<id>. The id itself
// cannot be changed.
func (s *RecordService) Update(ctx context.Context, ownerID, table string, params url.Values, patch []byte) ([]json.RawMessage, error) {
	id, err := idFilter(table, params)
	if err != nil {
		return nil, err
	}
	parsed := gjson.ParseBytes(patch)
	if !gjson.ValidBytes(patch) || !parsed.IsObject() {
		return nil, fmt.Errorf("%w: patch must be a JSON object", common.ErrValidation)
	}

	var m map[string]any
	if err := json.Unmarshal(patch, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	delete(m, "id")
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}

	rec, err := s.repomanager.Records(s.db).Patch(ctx, table, ownerID, id, b)
	if err != nil {
		return nil, err
	}
	return []json.RawMessage{rec.Body}, nil
}

func (s *RecordService) Delete(ctx context.Context, ownerID, table string, params url.Values) error {
	id, err := idFilter(table, params)
	if err != nil {
		return err
	}
	return s.repomanager.Records(s.db).Delete(ctx, table, ownerID, id)
}
