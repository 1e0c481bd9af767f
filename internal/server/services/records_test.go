package services

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		raw     string
		want    models.Query
		wantErr error
	}{
		{
			name:  "no params",
			table: "clients",
			want:  models.Query{Table: "clients", OwnerID: "u1"},
		},
		{
			name:  "eq filter order limit",
			table: "tasks",
			raw:   "client_id=eq.c1&order=created_at.desc&limit=5&select=*",
			want: models.Query{
				Table: "tasks", OwnerID: "u1",
				Filters: []models.Filter{{Column: "client_id", Value: "c1"}},
				Order:   &models.Order{Column: "created_at", Desc: true},
				Limit:   5,
			},
		},
		{
			name:  "ascending order without direction",
			table: "leads",
			raw:   "order=name",
			want:  models.Query{Table: "leads", OwnerID: "u1", Order: &models.Order{Column: "name"}},
		},
		{name: "unknown table", table: "secrets", wantErr: common.ErrUnknownTable},
		{name: "unknown column", table: "tasks", raw: "password=eq.x", wantErr: common.ErrBadFilter},
		{name: "unsupported operator", table: "tasks", raw: "status=neq.done", wantErr: common.ErrBadFilter},
		{name: "bad order direction", table: "tasks", raw: "order=title.sideways", wantErr: common.ErrBadFilter},
		{name: "bad limit", table: "tasks", raw: "limit=-1", wantErr: common.ErrBadFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := url.ParseQuery(tt.raw)
			require.NoError(t, err)

			got, err := ParseQuery(tt.table, "u1", params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecordService_InsertSelectUpdateDelete(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := newFakeRepoManager()
	s := NewRecordService(db, rm)
	ctx := context.Background()

	rows, err := s.Insert(ctx, "u1", "tasks", []byte(`{"id":"t1","client_id":"c1","title":"Fix sink","status":"todo"}`))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "t1", gjson.GetBytes(rows[0], "id").String())

	got, err := s.Select(ctx, "u1", "tasks", url.Values{"client_id": {"eq.c1"}})
	require.NoError(t, err)
	require.Len(t, got, 1)

	// another owner sees nothing
	got, err = s.Select(ctx, "u2", "tasks", url.Values{})
	require.NoError(t, err)
	assert.Empty(t, got)

	upd, err := s.Update(ctx, "u1", "tasks", url.Values{"id": {"eq.t1"}}, []byte(`{"id":"other","status":"done"}`))
	require.NoError(t, err)
	require.Len(t, upd, 1)
	assert.Equal(t, "done", gjson.GetBytes(upd[0], "status").String())
	assert.Equal(t, "t1", gjson.GetBytes(upd[0], "id").String())

	require.NoError(t, s.Delete(ctx, "u1", "tasks", url.Values{"id": {"eq.t1"}}))
	assert.ErrorIs(t, s.Delete(ctx, "u1", "tasks", url.Values{"id": {"eq.t1"}}), common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordService_InsertArrayAndGeneratedID(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := newFakeRepoManager()
	s := NewRecordService(db, rm)

	rows, err := s.Insert(context.Background(), "u1", "leads", []byte(`[{"id":"l1","name":"A"},{"name":"B"}]`))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	var second map[string]any
	require.NoError(t, json.Unmarshal(rows[1], &second))
	assert.NotEmpty(t, second["id"])
	assert.Len(t, rm.n.rows, 2)
}

func TestRecordService_InsertRollsBackOnError(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := newFakeRepoManager()
	rm.n.failOn = "bad"
	s := NewRecordService(db, rm)

	_, err := s.Insert(context.Background(), "u1", "jobs", []byte(`[{"id":"ok"},{"id":"bad"}]`))
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordService_InsertRejects(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	s := NewRecordService(db, newFakeRepoManager())
	ctx := context.Background()

	_, err := s.Insert(ctx, "u1", "nope", []byte(`{}`))
	assert.ErrorIs(t, err, common.ErrUnknownTable)

	_, err = s.Insert(ctx, "u1", "clients", []byte(`{not json`))
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestRecordService_InsertForeignID(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectRollback()

	s := NewRecordService(db, newFakeRepoManager())
	ctx := context.Background()

	_, err := s.Insert(ctx, "u1", "clients", []byte(`{"id":"c1","name":"Ann"}`))
	require.NoError(t, err)

	_, err = s.Insert(ctx, "u2", "clients", []byte(`{"id":"c1","name":"Mallory"}`))
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestRecordService_WritesNeedID(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	s := NewRecordService(db, newFakeRepoManager())
	ctx := context.Background()

	_, err := s.Update(ctx, "u1", "tasks", url.Values{"client_id": {"eq.c1"}}, []byte(`{}`))
	assert.ErrorIs(t, err, common.ErrBadFilter)

	_, err = s.Update(ctx, "u1", "tasks", url.Values{"id": {"eq.t1"}}, []byte(`[1]`))
	assert.ErrorIs(t, err, common.ErrValidation)

	err = s.Delete(ctx, "u1", "tasks", url.Values{})
	assert.ErrorIs(t, err, common.ErrBadFilter)

	err = s.Delete(ctx, "u1", "secrets", url.Values{"id": {"eq.x"}})
	assert.ErrorIs(t, err, common.ErrUnknownTable)
}
