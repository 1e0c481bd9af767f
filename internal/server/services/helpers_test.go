package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/dbx"
	"github.com/dmitrijs2005/jobkeeper/internal/server/config"
	"github.com/dmitrijs2005/jobkeeper/internal/server/models"
	"github.com/dmitrijs2005/jobkeeper/internal/server/repositories/records"
	refreshtokensrepo "github.com/dmitrijs2005/jobkeeper/internal/server/repositories/refreshtokens"
	usersrepo "github.com/dmitrijs2005/jobkeeper/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		S3Region:                     "us-east-1",
		S3RootUser:                   "minioadmin",
		S3RootPassword:               "minioadmin",
		S3BaseEndpoint:               "http://127.0.0.1:9000",
		S3Bucket:                     "jobkeeper",
		PresignTTL:                   15 * time.Minute,
	}
}

type fakeUsersRepo struct {
	byEmail   map[string]*models.User
	createErr error
	getErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrAlreadyExists
	}
	u.ID = "u-" + u.Email
	u.CreatedAt = time.Now()
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeRefreshRepo struct {
	tokens    map[string]*models.RefreshToken
	findErr   error
	delErr    error
	createErr error
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{tokens: map[string]*models.RefreshToken{}}
}

func (f *fakeRefreshRepo) Create(_ context.Context, userID, token string, expiresAt time.Time) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tokens[token] = &models.RefreshToken{UserID: userID, Token: token, Expires: expiresAt}
	return nil
}

func (f *fakeRefreshRepo) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	rt, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return rt, nil
}

func (f *fakeRefreshRepo) Delete(_ context.Context, token string) error {
	if f.delErr != nil {
		return f.delErr
	}
	if _, ok := f.tokens[token]; !ok {
		return common.ErrorNotFound
	}
	delete(f.tokens, token)
	return nil
}

type recordKey struct{ table, id string }

// fakeRecordsRepo keeps rows in memory and mimics owner scoping.
type fakeRecordsRepo struct {
	rows      map[recordKey]models.Record
	lastQuery models.Query
	failOn    string
}

func newFakeRecordsRepo() *fakeRecordsRepo {
	return &fakeRecordsRepo{rows: map[recordKey]models.Record{}}
}

func (f *fakeRecordsRepo) Select(_ context.Context, q models.Query) ([]models.Record, error) {
	f.lastQuery = q
	out := []models.Record{}
	for k, r := range f.rows {
		if k.table != q.Table || r.OwnerID != q.OwnerID {
			continue
		}
		var body map[string]any
		_ = json.Unmarshal(r.Body, &body)
		match := true
		for _, flt := range q.Filters {
			if v, _ := body[flt.Column].(string); v != flt.Value {
				match = false
			}
		}
		if match {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecordsRepo) Upsert(_ context.Context, rec *models.Record) (*models.Record, error) {
	if f.failOn != "" && rec.ID == f.failOn {
		return nil, errors.New("upsert failed")
	}
	k := recordKey{rec.Table, rec.ID}
	if old, ok := f.rows[k]; ok && old.OwnerID != rec.OwnerID {
		return nil, common.ErrAlreadyExists
	}
	f.rows[k] = *rec
	return rec, nil
}

func (f *fakeRecordsRepo) Patch(_ context.Context, table, ownerID, id string, patch json.RawMessage) (*models.Record, error) {
	k := recordKey{table, id}
	r, ok := f.rows[k]
	if !ok || r.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	var body, p map[string]any
	_ = json.Unmarshal(r.Body, &body)
	_ = json.Unmarshal(patch, &p)
	for key, v := range p {
		body[key] = v
	}
	r.Body, _ = json.Marshal(body)
	f.rows[k] = r
	return &r, nil
}

func (f *fakeRecordsRepo) Delete(_ context.Context, table, ownerID, id string) error {
	k := recordKey{table, id}
	r, ok := f.rows[k]
	if !ok || r.OwnerID != ownerID {
		return common.ErrorNotFound
	}
	delete(f.rows, k)
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	n *fakeRecordsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(), r: newFakeRefreshRepo(), n: newFakeRecordsRepo()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error        { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokensrepo.Repository { return m.r }
func (m *fakeRepoManager) Records(dbx.DBTX) records.Repository                 { return m.n }
