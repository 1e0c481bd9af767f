package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/client/client"
	"github.com/dmitrijs2005/jobkeeper/internal/client/notify"
	"github.com/dmitrijs2005/jobkeeper/internal/client/repositories/kv"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

var errDown = errors.New("backend down")

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func setupStore(t *testing.T) *kv.SQLiteRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key        TEXT PRIMARY KEY,
  value      BLOB NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`)
	require.NoError(t, err)
	return kv.NewSQLiteRepository(db)
}

// failingBackend fails every call, so all traffic goes to the local store.
type failingBackend struct{ calls int }

func (f *failingBackend) Select(context.Context, string, client.Query, any) error {
	f.calls++
	return errDown
}
func (f *failingBackend) Insert(context.Context, string, any, any) error {
	f.calls++
	return errDown
}
func (f *failingBackend) Update(context.Context, string, string, any, any) error {
	f.calls++
	return errDown
}
func (f *failingBackend) Delete(context.Context, string, string) error {
	f.calls++
	return errDown
}

type fakeScheduler struct {
	err       error
	scheduled []notify.Notification
	cancelled []string
}

func (f *fakeScheduler) Schedule(_ context.Context, n notify.Notification) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.scheduled = append(f.scheduled, n)
	return "n1", nil
}

func (f *fakeScheduler) Cancel(id string) { f.cancelled = append(f.cancelled, id) }

// fakeClient is a minimal client.Client for auth and upload tests.
type fakeClient struct {
	client.Client

	session   *client.Session
	signInErr error
	pingErr   error
	uploadErr error
	uploadURL string

	lastEmail string
}

func (f *fakeClient) SignIn(_ context.Context, email, _ string) (*client.Session, error) {
	f.lastEmail = email
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	s := &client.Session{AccessToken: "a", RefreshToken: "r", User: client.User{ID: "u1", Email: email}}
	f.session = s
	return s, nil
}

func (f *fakeClient) SignUp(ctx context.Context, email, password string) (*client.Session, error) {
	return f.SignIn(ctx, email, password)
}

func (f *fakeClient) SetSession(s *client.Session) { f.session = s }
func (f *fakeClient) Session() *client.Session     { return f.session }
func (f *fakeClient) Ping(context.Context) error   { return f.pingErr }

func (f *fakeClient) UploadURL(context.Context) (string, string, error) {
	if f.uploadErr != nil {
		return "", "", f.uploadErr
	}
	return "photos/k1", f.uploadURL, nil
}
