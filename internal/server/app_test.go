package server

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/jobkeeper/internal/dbx"
	"github.com/dmitrijs2005/jobkeeper/internal/logging"
	"github.com/dmitrijs2005/jobkeeper/internal/server/config"
	"github.com/dmitrijs2005/jobkeeper/internal/server/repositories/records"
	"github.com/dmitrijs2005/jobkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/jobkeeper/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubManager struct {
	migrateErr error
	migrated   bool
}

func (m *stubManager) RunMigrations(context.Context, *sql.DB) error {
	m.migrated = true
	return m.migrateErr
}
func (m *stubManager) Users(dbx.DBTX) users.Repository                 { return nil }
func (m *stubManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return nil }
func (m *stubManager) Records(dbx.DBTX) records.Repository             { return nil }

func withMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	orig := openDB
	openDB = func(string) (*sql.DB, error) { return db, nil }
	t.Cleanup(func() { openDB = orig })
	return mock
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func testConfig(addr string) *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.ListenAddr = addr
	c.ShutdownTimeout = 2 * time.Second
	return c
}

func TestNewApp_MigratesAndServes(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectPing()
	mock.ExpectPing() // /health
	mock.ExpectClose()

	rm := &stubManager{}
	cfg := testConfig(freeAddr(t))
	app, err := newApp(context.Background(), cfg, logging.Nop{}, rm)
	require.NoError(t, err)
	assert.True(t, rm.migrated)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + cfg.ListenAddr + "/health")
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	require.NoError(t, app.Close())
}

func TestNewApp_PingError(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectPing().WillReturnError(errors.New("refused"))
	mock.ExpectClose()

	_, err := newApp(context.Background(), testConfig(":0"), logging.Nop{}, &stubManager{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db ping error")
}

func TestNewApp_MigrationError(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectPing()
	mock.ExpectClose()

	_, err := newApp(context.Background(), testConfig(":0"), logging.Nop{}, &stubManager{migrateErr: errors.New("bad sql")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations error")
}

func TestRun_ListenError(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectPing()

	app, err := newApp(context.Background(), testConfig("256.0.0.1:bad"), logging.Nop{}, &stubManager{})
	require.NoError(t, err)

	err = app.Run(context.Background())
	assert.Error(t, err)
}
