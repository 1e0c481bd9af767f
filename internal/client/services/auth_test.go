package services

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/jobkeeper/internal/client/client"
	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignIn_PersistsSessionAndRestores(t *testing.T) {
	store := setupStore(t)
	fc := &fakeClient{}
	svc := NewAuthService(fc, store, logging.Nop{})
	ctx := context.Background()

	s, err := svc.SignIn(ctx, "me@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", s.User.Email)

	b, err := store.Get(ctx, SessionKey)
	require.NoError(t, err)
	require.NotNil(t, b)

	fc2 := &fakeClient{}
	restored, err := NewAuthService(fc2, store, logging.Nop{}).Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "r", restored.RefreshToken)
	assert.Equal(t, restored, fc2.session)
}

func TestSignIn_ValidationAndClientErrors(t *testing.T) {
	store := setupStore(t)
	fc := &fakeClient{signInErr: client.ErrUnauthorized}
	svc := NewAuthService(fc, store, logging.Nop{})
	ctx := context.Background()

	_, err := svc.SignIn(ctx, "bad", "secret1")
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Empty(t, fc.lastEmail)

	_, err = svc.SignIn(ctx, "me@example.com", "secret1")
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.True(t, strings.HasPrefix(err.Error(), "sign in error:"))
}

func TestSignOut_DropsSession(t *testing.T) {
	store := setupStore(t)
	fc := &fakeClient{}
	svc := NewAuthService(fc, store, logging.Nop{})
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "me@example.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, svc.SignOut(ctx))
	assert.Nil(t, fc.session)

	s, err := svc.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestRestore_CorruptSessionIsDropped(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, SessionKey, []byte("{")))

	s, err := NewAuthService(&fakeClient{}, store, logging.Nop{}).Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)

	b, err := store.Get(ctx, SessionKey)
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestPersistSession_And_ClearLocalData(t *testing.T) {
	store := setupStore(t)
	svc := NewAuthService(&fakeClient{}, store, logging.Nop{})
	ctx := context.Background()

	svc.PersistSession(&client.Session{AccessToken: "a2", RefreshToken: "r2"})
	s, err := svc.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a2", s.AccessToken)

	require.NoError(t, store.Set(ctx, "local:clients", []byte("[]")))
	require.NoError(t, svc.ClearLocalData(ctx))
	all, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPing_ErrorPropagates(t *testing.T) {
	svc := NewAuthService(&fakeClient{pingErr: client.ErrUnavailable}, setupStore(t), logging.Nop{})
	require.ErrorIs(t, svc.Ping(context.Background()), client.ErrUnavailable)
}
