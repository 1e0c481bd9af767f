package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/jobkeeper/internal/client/client"
	"github.com/dmitrijs2005/jobkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/jobkeeper/internal/logging"
	"github.com/dmitrijs2005/jobkeeper/internal/validate"
)

// SessionKey is the kv key holding the persisted backend session.
const SessionKey = "session"

// AuthService signs the user in and out and keeps the backend session in the
// local store so it survives restarts.
type AuthService interface {
	SignUp(ctx context.Context, email, password string) (*client.Session, error)
	SignIn(ctx context.Context, email, password string) (*client.Session, error)
	// SignOut forgets the session. Local data is kept.
	SignOut(ctx context.Context) error
	// Restore loads a persisted session into the client. It returns nil when
	// there is none.
	Restore(ctx context.Context) (*client.Session, error)
	// PersistSession stores s; it is installed as the REST client's refresh
	// callback.
	PersistSession(s *client.Session)
	Ping(ctx context.Context) error
	// ClearLocalData wipes the whole local store, session included.
	ClearLocalData(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  kv.Repository
	log    logging.Logger
}

func NewAuthService(c client.Client, store kv.Repository, log logging.Logger) AuthService {
	return &authService{client: c, store: store, log: log}
}

type credentialsInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (a *authService) SignUp(ctx context.Context, email, password string) (*client.Session, error) {
	if err := validate.Struct(credentialsInput{Email: email, Password: password}); err != nil {
		return nil, err
	}
	s, err := a.client.SignUp(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign up error: %w", err)
	}
	if err := a.save(ctx, s); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return s, nil
}

func (a *authService) SignIn(ctx context.Context, email, password string) (*client.Session, error) {
	if err := validate.Struct(credentialsInput{Email: email, Password: password}); err != nil {
		return nil, err
	}
	s, err := a.client.SignIn(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign in error: %w", err)
	}
	if err := a.save(ctx, s); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return s, nil
}

func (a *authService) save(ctx context.Context, s *client.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, SessionKey, b)
}

func (a *authService) PersistSession(s *client.Session) {
	ctx := context.Background()
	if err := a.save(ctx, s); err != nil {
		a.log.Warn(ctx, "refreshed session not saved", "err", err)
	}
}

func (a *authService) SignOut(ctx context.Context) error {
	a.client.SetSession(nil)
	if err := a.store.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("sign out error: %w", err)
	}
	return nil
}

func (a *authService) Restore(ctx context.Context) (*client.Session, error) {
	b, err := a.store.Get(ctx, SessionKey)
	if err != nil {
		return nil, fmt.Errorf("session loading error: %w", err)
	}
	if b == nil {
		return nil, nil
	}
	var s client.Session
	if err := json.Unmarshal(b, &s); err != nil {
		a.log.Warn(ctx, "dropping unreadable session", "err", err)
		return nil, a.store.Delete(ctx, SessionKey)
	}
	a.client.SetSession(&s)
	return &s, nil
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) ClearLocalData(ctx context.Context) error {
	a.client.SetSession(nil)
	return a.store.Clear(ctx)
}
