package client

import (
	"context"
	"net/http"
	"net/url"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *RESTClient) authenticate(ctx context.Context, path, query string, body any) (*Session, error) {
	b, err := c.send(ctx, http.MethodPost, path, query, mustJSON(body))
	if err != nil {
		return nil, err
	}
	var s Session
	if err := decode(b, &s); err != nil {
		return nil, err
	}
	c.SetSession(&s)
	return &s, nil
}

func (c *RESTClient) SignUp(ctx context.Context, email, password string) (*Session, error) {
	return c.authenticate(ctx, "/auth/v1/signup", "", credentials{Email: email, Password: password})
}

func (c *RESTClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	q := url.Values{"grant_type": {"password"}}.Encode()
	return c.authenticate(ctx, "/auth/v1/token", q, credentials{Email: email, Password: password})
}

func (c *RESTClient) refresh(ctx context.Context, refreshToken string) (*Session, error) {
	q := url.Values{"grant_type": {"refresh_token"}}.Encode()
	s, err := c.authenticate(ctx, "/auth/v1/token", q, map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return nil, err
	}
	if c.OnSession != nil {
		c.OnSession(s)
	}
	return s, nil
}
