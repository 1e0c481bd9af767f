package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/tidwall/gjson"
)

const (
	maxResponseBytes  = 8 << 20
	maxErrorBodyBytes = 32 << 10
)

// RESTClient implements Client against the JobKeeper REST API.
type RESTClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	mu      sync.RWMutex
	session *Session

	// OnSession is called after a token refresh so callers can persist the
	// rotated session.
	OnSession func(*Session)
}

func NewRESTClient(baseURL, apiKey string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *RESTClient) SetSession(s *Session) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
}

func (c *RESTClient) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *RESTClient) tokens() (access, refresh string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return "", ""
	}
	return c.session.AccessToken, c.session.RefreshToken
}

// do sends one request and returns the response body. A 401 caused by an
// expired token is retried once after refreshing the session.
func (c *RESTClient) do(ctx context.Context, method, path, query string, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		payload = b
	}

	respBody, err := c.send(ctx, method, path, query, payload)
	if err == nil || !errors.Is(err, common.ErrTokenExpired) {
		return respBody, err
	}

	_, refresh := c.tokens()
	if refresh == "" {
		return nil, err
	}
	if _, rerr := c.refresh(ctx, refresh); rerr != nil {
		return nil, rerr
	}
	return c.send(ctx, method, path, query, payload)
}

func (c *RESTClient) send(ctx context.Context, method, path, query string, payload []byte) ([]byte, error) {
	u := c.baseURL + path
	if query != "" {
		u += "?" + query
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.APIKeyHeaderName, c.apiKey)
	req.Header.Set(common.PreferHeaderName, common.ReturnRepresentation)
	if access, _ := c.tokens(); access != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+access)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, mapStatus(resp.StatusCode, b)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}
	return b, nil
}

func errorMessage(body []byte) string {
	for _, path := range []string{"error", "message", "msg"} {
		if r := gjson.GetBytes(body, path); r.Exists() && r.String() != "" {
			return r.String()
		}
	}
	return strings.TrimSpace(string(body))
}

func mapStatus(status int, body []byte) error {
	msg := errorMessage(body)
	switch {
	case status == http.StatusUnauthorized && msg == common.ErrTokenExpired.Error():
		return fmt.Errorf("%w: %w", ErrUnauthorized, common.ErrTokenExpired)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case status == http.StatusBadGateway || status == http.StatusServiceUnavailable || status == http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %s", ErrUnavailable, msg)
	default:
		return &APIError{Status: status, Message: msg}
	}
}

func decode(b []byte, out any) error {
	if out == nil || len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *RESTClient) Ping(ctx context.Context) error {
	b, err := c.send(ctx, http.MethodGet, "/health", "", nil)
	if err != nil {
		return err
	}
	if gjson.GetBytes(b, "status").String() != "ok" {
		return ErrUnavailable
	}
	return nil
}

func tablePath(table string) string {
	return "/rest/v1/" + url.PathEscape(table)
}

func (c *RESTClient) Select(ctx context.Context, table string, q Query, out any) error {
	b, err := c.do(ctx, http.MethodGet, tablePath(table), q.encode(), nil)
	if err != nil {
		return err
	}
	return decode(b, out)
}

func (c *RESTClient) Insert(ctx context.Context, table string, row any, out any) error {
	b, err := c.do(ctx, http.MethodPost, tablePath(table), "", row)
	if err != nil {
		return err
	}
	return decode(b, out)
}

func (c *RESTClient) Update(ctx context.Context, table, id string, patch any, out any) error {
	b, err := c.do(ctx, http.MethodPatch, tablePath(table), Where("id", id).encode(), patch)
	if err != nil {
		return err
	}
	return decode(b, out)
}

func (c *RESTClient) Delete(ctx context.Context, table, id string) error {
	_, err := c.do(ctx, http.MethodDelete, tablePath(table), Where("id", id).encode(), nil)
	return err
}
