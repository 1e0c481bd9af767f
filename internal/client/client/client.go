package client

import (
	"context"
	"net/url"
	"strconv"
)

// Client is the backend contract consumed by the client services.
type Client interface {
	Ping(ctx context.Context) error

	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SetSession(s *Session)
	Session() *Session

	// Select decodes the JSON array of matching rows into out.
	Select(ctx context.Context, table string, q Query, out any) error
	// Insert posts row and decodes the returned representation into out.
	Insert(ctx context.Context, table string, row any, out any) error
	// Update patches the row with the given id and decodes the result into out.
	Update(ctx context.Context, table, id string, patch any, out any) error
	Delete(ctx context.Context, table, id string) error

	UploadURL(ctx context.Context) (key, url string, err error)
	DownloadURL(ctx context.Context, key string) (string, error)
}

// Query holds the row filters of a select. Only equality filters are
// supported, encoded as column=eq.value.
type Query struct {
	Eq    map[string]string
	Order string
	Limit int
}

// Where returns a Query with a single equality filter.
func Where(column, value string) Query {
	return Query{Eq: map[string]string{column: value}}
}

func (q Query) encode() string {
	v := url.Values{}
	for col, val := range q.Eq {
		v.Set(col, "eq."+val)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v.Encode()
}

// Session is an authenticated backend session.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	User         User   `json:"user"`
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
