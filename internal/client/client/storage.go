package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

type presigned struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// UploadURL asks the backend for a fresh object key and a presigned PUT URL.
func (c *RESTClient) UploadURL(ctx context.Context) (string, string, error) {
	b, err := c.do(ctx, http.MethodPost, "/storage/v1/upload-url", "", struct{}{})
	if err != nil {
		return "", "", err
	}
	var p presigned
	if err := decode(b, &p); err != nil {
		return "", "", err
	}
	return p.Key, p.URL, nil
}

// DownloadURL returns a presigned GET URL for key.
func (c *RESTClient) DownloadURL(ctx context.Context, key string) (string, error) {
	b, err := c.do(ctx, http.MethodGet, "/storage/v1/download-url", url.Values{"key": {key}}.Encode(), nil)
	if err != nil {
		return "", err
	}
	var p presigned
	if err := decode(b, &p); err != nil {
		return "", err
	}
	return p.URL, nil
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
