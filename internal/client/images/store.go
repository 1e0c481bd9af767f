// Package images keeps client photos on the device. Each client has at most
// one photo; its location is recorded in the kv store under image:<client id>.
package images

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/jobkeeper/internal/filex"
)

const keyPrefix = "image:"

type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) (map[string][]byte, error)
}

type Store struct {
	dir string
	kv  KV
}

// NewStore keeps photos under dataDir/images.
func NewStore(dataDir string, kv KV) (*Store, error) {
	dir, err := filex.EnsureDir(dataDir, "images")
	if err != nil {
		return nil, err
	}
	return &Store{dir: dir, kv: kv}, nil
}

func key(clientID string) string { return keyPrefix + clientID }

func toURI(path string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func fromURI(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return "", fmt.Errorf("not a file uri: %q", uri)
	}
	return filepath.FromSlash(u.Path), nil
}

// NormalizeExt lowercases ext and makes sure it starts with a dot. An empty
// ext stays empty.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Save copies src into the photo directory and returns its file URI. A
// previous photo with a different extension is removed.
func (s *Store) Save(ctx context.Context, clientID string, src io.Reader, ext string) (string, error) {
	if clientID == "" || strings.ContainsAny(clientID, `/\`) {
		return "", fmt.Errorf("invalid client id %q", clientID)
	}
	ext = NormalizeExt(ext)

	path := filepath.Join(s.dir, clientID+ext)
	if err := filex.WriteFileAtomic(path, src); err != nil {
		return "", err
	}

	if old, ok, err := s.Lookup(ctx, clientID); err == nil && ok && old != toURI(path) {
		if p, err := fromURI(old); err == nil {
			_ = filex.RemoveIfExists(p)
		}
	}

	uri := toURI(path)
	if err := s.kv.Set(ctx, key(clientID), []byte(uri)); err != nil {
		return "", fmt.Errorf("record image: %w", err)
	}
	return uri, nil
}

// Lookup returns the photo URI for clientID, if any.
func (s *Store) Lookup(ctx context.Context, clientID string) (string, bool, error) {
	b, err := s.kv.Get(ctx, key(clientID))
	if err != nil {
		return "", false, err
	}
	if len(b) == 0 {
		return "", false, nil
	}
	return string(b), true, nil
}

// Path returns the local file path of the photo for clientID, if any.
func (s *Store) Path(ctx context.Context, clientID string) (string, bool, error) {
	uri, ok, err := s.Lookup(ctx, clientID)
	if err != nil || !ok {
		return "", false, err
	}
	p, err := fromURI(uri)
	if err != nil {
		return "", false, err
	}
	return p, true, nil
}

// Delete removes the photo file and its record. A client without a photo is
// not an error.
func (s *Store) Delete(ctx context.Context, clientID string) error {
	path, ok, err := s.Path(ctx, clientID)
	if err != nil {
		return err
	}
	if ok {
		if err := filex.RemoveIfExists(path); err != nil {
			return err
		}
	}
	if err := s.kv.Delete(ctx, key(clientID)); err != nil {
		return fmt.Errorf("forget image: %w", err)
	}
	return nil
}

// Purge removes every recorded photo file and its record. It returns the
// number of photos removed.
func (s *Store) Purge(ctx context.Context) (int, error) {
	recorded, err := s.kv.List(ctx, keyPrefix)
	if err != nil {
		return 0, fmt.Errorf("list images: %w", err)
	}

	n := 0
	for k, uri := range recorded {
		if p, err := fromURI(string(uri)); err == nil {
			if err := filex.RemoveIfExists(p); err != nil {
				return n, err
			}
		}
		if err := s.kv.Delete(ctx, k); err != nil {
			return n, fmt.Errorf("forget image: %w", err)
		}
		n++
	}
	return n, nil
}
