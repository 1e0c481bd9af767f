package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/client/client"
	"github.com/dmitrijs2005/jobkeeper/internal/client/fallback"
	"github.com/dmitrijs2005/jobkeeper/internal/client/images"
	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/logging"
	"github.com/dmitrijs2005/jobkeeper/internal/netx"
	"github.com/dmitrijs2005/jobkeeper/internal/validate"
)

// ClientService manages clients and their photos.
type ClientService interface {
	List(ctx context.Context) ([]models.Client, error)
	Get(ctx context.Context, id string) (models.Client, error)
	Create(ctx context.Context, c models.Client) (models.Client, error)
	Update(ctx context.Context, c models.Client) (models.Client, error)
	// Delete removes the client and its local photo.
	Delete(ctx context.Context, id string) error

	// SetPhoto stores a photo locally and, best effort, uploads it to
	// backend storage.
	SetPhoto(ctx context.Context, id string, src io.Reader, ext string) (string, error)
	PhotoURI(ctx context.Context, id string) (string, bool, error)
	DeletePhoto(ctx context.Context, id string) error
	// PurgePhotos removes every local photo file.
	PurgePhotos(ctx context.Context) (int, error)
}

// Uploader is the part of client.Client used for photo uploads.
type Uploader interface {
	UploadURL(ctx context.Context) (key, url string, err error)
}

type clientService struct {
	acc      *fallback.Accessor[models.Client]
	photos   *images.Store
	uploader Uploader
	http     *http.Client
	log      logging.Logger
	now      Clock
}

// defaultUploadTimeout bounds a presigned upload when no timeout is given.
const defaultUploadTimeout = 30 * time.Second

// NewClientService builds a ClientService. uploader may be nil in offline
// mode. uploadTimeout bounds the presigned PUT of a photo.
func NewClientService(acc *fallback.Accessor[models.Client], photos *images.Store, uploader Uploader, uploadTimeout time.Duration, log logging.Logger, now Clock) ClientService {
	if uploadTimeout <= 0 {
		uploadTimeout = defaultUploadTimeout
	}
	return &clientService{
		acc:      acc,
		photos:   photos,
		uploader: uploader,
		http:     &http.Client{Timeout: uploadTimeout},
		log:      log,
		now:      now,
	}
}

func (s *clientService) List(ctx context.Context) ([]models.Client, error) {
	return s.acc.List(ctx, "")
}

func (s *clientService) Get(ctx context.Context, id string) (models.Client, error) {
	c, ok, err := s.acc.Get(ctx, id)
	if err != nil {
		return models.Client{}, err
	}
	if !ok {
		return models.Client{}, fmt.Errorf("client %s: %w", id, common.ErrorNotFound)
	}
	return c, nil
}

func (s *clientService) Create(ctx context.Context, c models.Client) (models.Client, error) {
	if err := validate.Struct(c); err != nil {
		return models.Client{}, err
	}
	stamp(&c.ID, &c.CreatedAt, &c.UpdatedAt, s.now())
	return s.acc.Create(ctx, c)
}

func (s *clientService) Update(ctx context.Context, c models.Client) (models.Client, error) {
	if err := validate.Struct(c); err != nil {
		return models.Client{}, err
	}
	stamp(&c.ID, &c.CreatedAt, &c.UpdatedAt, s.now())
	return s.acc.Update(ctx, c)
}

func (s *clientService) Delete(ctx context.Context, id string) error {
	if err := s.acc.Delete(ctx, id); err != nil {
		return err
	}
	if s.photos == nil {
		return nil
	}
	if err := s.photos.Delete(ctx, id); err != nil {
		s.log.Warn(ctx, "photo cleanup failed", "client_id", id, "err", err)
	}
	return nil
}

func (s *clientService) SetPhoto(ctx context.Context, id string, src io.Reader, ext string) (string, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	ext = images.NormalizeExt(ext)

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}

	uri, err := s.photos.Save(ctx, id, bytes.NewReader(data), ext)
	if err != nil {
		return "", fmt.Errorf("save photo: %w", err)
	}

	if key, err := s.upload(ctx, data, ext); err != nil {
		s.log.Warn(ctx, "photo upload skipped", "client_id", id, "err", err)
	} else {
		c.ImageKey = key
		if _, err := s.Update(ctx, c); err != nil {
			s.log.Warn(ctx, "photo key not saved", "client_id", id, "err", err)
		}
	}

	return uri, nil
}

func (s *clientService) upload(ctx context.Context, data []byte, ext string) (string, error) {
	if s.uploader == nil {
		return "", client.ErrUnavailable
	}
	key, url, err := s.uploader.UploadURL(ctx)
	if err != nil {
		return "", err
	}
	if err := netx.UploadPresigned(ctx, s.http, url, mime.TypeByExtension(ext), bytes.NewReader(data)); err != nil {
		return "", err
	}
	return key, nil
}

func (s *clientService) PhotoURI(ctx context.Context, id string) (string, bool, error) {
	return s.photos.Lookup(ctx, id)
}

func (s *clientService) DeletePhoto(ctx context.Context, id string) error {
	return s.photos.Delete(ctx, id)
}

func (s *clientService) PurgePhotos(ctx context.Context) (int, error) {
	if s.photos == nil {
		return 0, nil
	}
	return s.photos.Purge(ctx)
}
