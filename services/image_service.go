package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront-api/metrics"
	"github.com/storefront-api/storage"
)

const imageKeyPrefix = "images/"

// ErrStorageDisabled is returned when no object store is configured
var ErrStorageDisabled = errors.New("image storage is not configured")

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageService uploads product and store images to object storage. The
// returned URL is what clients put into imageUrl fields.
type ImageService struct {
	store    storage.ObjectStorage
	maxBytes int64
	urlBase  string
}

// NewImageService creates an image service; store may be nil to disable uploads
func NewImageService(store storage.ObjectStorage, maxBytes int64, urlBase string) *ImageService {
	return &ImageService{store: store, maxBytes: maxBytes, urlBase: strings.TrimRight(urlBase, "/")}
}

// Enabled reports whether an object store is configured. A nil service is disabled.
func (s *ImageService) Enabled() bool {
	return s != nil && s.store != nil
}

// Upload validates and stores an image, returning its object key and URL
func (s *ImageService) Upload(ctx context.Context, r io.Reader, size int64) (string, string, error) {
	if s.store == nil {
		return "", "", ErrStorageDisabled
	}
	if size > s.maxBytes {
		metrics.ObserveImageUpload("rejected")
		return "", "", NewValidationError("file", fmt.Sprintf("image must be at most %d bytes", s.maxBytes))
	}

	// Content type is sniffed from the bytes, not trusted from the client.
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", "", err
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	ext, ok := imageExtensions[contentType]
	if !ok {
		metrics.ObserveImageUpload("rejected")
		return "", "", NewValidationError("file", "unsupported image type "+contentType)
	}

	key := imageKeyPrefix + uuid.NewString() + ext
	body := io.MultiReader(bytes.NewReader(head), r)
	if err := s.store.Put(ctx, key, body, size, contentType); err != nil {
		metrics.ObserveImageUpload("error")
		return "", "", fmt.Errorf("failed to store image: %w", err)
	}

	metrics.ObserveImageUpload("success")
	return key, s.urlBase + "/" + key, nil
}

// Open returns a stored image by key
func (s *ImageService) Open(ctx context.Context, key string) (*storage.Object, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if !strings.HasPrefix(key, imageKeyPrefix) {
		return nil, notFound("image")
	}

	obj, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, notFound("image")
		}
		return nil, err
	}
	return obj, nil
}
