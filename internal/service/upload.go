package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"bookalink/internal/apperr"
	"bookalink/internal/client"
	"bookalink/internal/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const MaxImageSize = 5 << 20

type ImageFile struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type UploadService interface {
	// Upload stores an image under a fresh key and returns its public URL.
	Upload(ctx context.Context, file ImageFile) (string, error)
	// Replace uploads file as the successor of current. On any failure it
	// returns current alongside the error.
	Replace(ctx context.Context, current string, file ImageFile) (string, error)
}

type uploadServiceImpl struct {
	storage client.ObjectStorage
	log     logrus.FieldLogger
}

func NewUploadService(storage client.ObjectStorage, log logrus.FieldLogger) UploadService {
	return &uploadServiceImpl{
		storage: storage,
		log:     log,
	}
}

// ValidateImage rejects non-image MIME types and files over MaxImageSize.
func ValidateImage(file ImageFile) error {
	if !strings.HasPrefix(strings.ToLower(file.ContentType), "image/") {
		return fmt.Errorf("%q: %w", file.ContentType, apperr.ErrInvalidType)
	}
	if file.Size > MaxImageSize {
		return fmt.Errorf("%d bytes exceeds %d: %w", file.Size, MaxImageSize, apperr.ErrTooLarge)
	}
	return nil
}

// ImageKey is a random key that keeps the original file extension.
func ImageKey(file ImageFile) string {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		sub := strings.TrimPrefix(strings.ToLower(file.ContentType), "image/")
		if i := strings.IndexAny(sub, "+;"); i >= 0 {
			sub = sub[:i]
		}
		if sub != "" {
			ext = "." + sub
		}
	}
	return uuid.NewString() + ext
}

func (s *uploadServiceImpl) Upload(ctx context.Context, file ImageFile) (string, error) {
	if err := ValidateImage(file); err != nil {
		metrics.Uploads.WithLabelValues("rejected").Inc()
		return "", err
	}

	key := ImageKey(file)
	url, err := s.storage.Upload(ctx, key, file.Body)
	if err != nil {
		metrics.Uploads.WithLabelValues("failed").Inc()
		s.log.WithError(err).WithField("key", key).Warn("image upload failed")
		return "", apperr.Storage("upload image", err)
	}

	metrics.Uploads.WithLabelValues("ok").Inc()
	return url, nil
}

func (s *uploadServiceImpl) Replace(ctx context.Context, current string, file ImageFile) (string, error) {
	url, err := s.Upload(ctx, file)
	if err != nil {
		return current, err
	}
	return url, nil
}
