package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"bookalink/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ObjectStorage stores a file under key and returns a publicly fetchable URL.
// Keys are never overwritten.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader) (string, error)
}

var ErrStorageDisabled = errors.New("object storage is not configured")

type cloudinaryStorageImpl struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewObjectStorage returns a Cloudinary-backed storage, or a storage that
// rejects every upload when no CLOUDINARY_URL is configured.
func NewObjectStorage(cfg *config.Cloudinary) (ObjectStorage, error) {
	if cfg.URL == "" {
		return disabledStorage{}, nil
	}

	cld, err := cloudinary.NewFromURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}

	return &cloudinaryStorageImpl{
		cld:    cld,
		folder: cfg.Folder,
	}, nil
}

func (s *cloudinaryStorageImpl) Upload(ctx context.Context, key string, body io.Reader) (string, error) {
	ext := path.Ext(key)

	result, err := s.cld.Upload.Upload(ctx, body, uploader.UploadParams{
		PublicID:       strings.TrimSuffix(key, ext),
		Folder:         s.folder,
		Format:         strings.TrimPrefix(ext, "."),
		ResourceType:   "image",
		Overwrite:      api.Bool(false),
		UniqueFilename: api.Bool(false),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", result.Error.Message)
	}

	return result.SecureURL, nil
}

type disabledStorage struct{}

func (disabledStorage) Upload(ctx context.Context, key string, body io.Reader) (string, error) {
	return "", ErrStorageDisabled
}
