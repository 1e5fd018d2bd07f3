package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"job-portal/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

var ErrNotConfigured = errors.New("file hosting is not configured")

type Uploader interface {
	// Upload stores f under folder and returns its public https URL.
	Upload(ctx context.Context, f File, folder string) (string, error)
}

type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	root   string
	logger *log.Logger
}

// NewUploader returns a Cloudinary uploader, or one that always fails with
// ErrNotConfigured when CLOUDINARY_URL is empty.
func NewUploader(cfg config.CloudinaryConfig, logger *log.Logger) (Uploader, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		if logger != nil {
			logger.Printf("[Storage] CLOUDINARY_URL not set, uploads disabled")
		}
		return disabledUploader{}, nil
	}

	cld, err := cloudinary.NewFromURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	return &Cloudinary{cld: cld, root: strings.Trim(cfg.Folder, "/"), logger: logger}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, f File, folder string) (string, error) {
	if len(f.Data) == 0 {
		return "", ErrEmptyFile
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	started := time.Now()
	res, err := c.cld.Upload.Upload(ctx, bytes.NewReader(f.Data), uploader.UploadParams{
		Folder:       path.Join(c.root, folder),
		PublicID:     uuid.NewString(),
		ResourceType: "auto",
		Overwrite:    api.Bool(false),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	if c.logger != nil {
		c.logger.Printf("[Storage] uploaded folder=%s mime=%s bytes=%d took=%s", folder, f.MIME, len(f.Data), time.Since(started))
	}
	return res.SecureURL, nil
}

type disabledUploader struct{}

func (disabledUploader) Upload(context.Context, File, string) (string, error) {
	return "", ErrNotConfigured
}
