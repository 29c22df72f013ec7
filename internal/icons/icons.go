// Package icons writes uploaded action icons to public object storage.
package icons

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bizmatters/usdc-actions/internal/config"
)

// Store persists an icon and returns the public URL it is served from.
type Store interface {
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

var extensions = map[string]string{
	"image/jpeg":               "jpg",
	"image/png":                "png",
	"image/gif":                "gif",
	"image/webp":               "webp",
	"image/bmp":                "bmp",
	"image/x-icon":             "ico",
	"image/vnd.microsoft.icon": "ico",
}

// ObjectName returns a unique object name for an icon of the given
// content type uploaded at t.
func ObjectName(t time.Time, contentType string) string {
	ext, ok := extensions[contentType]
	if !ok {
		ext = "img"
	}
	return fmt.Sprintf("icon_%d_%s.%s", t.UnixMilli(), uuid.NewString(), ext)
}

// Open creates the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.IconsConfig) (Store, error) {
	switch cfg.Driver {
	case config.IconDriverLocal:
		return NewFileStore(cfg.Dir, cfg.PublicBaseURL)
	case config.IconDriverS3:
		return NewS3Store(ctx, S3StoreConfig{
			Bucket:          cfg.Bucket,
			Region:          cfg.Region,
			Endpoint:        cfg.Endpoint,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			PublicBaseURL:   cfg.PublicBaseURL,
		})
	default:
		return nil, fmt.Errorf("unknown icon driver %q", cfg.Driver)
	}
}
