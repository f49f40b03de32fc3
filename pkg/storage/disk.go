// Package storage is the file store behind image uploads and the "disk"
// menu-store driver.
//
// Two drivers are available: "local" (the default) keeps files on the
// local filesystem, "s3" writes to S3-compatible object storage.
//
//	disk, err := storage.Open(ctx, config.StorageDefault())
//	err = disk.Put(ctx, "uploads/logo.png", data)
//	url := disk.URL("uploads/logo.png")
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/qrmenu/config"
)

// ErrNotExist is returned by Get when no object is stored at path.
var ErrNotExist = errors.New("storage: object does not exist")

// Disk is the interface every driver implements.
type Disk interface {
	// Put writes content to path, replacing any existing object.
	Put(ctx context.Context, path string, content []byte) error

	// Get returns the object at path, or an error wrapping ErrNotExist.
	Get(ctx context.Context, path string) ([]byte, error)

	Exists(ctx context.Context, path string) (bool, error)

	// Delete removes path. Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string

	// Name is the driver name, used in metrics labels.
	Name() string
}

// Open builds the named disk from configuration.
func Open(ctx context.Context, name string) (Disk, error) {
	switch name {
	case "local", "":
		return NewLocal(config.StorageLocalRoot(), config.StorageURL())
	case "s3":
		return NewS3(ctx, S3Options{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
			BaseURL:  config.StorageS3URL(),
		})
	default:
		return nil, fmt.Errorf("storage: unknown disk %q (supported: local, s3)", name)
	}
}
