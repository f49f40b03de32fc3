package kvstore

import (
	"context"
	"errors"
	"path"

	"github.com/shashiranjanraj/qrmenu/pkg/storage"
)

type diskStore struct {
	disk storage.Disk
	dir  string
}

// NewDisk keeps each key as <dir>/<key>.json on disk.
func NewDisk(disk storage.Disk, dir string) Store {
	return &diskStore{disk: disk, dir: dir}
}

func (d *diskStore) path(key string) string {
	return path.Join(d.dir, key+".json")
}

func (d *diskStore) Get(ctx context.Context, key string) (string, bool, error) {
	data, err := d.disk.Get(ctx, d.path(key))
	if errors.Is(err, storage.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

func (d *diskStore) Set(ctx context.Context, key, value string) error {
	return d.disk.Put(ctx, d.path(key), []byte(value))
}

func (d *diskStore) Delete(ctx context.Context, key string) error {
	return d.disk.Delete(ctx, d.path(key))
}

func (d *diskStore) Driver() string { return "disk:" + d.disk.Name() }
func (d *diskStore) Close() error   { return nil }
