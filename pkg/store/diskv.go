package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

const tempDirName = ".tmp"

// Disk stores each collection as a file named after its key.
type Disk struct {
	d        *diskv.Diskv
	basePath string
}

// OpenDisk returns a diskv-backed store rooted at basePath.
func OpenDisk(basePath string) (*Disk, error) {
	if basePath == "" {
		return nil, errors.New("store: disk base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Disk{
		d: diskv.New(diskv.Options{
			BasePath: basePath,
			TempDir:  filepath.Join(basePath, tempDirName),
			// Another process may rewrite a key at any time; always read
			// through to disk.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
	}, nil
}

// BasePath is the directory holding the collection files.
func (p *Disk) BasePath() string {
	return p.basePath
}

func (p *Disk) Read(_ context.Context, key Key) ([]byte, error) {
	val, err := p.d.Read(string(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotExist
		}
		return nil, err
	}
	return val, nil
}

func (p *Disk) Write(_ context.Context, key Key, data []byte) error {
	return p.d.Write(string(key), data)
}

func (p *Disk) Close() error {
	return nil
}
