package question

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DiskUploads keeps raw uploaded files in a directory.
type DiskUploads struct {
	dir string
}

var _ UploadStore = (*DiskUploads)(nil)

// NewDiskUploads creates dir if it does not exist yet.
func NewDiskUploads(dir string) (*DiskUploads, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskUploads{dir: dir}, nil
}

// Save writes data under a unique name derived from filename and returns the path.
func (u *DiskUploads) Save(filename string, data []byte) (string, error) {
	name := uuid.NewString() + "-" + safeBase(filename)
	path := filepath.Join(u.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func safeBase(filename string) string {
	base := filepath.Base(filepath.Clean("/" + filepath.ToSlash(filename)))
	if base == "/" || base == "." || base == "" {
		return "upload.txt"
	}
	return base
}
