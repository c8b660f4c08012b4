package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// Store is the seam to the media host. DiskStore is the local implementation;
// a hosted backend (S3, Cloudinary, ...) plugs in behind the same interface.
type Store interface {
	// Save stores the content and returns an opaque reference that doubles
	// as the public URL path of the stored object.
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	// Remove deletes a previously stored object. Removing a reference that
	// no longer exists is not an error.
	Remove(ctx context.Context, ref string) error
}

// DiskStore stores media files in a local directory served under /uploads/.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed and returns a store
// over it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory files are stored in, for static serving.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save writes the content under a fresh uuid filename, keeping only the
// extension of the uploaded name.
func (s *DiskStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	filename := uuid.NewString() + filepath.Ext(name)

	f, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("creating media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing media file: %w", err)
	}

	return "/uploads/" + filename, nil
}

// Remove deletes the file a reference points to.
func (s *DiskStore) Remove(ctx context.Context, ref string) error {
	// References are URL paths; only the final element maps to a file, so a
	// crafted ref cannot escape the upload directory.
	err := os.Remove(filepath.Join(s.dir, path.Base(ref)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
