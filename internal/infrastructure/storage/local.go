package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrFileNotFound = errors.New("file not found")

// PrescriptionFolder holds medical documents. They are streamed through an
// authenticated route and never served from the public upload path.
const PrescriptionFolder = "prescriptions"

// IsPrivate reports whether a path relative to the upload dir must stay off the public file server
func IsPrivate(rel string) bool {
	clean := strings.TrimPrefix(path.Clean("/"+rel), "/")
	return clean == PrescriptionFolder || strings.HasPrefix(clean, PrescriptionFolder+"/")
}

// FileStorage persists uploaded files and returns their URL
type FileStorage interface {
	Save(ctx context.Context, folder, extension string, content []byte) (string, error)
	Open(ctx context.Context, url string) (*StoredFile, error)
	Delete(ctx context.Context, url string) error
}

// StoredFile is an open upload; the caller closes it
type StoredFile struct {
	io.ReadSeekCloser
	Name    string
	ModTime time.Time
}

// LocalStorage writes files under a directory served at baseURL
type LocalStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save stores the content under folder/YYYY/MM with a random name
func (s *LocalStorage) Save(ctx context.Context, folder, extension string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	rel := path.Join(folder, now.Format("2006"), now.Format("01"), uuid.NewString()+extension)
	full := filepath.Join(s.dir, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create folder: %w", err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return s.baseURL + "/" + rel, nil
}

// Open returns a file previously returned by Save
func (s *LocalStorage) Open(ctx context.Context, url string) (*StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, ok := s.resolve(url)
	if !ok {
		return nil, ErrFileNotFound
	}

	f, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, ErrFileNotFound
	}
	return &StoredFile{ReadSeekCloser: f, Name: info.Name(), ModTime: info.ModTime()}, nil
}

// Delete removes a file previously returned by Save. Unknown URLs are ignored.
func (s *LocalStorage) Delete(ctx context.Context, url string) error {
	full, ok := s.resolve(url)
	if !ok {
		return nil
	}

	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// resolve maps a URL under baseURL to a path that cannot leave the upload dir
func (s *LocalStorage) resolve(url string) (string, bool) {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	rel := path.Clean("/" + strings.TrimPrefix(url, prefix))
	return filepath.Join(s.dir, filepath.FromSlash(rel)), true
}

func (s *LocalStorage) Dir() string {
	return s.dir
}
