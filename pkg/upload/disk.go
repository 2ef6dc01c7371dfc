package upload

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// DiskStore stores images on the local filesystem.
type DiskStore struct {
	dir     string
	baseURL string
	maxSize int64

	mu    sync.RWMutex
	files map[string]*Image
}

// NewDiskStore creates a DiskStore rooted at dir. Stored images are
// addressed as baseURL + "/" + id. maxSize 0 means no limit.
func NewDiskStore(dir, baseURL string, maxSize int64) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{
		dir:     dir,
		baseURL: baseURL,
		maxSize: maxSize,
		files:   make(map[string]*Image),
	}, nil
}

// Save implements Store.
func (s *DiskStore) Save(filename, contentType string, size int64, r io.Reader) (*Image, error) {
	if s.maxSize > 0 && size > s.maxSize {
		return nil, ErrTooLarge
	}

	id := generateID()
	path := filepath.Join(s.dir, id)

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = r
	if s.maxSize > 0 {
		reader = io.LimitReader(r, s.maxSize+1) // +1 to detect overflow
	}
	written, err := io.Copy(f, reader)
	if err != nil {
		os.Remove(path)
		return nil, err
	}
	if s.maxSize > 0 && written > s.maxSize {
		os.Remove(path)
		return nil, ErrTooLarge
	}

	img := &Image{
		ID:          id,
		Filename:    filename,
		ContentType: contentType,
		Size:        written,
		URL:         s.baseURL + "/" + id,
	}
	s.mu.Lock()
	s.files[id] = img
	s.mu.Unlock()
	return img, nil
}

// Open implements Store.
func (s *DiskStore) Open(id string) (io.ReadCloser, error) {
	s.mu.RLock()
	_, known := s.files[id]
	s.mu.RUnlock()
	if !known {
		return nil, ErrNotFound
	}
	f, err := os.Open(filepath.Join(s.dir, id))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return f, err
}

// Delete implements Store.
func (s *DiskStore) Delete(id string) error {
	s.mu.Lock()
	_, known := s.files[id]
	delete(s.files, id)
	s.mu.Unlock()
	if !known {
		return ErrNotFound
	}
	err := os.Remove(filepath.Join(s.dir, id))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// generateID returns a random hex storage key.
func generateID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
