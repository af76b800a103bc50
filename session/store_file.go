package session

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// FileStore keeps one JSON document per key under a directory. It is the
// durable backend used by the CLI; reads tolerate a missing directory and
// corrupt files by reporting the value absent.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file-backed store rooted at dir. The directory
// is created lazily on the first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Get(key string) []byte {
	if key == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil
	}
	return data
}

func (s *FileStore) Set(key string, value []byte) error {
	if key == "" {
		return errors.New("[FileStore.Set] key cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return errors.Wrap(err, "[FileStore.Set] create data folder")
	}
	if err := os.WriteFile(s.path(key), value, 0o600); err != nil {
		return errors.Wrap(err, "[FileStore.Set] write value")
	}
	return nil
}

func (s *FileStore) Remove(key string) error {
	if key == "" {
		return errors.New("[FileStore.Remove] key cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileStore.Remove] remove value")
	}
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
