// Package local persists the small amount of state that survives process
// restarts: the name of the last selected provider.
package local

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Service is the persistence collaborator of the session manager. The
// stored value is the selected provider name, or empty for none.
type Service interface {
	// GetSelectedProvider returns the persisted provider name, empty when
	// nothing was persisted yet.
	GetSelectedProvider(ctx context.Context) (string, error)

	// SetSelectedProvider persists name. An empty name clears the value.
	SetSelectedProvider(ctx context.Context, name string) error
}

type document struct {
	SelectedProvider string `json:"selectedProvider"`
}

// FileService stores the document as JSON under the data directory.
type FileService struct {
	mu   sync.Mutex
	path string
}

var _ Service = (*FileService)(nil)

// NewFileService creates the data directory if needed.
func NewFileService(dataDir string) (*FileService, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, errors.Wrap(err, "failed to create data directory")
	}
	return &FileService{path: filepath.Join(dataDir, "session.json")}, nil
}

func (s *FileService) GetSelectedProvider(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrap(err, "failed to read session file")
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", errors.Wrap(err, "failed to parse session file")
	}

	return doc.SelectedProvider, nil
}

func (s *FileService) SetSelectedProvider(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(document{SelectedProvider: name})
	if err != nil {
		return errors.Wrap(err, "failed to marshal session file")
	}

	// Write-then-rename so a crash never leaves a torn file behind.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return errors.Wrap(err, "failed to write session file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "failed to replace session file")
	}

	return nil
}

// MemoryService is the in-memory Service used by tests.
type MemoryService struct {
	mu       sync.Mutex
	selected string
}

var _ Service = (*MemoryService)(nil)

func NewMemoryService() *MemoryService {
	return &MemoryService{}
}

func (s *MemoryService) GetSelectedProvider(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, nil
}

func (s *MemoryService) SetSelectedProvider(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = name
	return nil
}
