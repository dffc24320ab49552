package assembly

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/cabledraw/pkg/errors"
	"github.com/matzehuels/cabledraw/pkg/schema"
)

// FileStore keeps one JSON schema per assembly in a directory
// (<dir>/<assembly_id>.json). Files dropped into the directory by hand are
// picked up on the next Get.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store rooted at baseDir, creating it if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		return nil, errors.New(errors.ErrCodeInvalidPath, "assembly directory cannot be empty")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create assembly dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) path(id string) (string, error) {
	if err := errors.ValidatePathSegment("assembly id", id); err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, id+".json"), nil
}

func (s *FileStore) Get(_ context.Context, id string) (*schema.Assembly, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssemblyNotFound, err, "assembly %q not found", id)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	a, err := schema.ReadFile(path)
	if errors.Is(err, errors.ErrCodeNotFound) {
		return nil, errors.New(errors.ErrCodeAssemblyNotFound, "assembly %q not found", id)
	}
	if err != nil {
		return nil, err
	}
	if a.AssemblyID == "" {
		a.AssemblyID = id
	}
	return a, nil
}

func (s *FileStore) Put(_ context.Context, a *schema.Assembly) error {
	if a == nil || a.AssemblyID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "assembly id is required")
	}
	path, err := s.path(a.AssemblyID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal assembly: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write assembly file: %w", err)
	}
	return nil
}

// List returns the stored assembly ids in lexical order.
func (s *FileStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read assembly dir: %w", err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}
