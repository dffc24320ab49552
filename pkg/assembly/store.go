// Package assembly looks up stored assembly schemas by id.
//
// Assembly business data belongs to the design portal; this package only
// reads what it needs to render. [MemoryStore] serves tests, [FileStore] keeps
// schemas as JSON files for single-host use, and [MongoStore] reads the
// portal's "assemblies" collection.
package assembly

import (
	"context"
	"sync"

	"github.com/matzehuels/cabledraw/pkg/errors"
	"github.com/matzehuels/cabledraw/pkg/schema"
)

// Store resolves assembly ids to schemas.
type Store interface {
	// Get returns the schema for id, or ASSEMBLY_NOT_FOUND.
	Get(ctx context.Context, id string) (*schema.Assembly, error)

	// Put stores s under its assembly id.
	Put(ctx context.Context, s *schema.Assembly) error
}

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	mu         sync.RWMutex
	assemblies map[string]*schema.Assembly
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store preloaded with the given schemas.
func NewMemoryStore(seed ...*schema.Assembly) *MemoryStore {
	s := &MemoryStore{assemblies: make(map[string]*schema.Assembly)}
	for _, a := range seed {
		s.assemblies[a.AssemblyID] = a
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, id string) (*schema.Assembly, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assemblies[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeAssemblyNotFound, "assembly %q not found", id)
	}
	return a, nil
}

func (s *MemoryStore) Put(_ context.Context, a *schema.Assembly) error {
	if a == nil || a.AssemblyID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "assembly id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assemblies[a.AssemblyID] = a
	return nil
}
