package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cognicore/watson/pkg/watson/internalerr"
	"github.com/cognicore/watson/pkg/watson/store"
	"github.com/cognicore/watson/pkg/watson/story"
)

// Store is an in-memory implementation of store.Store for tests and
// one-shot runs.
type Store struct {
	mu      sync.RWMutex
	stories map[string][]byte
	memory  map[string][]store.MemoryEntry
	ids     map[string]bool
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		stories: make(map[string][]byte),
		memory:  make(map[string][]store.MemoryEntry),
		ids:     make(map[string]bool),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveStory stores an encoded copy so later edits to st are not visible.
func (s *Store) SaveStory(ctx context.Context, name string, st *story.Story) error {
	name = normalize(name)
	if name == "" {
		return internalerr.Wrap(internalerr.ErrInvalidInput, "story name is empty")
	}
	body, err := st.Encode()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stories[name] = body
	return nil
}

// LoadStory returns a fresh copy of the named story.
func (s *Store) LoadStory(ctx context.Context, name string) (*story.Story, error) {
	s.mu.RLock()
	body, ok := s.stories[normalize(name)]
	s.mu.RUnlock()

	if !ok {
		return nil, internalerr.Wrapf(internalerr.ErrNotFound, "story %q", name)
	}
	return story.Decode(body)
}

// ListStories returns stored story names in order.
func (s *Store) ListStories(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.stories))
	for name := range s.stories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// AppendMemory records one exchange.
func (s *Store) AppendMemory(ctx context.Context, e store.MemoryEntry) error {
	character := normalize(e.Character)
	if e.ID == "" || character == "" {
		return internalerr.Wrap(internalerr.ErrInvalidInput, "memory entry needs an id and a character")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ids[e.ID] {
		return internalerr.Wrapf(internalerr.ErrDuplicate, "memory %s", e.ID)
	}
	s.ids[e.ID] = true
	e.Character = character
	entries := append(s.memory[character], e)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	s.memory[character] = entries
	return nil
}

// Memory returns the character's most recent exchanges, oldest first.
func (s *Store) Memory(ctx context.Context, character string, limit int) ([]store.MemoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.memory[normalize(character)]
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	if len(entries) == 0 {
		return nil, nil
	}
	out := make([]store.MemoryEntry, len(entries))
	copy(out, entries)
	return out, nil
}

// TrimMemory keeps only the character's keep most recent exchanges.
func (s *Store) TrimMemory(ctx context.Context, character string, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := normalize(character)
	entries := s.memory[name]
	if keep < 0 {
		keep = 0
	}
	if len(entries) <= keep {
		return nil
	}
	for _, e := range entries[:len(entries)-keep] {
		delete(s.ids, e.ID)
	}
	s.memory[name] = append([]store.MemoryEntry(nil), entries[len(entries)-keep:]...)
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
