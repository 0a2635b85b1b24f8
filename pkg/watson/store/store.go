package store

import (
	"context"
	"time"

	"github.com/cognicore/watson/pkg/watson/story"
)

// Store persists authored stories and what each character has been asked.
type Store interface {
	Close() error

	// Stories
	SaveStory(ctx context.Context, name string, s *story.Story) error
	LoadStory(ctx context.Context, name string) (*story.Story, error)
	ListStories(ctx context.Context) ([]string, error)

	// Memory
	AppendMemory(ctx context.Context, e MemoryEntry) error
	Memory(ctx context.Context, character string, limit int) ([]MemoryEntry, error)
	TrimMemory(ctx context.Context, character string, keep int) error
}

// MemoryEntry is one exchange with a character. IDs are ULIDs, so sorting
// by ID sorts by time.
type MemoryEntry struct {
	ID        string
	Character string
	Input     string
	Response  string
	Matcher   string
	At        time.Time
}
