package memstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/watson/pkg/watson/internalerr"
	"github.com/cognicore/watson/pkg/watson/store"
	"github.com/cognicore/watson/pkg/watson/story"
)

var _ store.Store = (*Store)(nil)

func TestStoriesAreCopied(t *testing.T) {
	ctx := context.Background()
	st := New()

	s, err := story.Default()
	require.NoError(t, err)
	require.NoError(t, st.SaveStory(ctx, "Manor", s))

	s.Title = "edited after save"
	loaded, err := st.LoadStory(ctx, "manor")
	require.NoError(t, err)
	assert.NotEqual(t, "edited after save", loaded.Title)

	names, err := st.ListStories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"manor"}, names)

	_, err = st.LoadStory(ctx, "abbey")
	assert.True(t, internalerr.Is(err, internalerr.ErrNotFound))
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	st := New()
	at := time.Now()

	// Appended out of order; IDs decide.
	for _, i := range []int{2, 0, 3, 1} {
		require.NoError(t, st.AppendMemory(ctx, store.MemoryEntry{
			ID:        fmt.Sprintf("01HX%02d", i),
			Character: "Countess",
			Input:     fmt.Sprintf("q%d", i),
			At:        at,
		}))
	}

	all, err := st.Memory(ctx, "countess", 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "q0", all[0].Input)
	assert.Equal(t, "q3", all[3].Input)

	last, err := st.Memory(ctx, "countess", 1)
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, "q3", last[0].Input)

	require.NoError(t, st.TrimMemory(ctx, "countess", 2))
	all, err = st.Memory(ctx, "countess", 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "q2", all[0].Input)

	// A trimmed ID may be reused.
	require.NoError(t, st.AppendMemory(ctx, store.MemoryEntry{ID: "01HX00", Character: "countess", At: at}))
	err = st.AppendMemory(ctx, store.MemoryEntry{ID: "01HX00", Character: "countess", At: at})
	assert.True(t, internalerr.Is(err, internalerr.ErrDuplicate))

	none, err := st.Memory(ctx, "butler", 5)
	require.NoError(t, err)
	assert.Empty(t, none)
}
