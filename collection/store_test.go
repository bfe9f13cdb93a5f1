package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID    int64
	Title string
}

func newNoteStore() *Store[note] {
	return NewStore(
		func(n note) int64 { return n.ID },
		func(n note, id int64) note { n.ID = id; return n },
	)
}

func TestStoreInsertAssignsIDs(t *testing.T) {
	s := newNoteStore()

	a := s.Insert(note{Title: "a"})
	b := s.Insert(note{Title: "b"})

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
	assert.Equal(t, 2, s.Len())
}

func TestStoreLoadAdvancesCounter(t *testing.T) {
	s := newNoteStore()
	s.Load([]note{{ID: 3, Title: "seeded"}, {ID: 7, Title: "seeded too"}})

	inserted := s.Insert(note{Title: "fresh"})
	assert.Equal(t, int64(8), inserted.ID)
}

func TestStoreIDNeverReusedAfterDelete(t *testing.T) {
	s := newNoteStore()
	a := s.Insert(note{Title: "a"})
	s.Insert(note{Title: "b"})

	s.Remove(a.ID)
	c := s.Insert(note{Title: "c"})

	assert.NotEqual(t, a.ID, c.ID, "a removed id must not be handed out again")

	seen := map[int64]bool{}
	for _, n := range s.Items() {
		require.False(t, seen[n.ID], "duplicate id %d", n.ID)
		seen[n.ID] = true
	}
}

func TestStoreRemoveIsIdempotent(t *testing.T) {
	s := newNoteStore()
	a := s.Insert(note{Title: "a"})

	s.Remove(a.ID)
	s.Remove(a.ID)
	s.Remove(999)

	assert.Equal(t, 0, s.Len())
}

func TestStorePrependPutsNewestFirst(t *testing.T) {
	s := newNoteStore()
	s.Insert(note{Title: "old"})
	s.Prepend(note{Title: "new"})

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].Title)
	assert.Equal(t, "old", items[1].Title)
}

func TestStoreUpdatePatchesInPlace(t *testing.T) {
	s := newNoteStore()
	a := s.Insert(note{Title: "before"})

	s.Update(a.ID, func(n note) note {
		n.Title = "after"
		return n
	})

	got, ok := s.Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, "after", got.Title)
}

func TestStoreItemsReturnsACopy(t *testing.T) {
	s := newNoteStore()
	s.Insert(note{Title: "original"})

	items := s.Items()
	items[0].Title = "mutated"

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, "original", got.Title)
}

func TestStoreInsertKeepsBackendID(t *testing.T) {
	s := newNoteStore()
	inserted := s.Insert(note{ID: 42, Title: "from backend"})

	assert.Equal(t, int64(42), inserted.ID)

	next := s.Insert(note{Title: "local"})
	assert.Equal(t, int64(43), next.ID)
}
