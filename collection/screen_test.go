package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	items     []note
	fetchErr  error
	createErr error
	deleteErr error

	created   []note
	deleted   []int64
	createdID int64 // when non-zero, Create assigns this id
}

func (f *fakeSource) FetchAll(ctx context.Context) ([]note, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.items, nil
}

func (f *fakeSource) Create(ctx context.Context, n note) (note, error) {
	if f.createErr != nil {
		return note{}, f.createErr
	}
	if f.createdID != 0 {
		n.ID = f.createdID
	}
	f.created = append(f.created, n)
	return n, nil
}

func (f *fakeSource) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type recordedAlert struct {
	title, message string
}

type fakeNotifier struct {
	alerts []recordedAlert
}

func (f *fakeNotifier) Alert(_ context.Context, title, message string) {
	f.alerts = append(f.alerts, recordedAlert{title, message})
}

var noteQuery = Query[note]{
	SearchFields: func(n note) []string { return []string{n.Title} },
}

func newNoteForm() *Form[note] {
	return NewForm(FormSpec[note]{
		Required: []string{"title"},
		Build:    func(v map[string]string) note { return note{Title: v["title"]} },
	})
}

func newNoteScreen(src *fakeSource, notify *fakeNotifier) *Screen[note] {
	return NewScreen[note](src, newNoteStore(), noteQuery, newNoteForm(), notify)
}

func TestScreenLoadMovesToReady(t *testing.T) {
	src := &fakeSource{items: []note{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}}
	screen := newNoteScreen(src, &fakeNotifier{})

	require.Equal(t, PhaseLoading, screen.Phase())
	require.NoError(t, screen.Load(context.Background()))

	assert.Equal(t, PhaseReady, screen.Phase())
	assert.Equal(t, 2, screen.Store().Len())
}

func TestScreenLoadWithCancelledContextMutatesNothing(t *testing.T) {
	src := &fakeSource{items: []note{{ID: 1, Title: "a"}}}
	notify := &fakeNotifier{}
	screen := newNoteScreen(src, notify)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := screen.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, PhaseLoading, screen.Phase())
	assert.Equal(t, 0, screen.Store().Len())
	assert.Empty(t, notify.alerts)
}

func TestScreenLoadFailureAlertsAndAllowsRetry(t *testing.T) {
	src := &fakeSource{fetchErr: errors.New("boom")}
	notify := &fakeNotifier{}
	screen := newNoteScreen(src, notify)

	require.Error(t, screen.Load(context.Background()))
	assert.Equal(t, PhaseLoading, screen.Phase())
	require.Len(t, notify.alerts, 1)
	assert.Equal(t, "Erreur", notify.alerts[0].title)
	assert.Equal(t, "Impossible de charger les données", notify.alerts[0].message)

	src.fetchErr = nil
	src.items = []note{{ID: 1, Title: "a"}}
	require.NoError(t, screen.Load(context.Background()))
	assert.Equal(t, PhaseReady, screen.Phase())
}

func TestScreenOnlyOneFormAtATime(t *testing.T) {
	screen := newNoteScreen(&fakeSource{}, &fakeNotifier{})

	require.NoError(t, screen.BeginAdd(nil))
	assert.ErrorIs(t, screen.BeginAdd(nil), ErrEditing)

	screen.CancelEdit()
	assert.NoError(t, screen.BeginAdd(nil))
}

func TestScreenCommitAddValidationFailureKeepsFormOpen(t *testing.T) {
	notify := &fakeNotifier{}
	screen := newNoteScreen(&fakeSource{}, notify)

	require.NoError(t, screen.BeginAdd(nil))
	_, err := screen.CommitAdd(context.Background())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ModeEditing, screen.Mode())
	assert.Equal(t, 0, screen.Store().Len())
	require.Len(t, notify.alerts, 1)
	assert.Contains(t, notify.alerts[0].message, "title")
}

func TestScreenCommitAddInsertsAndPushes(t *testing.T) {
	src := &fakeSource{}
	screen := newNoteScreen(src, &fakeNotifier{})

	require.NoError(t, screen.BeginAdd(nil))
	screen.SetField("title", "Sortie scolaire")

	created, err := screen.CommitAdd(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ModeBrowsing, screen.Mode())
	assert.Equal(t, 1, screen.Store().Len())
	require.Len(t, src.created, 1)
	assert.Equal(t, created.ID, src.created[0].ID)
}

func TestScreenCommitAddKeepsLocalInsertOnSourceFailure(t *testing.T) {
	src := &fakeSource{createErr: errors.New("backend down")}
	notify := &fakeNotifier{}
	screen := newNoteScreen(src, notify)

	require.NoError(t, screen.BeginAdd(nil))
	screen.SetField("title", "hors ligne")

	_, err := screen.CommitAdd(context.Background())
	require.NoError(t, err, "a source failure is surfaced, not returned")

	assert.Equal(t, 1, screen.Store().Len())
	require.Len(t, notify.alerts, 1)
	assert.Equal(t, "Impossible d'enregistrer côté serveur", notify.alerts[0].message)
}

func TestScreenCommitAddReconcilesBackendID(t *testing.T) {
	src := &fakeSource{createdID: 99}
	screen := newNoteScreen(src, &fakeNotifier{})

	require.NoError(t, screen.BeginAdd(nil))
	screen.SetField("title", "renuméroté")

	created, err := screen.CommitAdd(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(99), created.ID)
	assert.Equal(t, 1, screen.Store().Len())
	_, ok := screen.Store().Get(99)
	assert.True(t, ok)
}

func TestScreenDeleteNeedsConfirmation(t *testing.T) {
	src := &fakeSource{items: []note{{ID: 1, Title: "à supprimer"}}}
	screen := newNoteScreen(src, &fakeNotifier{})
	require.NoError(t, screen.Load(context.Background()))

	item, ok := screen.RequestDelete(1)
	require.True(t, ok)
	assert.Equal(t, "à supprimer", item.Title)
	assert.Equal(t, 1, screen.Store().Len(), "requesting must not mutate")

	require.NoError(t, screen.ConfirmDelete(context.Background()))
	assert.Equal(t, 0, screen.Store().Len())
	assert.Equal(t, []int64{1}, src.deleted)
}

func TestScreenCancelDeleteMutatesNothing(t *testing.T) {
	src := &fakeSource{items: []note{{ID: 1, Title: "gardé"}}}
	screen := newNoteScreen(src, &fakeNotifier{})
	require.NoError(t, screen.Load(context.Background()))

	_, ok := screen.RequestDelete(1)
	require.True(t, ok)
	screen.CancelDelete()

	assert.ErrorIs(t, screen.ConfirmDelete(context.Background()), ErrNoPendingDelete)
	assert.Equal(t, 1, screen.Store().Len())
	assert.Empty(t, src.deleted)
}

func TestScreenSearchAndFilterProjection(t *testing.T) {
	src := &fakeSource{items: []note{
		{ID: 1, Title: "Réunion rentrée"},
		{ID: 2, Title: "Conseil de classe"},
		{ID: 3, Title: "Réunion parents"},
	}}
	screen := newNoteScreen(src, &fakeNotifier{})
	require.NoError(t, screen.Load(context.Background()))

	screen.SetSearch("réunion")
	visible := screen.Visible()
	require.Len(t, visible, 2)

	screen.SetSearch("")
	assert.Len(t, screen.Visible(), 3)

	screen.SetFilter("")
	assert.Equal(t, FilterAll, screen.Filter(), "an empty filter falls back to all")
}

// The full add-and-find path: load, search, add through the form, search
// again and see the new entity.
func TestScreenAddThenSearchEndToEnd(t *testing.T) {
	src := &fakeSource{items: []note{
		{ID: 1, Title: "6ème A"},
		{ID: 2, Title: "5ème B"},
		{ID: 3, Title: "3ème A"},
	}}
	screen := newNoteScreen(src, &fakeNotifier{})
	require.NoError(t, screen.Load(context.Background()))

	screen.SetSearch("3ème")
	require.Len(t, screen.Visible(), 1)

	require.NoError(t, screen.BeginAdd(nil))
	screen.SetField("title", "3ème C")
	_, err := screen.CommitAdd(context.Background())
	require.NoError(t, err)

	visible := screen.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, "3ème C", visible[1].Title)
}

func TestScreenValidationAlertUsesFieldLabels(t *testing.T) {
	notify := &fakeNotifier{}
	form := NewForm(FormSpec[note]{
		Required: []string{"title"},
		Labels:   map[string]string{"title": "titre"},
		Build:    func(v map[string]string) note { return note{Title: v["title"]} },
	})
	screen := NewScreen[note](&fakeSource{}, newNoteStore(), noteQuery, form, notify)
	require.NoError(t, screen.Load(context.Background()))

	require.NoError(t, screen.BeginAdd(nil))
	_, err := screen.CommitAdd(context.Background())
	require.Error(t, err)

	require.Len(t, notify.alerts, 1)
	assert.Contains(t, notify.alerts[0].message, "titre")
	assert.NotContains(t, notify.alerts[0].message, "title")
}
