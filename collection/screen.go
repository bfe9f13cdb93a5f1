package collection

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Phase is the outer screen state: Loading until the first fetch resolves,
// Ready after.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
)

// Mode is the Ready sub-state: Browsing the list, or Editing with exactly
// one form open. Both are views onto the same store.
type Mode int

const (
	ModeBrowsing Mode = iota
	ModeEditing
)

var (
	// ErrEditing is returned when a second form would be opened.
	ErrEditing = errors.New("a form is already open")
	// ErrNoPendingDelete is returned when a delete is confirmed without a
	// prior request.
	ErrNoPendingDelete = errors.New("no delete pending")
)

// Screen is the per-screen composition root: it ties a store, a query, a
// form and a data source together and answers the four actions every screen
// supports: load, search, add, delete.
type Screen[T any] struct {
	store  *Store[T]
	query  Query[T]
	form   *Form[T]
	source Source[T]
	notify Notifier

	phase         Phase
	mode          Mode
	search        string
	filter        string
	pendingDelete int64
}

func NewScreen[T any](source Source[T], store *Store[T], query Query[T], form *Form[T], notify Notifier) *Screen[T] {
	return &Screen[T]{
		store:  store,
		query:  query,
		form:   form,
		source: source,
		notify: notify,
		filter: FilterAll,
	}
}

func (s *Screen[T]) Phase() Phase     { return s.phase }
func (s *Screen[T]) Mode() Mode       { return s.mode }
func (s *Screen[T]) Store() *Store[T] { return s.store }
func (s *Screen[T]) Form() *Form[T]   { return s.form }

// Load fetches the collection from the source and moves the screen to
// Ready. A cancelled context aborts without touching any state, so a screen
// torn down mid-load is never mutated. A source failure is surfaced through
// the notifier and the screen stays in Loading; calling Load again is the
// retry.
func (s *Screen[T]) Load(ctx context.Context) error {
	items, err := s.source.FetchAll(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		s.notify.Alert(ctx, "Erreur", "Impossible de charger les données")
		return err
	}

	s.store.Load(items)
	s.phase = PhaseReady
	return nil
}

func (s *Screen[T]) SetSearch(term string) { s.search = term }
func (s *Screen[T]) Search() string        { return s.search }

func (s *Screen[T]) SetFilter(key string) {
	if key == "" {
		key = FilterAll
	}
	s.filter = key
}
func (s *Screen[T]) Filter() string { return s.filter }

// Visible applies the query to the current store contents.
func (s *Screen[T]) Visible() []T {
	return s.query.Apply(s.store.Items(), s.search, s.filter)
}

// BeginAdd opens the add form. Only one form can be open at a time.
func (s *Screen[T]) BeginAdd(initial map[string]string) error {
	if s.mode == ModeEditing {
		return ErrEditing
	}
	s.form.Start(initial)
	s.mode = ModeEditing
	return nil
}

func (s *Screen[T]) SetField(key, value string) {
	s.form.Set(key, value)
}

// CommitAdd validates and commits the draft. On success the entity is in
// the store (optimistically) and pushed to the source; a source failure is
// surfaced but does not roll the local insert back. On validation failure
// the form stays open and nothing is mutated.
func (s *Screen[T]) CommitAdd(ctx context.Context) (T, error) {
	item, err := s.form.Commit(s.store)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			labels := make([]string, len(verr.Missing))
			for i, key := range verr.Missing {
				labels[i] = s.form.Label(key)
			}
			s.notify.Alert(ctx, "Erreur",
				fmt.Sprintf("Veuillez remplir tous les champs obligatoires (%s)", strings.Join(labels, ", ")))
		}
		return item, err
	}

	s.mode = ModeBrowsing

	created, cerr := s.source.Create(ctx, item)
	if cerr != nil {
		s.notify.Alert(ctx, "Erreur", "Impossible d'enregistrer côté serveur")
		return item, nil
	}
	if createdID := s.store.idOf(created); createdID != s.store.idOf(item) {
		// The backend assigned its own id; replace the optimistic one.
		s.store.Remove(s.store.idOf(item))
		item = s.store.Insert(created)
	}
	return item, nil
}

// CancelEdit closes the form and discards the draft.
func (s *Screen[T]) CancelEdit() {
	s.form.Cancel()
	s.mode = ModeBrowsing
}

// RequestDelete stages a deletion and returns the entity to be confirmed.
// Nothing is mutated until ConfirmDelete; this confirmation step is the only
// safeguard against destructive actions and must stay in the path.
func (s *Screen[T]) RequestDelete(id int64) (T, bool) {
	item, ok := s.store.Get(id)
	if ok {
		s.pendingDelete = id
	}
	return item, ok
}

// ConfirmDelete removes the staged entity from the store and the source.
func (s *Screen[T]) ConfirmDelete(ctx context.Context) error {
	if s.pendingDelete == 0 {
		return ErrNoPendingDelete
	}
	id := s.pendingDelete
	s.pendingDelete = 0

	s.store.Remove(id)
	if err := s.source.Delete(ctx, id); err != nil {
		s.notify.Alert(ctx, "Erreur", "Impossible de supprimer côté serveur")
	}
	return nil
}

// CancelDelete drops the staged deletion without mutating anything.
func (s *Screen[T]) CancelDelete() {
	s.pendingDelete = 0
}

// idOf exposes the store's id accessor to the screen.
func (s *Store[T]) idOf(item T) int64 {
	return s.id(item)
}
