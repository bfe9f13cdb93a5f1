package maxAPI

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmanagement/collection"
	"cmanagement/database"
)

type stubSource[T any] struct {
	createErr error
}

func (s *stubSource[T]) FetchAll(ctx context.Context) ([]T, error) { return nil, nil }
func (s *stubSource[T]) Create(ctx context.Context, item T) (T, error) {
	return item, s.createErr
}
func (s *stubSource[T]) Delete(ctx context.Context, id int64) error { return nil }

type silentNotifier struct{}

func (silentNotifier) Alert(_ context.Context, _, _ string) {}

func newClassesSession() *session {
	return &session{
		classes: collection.NewScreen(
			&stubSource[database.SchoolClass]{},
			database.NewClassStore(),
			database.ClassQuery,
			database.NewClassForm(),
			silentNotifier{},
		),
	}
}

func TestSetDialogCancelsAbandonedForm(t *testing.T) {
	b := &Bot{}
	s := newClassesSession()

	require.NoError(t, s.classes.BeginAdd(nil))
	b.setDialog(s, &dialog{cancel: s.classes.CancelEdit})

	// The user walks away from the form mid-entry, into a search dialog.
	b.setDialog(s, &dialog{})
	assert.Equal(t, collection.ModeBrowsing, s.classes.Mode())

	// The screen is usable again: a new add must not report a stuck form.
	require.NoError(t, s.classes.BeginAdd(nil))
}

func TestSetDialogKeepsFormOpenOnRestart(t *testing.T) {
	b := &Bot{}
	s := newClassesSession()

	require.NoError(t, s.classes.BeginAdd(nil))
	d := &dialog{cancel: s.classes.CancelEdit}
	b.setDialog(s, d)

	// Reinstalling the same dialog, as a validation bounce does, must not
	// cancel the form it is still driving.
	b.setDialog(s, d)
	assert.Equal(t, collection.ModeEditing, s.classes.Mode())
}
