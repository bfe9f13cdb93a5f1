package collection

import (
	"fmt"
	"strings"
)

// ValidationError reports the required fields a draft is missing. It is
// recoverable: the draft and the store are left untouched.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// FormSpec is the per-entity form configuration: which raw fields exist,
// which are required, and how a validated draft becomes an entity.
type FormSpec[T any] struct {
	// Required lists field keys that must be non-blank before commit.
	Required []string
	// Labels maps field keys to the names shown in user-facing messages.
	// Keys without a label fall back to the raw key.
	Labels map[string]string
	// Defaults seeds the draft on Start and backs any field left blank.
	Defaults map[string]string
	// Build turns the merged field values into an entity. The id is left
	// zero; the store assigns it on insert.
	Build func(values map[string]string) T
	// Prepend commits to the head of the store instead of the tail.
	Prepend bool
}

// Form holds a draft entity during creation, separate from the committed
// store until the user confirms.
type Form[T any] struct {
	spec   FormSpec[T]
	values map[string]string
	active bool
}

func NewForm[T any](spec FormSpec[T]) *Form[T] {
	return &Form[T]{spec: spec}
}

// Start resets the draft to the spec defaults overlaid with initial.
func (f *Form[T]) Start(initial map[string]string) {
	f.values = make(map[string]string)
	for k, v := range f.spec.Defaults {
		f.values[k] = v
	}
	for k, v := range initial {
		f.values[k] = v
	}
	f.active = true
}

func (f *Form[T]) Active() bool {
	return f.active
}

// Set merges one field into the draft. Blank values fall back to the
// configured default so optional fields can be skipped.
func (f *Form[T]) Set(key, value string) {
	if f.values == nil {
		return
	}
	value = strings.TrimSpace(value)
	if value == "" {
		value = f.spec.Defaults[key]
	}
	f.values[key] = value
}

func (f *Form[T]) Value(key string) string {
	return f.values[key]
}

// Label returns the display name for a field key.
func (f *Form[T]) Label(key string) string {
	if label, ok := f.spec.Labels[key]; ok {
		return label
	}
	return key
}

// Validate returns the names of required fields still blank, in spec order.
func (f *Form[T]) Validate() []string {
	var missing []string
	for _, key := range f.spec.Required {
		if strings.TrimSpace(f.values[key]) == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

// Commit validates the draft, builds the entity, inserts it into the store
// (which assigns the id) and resets the form. On validation failure the
// draft and the store are left as they were.
func (f *Form[T]) Commit(store *Store[T]) (T, error) {
	if missing := f.Validate(); len(missing) > 0 {
		var zero T
		return zero, &ValidationError{Missing: missing}
	}

	item := f.spec.Build(f.values)
	if f.spec.Prepend {
		item = store.Prepend(item)
	} else {
		item = store.Insert(item)
	}

	f.Cancel()
	return item, nil
}

// Cancel discards the draft.
func (f *Form[T]) Cancel() {
	f.values = nil
	f.active = false
}
