package collection

import (
	"context"
)

// Source is the data boundary behind a screen. The simulated sources and the
// Postgres repositories both satisfy it; the screen controller depends on
// nothing else.
type Source[T any] interface {
	FetchAll(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item T) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Notifier receives the user-facing alerts a screen produces: load failures,
// commit confirmations and validation errors. Nothing here is fatal and
// nothing is retried automatically.
type Notifier interface {
	Alert(ctx context.Context, title, message string)
}
