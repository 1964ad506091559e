package scrape

import (
	"errors"
	"log/slog"

	"github.com/gaurav-prasanna/recipepipe/core"
)

// field reads one value from a RecipeSource. Absent values (no schema,
// unsupported, not implemented) quietly become fallback; any other error
// is logged first.
func field[T any](log *slog.Logger, name string, get func() (T, error), fallback T) T {
	v, err := get()
	if err == nil {
		return v
	}
	if errors.Is(err, core.ErrNoSchema) || errors.Is(err, core.ErrNotSupported) || errors.Is(err, core.ErrNotImplemented) {
		return fallback
	}
	log.Error("reading recipe field", "field", name, "err", err)
	return fallback
}
