package runtime

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// defaultLogger builds a human-readable, colorized logger for operational
// visibility, distinct from ExecutionContext's per-transaction log bus.
// Grounded on _examples/malbeclabs-doublezero's service entry points, which
// set up slog with a tint handler the same way.
func defaultLogger() *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo}))
}
