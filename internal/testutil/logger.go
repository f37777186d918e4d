package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a slog logger that discards everything. The service
// and storage suites use it so game and grant logging stays out of test
// output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
