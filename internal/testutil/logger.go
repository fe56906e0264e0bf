package testutil

import (
	"io"

	"github.com/dtroode/authgate/internal/logger"
)

// MakeNoopLogger returns a logger discarding everything down to debug.
func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, -4, "text")
}
