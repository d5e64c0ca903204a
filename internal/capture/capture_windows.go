//go:build windows

package capture

import (
	"log/slog"
	"os"

	"github.com/argusvision/argus/internal/errors"
)

type windowsBackend struct{ tempDir string }

func (w *windowsBackend) captureRaw() ([]byte, error) {
	// TODO: Implement using Windows GDI or DXGI
	return nil, errors.New(errors.CodeCapture, "windows screen capture not yet implemented")
}

func (w *windowsBackend) cleanup() {}

// New creates a platform-specific screen capturer.
func New() Capturer {
	tmpDir, err := os.MkdirTemp("", "argus-capture-*")
	if err != nil {
		slog.Error("failed to create temp dir", "error", err)
		tmpDir = os.TempDir()
	}
	return newBase(&windowsBackend{tempDir: tmpDir}, tmpDir)
}
