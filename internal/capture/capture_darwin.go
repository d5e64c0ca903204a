//go:build darwin

package capture

import (
	"bytes"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/argusvision/argus/internal/errors"
)

type darwinBackend struct{ tempDir string }

func (d *darwinBackend) captureRaw() ([]byte, error) {
	tmpFile := filepath.Join(d.tempDir, "capture.png")
	// -x: no sound, -t png: lossless, -m: main display only
	cmd := exec.Command("screencapture", "-x", "-t", "png", "-m", tmpFile)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, errors.CodeCapture, "screencapture failed: %s", stderr.String())
	}
	data, err := os.ReadFile(tmpFile)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeCapture, "reading captured frame")
	}
	os.Remove(tmpFile)
	return data, nil
}

func (d *darwinBackend) cleanup() {}

// New creates a platform-specific screen capturer.
func New() Capturer {
	tmpDir, err := os.MkdirTemp("", "argus-capture-*")
	if err != nil {
		slog.Error("failed to create temp dir", "error", err)
		tmpDir = os.TempDir()
	}
	return newBase(&darwinBackend{tempDir: tmpDir}, tmpDir)
}
