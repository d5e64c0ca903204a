//go:build linux

package capture

import (
	"bytes"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/argusvision/argus/internal/errors"
)

type linuxBackend struct{ tempDir string }

func (l *linuxBackend) captureRaw() ([]byte, error) {
	tmpFile := filepath.Join(l.tempDir, "capture.png")
	// Try gnome-screenshot first, fall back to scrot. Both emit PNG.
	var cmd *exec.Cmd
	if _, err := exec.LookPath("gnome-screenshot"); err == nil {
		cmd = exec.Command("gnome-screenshot", "-f", tmpFile)
	} else if _, err := exec.LookPath("scrot"); err == nil {
		cmd = exec.Command("scrot", "-o", tmpFile)
	} else {
		return nil, errors.New(errors.CodeCapture, "no screenshot tool found (install gnome-screenshot or scrot)")
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, errors.CodeCapture, "screenshot failed: %s", stderr.String())
	}
	data, err := os.ReadFile(tmpFile)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeCapture, "reading captured frame")
	}
	os.Remove(tmpFile)
	return data, nil
}

func (l *linuxBackend) cleanup() {}

// New creates a platform-specific screen capturer.
func New() Capturer {
	tmpDir, err := os.MkdirTemp("", "argus-capture-*")
	if err != nil {
		slog.Error("failed to create temp dir", "error", err)
		tmpDir = os.TempDir()
	}
	return newBase(&linuxBackend{tempDir: tmpDir}, tmpDir)
}
