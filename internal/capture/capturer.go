// Package capture provides platform-agnostic screen capture and the
// application-output provider the match loop consumes.
package capture

import (
	"bytes"
	"crypto/md5"
	"image"
	_ "image/png" // PNG decoder for captured frames
	"log/slog"
	"os"

	"github.com/corona10/goimagehash"

	"github.com/argusvision/argus/internal/errors"
	"github.com/argusvision/argus/internal/screenshot"
)

// Capturer captures screenshots with change detection.
type Capturer interface {
	// Capture returns a fresh screenshot, or (nil, false) when the
	// screen has not changed since the previous capture.
	Capture() (*screenshot.Screenshot, bool, error)
	// CaptureAlways skips change detection; the match loop needs a
	// fresh frame on every attempt.
	CaptureAlways() (*screenshot.Screenshot, error)
	Close()
}

// backend implements platform-specific raw capture, returning losslessly
// encoded (PNG) bytes. Lossy formats would corrupt delta compression.
type backend interface {
	captureRaw() ([]byte, error)
	cleanup()
}

// baseCapturer provides shared change detection: a quick md5 over the
// leading bytes catches identical encodes, a perceptual hash catches
// re-encoded but visually identical frames.
type baseCapturer struct {
	backend
	lastQuick [16]byte
	lastHash  *goimagehash.ImageHash
	tempDir   string
}

func newBase(b backend, tempDir string) *baseCapturer {
	return &baseCapturer{backend: b, tempDir: tempDir}
}

func (c *baseCapturer) Capture() (*screenshot.Screenshot, bool, error) {
	data, err := c.captureRaw()
	if err != nil {
		return nil, false, err
	}

	quick := md5.Sum(data[:min(len(data), QuickHashBytes)])
	if quick == c.lastQuick {
		return nil, false, nil
	}
	c.lastQuick = quick

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, errors.Wrap(err, errors.CodeCapture, "decoding captured frame")
	}

	if c.similarToLast(img) {
		return nil, false, nil
	}

	s, err := screenshot.FromImage(img, screenshot.ScreenshotAsIs)
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

func (c *baseCapturer) CaptureAlways() (*screenshot.Screenshot, error) {
	data, err := c.captureRaw()
	if err != nil {
		return nil, err
	}
	c.lastQuick = md5.Sum(data[:min(len(data), QuickHashBytes)])

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeCapture, "decoding captured frame")
	}
	if hash, err := goimagehash.PerceptionHash(img); err == nil {
		c.lastHash = hash
	}
	return screenshot.FromImage(img, screenshot.ScreenshotAsIs)
}

// similarToLast computes the perceptual hash and reports whether the
// frame is visually identical to the previous one.
func (c *baseCapturer) similarToLast(img image.Image) bool {
	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return false
	}
	if c.lastHash == nil {
		c.lastHash = hash
		return false
	}
	dist, err := c.lastHash.Distance(hash)
	if err != nil {
		c.lastHash = hash
		return false
	}
	if dist <= MaxHashDistance {
		slog.Debug("skipping visually identical frame", "distance", dist)
		return true
	}
	c.lastHash = hash
	return false
}

func (c *baseCapturer) Close() {
	c.cleanup()
	if c.tempDir != "" {
		os.RemoveAll(c.tempDir)
	}
}
