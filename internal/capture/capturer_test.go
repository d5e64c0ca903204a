package capture

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"testing"

	"github.com/argusvision/argus/internal/errors"
)

// fakeBackend replays scripted PNG payloads.
type fakeBackend struct {
	frames  [][]byte
	i       int
	err     error
	cleaned bool
}

func (f *fakeBackend) captureRaw() ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	frame := f.frames[min(f.i, len(f.frames)-1)]
	f.i++
	return frame, nil
}

func (f *fakeBackend) cleanup() { f.cleaned = true }

// halfImage paints one half of a 128x128 frame white; the two halves
// produce clearly distinct perceptual hashes.
func halfImage(t *testing.T, left bool) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 128, 128))
	r := image.Rect(64, 0, 128, 128)
	if left {
		r = image.Rect(0, 0, 64, 128)
	}
	draw.Draw(img, r, &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestCaptureSkipsUnchangedFrame(t *testing.T) {
	frame := halfImage(t, true)
	c := newBase(&fakeBackend{frames: [][]byte{frame, frame}}, "")

	s, changed, err := c.Capture()
	if err != nil || !changed || s == nil {
		t.Fatalf("first Capture() = %v, %v, %v; want screenshot, true, nil", s, changed, err)
	}

	s, changed, err = c.Capture()
	if err != nil {
		t.Fatalf("second Capture() error = %v", err)
	}
	if changed || s != nil {
		t.Error("identical frame should be skipped")
	}
}

func TestCaptureDetectsChange(t *testing.T) {
	c := newBase(&fakeBackend{frames: [][]byte{halfImage(t, true), halfImage(t, false)}}, "")

	if _, changed, err := c.Capture(); err != nil || !changed {
		t.Fatalf("first Capture() changed = %v, err = %v", changed, err)
	}
	s, changed, err := c.Capture()
	if err != nil {
		t.Fatalf("second Capture() error = %v", err)
	}
	if !changed || s == nil {
		t.Error("visually different frame should be reported as changed")
	}
	if s != nil && (s.Width() != 128 || s.Height() != 128) {
		t.Errorf("screenshot = %dx%d, want 128x128", s.Width(), s.Height())
	}
}

func TestCaptureAlwaysBypassesDetection(t *testing.T) {
	frame := halfImage(t, true)
	c := newBase(&fakeBackend{frames: [][]byte{frame, frame}}, "")

	for i := 0; i < 2; i++ {
		s, err := c.CaptureAlways()
		if err != nil {
			t.Fatalf("CaptureAlways() #%d error = %v", i+1, err)
		}
		if s == nil {
			t.Fatalf("CaptureAlways() #%d returned nil screenshot", i+1)
		}
	}
}

func TestCaptureBackendError(t *testing.T) {
	c := newBase(&fakeBackend{err: errors.New(errors.CodeCapture, "tool missing")}, "")

	if _, _, err := c.Capture(); !errors.IsCode(err, errors.CodeCapture) {
		t.Errorf("Capture() error = %v, want CodeCapture", err)
	}
}

func TestCaptureGarbageFrame(t *testing.T) {
	c := newBase(&fakeBackend{frames: [][]byte{[]byte("not a png")}}, "")

	if _, _, err := c.Capture(); !errors.IsCode(err, errors.CodeCapture) {
		t.Errorf("Capture() error = %v, want CodeCapture", err)
	}
}

func TestClose(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "argus-capture-test-*")
	if err != nil {
		t.Fatal(err)
	}
	b := &fakeBackend{}
	c := newBase(b, tempDir)

	c.Close()

	if !b.cleaned {
		t.Error("Close() should invoke the backend cleanup")
	}
	if _, err := os.Stat(tempDir); !os.IsNotExist(err) {
		t.Error("temp directory should be removed after Close")
	}
}
