package codec

import "github.com/argusvision/argus/internal/errors"

// Frame is a raw decoded pixel buffer with its declared geometry.
// Invariant: len(Pix) == Width*Height*BytesPerPixel.
type Frame struct {
	Pix           []byte
	Width         int
	Height        int
	BytesPerPixel int
}

// Validate checks the buffer invariant.
func (f Frame) Validate() error {
	if len(f.Pix) == 0 {
		return errors.New(errors.CodeCodec, "frame buffer is empty")
	}
	if f.Width <= 0 || f.Height <= 0 || f.BytesPerPixel <= 0 {
		return errors.Newf(errors.CodeCodec, "invalid frame geometry %dx%dx%d", f.Width, f.Height, f.BytesPerPixel)
	}
	if want := f.Width * f.Height * f.BytesPerPixel; len(f.Pix) != want {
		return errors.Newf(errors.CodeCodec, "frame buffer length %d, want %d", len(f.Pix), want)
	}
	return nil
}

// SameDimensions reports whether two frames are block-alignable.
func (f Frame) SameDimensions(other Frame) bool {
	return f.Width == other.Width && f.Height == other.Height && f.BytesPerPixel == other.BytesPerPixel
}
