// Package screenshot wraps a captured image with the coordinate-space
// operations the match engine needs: sub-region extraction, space
// conversion, and intersection against the captured bounds.
package screenshot

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"

	"github.com/argusvision/argus/internal/codec"
	"github.com/argusvision/argus/internal/errors"
	"github.com/argusvision/argus/internal/geometry"
)

// Space tags the frame of reference a coordinate is expressed in.
type Space int

const (
	// ScreenshotAsIs is raw captured pixel coordinates.
	ScreenshotAsIs Space = iota
	// ContextRelative is logical page coordinates: pixel coordinates
	// shifted by the capture's origin within the page.
	ContextRelative
)

// Screenshot owns one captured image: its raw pixel buffer, its
// container-encoded bytes, and the coordinate space it was captured in.
// Value semantics once constructed; operations return new Screenshots.
type Screenshot struct {
	frame   codec.Frame
	encoded []byte
	space   Space
	origin  geometry.Point // capture origin in context-relative coordinates
}

// New validates the frame invariant and wraps it.
func New(frame codec.Frame, encoded []byte, space Space) (*Screenshot, error) {
	if err := frame.Validate(); err != nil {
		return nil, err
	}
	return &Screenshot{frame: frame, encoded: encoded, space: space}, nil
}

// FromImage extracts an RGBA frame from img and PNG-encodes it. PNG is
// required: the delta codec depends on lossless raw buffers.
func FromImage(img image.Image, space Space) (*Screenshot, error) {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, errors.Wrap(err, errors.CodeCapture, "encoding screenshot")
	}
	frame := codec.Frame{
		Pix:           rgba.Pix,
		Width:         b.Dx(),
		Height:        b.Dy(),
		BytesPerPixel: 4,
	}
	return New(frame, buf.Bytes(), space)
}

// WithOrigin returns a copy whose context-relative origin is p.
func (s *Screenshot) WithOrigin(p geometry.Point) *Screenshot {
	c := *s
	c.origin = p
	return &c
}

// Frame returns the raw pixel buffer and its geometry.
func (s *Screenshot) Frame() codec.Frame { return s.frame }

// Encoded returns the container-encoded bytes.
func (s *Screenshot) Encoded() []byte { return s.encoded }

// Space returns the coordinate space the capture is tagged with.
func (s *Screenshot) Space() Space { return s.space }

// Width returns the pixel width.
func (s *Screenshot) Width() int { return s.frame.Width }

// Height returns the pixel height.
func (s *Screenshot) Height() int { return s.frame.Height }

// Bounds returns (0,0,width,height) in screenshot coordinates.
func (s *Screenshot) Bounds() geometry.Region {
	return geometry.Region{Width: s.frame.Width, Height: s.frame.Height}
}

// Intersect clips r against the captured bounds.
func (s *Screenshot) Intersect(r geometry.Region) geometry.Region {
	return s.Bounds().Intersect(r)
}

// SubRegion extracts the part of the screenshot covered by r (clipped to
// the captured bounds) as a new Screenshot. An empty intersection is an
// OutOfBoundsError.
func (s *Screenshot) SubRegion(r geometry.Region) (*Screenshot, error) {
	clipped := s.Intersect(r)
	if clipped.IsEmpty() {
		return nil, errors.Newf(errors.CodeOutOfBounds,
			"region (%d,%d %dx%d) is outside the captured area %dx%d",
			r.X, r.Y, r.Width, r.Height, s.frame.Width, s.frame.Height)
	}
	if clipped == s.Bounds() {
		return s, nil
	}

	img := imageFromFrame(s.frame)
	sub := image.NewRGBA(image.Rect(0, 0, clipped.Width, clipped.Height))
	draw.Draw(sub, sub.Bounds(), img, image.Point{X: clipped.X, Y: clipped.Y}, draw.Src)

	out, err := FromImage(sub, s.space)
	if err != nil {
		return nil, err
	}
	return out.WithOrigin(s.origin.Offset(clipped.X, clipped.Y)), nil
}

// ConvertLocation translates p between coordinate spaces using the
// capture origin. No bounds check is applied; see LocationInScreenshot.
func (s *Screenshot) ConvertLocation(p geometry.Point, from, to Space) geometry.Point {
	if from == to {
		return p
	}
	if from == ContextRelative && to == ScreenshotAsIs {
		return p.Offset(-s.origin.X, -s.origin.Y)
	}
	return p.Offset(s.origin.X, s.origin.Y)
}

// LocationInScreenshot converts p into raw screenshot coordinates and
// fails with an OutOfBoundsError when it lands outside the captured area.
func (s *Screenshot) LocationInScreenshot(p geometry.Point, from Space) (geometry.Point, error) {
	loc := s.ConvertLocation(p, from, ScreenshotAsIs)
	if !s.Bounds().Contains(loc) {
		return geometry.Point{}, errors.Newf(errors.CodeOutOfBounds,
			"location (%d,%d) is outside the captured area %dx%d",
			loc.X, loc.Y, s.frame.Width, s.frame.Height)
	}
	return loc, nil
}

func imageFromFrame(f codec.Frame) *image.RGBA {
	return &image.RGBA{
		Pix:    f.Pix,
		Stride: f.Width * f.BytesPerPixel,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}
