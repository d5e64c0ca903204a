package screenshot

import (
	"math"

	"github.com/nfnt/resize"
)

// Scale normalizes a capture taken at a non-unit device pixel ratio back
// into logical coordinates. ratio is the scale factor applied to the
// pixel dimensions (1/DPR for a retina capture); 1.0 is the identity.
func Scale(s *Screenshot, ratio float64) (*Screenshot, error) {
	if ratio == 1.0 {
		return s, nil
	}
	w := uint(math.Ceil(float64(s.Width()) * ratio))
	h := uint(math.Ceil(float64(s.Height()) * ratio))

	img := resize.Resize(w, h, imageFromFrame(s.frame), resize.Lanczos3)
	out, err := FromImage(img, s.space)
	if err != nil {
		return nil, err
	}
	return out.WithOrigin(s.origin), nil
}
