package capture

import (
	"context"

	"github.com/argusvision/argus/internal/codec"
	"github.com/argusvision/argus/internal/geometry"
	"github.com/argusvision/argus/internal/match"
	"github.com/argusvision/argus/internal/screenshot"
	"github.com/argusvision/argus/internal/trace"
)

// Provider turns a Capturer into the match loop's OutputProvider:
// capture, normalize to logical coordinates, crop to the requested
// region, and delta-compress against the previous retained screenshot.
type Provider struct {
	capturer Capturer
	dpr      float64
	title    string
}

// NewProvider wraps a capturer. dpr is the display's device pixel
// ratio; captures are scaled back to logical coordinates when it is not 1.
func NewProvider(capturer Capturer, dpr float64, title string) *Provider {
	if dpr <= 0 {
		dpr = 1.0
	}
	return &Provider{capturer: capturer, dpr: dpr, title: title}
}

// GetAppOutput captures a fresh frame. A codec failure degrades to the
// plain encoded payload and is logged; it never fails the attempt.
func (p *Provider) GetAppOutput(ctx context.Context, region geometry.Region, last *screenshot.Screenshot) (*match.AppOutput, error) {
	log := trace.Logger(ctx)

	s, err := p.capturer.CaptureAlways()
	if err != nil {
		return nil, err
	}

	if p.dpr != 1.0 {
		if s, err = screenshot.Scale(s, 1.0/p.dpr); err != nil {
			return nil, err
		}
	}

	if !region.IsEmpty() {
		if s, err = s.SubRegion(region); err != nil {
			return nil, err
		}
	}

	encoded := s.Encoded()
	if last != nil {
		delta, err := codec.Compress(s.Frame(), s.Encoded(), last.Frame())
		if err != nil {
			log.Warn("delta compression failed, sending plain payload", "error", err)
		} else {
			encoded = delta
		}
	}

	return &match.AppOutput{Screenshot: s, Encoded: encoded, Title: p.title}, nil
}
