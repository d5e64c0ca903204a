package match

import (
	"log/slog"

	"github.com/argusvision/argus/internal/errors"
	"github.com/argusvision/argus/internal/geometry"
	"github.com/argusvision/argus/internal/screenshot"
)

// AddTextTrigger records a text input against a control rectangle. The
// control is intersected with the last screenshot's coordinate space; an
// empty intersection means the input occurred outside the captured area
// and is silently dropped.
func (m *WindowMatcher) AddTextTrigger(control geometry.Region, text string) {
	st := m.last.Get()
	if st.shot == nil {
		slog.Debug("text trigger dropped, no screenshot to normalize against")
		return
	}
	clipped := st.shot.Intersect(control)
	if clipped.IsEmpty() {
		slog.Debug("text trigger outside captured area, dropped",
			"control", control, "bounds", st.shot.Bounds())
		return
	}
	m.triggers = append(m.triggers, Trigger{
		Kind:    TriggerText,
		Control: clipped,
		Text:    text,
	})
}

// AddMouseTrigger records a mouse event. cursor is relative to the
// control's top-left corner. Inputs that fall outside the captured area
// (empty control intersection, or an out-of-bounds cursor location) are
// silently dropped; any other normalization failure propagates.
func (m *WindowMatcher) AddMouseTrigger(action MouseAction, control geometry.Region, cursor geometry.Point) error {
	st := m.last.Get()
	if st.shot == nil {
		slog.Debug("mouse trigger dropped, no screenshot to normalize against")
		return nil
	}

	clipped := st.shot.Intersect(control)
	if clipped.IsEmpty() {
		slog.Debug("mouse trigger control outside captured area, dropped",
			"control", control, "bounds", st.shot.Bounds())
		return nil
	}

	abs := cursor.Offset(control.X, control.Y)
	loc, err := st.shot.LocationInScreenshot(abs, screenshot.ContextRelative)
	if err != nil {
		if errors.IsCode(err, errors.CodeOutOfBounds) {
			slog.Debug("mouse trigger cursor outside captured area, dropped",
				"cursor", abs)
			return nil
		}
		return err
	}

	m.triggers = append(m.triggers, Trigger{
		Kind:     TriggerMouse,
		Action:   action,
		Control:  clipped,
		Location: loc,
	})
	return nil
}

// Triggers returns the inputs recorded since the last non-ignored match.
func (m *WindowMatcher) Triggers() []Trigger {
	return m.triggers
}
