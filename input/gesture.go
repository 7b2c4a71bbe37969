package input

import "math"

// TapSlop is how far a pointer may travel, in pixels, and still count as a tap.
const TapSlop = 6

// Gesture recognizes taps and horizontal pans from raw pointer events.
// Pan deltas are forwarded as the pointer moves; a press that is released
// without travelling further than TapSlop is a tap.
type Gesture struct {
	t       *Translator
	down    bool
	startX  float64
	startY  float64
	lastX   float64
	panning bool
}

func NewGesture(t *Translator) *Gesture {
	return &Gesture{t: t}
}

func (g *Gesture) Press(x, y float64) {
	g.down = true
	g.panning = false
	g.startX, g.startY = x, y
	g.lastX = x
}

func (g *Gesture) Move(x, y float64) {
	if !g.down {
		return
	}
	if !g.panning && math.Hypot(x-g.startX, y-g.startY) <= TapSlop {
		return
	}
	g.panning = true
	g.t.Pan(x - g.lastX)
	g.lastX = x
}

func (g *Gesture) Release(x, y float64) {
	if !g.down {
		return
	}
	g.Move(x, y)
	if !g.panning {
		g.t.Tap()
	}
	g.down = false
	g.panning = false
}

// Active reports whether a press is in progress.
func (g *Gesture) Active() bool {
	return g.down
}
