// Package carousel models the horizontal scroll state of a fixed-height
// card strip and the rotating hero banner, independent of any rendering
// environment.
package carousel

// Breakpoint buckets the container width the way the original layout
// system does (600/900/1200 px boundaries).
type Breakpoint int

const (
	BreakpointNarrow Breakpoint = iota
	BreakpointMedium
	BreakpointWide
	BreakpointExtraWide
)

const (
	// swipeThreshold is the horizontal drag displacement, in px, that
	// triggers one discrete scroll step.
	swipeThreshold = 100
	// endEpsilon absorbs rounding from fractional card widths when
	// deciding whether the viewport sits at the right edge.
	endEpsilon = 15
)

// breakpointFor maps a container width to its breakpoint.
func breakpointFor(width int) Breakpoint {
	switch {
	case width < 600:
		return BreakpointNarrow
	case width < 900:
		return BreakpointMedium
	case width < 1200:
		return BreakpointWide
	default:
		return BreakpointExtraWide
	}
}

// cardWidth returns the card width, in px, for a breakpoint.
func cardWidth(bp Breakpoint) int {
	switch bp {
	case BreakpointNarrow:
		return 150
	case BreakpointMedium:
		return 180
	case BreakpointWide:
		return 200
	default:
		return 220
	}
}

// cardGap returns the inter-card gap, in px, for a breakpoint.
func cardGap(bp Breakpoint) int {
	if bp == BreakpointNarrow {
		return 8
	}
	return 16
}

// Viewport is the scroll state of one card strip.
type Viewport struct {
	offset int
	width  int
	cards  int
	bp     Breakpoint
}

// NewViewport creates a viewport for a strip of cards movies wide inside
// a container of the given pixel width, scrolled to the start.
func NewViewport(containerWidth, cards int) *Viewport {
	return &Viewport{
		width: containerWidth,
		cards: cards,
		bp:    breakpointFor(containerWidth),
	}
}

// Step is the distance of one scroll step: one card plus its gap.
func (v *Viewport) Step() int {
	return cardWidth(v.bp) + cardGap(v.bp)
}

// MaxScroll is the largest valid offset for the current geometry.
func (v *Viewport) MaxScroll() int {
	total := v.cards * (cardWidth(v.bp) + cardGap(v.bp))
	if scrollable := total - v.width; scrollable > 0 {
		return scrollable
	}
	return 0
}

// Offset returns the current horizontal offset in px.
func (v *Viewport) Offset() int {
	return v.offset
}

// ScrollLeft moves one step towards the start, clamped at 0.
func (v *Viewport) ScrollLeft() {
	v.offset -= v.Step()
	if v.offset < 0 {
		v.offset = 0
	}
}

// ScrollRight moves one step towards the end, clamped at MaxScroll.
func (v *Viewport) ScrollRight() {
	v.offset += v.Step()
	if max := v.MaxScroll(); v.offset > max {
		v.offset = max
	}
}

// Resize updates the container width, recomputes the breakpoint and
// clamps the offset so it never references a now-invalid position.
func (v *Viewport) Resize(containerWidth int) {
	v.width = containerWidth
	v.bp = breakpointFor(containerWidth)
	v.clamp()
}

// SetCards updates the strip length and clamps the offset.
func (v *Viewport) SetCards(cards int) {
	v.cards = cards
	v.clamp()
}

func (v *Viewport) clamp() {
	if max := v.MaxScroll(); v.offset > max {
		v.offset = max
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

// AtStart reports whether the left navigation affordance is disabled.
func (v *Viewport) AtStart() bool {
	return v.offset <= 0
}

// AtEnd reports whether the right navigation affordance is disabled.
// The epsilon absorbs rounding from fractional card widths.
func (v *Viewport) AtEnd() bool {
	return v.offset >= v.MaxScroll()-endEpsilon
}

// Swipe applies a completed touch drag from startX to endX. A drag whose
// displacement exceeds the threshold triggers exactly one discrete step
// in its direction; smaller drags are no-ops.
func (v *Viewport) Swipe(startX, endX int) {
	switch {
	case startX-endX > swipeThreshold:
		v.ScrollRight()
	case endX-startX > swipeThreshold:
		v.ScrollLeft()
	}
}
