package carousel

import "time"

// AdvanceInterval is how often the hero banner advances on its own.
const AdvanceInterval = 5 * time.Second

// Rotator cycles through the hero banner slides with wrap-around
// navigation. A rotator over zero slides stays at index 0.
type Rotator struct {
	index  int
	slides int
}

// NewRotator creates a rotator over the given number of slides.
func NewRotator(slides int) *Rotator {
	return &Rotator{slides: slides}
}

// Index returns the current slide index.
func (r *Rotator) Index() int {
	return r.index
}

// Next advances to the following slide, wrapping to the first.
func (r *Rotator) Next() {
	if r.slides == 0 {
		return
	}
	r.index = (r.index + 1) % r.slides
}

// Prev moves to the previous slide, wrapping to the last.
func (r *Rotator) Prev() {
	if r.slides == 0 {
		return
	}
	r.index = (r.index + r.slides - 1) % r.slides
}

// Go jumps to a specific slide; out-of-range indices are ignored.
func (r *Rotator) Go(index int) {
	if index >= 0 && index < r.slides {
		r.index = index
	}
}

// SetSlides updates the slide count, clamping the index into range.
func (r *Rotator) SetSlides(slides int) {
	r.slides = slides
	if r.slides == 0 {
		r.index = 0
	} else if r.index >= r.slides {
		r.index = r.slides - 1
	}
}
