package view

const (
	// ActivationLine is the viewport offset a section has to straddle to
	// become the active one.
	ActivationLine = 100.0
	// ScrollTopThreshold is the page offset past which the scroll-to-top
	// button is shown.
	ScrollTopThreshold = 300.0

	DefaultSection = "home"
)

// Box is a section's bounding box relative to the viewport.
type Box struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

func (b Box) straddles(line float64) bool {
	return b.Top <= line && b.Bottom >= line
}

type ScrollSpyState struct {
	ActiveSectionID string `json:"activeSection"`
	ShowScrollTop   bool   `json:"showScrollTop"`
}

// ScrollSpy derives the active navigation entry from scroll geometry. The
// only state carried between updates is the last active section.
type ScrollSpy struct {
	sections []string
	state    ScrollSpyState
}

func NewScrollSpy(sections []string) *ScrollSpy {
	s := &ScrollSpy{sections: append([]string(nil), sections...)}
	s.state.ActiveSectionID = DefaultSection
	return s
}

// Update recomputes the state from the page offset and the boxes of the
// mounted sections. Sections missing from boxes are skipped. When nothing
// straddles the activation line the previous active section is kept.
func (s *ScrollSpy) Update(offsetY float64, boxes map[string]Box) ScrollSpyState {
	if offsetY < 0 {
		offsetY = 0
	}
	if id, ok := ActiveSection(s.sections, boxes); ok {
		s.state.ActiveSectionID = id
	}
	s.state.ShowScrollTop = offsetY > ScrollTopThreshold
	return s.state
}

func (s *ScrollSpy) State() ScrollSpyState {
	return s.state
}

// ActiveSection returns the first section, in the given order, whose box
// straddles ActivationLine.
func ActiveSection(sections []string, boxes map[string]Box) (string, bool) {
	for _, id := range sections {
		box, ok := boxes[id]
		if !ok {
			continue
		}
		if box.straddles(ActivationLine) {
			return id, true
		}
	}
	return "", false
}
