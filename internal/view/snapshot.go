package view

// Snapshot is an immutable copy of everything the page renders from.
type Snapshot struct {
	ScrollSpy ScrollSpyState
	IsDark    bool
	MenuOpen  bool
	Form      ContactFormState
	Locale    string
	Highlight int

	expanded map[string]bool
}

// Expanded reports whether the block is open.
func (s Snapshot) Expanded(blockID string) bool {
	return s.expanded[blockID]
}

// Active reports whether sectionID is the highlighted navigation entry.
func (s Snapshot) Active(sectionID string) bool {
	return s.ScrollSpy.ActiveSectionID == sectionID
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	expanded := make(map[string]bool, len(c.expanded))
	for k, v := range c.expanded {
		if v {
			expanded[k] = true
		}
	}
	return Snapshot{
		ScrollSpy: c.spy.State(),
		IsDark:    c.isDark,
		MenuOpen:  c.menuOpen,
		Form:      c.form,
		Locale:    c.locale,
		Highlight: c.carousel,
		expanded:  expanded,
	}
}
