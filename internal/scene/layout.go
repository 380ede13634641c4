package scene

// LayoutCache memoizes the widest judge column and icon column measured over
// the slots of one mode.
type LayoutCache struct {
	JudgeWidth float64
	IconWidth  float64
	Mode       int
}

// WidthFunc measures one slot and returns its judge column and icon column
// widths. Units are whatever the renderer uses.
type WidthFunc func(Slot) (judgeWidth, iconWidth float64)

// Cache returns the current cache entry, if any, without computing one.
func (s *Scene) Cache() (LayoutCache, bool) {
	if s.cache == nil {
		return LayoutCache{}, false
	}
	return *s.cache, true
}

// Layout returns the cached widths for the active mode, measuring every slot
// of the mode once when the cache is missing or was computed for another mode.
func (s *Scene) Layout(measure WidthFunc) (judgeWidth, iconWidth float64) {
	if s.cache != nil && s.cache.Mode == s.mode {
		return s.cache.JudgeWidth, s.cache.IconWidth
	}
	for _, slot := range s.slots[s.mode] {
		jw, iw := measure(slot.clone())
		if jw > judgeWidth {
			judgeWidth = jw
		}
		if iw > iconWidth {
			iconWidth = iw
		}
	}
	s.cache = &LayoutCache{JudgeWidth: judgeWidth, IconWidth: iconWidth, Mode: s.mode}
	return judgeWidth, iconWidth
}

// Invalidate drops the layout cache.
func (s *Scene) Invalidate() { s.cache = nil }
