package app

// LayoutMode represents the display width category for responsive layout.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // <40 chars: icons only in tab bar, one pane
	LayoutMedium                   // 40-99: titles in tab bar, one pane
	LayoutWide                     // 100+: scene list and editor side by side
)

// GetLayoutMode returns the appropriate layout mode for the given terminal width.
func GetLayoutMode(width int) LayoutMode {
	switch {
	case width < 40:
		return LayoutNarrow
	case width < 100:
		return LayoutMedium
	default:
		return LayoutWide
	}
}

// TabBarHeight returns the height of the tab bar (always 1 row).
func TabBarHeight() int {
	return 1
}

// StatusBarHeight returns the height of the status bar (always 1 row).
func StatusBarHeight() int {
	return 1
}

// ContentHeight returns the available height for content after subtracting
// the tab bar and status bar from the total terminal height.
func ContentHeight(totalHeight int) int {
	h := totalHeight - TabBarHeight() - StatusBarHeight()
	if h < 0 {
		return 0
	}
	return h
}

// SplitWidths divides a wide terminal between the scene list and the editor,
// leaving one column for the divider. The list takes a third of the width,
// kept between 24 and 36 columns.
func SplitWidths(totalWidth int) (list, editor int) {
	list = totalWidth / 3
	if list < 24 {
		list = 24
	}
	if list > 36 {
		list = 36
	}
	editor = totalWidth - list - 1
	if editor < 0 {
		editor = 0
	}
	return list, editor
}
