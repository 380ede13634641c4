package theme

// Selector arrows and markers.
const (
	ArrowPrev = "◀"
	ArrowNext = "▶"
	Cursor    = "›"
	AddSlot   = "+"
)

// App mode badges for the status bar.
var (
	BadgeEdit = AccentStyle.Render("✎ edit")
	BadgeCopy = PassStyle.Render("⧉ copy")
)
