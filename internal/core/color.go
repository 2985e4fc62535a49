package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorGray
)

// flashCycle is the palette the win overlay cycles through.
var flashCycle = []Color{
	ColorBrightRed,
	ColorBrightYellow,
	ColorBrightGreen,
	ColorCyan,
	ColorBlue,
	ColorMagenta,
}

// FlashColor returns a palette color for the given frame counter.
// Every few frames the color advances, giving a strobing effect without
// any random source.
func FlashColor(frame int) Color {
	if frame < 0 {
		frame = -frame
	}
	return flashCycle[(frame/4)%len(flashCycle)]
}
