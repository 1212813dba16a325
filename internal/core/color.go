package core

// Color is a foreground colour for a screen cell, drawn from the 256-colour
// ANSI palette.
type Color uint8

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
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray

	NumColors int = iota
)

var ansiCodes = [NumColors]string{
	ColorDefault:       "",
	ColorRed:           "1",
	ColorGreen:         "2",
	ColorYellow:        "3",
	ColorBlue:          "4",
	ColorMagenta:       "5",
	ColorCyan:          "6",
	ColorWhite:         "7",
	ColorBrightRed:     "9",
	ColorBrightGreen:   "10",
	ColorBrightYellow:  "11",
	ColorBrightBlue:    "12",
	ColorBrightMagenta: "13",
	ColorBrightCyan:    "14",
	ColorBrightWhite:   "15",
	ColorOrange:        "208",
	ColorGray:          "245",
}

// ANSI returns the palette index of c, or "" for the terminal default.
func (c Color) ANSI() string {
	if int(c) >= NumColors {
		return ""
	}
	return ansiCodes[c]
}

// Dim returns the faded variant of c: bright colours drop to their base
// colour, everything else to gray.
func (c Color) Dim() Color {
	switch {
	case c >= ColorBrightRed && c <= ColorBrightWhite:
		return c - (ColorBrightRed - ColorRed)
	case c == ColorDefault:
		return c
	default:
		return ColorGray
	}
}
