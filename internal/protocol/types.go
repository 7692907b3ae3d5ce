package protocol

import "fmt"

// Direction is the side of a cell a wall sits on.
type Direction int

const (
	// North is the top side of a cell.
	North Direction = iota
	// East is the right side of a cell.
	East
	// South is the bottom side of a cell.
	South
	// West is the left side of a cell.
	West
)

var directionTokens = [...]string{North: "n", East: "e", South: "s", West: "w"}

var directionNames = [...]string{North: "north", East: "east", South: "south", West: "west"}

// IsValid reports whether d is one of the four compass directions.
func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// Token returns the single-letter wire encoding.
func (d Direction) Token() string {
	if !d.IsValid() {
		return ""
	}

	return directionTokens[d]
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}

	return directionNames[d]
}

// ParseDirection accepts a wire letter ("n") or a name ("north").
func ParseDirection(s string) (Direction, error) {
	for d := North; d <= West; d++ {
		if s == directionTokens[d] || s == directionNames[d] {
			return d, nil
		}
	}

	return 0, fmt.Errorf("invalid direction %q", s)
}

// Color is a cell color from the simulator palette.
type Color int

const (
	Black Color = iota
	Blue
	Gray
	Cyan
	Green
	Orange
	Red
	White
	Yellow
	DarkBlue
	DarkCyan
	DarkGray
	DarkGreen
	DarkRed
	DarkYellow
)

type colorInfo struct {
	name  string
	token string
}

var colors = [...]colorInfo{
	Black:      {"black", "k"},
	Blue:       {"blue", "b"},
	Gray:       {"gray", "a"},
	Cyan:       {"cyan", "c"},
	Green:      {"green", "g"},
	Orange:     {"orange", "o"},
	Red:        {"red", "r"},
	White:      {"white", "w"},
	Yellow:     {"yellow", "y"},
	DarkBlue:   {"darkblue", "B"},
	DarkCyan:   {"darkcyan", "C"},
	DarkGray:   {"darkgray", "A"},
	DarkGreen:  {"darkgreen", "G"},
	DarkRed:    {"darkred", "R"},
	DarkYellow: {"darkyellow", "Y"},
}

// Colors returns the whole palette in wire order.
func Colors() []Color {
	out := make([]Color, len(colors))
	for i := range colors {
		out[i] = Color(i)
	}

	return out
}

// IsValid reports whether c is part of the palette.
func (c Color) IsValid() bool {
	return c >= Black && c <= DarkYellow
}

// Token returns the single-letter wire encoding. Letters are case-sensitive.
func (c Color) Token() string {
	if !c.IsValid() {
		return ""
	}

	return colors[c].token
}

// String returns the canonical lowercase color name.
func (c Color) String() string {
	if !c.IsValid() {
		return fmt.Sprintf("Color(%d)", int(c))
	}

	return colors[c].name
}

// ParseColor accepts a canonical name ("darkgreen") or a wire letter ("G").
func ParseColor(s string) (Color, error) {
	for i, info := range colors {
		if s == info.name || s == info.token {
			return Color(i), nil
		}
	}

	return 0, fmt.Errorf("invalid color %q", s)
}
