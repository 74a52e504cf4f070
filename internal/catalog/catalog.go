// Package catalog holds the names the place command accepts for colours,
// shapes and size classes.
package catalog

import (
	"regexp"
	"strings"
)

// colorNames keeps the listing order used in error messages.
var colorNames = []string{
	"red", "green", "blue", "yellow", "cyan", "magenta", "white", "black",
	"gray", "grey", "darkgray", "darkgrey", "lightgray", "lightgrey",
	"orange", "pink", "purple", "brown", "gold", "silver",
	"coral", "crimson", "indigo", "navy", "teal", "olive", "maroon",
	"lightblue", "lightgreen", "lightyellow", "lightpink",
}

var colorHex = map[string]uint32{
	"red":         0xff0000,
	"green":       0x00ff00,
	"blue":        0x0000ff,
	"yellow":      0xffff00,
	"cyan":        0x00ffff,
	"magenta":     0xff00ff,
	"white":       0xffffff,
	"black":       0x000000,
	"gray":        0x808080,
	"grey":        0x808080,
	"darkgray":    0x404040,
	"darkgrey":    0x404040,
	"lightgray":   0xc0c0c0,
	"lightgrey":   0xc0c0c0,
	"orange":      0xff8000,
	"pink":        0xff69b4,
	"purple":      0x800080,
	"brown":       0x8b4513,
	"gold":        0xffd700,
	"silver":      0xc0c0c0,
	"coral":       0xff7f50,
	"crimson":     0xdc143c,
	"indigo":      0x4b0082,
	"navy":        0x000080,
	"teal":        0x008080,
	"olive":       0x808000,
	"maroon":      0x800000,
	"lightblue":   0xadd8e6,
	"lightgreen":  0x90ee90,
	"lightyellow": 0xffffe0,
	"lightpink":   0xffb6c1,
}

var hexPattern = regexp.MustCompile(`(?i)^[0-9a-f]{6}$`)

var shapeNames = []string{"sphere", "cube", "pyramid"}

// SizeClass is one of small, medium or large.
type SizeClass string

const (
	Small  SizeClass = "small"
	Medium SizeClass = "medium"
	Large  SizeClass = "large"
)

// SizeClasses lists the size classes in ascending order.
var SizeClasses = []SizeClass{Small, Medium, Large}

// IsColor reports whether name is a known colour, a '#'-prefixed value or a
// six digit hex string.
func IsColor(name string) bool {
	if _, ok := colorHex[strings.ToLower(name)]; ok {
		return true
	}
	return strings.HasPrefix(name, "#") || hexPattern.MatchString(name)
}

// ColorHex returns the RGB value for a colour, falling back to white for
// anything IsColor would reject.
func ColorHex(name string) uint32 {
	if v, ok := colorHex[strings.ToLower(name)]; ok {
		return v
	}
	s := strings.TrimPrefix(name, "#")
	var v uint32
	for _, c := range strings.ToLower(s) {
		switch {
		case c >= '0' && c <= '9':
			v = v<<4 | uint32(c-'0')
		case c >= 'a' && c <= 'f':
			v = v<<4 | uint32(c-'a'+10)
		default:
			return 0xffffff
		}
	}
	if s == "" || len(s) > 8 {
		return 0xffffff
	}
	return v
}

// Colors returns the named colours.
func Colors() []string {
	return append([]string(nil), colorNames...)
}

// IsShape reports whether name is a known shape.
func IsShape(name string) bool {
	name = strings.ToLower(name)
	for _, s := range shapeNames {
		if s == name {
			return true
		}
	}
	return false
}

// Shapes returns the known shapes.
func Shapes() []string {
	return append([]string(nil), shapeNames...)
}

// ParseSizeClass returns the size class for name.
func ParseSizeClass(name string) (SizeClass, bool) {
	switch SizeClass(strings.ToLower(name)) {
	case Small:
		return Small, true
	case Medium:
		return Medium, true
	case Large:
		return Large, true
	}
	return "", false
}
