package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rocksandvoids/console/internal/geo"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindTime
	KindCoordinate
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindTime:
		return "time"
	case KindCoordinate:
		return "coordinate"
	default:
		return "string"
	}
}

// Value is a classified command token. Raw always holds the token text with
// quotes already stripped; Num holds the number (or the time in seconds) and
// Coord the coordinate triple.
type Value struct {
	Kind  Kind
	Raw   string
	Num   float64
	Coord geo.Vec
}

var (
	coordPattern  = regexp.MustCompile(`^\(\s*(-?[\d.]+)\s*,\s*(-?[\d.]+)\s*,\s*(-?[\d.]+)\s*\)$`)
	timePattern   = regexp.MustCompile(`(?i)^(-?[\d.]+)(ms|s|m|h)$`)
	numberPattern = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?$`)
)

// Classify turns a single token into a typed Value. The checks run in a fixed
// order: coordinate, time, number, string. Malformed coordinates or times fall
// through to the next check instead of failing.
func Classify(token string) Value {
	if m := coordPattern.FindStringSubmatch(token); m != nil {
		if v, ok := parseTriple(m[1], m[2], m[3]); ok {
			return Value{Kind: KindCoordinate, Raw: token, Coord: v}
		}
	}

	if m := timePattern.FindStringSubmatch(token); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			return Value{Kind: KindTime, Raw: token, Num: toSeconds(n, m[2])}
		}
	}

	if numberPattern.MatchString(token) {
		if n, err := strconv.ParseFloat(token, 64); err == nil {
			return Value{Kind: KindNumber, Raw: token, Num: n}
		}
	}

	return Value{Kind: KindString, Raw: token}
}

func parseTriple(xs, ys, zs string) (geo.Vec, bool) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return geo.Vec{}, false
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return geo.Vec{}, false
	}
	z, err := strconv.ParseFloat(zs, 64)
	if err != nil {
		return geo.Vec{}, false
	}
	return geo.V(x, y, z), true
}

func toSeconds(n float64, unit string) float64 {
	switch strings.ToLower(unit) {
	case "ms":
		return n / 1000
	case "m":
		return n * 60
	case "h":
		return n * 3600
	default:
		return n
	}
}

// Text builds a string value.
func Text(s string) Value {
	return Value{Kind: KindString, Raw: s}
}

// Number builds a number value.
func Number(n float64) Value {
	return Value{Kind: KindNumber, Raw: strconv.FormatFloat(n, 'f', -1, 64), Num: n}
}

// String returns the token text.
func (v Value) String() string {
	return v.Raw
}

// Float returns the numeric reading of v. Numbers and times convert directly;
// strings convert only when they spell a number.
func (v Value) Float() (float64, bool) {
	switch v.Kind {
	case KindNumber, KindTime:
		return v.Num, true
	case KindString:
		if !numberPattern.MatchString(v.Raw) {
			return 0, false
		}
		n, err := strconv.ParseFloat(v.Raw, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Coordinate returns the triple held by a coordinate value.
func (v Value) Coordinate() (geo.Vec, bool) {
	if v.Kind != KindCoordinate {
		return geo.Vec{}, false
	}
	return v.Coord, true
}

// IsNumeric reports whether v was classified as a number or a time.
func (v Value) IsNumeric() bool {
	return v.Kind == KindNumber || v.Kind == KindTime
}
