// Package hexcolor parses the six-digit hexadecimal color notation used
// on the control channel into 24-bit RGB values.
package hexcolor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Color is a 24-bit RGB value laid out as 0x00RRGGBB. There is no alpha
// channel.
type Color uint32

// ErrInvalidFormat is returned when an input is not exactly six
// hexadecimal digits.
var ErrInvalidFormat = errors.New("hexcolor: invalid format")

// Parse interprets s as six case-insensitive hex digits (RRGGBB) and
// returns the corresponding color. The leading '#' of user-facing color
// strings must be stripped by the caller. Parse has no shared state and
// is safe for concurrent use.
func Parse(s string) (Color, error) {
	if len(s) != 6 {
		return 0, ErrInvalidFormat
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return 0, ErrInvalidFormat
		}
	}
	// Validated above, so the conversion cannot fail or truncate.
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, ErrInvalidFormat
	}
	return Color(v), nil
}

func isHexDigit(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	default:
		return false
	}
}

// R returns the red component.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green component.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue component.
func (c Color) B() uint8 { return uint8(c) }

// String renders the color in the wire notation, e.g. "#1a2b3c".
func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// MarshalJSON encodes the color as its wire notation string.
func (c Color) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(c.String())), nil
}

// UnmarshalJSON accepts the wire notation with or without the leading '#'.
func (c *Color) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return ErrInvalidFormat
	}
	parsed, err := Parse(strings.TrimPrefix(s, "#"))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
