package buildspec

import (
	"fmt"
	"strconv"
	"strings"
)

// Default frame timing used whenever a spec does not override it: 100/1000
// seconds per frame.
const (
	DefaultFrameNumerator   uint = 100
	DefaultFrameDenominator uint = 1000
)

// Delay expresses one frame's display duration as Numerator/Denominator
// seconds. The zero value is not meaningful; construct through ParseDelay or
// DefaultDelay.
type Delay struct {
	Numerator   uint
	Denominator uint
}

// DefaultDelay returns the documented default frame timing.
func DefaultDelay() Delay {
	return Delay{Numerator: DefaultFrameNumerator, Denominator: DefaultFrameDenominator}
}

// ParseDelay converts a textual delay token into a Delay. A token without a
// "/" separator supplies only the numerator. Each side that is empty,
// non-numeric, or out of range falls back to its default constant, so parsing
// never fails.
func ParseDelay(token string) Delay {
	num, den, found := strings.Cut(token, "/")
	if !found {
		return Delay{
			Numerator:   parseUnsigned(token, DefaultFrameNumerator),
			Denominator: DefaultFrameDenominator,
		}
	}
	return Delay{
		Numerator:   parseUnsigned(num, DefaultFrameNumerator),
		Denominator: parseUnsigned(den, DefaultFrameDenominator),
	}
}

// Seconds returns the duration in seconds, or 0 when the denominator is zero.
func (d Delay) Seconds() float64 {
	if d.Denominator == 0 {
		return 0
	}
	return float64(d.Numerator) / float64(d.Denominator)
}

// String renders the delay as a "numerator/denominator" token.
func (d Delay) String() string {
	return fmt.Sprintf("%d/%d", d.Numerator, d.Denominator)
}

func parseUnsigned(value string, fallback uint) uint {
	parsed, err := strconv.ParseUint(value, 10, strconv.IntSize)
	if err != nil {
		return fallback
	}
	return uint(parsed)
}
