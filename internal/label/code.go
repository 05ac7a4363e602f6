package label

import (
	"fmt"
	"regexp"
	"strconv"
)

// MinNumber and MaxNumber bound the slot number part of a code.
const (
	MinNumber = 1
	MaxNumber = 99
)

// codePattern matches the canonical "Color-NN" shape. The number part is
// always exactly two digits ("Red-1" is not a valid code).
var codePattern = regexp.MustCompile(`^([A-Za-z]+)-([0-9]{2})$`)

// IsValidNumber reports whether n is a valid slot number (1-99).
func IsValidNumber(n int) bool {
	return n >= MinNumber && n <= MaxNumber
}

// Format renders a color and slot number as a canonical code, e.g.
// Format(Red, 1) == "Red-01". Callers must validate inputs first; passing
// an unknown color or out-of-range number is a programming error and panics.
func Format(color Color, number int) string {
	if !IsValidColor(string(color)) {
		panic(fmt.Sprintf("label: invalid color %q", color))
	}
	if !IsValidNumber(number) {
		panic(fmt.Sprintf("label: slot number %d out of range", number))
	}
	return fmt.Sprintf("%s-%02d", color, number)
}

// Parse decodes a code string back into its color and slot number. It
// accepts arbitrary input (codes arrive from scanned QR frames) and
// reports ok=false for anything that does not match the canonical shape
// or whose number falls outside 1-99. It never panics.
func Parse(code string) (color Color, number int, ok bool) {
	m := codePattern.FindStringSubmatch(code)
	if m == nil {
		return "", 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || !IsValidNumber(n) {
		return "", 0, false
	}
	return Color(m[1]), n, true
}

// IsValidCode reports whether code has the canonical "Color-NN" shape.
func IsValidCode(code string) bool {
	_, _, ok := Parse(code)
	return ok
}
