package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatParseRoundTrip(t *testing.T) {
	for _, color := range Colors {
		for number := MinNumber; number <= MaxNumber; number++ {
			code := Format(color, number)

			gotColor, gotNumber, ok := Parse(code)
			require.True(t, ok, "code %q should parse", code)
			assert.Equal(t, color, gotColor)
			assert.Equal(t, number, gotNumber)
		}
	}
}

func TestFormatZeroPadding(t *testing.T) {
	assert.Equal(t, "Red-01", Format(Red, 1))
	assert.Equal(t, "Blue-05", Format(Blue, 5))
	assert.Equal(t, "Turquoise-99", Format(Turquoise, 99))
}

func TestFormatPanicsOnInvalidInput(t *testing.T) {
	assert.Panics(t, func() { Format("Magenta", 1) })
	assert.Panics(t, func() { Format(Red, 0) })
	assert.Panics(t, func() { Format(Red, 100) })
}

func TestParseRejectsMalformedCodes(t *testing.T) {
	malformed := []string{
		"",
		"Red",
		"Red-",
		"Red-1",    // number must be two digits
		"Red-001",  // too many digits
		"Red-00",   // below range
		"Red-1a",
		"-01",
		"Red_01",
		"Red-01 ",
		" Red-01",
		"Red-01-02",
		"r3d-01",
	}
	for _, code := range malformed {
		_, _, ok := Parse(code)
		assert.False(t, ok, "code %q should be rejected", code)
	}
}

func TestParseDoesNotRequireKnownColor(t *testing.T) {
	// Parse only validates the shape; color membership is checked
	// separately at the registry boundary.
	color, number, ok := Parse("Mauve-07")
	require.True(t, ok)
	assert.Equal(t, Color("Mauve"), color)
	assert.Equal(t, 7, number)
	assert.False(t, IsValidColor(string(color)))
}

func TestIsValidColor(t *testing.T) {
	for _, c := range Colors {
		assert.True(t, IsValidColor(string(c)))
	}
	assert.False(t, IsValidColor("red"))
	assert.False(t, IsValidColor(""))
	assert.False(t, IsValidColor("Crimson"))
}

func TestIsValidNumber(t *testing.T) {
	assert.True(t, IsValidNumber(1))
	assert.True(t, IsValidNumber(99))
	assert.False(t, IsValidNumber(0))
	assert.False(t, IsValidNumber(100))
	assert.False(t, IsValidNumber(-1))
}
