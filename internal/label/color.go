// Package label implements the container identity scheme: eight fixed
// colors combined with a slot number from 1 to 99 yield a canonical
// "Color-NN" code that is printed as a QR label on the physical box.
package label

// Color is one of the eight label colors. The declared order of Colors
// is part of the allocation contract: auto-assignment scans colors in
// this order, so it must not be rearranged.
type Color string

const (
	Red       Color = "Red"
	Blue      Color = "Blue"
	Green     Color = "Green"
	Yellow    Color = "Yellow"
	Orange    Color = "Orange"
	Purple    Color = "Purple"
	Pink      Color = "Pink"
	Turquoise Color = "Turquoise"
)

// Colors lists every valid label color in allocation order.
var Colors = []Color{Red, Blue, Green, Yellow, Orange, Purple, Pink, Turquoise}

// ColorHex maps each color to the hex value the frontend renders labels with.
var ColorHex = map[Color]string{
	Red:       "#EF4444",
	Blue:      "#3B82F6",
	Green:     "#10B981",
	Yellow:    "#F59E0B",
	Orange:    "#F97316",
	Purple:    "#A855F7",
	Pink:      "#EC4899",
	Turquoise: "#14B8A6",
}

// IsValidColor reports whether s names one of the eight label colors.
func IsValidColor(s string) bool {
	for _, c := range Colors {
		if string(c) == s {
			return true
		}
	}
	return false
}
