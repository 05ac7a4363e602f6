package label

import "errors"

// NamespaceSize is the total number of allocatable slots (8 colors x 99 numbers).
const NamespaceSize = 8 * 99

// ErrNamespaceExhausted is returned by NextFreeSlot when every
// color/number combination is already in use.
var ErrNamespaceExhausted = errors.New("no available container slots")

// NextFreeSlot scans the namespace in its fixed order (colors as
// declared, numbers ascending) and returns the first slot whose code is
// absent from issued. The result is only a candidate: two concurrent
// callers can see the same free slot, and the database's unique
// constraint on the code is what actually arbitrates the race.
func NextFreeSlot(issued map[string]struct{}) (Color, int, error) {
	for _, color := range Colors {
		for number := MinNumber; number <= MaxNumber; number++ {
			if _, taken := issued[Format(color, number)]; !taken {
				return color, number, nil
			}
		}
	}
	return "", 0, ErrNamespaceExhausted
}
