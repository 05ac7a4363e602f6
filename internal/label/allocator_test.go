package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issuedSet(codes ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

func TestNextFreeSlotEmptyNamespace(t *testing.T) {
	color, number, err := NextFreeSlot(issuedSet())
	require.NoError(t, err)
	assert.Equal(t, Red, color)
	assert.Equal(t, 1, number)
}

func TestNextFreeSlotSkipsIssuedCodes(t *testing.T) {
	color, number, err := NextFreeSlot(issuedSet("Red-01", "Red-02"))
	require.NoError(t, err)
	assert.Equal(t, Red, color)
	assert.Equal(t, 3, number)
}

func TestNextFreeSlotIsDeterministic(t *testing.T) {
	issued := issuedSet("Red-01", "Red-03", "Blue-07")
	firstColor, firstNumber, err := NextFreeSlot(issued)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		color, number, err := NextFreeSlot(issued)
		require.NoError(t, err)
		assert.Equal(t, firstColor, color)
		assert.Equal(t, firstNumber, number)
	}
}

func TestNextFreeSlotAdvancesToSecondColor(t *testing.T) {
	// Fill every slot of the first color; the candidate must be the
	// second color in declared order, number 1.
	issued := make(map[string]struct{})
	for n := MinNumber; n <= MaxNumber; n++ {
		issued[Format(Colors[0], n)] = struct{}{}
	}

	color, number, err := NextFreeSlot(issued)
	require.NoError(t, err)
	assert.Equal(t, Colors[1], color)
	assert.Equal(t, 1, number)
}

func TestNextFreeSlotExhaustion(t *testing.T) {
	issued := make(map[string]struct{})
	for _, color := range Colors {
		for n := MinNumber; n <= MaxNumber; n++ {
			issued[Format(color, n)] = struct{}{}
		}
	}
	require.Len(t, issued, NamespaceSize)

	_, _, err := NextFreeSlot(issued)
	assert.ErrorIs(t, err, ErrNamespaceExhausted)
}
