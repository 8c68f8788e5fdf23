package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlotMidnightSpecialCase(t *testing.T) {
	a, b, err := parseSlot("0-7")
	require.NoError(t, err)
	assert.Equal(t, 24, a)
	assert.Equal(t, 31, b)
}

func TestParseSlotKeepsOrderedHours(t *testing.T) {
	a, b, err := parseSlot("21-23")
	require.NoError(t, err)
	assert.Equal(t, 21, a)
	assert.Equal(t, 23, b)
}

func TestShiftCoversSlotDaytime(t *testing.T) {
	s := Shift{Code: "DA", Start: 7, End: 15}
	assert.True(t, shiftCoversSlot(s, "7-9"))
	assert.True(t, shiftCoversSlot(s, "9-15"))
	assert.False(t, shiftCoversSlot(s, "16-18"))
}

func TestShiftCoversSlotMidnightCrossing(t *testing.T) {
	s := Shift{Code: "NA", Start: 21, End: 7} // crosses midnight
	assert.True(t, shiftCoversSlot(s, "21-23"))
	assert.True(t, shiftCoversSlot(s, "0-7"))
	assert.False(t, shiftCoversSlot(s, "9-15"))
}

func TestShiftCoversSlotOverlapSymmetry(t *testing.T) {
	shifts := []Shift{
		{Code: "DA", Start: 7, End: 15},
		{Code: "EA", Start: 9, End: 18},
		{Code: "NA", Start: 21, End: 7},
		{Code: "NC", Start: 23, End: 9},
	}
	for _, s := range shifts {
		se := s.End
		if se <= s.Start && se <= 24 {
			se += 24
		}
		for _, slot := range Slots {
			a, b, err := parseSlot(slot)
			require.NoError(t, err)
			naive := !(se <= a || b <= s.Start)
			assert.Equal(t, naive, shiftCoversSlot(s, slot), "shift=%s slot=%s", s.Code, slot)
		}
	}
}
