package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChordCommonNames(t *testing.T) {
	cases := []struct {
		intervals []int
		name      string
	}{
		{[]int{4, 7}, "major triad"},
		{[]int{3, 7}, "minor triad"},
		{[]int{5, 7}, "Suspended 4th"},
		{[]int{2, 7}, "Suspended 2nd"},
		{[]int{7}, "perfect fifth"},
		{[]int{1, 2, 3}, "4-note chord"},
	}

	assert := assert.New(t)
	for _, c := range cases {
		assert.Equal(c.name, ChordCommonName(c.intervals))
	}
}
