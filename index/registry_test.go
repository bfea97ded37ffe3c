package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddAssignsIdsInInsertionOrder(t *testing.T) {
	r := NewRegistry[string]()
	a := r.Add("fish", 1)
	b := r.Add("cake", 2)
	c := r.Add("fish", 3)

	assert := assert.New(t)
	assert.Equal(0, a.ID)
	assert.Equal(1, b.ID)
	assert.Equal(0, c.ID)
	assert.Equal(2, r.Len())
}

func TestAddRecordsOrdinalWithinBucket(t *testing.T) {
	r := NewRegistry[string]()
	r.Add("x", 1)
	r.Add("y", 2)
	last := r.Add("x", 7)

	assert := assert.New(t)
	assert.Equal(0, last.ID)
	assert.Equal(1, last.Ordinal)
	assert.Equal([]int{1, 7}, r.Bucket(0))
}

func TestAtReportsRegisteredPositionsOnly(t *testing.T) {
	r := NewRegistry[int]()
	r.Add(42, 5)

	ref, ok := r.At(5)
	assert := assert.New(t)
	assert.True(ok)
	assert.Equal(0, ref.ID)

	_, ok = r.At(6)
	assert.False(ok)
}

func TestCountValuesSortsByCountThenFirstSeen(t *testing.T) {
	r := NewRegistry[string]()
	r.Add("a", 1)
	r.Add("b", 2)
	r.Add("b", 3)
	r.Add("c", 4)

	counts := r.CountValues()
	assert := assert.New(t)
	assert.Equal("b", counts[0].Value)
	assert.Equal(2, counts[0].Count)
	// a and c tie on count, a was registered first
	assert.Equal("a", counts[1].Value)
	assert.Equal("c", counts[2].Value)
}

func TestPositionsAreSorted(t *testing.T) {
	r := NewRegistry[string]()
	r.Add("k", 9)
	r.Add("k", 2)
	r.Add("j", 5)

	assert.Equal(t, []int{2, 5, 9}, r.Positions())
}
