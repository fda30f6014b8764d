package wofa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A key whose hash collides on purpose.
type pairKey struct {
	state int
	label int
}

func (k pairKey) Hash() uint64 {
	return uint64(k.state + k.label)
}

func (k pairKey) Equals(other Hashable) bool {
	o, ok := other.(pairKey)
	return ok && k == o
}

type stateKey int

func (k stateKey) Hash() uint64 {
	return uint64(k)
}

func (k stateKey) Equals(other Hashable) bool {
	o, ok := other.(stateKey)
	return ok && k == o
}

func TestHashMap(t *testing.T) {
	t.Run("set and get", func(t *testing.T) {
		hm := NewHashMap[string](WithCapacity(8))
		hm.Set(pairKey{1, 0}, "value1")

		val, ok := hm.Get(pairKey{1, 0})
		assert.True(t, ok)
		assert.Equal(t, "value1", val)

		val, ok = hm.Get(pairKey{2, 1})
		assert.False(t, ok)
		assert.Equal(t, "", val)
	})

	t.Run("replace", func(t *testing.T) {
		hm := NewHashMap[string](WithCapacity(8))
		hm.Set(pairKey{1, 0}, "v1")
		hm.Set(pairKey{1, 0}, "v2")

		val, ok := hm.Get(pairKey{1, 0})
		assert.True(t, ok)
		assert.Equal(t, "v2", val)
		assert.Equal(t, 1, hm.size)
	})

	t.Run("zero capacity", func(t *testing.T) {
		hm := NewHashMap[int](WithCapacity(0))
		assert.Len(t, hm.buckets, 1)
		hm.Set(stateKey(3), 3)
		val, ok := hm.Get(stateKey(3))
		assert.True(t, ok)
		assert.Equal(t, 3, val)
	})

	t.Run("capacity rounded up", func(t *testing.T) {
		hm := NewHashMap[int](WithCapacity(5))
		assert.Len(t, hm.buckets, 8)
	})
}

func TestHashMap_Collisions(t *testing.T) {
	hm := NewHashMap[string](WithCapacity(16))

	// pairKey{1, 1}, pairKey{2, 0} and stateKey(2) all hash to 2.
	hm.Set(pairKey{1, 1}, "value1")
	hm.Set(pairKey{2, 0}, "value2")
	hm.Set(stateKey(2), "value3")
	hm.Set(pairKey{2, 1}, "value4")
	assert.Equal(t, 4, hm.size)

	for key, want := range map[Hashable]string{
		pairKey{1, 1}: "value1",
		pairKey{2, 0}: "value2",
		stateKey(2):   "value3",
		pairKey{2, 1}: "value4",
	} {
		val, ok := hm.Get(key)
		assert.True(t, ok)
		assert.Equal(t, want, val)
	}

	_, ok := hm.Get(pairKey{0, 3})
	assert.False(t, ok)
}

func TestHashMap_Resize(t *testing.T) {
	initialCap := 16
	hm := NewHashMap[int](WithCapacity(initialCap))

	// 16 * 0.75 = 12 entries fit before the table doubles.
	for i := 0; i < 13; i++ {
		hm.Set(stateKey(i), i)
	}
	assert.Greater(t, len(hm.buckets), initialCap)

	for i := 0; i < 13; i++ {
		val, ok := hm.Get(stateKey(i))
		assert.True(t, ok)
		assert.Equal(t, i, val)
	}
}

// A set of states is found again through any equal set, whatever state it was assigned to and
// whether it is frozen or still being built.
func TestHashMap_StateSetKeys(t *testing.T) {
	hm := NewHashMap[int]()

	s := NewStateSet()
	for state := 0; state < 10; state++ {
		s.Reset()
		s.Add(state)
		s.Add(state + 3)
		hm.Set(s.Freeze(state), state)
	}
	require.Equal(t, 10, hm.size)

	lookup := NewStateSet()
	lookup.Add(7)
	lookup.Add(4)
	state, ok := hm.Get(lookup)
	assert.True(t, ok)
	assert.Equal(t, 4, state)

	state, ok = hm.Get(NewFrozenIntSet([]int{2, 5}, hashStates([]int{2, 5}), -1))
	assert.True(t, ok)
	assert.Equal(t, 2, state)

	lookup.Add(5)
	_, ok = hm.Get(lookup)
	assert.False(t, ok)
}
