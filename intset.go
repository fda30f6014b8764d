package wofa

import "slices"

// IntSet A set of states that can key a HashMap.
type IntSet interface {
	Hashable

	GetArray() []int

	Size() int
}

func hashStates(values []int) uint64 {
	h := uint64(len(values))
	for _, v := range values {
		h += uint64(mix(v))
	}
	return h
}

func equalIntSets(a IntSet, other Hashable) bool {
	is, ok := other.(IntSet)
	if !ok {
		return false
	}
	return a.Hash() == is.Hash() && slices.Equal(a.GetArray(), is.GetArray())
}

var _ IntSet = &FrozenIntSet{}

// FrozenIntSet An immutable, sorted set of states together with the state it was assigned to.
type FrozenIntSet struct {
	values   []int
	state    int
	hashCode uint64
}

func NewFrozenIntSet(values []int, hashCode uint64, state int) *FrozenIntSet {
	return &FrozenIntSet{values: values, state: state, hashCode: hashCode}
}

func (f *FrozenIntSet) Hash() uint64 {
	return f.hashCode
}

func (f *FrozenIntSet) Equals(other Hashable) bool {
	if f == nil {
		switch ptr := other.(type) {
		case *FrozenIntSet:
			return ptr == nil
		case *StateSet:
			return ptr == nil
		default:
			return false
		}
	}
	return equalIntSets(f, other)
}

func (f *FrozenIntSet) GetArray() []int {
	return f.values
}

func (f *FrozenIntSet) Size() int {
	return len(f.values)
}

var _ IntSet = &StateSet{}

// StateSet A mutable set of states, used to collect the destinations of a subset before it is frozen.
type StateSet struct {
	inner       map[int]struct{}
	hashUpdated bool
	hashCode    uint64
}

func NewStateSet() *StateSet {
	return &StateSet{
		inner: make(map[int]struct{}),
	}
}

func (s *StateSet) Hash() uint64 {
	if s.hashUpdated {
		return s.hashCode
	}
	s.hashCode = hashStates(s.GetArray())
	s.hashUpdated = true
	return s.hashCode
}

func (s *StateSet) Equals(other Hashable) bool {
	if s == nil {
		return other == nil
	}
	return equalIntSets(s, other)
}

func (s *StateSet) GetArray() []int {
	keys := make([]int, 0, len(s.inner))
	for k := range s.inner {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (s *StateSet) Size() int {
	return len(s.inner)
}

func (s *StateSet) keyChanged() {
	s.hashUpdated = false
	s.hashCode = 0
}

func (s *StateSet) Add(state int) {
	if _, ok := s.inner[state]; ok {
		return
	}
	s.inner[state] = struct{}{}
	s.keyChanged()
}

func (s *StateSet) Reset() {
	clear(s.inner)
	s.keyChanged()
}

// Freeze Returns an immutable copy of this set, assigned to state.
func (s *StateSet) Freeze(state int) *FrozenIntSet {
	return NewFrozenIntSet(s.GetArray(), s.Hash(), state)
}
