package wofa

// Hashable A key of HashMap.
type Hashable interface {
	Hash() uint64
	Equals(other Hashable) bool
}

const hashMapLoadFactor = 0.75

// HashMap A chained hash map keyed by Hashable values. The subset construction uses it to find the
// state assigned to a set of states, looking up with a mutable StateSet and storing its frozen
// copy. It is not safe for concurrent mutation; every operation owns its own map.
type HashMap[T any] struct {
	buckets []*Entry[T]
	size    int
	mask    uint64
}

// Entry One key/value pair of a bucket chain.
type Entry[T any] struct {
	key   Hashable
	value T
	next  *Entry[T]
}

type optionsHashMap struct {
	capacity int // defaults to 1, rounded up to a power of two
}

type OptionsHashMap func(hashMap *optionsHashMap)

func WithCapacity(capacity int) OptionsHashMap {
	return func(hashMap *optionsHashMap) {
		hashMap.capacity = capacity
	}
}

// NewHashMap Creates a map; the capacity is rounded up to a power of two.
func NewHashMap[T any](options ...OptionsHashMap) *HashMap[T] {
	opt := &optionsHashMap{capacity: 1}
	for _, o := range options {
		o(opt)
	}

	buckets := 1
	for buckets < opt.capacity {
		buckets <<= 1
	}
	return &HashMap[T]{
		buckets: make([]*Entry[T], buckets),
		mask:    uint64(buckets - 1),
	}
}

// Returns the entry holding key, nil if there is none.
func (m *HashMap[T]) find(key Hashable) *Entry[T] {
	for e := m.buckets[key.Hash()&m.mask]; e != nil; e = e.next {
		if e.key.Equals(key) {
			return e
		}
	}
	return nil
}

// Set Inserts or replaces the value of key.
func (m *HashMap[T]) Set(key Hashable, value T) {
	if e := m.find(key); e != nil {
		e.value = value
		return
	}

	index := key.Hash() & m.mask
	m.buckets[index] = &Entry[T]{key: key, value: value, next: m.buckets[index]}
	m.size++
	if float64(m.size) > hashMapLoadFactor*float64(len(m.buckets)) {
		m.grow()
	}
}

// Get Returns the value of key and whether it was present.
func (m *HashMap[T]) Get(key Hashable) (T, bool) {
	if e := m.find(key); e != nil {
		return e.value, true
	}
	var zero T
	return zero, false
}

// Doubles the bucket array, relinking the existing entries.
func (m *HashMap[T]) grow() {
	buckets := make([]*Entry[T], 2*len(m.buckets))
	mask := uint64(len(buckets) - 1)

	for _, head := range m.buckets {
		for e := head; e != nil; {
			next := e.next
			index := e.key.Hash() & mask
			e.next = buckets[index]
			buckets[index] = e
			e = next
		}
	}

	m.buckets = buckets
	m.mask = mask
}
