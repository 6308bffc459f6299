package common

import (
	"fmt"
	"sort"
	"strconv"
)

type sequenceItem[V any] struct {
	seq   uint64
	value V
}

// SequenceMap is a map whose entries are bucketed by a sequence number. The
// map has a floor: entries with a sequence number at or below the floor are
// outside the window and can neither be inserted nor retrieved. Raising the
// floor with ShiftWindow evicts every entry that falls below it, in work
// proportional to the number of evicted entries.
//
// SequenceMap is not safe for concurrent use.
type SequenceMap[K comparable, V any] struct {
	name    string
	floor   uint64
	items   map[K]sequenceItem[V]
	buckets map[uint64][]K
}

// NewSequenceMap creates an empty SequenceMap with the given floor. capacity
// is a hint for the number of entries.
func NewSequenceMap[K comparable, V any](name string, floor uint64, capacity int) *SequenceMap[K, V] {
	return &SequenceMap[K, V]{
		name:    name,
		floor:   floor,
		items:   make(map[K]sequenceItem[V], capacity),
		buckets: make(map[uint64][]K),
	}
}

// Put inserts value under key with sequence number seq. It returns a TooLate
// StoreErr if seq is at or below the floor, and a KeyAlreadyExists StoreErr if
// key is already present.
func (m *SequenceMap[K, V]) Put(key K, seq uint64, value V) error {
	if seq <= m.floor {
		return NewStoreErr(m.name, TooLate, strconv.FormatUint(seq, 10))
	}
	if _, ok := m.items[key]; ok {
		return NewStoreErr(m.name, KeyAlreadyExists, fmt.Sprint(key))
	}
	m.items[key] = sequenceItem[V]{seq: seq, value: value}
	m.buckets[seq] = append(m.buckets[seq], key)
	return nil
}

// Get returns the value stored under key.
func (m *SequenceMap[K, V]) Get(key K) (V, bool) {
	item, ok := m.items[key]
	return item.value, ok
}

// Remove deletes key from the map and reports whether it was present.
func (m *SequenceMap[K, V]) Remove(key K) bool {
	item, ok := m.items[key]
	if !ok {
		return false
	}
	delete(m.items, key)

	bucket := m.buckets[item.seq]
	for i, k := range bucket {
		if k == key {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(m.buckets, item.seq)
	} else {
		m.buckets[item.seq] = bucket
	}
	return true
}

// Len returns the number of entries in the window.
func (m *SequenceMap[K, V]) Len() int {
	return len(m.items)
}

// Floor returns the current floor.
func (m *SequenceMap[K, V]) Floor() uint64 {
	return m.floor
}

// ShiftWindow raises the floor and evicts every entry whose sequence number is
// at or below the new floor. evicted, if not nil, is called for each evicted
// entry in ascending sequence order (insertion order within a sequence
// number). A floor lower than the current one is a no-op.
func (m *SequenceMap[K, V]) ShiftWindow(floor uint64, evicted func(K, V)) {
	if floor <= m.floor {
		return
	}

	var seqs []uint64
	if floor-m.floor <= uint64(len(m.buckets)) {
		// walking the gap is cheaper than sorting the buckets
		for seq := m.floor + 1; ; seq++ {
			if _, ok := m.buckets[seq]; ok {
				seqs = append(seqs, seq)
			}
			if seq == floor {
				break
			}
		}
	} else {
		for seq := range m.buckets {
			if seq <= floor {
				seqs = append(seqs, seq)
			}
		}
		sort.Slice(seqs, func(i, j int) bool { return seqs[i] < seqs[j] })
	}

	m.floor = floor

	for _, seq := range seqs {
		for _, key := range m.buckets[seq] {
			item := m.items[key]
			delete(m.items, key)
			if evicted != nil {
				evicted(key, item.value)
			}
		}
		delete(m.buckets, seq)
	}
}

// Clear empties the map and resets its floor.
func (m *SequenceMap[K, V]) Clear(floor uint64) {
	m.floor = floor
	m.items = make(map[K]sequenceItem[V], len(m.items))
	m.buckets = make(map[uint64][]K)
}
