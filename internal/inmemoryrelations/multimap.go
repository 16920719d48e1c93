package inmemoryrelations

import "github.com/vk/kmpgraph/internal/handle"

// multimap maps a key to a set of handles, creating the set on first add.
type multimap[K comparable, V handle.SourceSet | handle.Compilation] map[K]handle.Set[V]

func (m multimap[K, V]) add(key K, value V) bool {
	set, ok := m[key]
	if !ok {
		set = make(handle.Set[V])
		m[key] = set
	}
	return set.Add(value)
}

// get returns a copy of the set stored under key, empty if absent.
func (m multimap[K, V]) get(key K) handle.Set[V] {
	return m[key].Clone()
}

func (m multimap[K, V]) has(key K, value V) bool {
	return m[key].Has(value)
}

// pairs counts every (key, value) pair.
func (m multimap[K, V]) pairs() int {
	n := 0
	for _, set := range m {
		n += len(set)
	}
	return n
}
