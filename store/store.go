package store

import (
	"sort"
	"sync"
)

// Store maps template names to their raw content. It is
// safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[string]string
}

// New returns an empty Store.
func New() *Store {
	return &Store{entries: make(map[string]string)}
}

// Get returns the content stored under name.
func (st *Store) Get(name string) (string, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	content, ok := st.entries[name]

	return content, ok
}

// PutIfAbsent stores content under name unless the name
// is already present. It returns the content held by the
// store after the call and whether this call inserted it.
func (st *Store) PutIfAbsent(
	name string,
	content string,
) (string, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if existing, ok := st.entries[name]; ok {
		return existing, false
	}

	st.entries[name] = content

	return content, true
}

// Len returns the number of stored templates.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()

	return len(st.entries)
}

// Names returns the stored template names in sorted
// order.
func (st *Store) Names() []string {
	st.mu.RLock()

	names := make([]string, 0, len(st.entries))
	for name := range st.entries {
		names = append(names, name)
	}

	st.mu.RUnlock()

	sort.Strings(names)

	return names
}
