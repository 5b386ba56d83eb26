package ledger

import "sync"

// MemoryStore is an in-process Store implementation.
// It is safe for concurrent use, though the host execution model this
// library targets is single-threaded and cooperative.
type MemoryStore struct {
	mu      sync.RWMutex
	ledgers map[string]*memoryLedger
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		ledgers: make(map[string]*memoryLedger),
	}
}

// CreateNamed creates a new ledger with the given name.
func (s *MemoryStore) CreateNamed(name string) (Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ledgers[name]; ok {
		return nil, ErrExists
	}

	l := &memoryLedger{name: name}
	s.ledgers[name] = l
	return l, nil
}

// GetNamed resolves an existing ledger.
func (s *MemoryStore) GetNamed(name string) (Ledger, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.ledgers[name]
	if !ok {
		return nil, false
	}
	return l, true
}

// DeleteNamed removes a ledger.
func (s *MemoryStore) DeleteNamed(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ledgers[name]; !ok {
		return ErrNotFound
	}
	delete(s.ledgers, name)
	return nil
}

// Count returns the number of ledgers in the store.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ledgers)
}

// memoryLedger keeps entries in insertion order. Callers above this package
// must not depend on that order; it is a property of this backing only.
type memoryLedger struct {
	mu      sync.RWMutex
	name    string
	entries []Entry
}

// Name returns the ledger's name.
func (l *memoryLedger) Name() string {
	return l.name
}

// Entries returns a snapshot of all entries.
func (l *memoryLedger) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// SetEntry installs a new entry or updates the score of an existing label.
func (l *memoryLedger) SetEntry(label string, score int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].Label == label {
			l.entries[i].Score = score
			return nil
		}
	}
	l.entries = append(l.entries, Entry{Label: label, Score: score})
	return nil
}

// RemoveEntry removes the entry with the given label.
func (l *memoryLedger) RemoveEntry(label string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].Label == label {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return nil
		}
	}
	return ErrEntryNotFound
}
