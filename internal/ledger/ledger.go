package ledger

import "errors"

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a named ledger or entry does not exist.
	ErrNotFound = errors.New("ledger not found")

	// ErrExists is returned when creating a ledger whose name is taken.
	ErrExists = errors.New("ledger already exists")

	// ErrEntryNotFound is returned when removing an entry that is absent.
	ErrEntryNotFound = errors.New("entry not found")
)

// Entry is a single ledger record: a display label paired with an integer
// score. Labels are unique per ledger by convention only; the store never
// enforces uniqueness.
type Entry struct {
	Label string
	Score int
}

// Ledger is one named collection of entries.
//
// Entries returns a snapshot; iteration order is backend-defined and callers
// must not rely on it. SetEntry installs a new entry, or updates the score of
// an existing label in place. RemoveEntry removes by label.
type Ledger interface {
	Name() string
	Entries() []Entry
	SetEntry(label string, score int) error
	RemoveEntry(label string) error
}

// Store is the host's named-ledger registry.
type Store interface {
	// CreateNamed creates a new ledger. Returns ErrExists if the name is
	// already taken.
	CreateNamed(name string) (Ledger, error)

	// GetNamed resolves an existing ledger without creating it.
	GetNamed(name string) (Ledger, bool)

	// DeleteNamed removes a ledger and all its entries. Returns ErrNotFound
	// if no ledger has that name.
	DeleteNamed(name string) error
}
