package storage

import (
	"fmt"
	"strings"

	"github.com/dshills/addonkit/internal/ledger"
)

// WarnFunc receives non-fatal registry diagnostics.
type WarnFunc func(format string, args ...any)

// Registry creates, resolves, and deletes Directories for one owner inside
// one root namespace. Ledger names are derived deterministically from the
// root, the owner identity, and the directory's logical name, so two hosts
// with the same configuration resolve the same storage.
type Registry struct {
	store ledger.Store
	root  string
	owner string
	warn  WarnFunc
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithWarnFunc routes registry warnings to fn. By default warnings are
// dropped.
func WithWarnFunc(fn WarnFunc) RegistryOption {
	return func(r *Registry) {
		r.warn = fn
	}
}

// NewRegistry creates a Registry over the given store for one owner.
func NewRegistry(store ledger.Store, root, owner string, opts ...RegistryOption) *Registry {
	r := &Registry{
		store: store,
		root:  root,
		owner: owner,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Owner returns the identity this Registry resolves Directories with.
func (r *Registry) Owner() string {
	return r.owner
}

// Format maps a logical directory name to its canonical ledger name.
func (r *Registry) Format(name string) string {
	return strings.ToUpper(r.root + "." + r.owner + "." + name)
}

// IsValid reports whether a ledger backs the given directory name.
func (r *Registry) IsValid(name string) bool {
	_, ok := r.store.GetNamed(r.Format(name))
	return ok
}

// Get resolves an existing Directory without creating it.
func (r *Registry) Get(name string) (*Directory, bool) {
	led, ok := r.store.GetNamed(r.Format(name))
	if !ok {
		return nil, false
	}
	return NewDirectory(led, strings.ToUpper(r.owner)), true
}

// New returns the Directory for name, creating its backing ledger when
// needed. Requesting an existing name is not an error: the existing
// Directory is returned and a warning is emitted unless suppressed.
func (r *Registry) New(name string, ignoreWarn bool) (*Directory, error) {
	if dir, ok := r.Get(name); ok {
		if !ignoreWarn && r.warn != nil {
			r.warn("directory %q already exists; returning existing ledger %s", name, dir.LedgerID())
		}
		return dir, nil
	}

	led, err := r.store.CreateNamed(r.Format(name))
	if err != nil {
		return nil, fmt.Errorf("create directory %q: %w", name, err)
	}
	return NewDirectory(led, strings.ToUpper(r.owner)), nil
}

// Delete removes the directory's backing ledger and all its files.
// Resolution goes through Get, not IsValid, so a resolution failure surfaces
// exactly as it would on the read path.
func (r *Registry) Delete(name string) error {
	if _, ok := r.Get(name); !ok {
		return fmt.Errorf("delete directory %q: %w", name, ErrNotFound)
	}
	if err := r.store.DeleteNamed(r.Format(name)); err != nil {
		return fmt.Errorf("delete directory %q: %w", name, err)
	}
	return nil
}

// Open wraps an arbitrary canonical ledger name as a Directory resolved
// with this Registry's owner identity. Opening another addon's ledger
// yields a readable Directory whose mutations soft-fail.
func (r *Registry) Open(canonical string) (*Directory, bool) {
	led, ok := r.store.GetNamed(canonical)
	if !ok {
		return nil, false
	}
	return NewDirectory(led, strings.ToUpper(r.owner)), true
}
