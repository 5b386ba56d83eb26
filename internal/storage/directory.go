package storage

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dshills/addonkit/internal/ledger"
)

// Directory is one logical file namespace emulated over one ledger.
//
// A Directory mutates its backing ledger only when its owner identity is a
// substring of the ledger name; every mutating method soft-fails (returns
// nil without writing) on a Directory the caller does not own. Reads work
// for any holder of the Directory.
type Directory struct {
	led      ledger.Ledger
	ledgerID string
	ownerID  string
}

// NewDirectory wraps an existing ledger as a Directory owned by ownerID.
func NewDirectory(led ledger.Ledger, ownerID string) *Directory {
	return &Directory{
		led:      led,
		ledgerID: led.Name(),
		ownerID:  ownerID,
	}
}

// LedgerID returns the name of the backing ledger.
func (d *Directory) LedgerID() string {
	return d.ledgerID
}

// OwnerID returns the identity the Directory was resolved with.
func (d *Directory) OwnerID() string {
	return d.ownerID
}

// Owned reports whether this Directory may mutate its backing ledger.
func (d *Directory) Owned() bool {
	return strings.Contains(d.ledgerID, d.ownerID)
}

// writeConfig holds per-write options.
type writeConfig struct {
	overwrite bool
}

// WriteOption configures a Write call.
type WriteOption func(*writeConfig)

// DisallowOverwrite makes Write fail with ErrExists when the file is
// already present instead of shadowing it.
func DisallowOverwrite() WriteOption {
	return func(c *writeConfig) {
		c.overwrite = false
	}
}

// find returns the entry whose label carries the file's prefix.
func (d *Directory) find(name string) (ledger.Entry, bool) {
	prefix := name + ":"
	for _, e := range d.led.Entries() {
		if strings.HasPrefix(e.Label, prefix) {
			return e, true
		}
	}
	return ledger.Entry{}, false
}

// Exists reports whether a file with the given name is present.
// The check is a linear label scan; there is no index.
func (d *Directory) Exists(name string) bool {
	_, ok := d.find(name)
	return ok
}

// Read returns the file's content as raw JSON.
// Returns ErrNotFound if the file is absent and ErrInvalidContent if the
// stored payload does not parse.
func (d *Directory) Read(name string) (json.RawMessage, error) {
	e, ok := d.find(name)
	if !ok {
		return nil, &FileError{Op: "read", Name: name, Err: ErrNotFound}
	}

	payload := e.Label[len(name)+1:]
	if !gjson.Valid(payload) {
		return nil, &FileError{Op: "read", Name: name, Err: ErrInvalidContent}
	}
	return json.RawMessage(payload), nil
}

// ReadResult returns the file's content as a parsed gjson result, for
// callers that want path queries without a full decode.
func (d *Directory) ReadResult(name string) (gjson.Result, error) {
	raw, err := d.Read(name)
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.ParseBytes(raw), nil
}

// Write serializes content and installs it under name.
//
// When the file already exists and overwriting is allowed (the default),
// the old entry is removed and a new one appended; entries are never edited
// in place. With DisallowOverwrite the call fails with ErrExists instead.
// On a Directory the caller does not own, Write returns nil without
// touching storage.
//
// The slot assigned to the new entry is the entry count at write time,
// observed in a separate call from the install. Two logically interleaved
// writes can compute the same slot; that collision is part of the contract.
func (d *Directory) Write(name string, content any, opts ...WriteOption) error {
	cfg := writeConfig{overwrite: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	payload, err := json.Marshal(content)
	if err != nil {
		return &FileError{Op: "write", Name: name, Err: err}
	}
	return d.writeRaw("write", name, string(payload), cfg.overwrite)
}

// writeRaw installs a pre-serialized payload under name.
func (d *Directory) writeRaw(op, name, payload string, overwrite bool) error {
	if e, ok := d.find(name); ok {
		if !overwrite {
			return &FileError{Op: op, Name: name, Err: ErrExists}
		}
		if !d.Owned() {
			return nil
		}
		if err := d.led.RemoveEntry(e.Label); err != nil {
			return &FileError{Op: op, Name: name, Err: err}
		}
	} else if !d.Owned() {
		return nil
	}

	slot := len(d.led.Entries())
	if err := d.led.SetEntry(name+":"+payload, slot); err != nil {
		return &FileError{Op: op, Name: name, Err: err}
	}
	return nil
}

// Delete removes the file.
// Returns ErrNotFound if it is absent; soft-fails on a non-owned Directory.
func (d *Directory) Delete(name string) error {
	e, ok := d.find(name)
	if !ok {
		return &FileError{Op: "delete", Name: name, Err: ErrNotFound}
	}
	if !d.Owned() {
		return nil
	}
	if err := d.led.RemoveEntry(e.Label); err != nil {
		return &FileError{Op: "delete", Name: name, Err: err}
	}
	return nil
}

// Rename moves a file's content from oldName to newName.
//
// The operation is two independent ledger round-trips: delete the old
// entry, then write the new one. A failure between the steps loses the
// content. The host runtime is single-threaded, so callers treat Rename as
// a logical unit, but there is no transaction underneath it.
func (d *Directory) Rename(oldName, newName string) error {
	if d.Exists(newName) {
		return &FileError{Op: "rename", Name: newName, Err: ErrExists}
	}
	raw, err := d.Read(oldName)
	if err != nil {
		return fmt.Errorf("rename %q: %w", oldName, err)
	}

	if err := d.Delete(oldName); err != nil {
		return fmt.Errorf("rename %q: %w", oldName, err)
	}
	return d.writeRaw("rename", newName, string(raw), true)
}

// Copy duplicates src's content under dst, leaving src untouched.
func (d *Directory) Copy(src, dst string) error {
	if d.Exists(dst) {
		return &FileError{Op: "copy", Name: dst, Err: ErrExists}
	}
	raw, err := d.Read(src)
	if err != nil {
		return fmt.Errorf("copy %q: %w", src, err)
	}
	return d.writeRaw("copy", dst, string(raw), true)
}

// Move is Copy followed by Delete. Ownership is checked once up front and
// then re-checked independently by each sub-step.
func (d *Directory) Move(src, dst string) error {
	if !d.Owned() {
		return nil
	}
	if err := d.Copy(src, dst); err != nil {
		return err
	}
	return d.Delete(src)
}

// FileSize returns the length in bytes of the file's serialized content,
// excluding the name prefix.
func (d *Directory) FileSize(name string) (int, error) {
	e, ok := d.find(name)
	if !ok {
		return 0, &FileError{Op: "size", Name: name, Err: ErrNotFound}
	}
	return len(e.Label) - len(name) - 1, nil
}

// Size returns the sum of full encoded label lengths across all entries.
// This intentionally includes name prefixes, making it a directory-wide
// storage metric rather than a sum of FileSize results.
func (d *Directory) Size() int {
	total := 0
	for _, e := range d.led.Entries() {
		total += len(e.Label)
	}
	return total
}

// List returns every file name, in ledger iteration order.
// The order is backend-defined; callers must treat the result as a set.
func (d *Directory) List() []string {
	entries := d.led.Entries()
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if i := strings.Index(e.Label, ":"); i >= 0 {
			names = append(names, e.Label[:i])
		} else {
			names = append(names, e.Label)
		}
	}
	return names
}
