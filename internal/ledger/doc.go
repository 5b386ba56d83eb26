// Package ledger defines the host runtime's named-ledger primitive.
//
// A ledger is a named collection of entries, each pairing a unique display
// label with an integer score. It is the only persistence primitive the host
// exposes to addons; everything richer (directories, files, settings blobs)
// is emulated on top of it by the storage package.
//
// The Store and Ledger interfaces model the host API surface exactly: there
// is no entry-level locking and no atomic "length then append" operation.
// Reading the entry count and installing a new entry are always two separate
// calls, which is why higher layers inherit the slot-collision race they
// document.
//
// MemoryStore is an in-process implementation for hosts that do not supply
// their own store, for the demo host, and for tests.
package ledger
