// Package storage emulates directories and files on top of the host's
// named-ledger primitive.
//
// # Encoding
//
// One Directory wraps one ledger. Each file is a single entry whose label is
//
//	<fileName>:<jsonContent>
//
// and whose score is the insertion slot (the entry count at write time).
// Lookups scan labels by the "<fileName>:" prefix, so every file operation
// is O(n) in the entry count; there is no index.
//
// # Contract quirks preserved on purpose
//
// The ledger primitive offers no transactions, so several operations span
// two host calls and are observably non-atomic:
//
//   - Write computes the slot from the current entry count, then installs
//     the entry in a second call. Two logically interleaved writes can
//     compute the same slot and collide.
//   - Rename and Move are delete-then-write and copy-then-delete. A failure
//     between the steps loses data. Callers treat them as a logical unit
//     because the host runtime is single-threaded, but the risk is real and
//     documented on the methods.
//   - Overwrites are append-and-shadow: the old entry is removed and a new
//     one appended, never edited in place.
//
// Mutation is owner-gated: a Directory may change its backing ledger only
// when its owner identity is a substring of the ledger name. Non-owner
// mutations succeed silently without touching storage, so callers may
// attempt speculative writes against foreign directories. Reads are open to
// anyone who can resolve the Directory.
//
// Sizes are measured in bytes of the encoded text: FileSize counts the
// serialized content, Size counts whole labels. Multi-byte runes in JSON
// content therefore count per byte, not per character.
//
// The Registry maps human-readable directory names to canonical ledger
// names (ROOT.OWNER.NAME, upper-cased) and owns directory lifecycle.
package storage
