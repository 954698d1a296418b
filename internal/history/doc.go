// Package history implements time travel over store versions: bounded
// undo/redo stacks, calendar-period snapshot caches, and branching.
//
// The Manager never inspects or copies world state. Store versions are
// immutable values, so "saving" a state is retaining a reference and
// "restoring" is handing that reference back; old versions stay valid
// indefinitely through structural sharing.
//
// INVARIANTS:
//   - The undo stack never exceeds its configured bound; the oldest entry is
//     trimmed first.
//   - Any forward action (Checkpoint, Branch, JumpToMonth/Year) clears the
//     redo stack. Undo then Redo restores the exact pre-undo version.
//   - Undo, Redo, and JumpBack past the available depth are no-ops returning
//     the caller's state: history exhaustion is an expected boundary, not an
//     error. Asking for a snapshot period that was never recorded is an
//     explicit absence (ErrSnapshotNotFound).
//
// A Manager is private sequencing state for one simulation instance and is
// not safe for concurrent use.
package history
