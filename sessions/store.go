package sessions

// Store mirrors the current Session into client-side persistence. The
// in-memory session owned by the coordinator is always the source of truth;
// the store is only consulted on startup.
//
// Store operations never fail: a record that cannot be loaded or decoded
// degrades to "no session" and the corrupt record is removed.
type Store interface {
	// Load returns the persisted session, or nil when none exists or the
	// record is malformed.
	Load() *Session

	// Save persists s, overwriting any prior record. A nil s is ignored.
	Save(s *Session)

	// Clear removes the persisted record unconditionally.
	Clear()
}
