package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors without
// depending on storage details.
//
// These represent factual states about resources, not validation failures:
//   - ErrNotFound: record does not exist in the store, or exists but is not
//     owned by the caller; stores never distinguish the two
//   - ErrConflict: a uniqueness constraint would be violated
//   - ErrExpired: session has passed its expiry
//   - ErrUnavailable: backing store cannot be reached
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrExpired     = errors.New("expired")
	ErrUnavailable = errors.New("unavailable")
)
