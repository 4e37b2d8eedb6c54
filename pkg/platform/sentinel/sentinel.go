package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and gateway clients return
// these (optionally wrapped) so services can translate them into domain errors:
//   - ErrNotFound: the record does not exist (or is soft-deleted) in the store
//   - ErrConflict: a uniqueness constraint was hit
//   - ErrInvalidState: the record is in the wrong state for the requested operation
//   - ErrUnavailable: an upstream system failed, timed out or is short-circuited
//   - ErrRejected: an upstream system refused the request as invalid
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
	ErrRejected     = errors.New("rejected")
)
