package sentinel

import "errors"

// Sentinel errors for validation facts. Validators and the pipeline return
// these (optionally wrapped) so callers can branch with errors.Is.
//
// Each one names a reason a record stream is rejected:
//   - ErrFormat: a token fails its grammar
//   - ErrChecksum: an identifier has the right shape but wrong check digits
//   - ErrUnknownKey: a transaction names a key that was never registered
//   - ErrOrdering: a destiny key violates the registration-order policy
//   - ErrConflict: a key is registered a second time
//   - ErrTruncated: input ended before the registration sentinel
//   - ErrSource: the line source failed while reading
var (
	ErrFormat     = errors.New("malformed field")
	ErrChecksum   = errors.New("checksum mismatch")
	ErrUnknownKey = errors.New("unknown key")
	ErrOrdering   = errors.New("ordering violation")
	ErrConflict   = errors.New("conflict")
	ErrTruncated  = errors.New("truncated input")
	ErrSource     = errors.New("line source failed")
)
