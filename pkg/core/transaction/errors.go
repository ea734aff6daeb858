package transaction

import "errors"

// Errors returned by transaction processing stages. They're wrapped with
// details, use errors.Is to check for them.
var (
	// ErrDecode is returned for data that is not a well-formed transaction.
	ErrDecode = errors.New("malformed transaction")
	// ErrWrongVariant is returned when a deployment transaction is expected,
	// but some other one is given.
	ErrWrongVariant = errors.New("not a deployment transaction")
	// ErrFeeNotPublic is returned for fees paid from private records.
	ErrFeeNotPublic = errors.New("fee is not public")
	// ErrAttestation is returned when the program owner can't be created.
	ErrAttestation = errors.New("can't create program owner")
	// ErrAssembly is returned when transaction parts don't match each other.
	ErrAssembly = errors.New("inconsistent deployment transaction")
)
