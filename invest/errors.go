/*
errors.go - Centralized error kinds for the investment engine

PURPOSE:
  All error kinds in one place. The store surfaces these without retry;
  the API maps each kind to a distinct HTTP status; the client controller
  treats any of them as "no state change".

ERROR KINDS:
  ErrNotFound         read/update referencing an unknown id
  ErrInvalidArgument  malformed input caught before it reaches the store
  ErrStoreUnavailable the backing store could not be reached
  ErrValidationFailed client-side only; never reaches the network layer

USAGE:
  Wrap with context, test with errors.Is:

    if errors.Is(err, invest.ErrNotFound) { ... }

SEE ALSO:
  - api/handlers.go: HTTP status mapping
  - client/controller.go: no-state-change policy
*/
package invest

import "errors"

var (
	// ErrNotFound is returned when a record with the given id does not exist.
	ErrNotFound = errors.New("investment not found")

	// ErrInvalidArgument is returned for malformed input: a create carrying
	// an id, a patch without one, an unparseable body.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStoreUnavailable is returned when the backing store cannot be
	// reached or fails at the transport level.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrValidationFailed is returned by the client when a candidate record
	// fails the submission predicate. It never reaches the network layer.
	ErrValidationFailed = errors.New("validation failed")
)

// IsNotFound reports whether err is a missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidArgument reports whether err is a malformed-input error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsUnavailable reports whether err is a store transport failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
