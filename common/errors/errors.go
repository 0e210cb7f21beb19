package errors

import "github.com/pkg/errors"

var (
	// ErrWalletUnavailable is returned when no wallet provider is configured.
	ErrWalletUnavailable = errors.New("wallet unavailable")
	// ErrConnectionFailed is returned when the wallet session could not be initialized.
	ErrConnectionFailed = errors.New("connection failed")
	// ErrSessionNotInitialized is returned when an operation runs before connect.
	ErrSessionNotInitialized = errors.New("session not initialized")
	// ErrMintFailed is returned for any failure in the cross-chain mint sequence.
	ErrMintFailed = errors.New("mint failed")

	ErrBusy                = errors.New("action already in flight")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNetworkMismatch     = errors.New("network id mismatch")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrInvalidChainType    = errors.New("invalid chain type")
	ErrChainNotFound       = errors.New("chain not found")
	ErrChainExists         = errors.New("chain already exists in registry")
)

// markedError classifies a cause under one of the sentinel kinds above.
type markedError struct {
	kind  error
	cause error
}

// Mark returns an error that matches kind with errors.Is and unwraps to cause.
//
// Parameters:
// - kind: one of the package sentinels.
// - cause: the underlying failure, may be nil.
//
// Returns:
// - error: the classified error.
func Mark(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return &markedError{kind: kind, cause: cause}
}

func (e *markedError) Error() string {
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *markedError) Unwrap() error {
	return e.cause
}

// Cause keeps compatibility with errors.Cause from github.com/pkg/errors.
func (e *markedError) Cause() error {
	return e.cause
}

func (e *markedError) Is(target error) bool {
	return target == e.kind
}

// Kind reports which sentinel err belongs to, or nil if none of the
// user-facing kinds match.
func Kind(err error) error {
	for _, kind := range []error{
		ErrWalletUnavailable,
		ErrConnectionFailed,
		ErrSessionNotInitialized,
		ErrMintFailed,
		ErrBusy,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
