package auth

import "fmt"

// InvalidRequestError reports a request that fails the validity rules and
// must not be signed or dispatched.
type InvalidRequestError struct {
	Reason string
}

// Error implements the error interface
func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Reason)
}

// KeyFormatError reports a private key seed that is not valid Base64 or
// does not decode to exactly 32 bytes. Not retryable without a corrected
// key.
type KeyFormatError struct {
	Cause error
}

// Error implements the error interface
func (e *KeyFormatError) Error() string {
	return fmt.Sprintf("invalid private key seed: %v", e.Cause)
}

// Unwrap returns the underlying cause
func (e *KeyFormatError) Unwrap() error {
	return e.Cause
}

// KeyGenerationError reports a failure of the system's random source or
// the Ed25519 primitive during key generation. Unexpected; surfaced to the
// caller verbatim.
type KeyGenerationError struct {
	Cause error
}

// Error implements the error interface
func (e *KeyGenerationError) Error() string {
	return fmt.Sprintf("key generation failed: %v", e.Cause)
}

// Unwrap returns the underlying cause
func (e *KeyGenerationError) Unwrap() error {
	return e.Cause
}
