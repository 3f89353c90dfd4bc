package gg20

import (
	"errors"
	"fmt"

	"github.com/luxfi/gg20/pkg/party"
)

// Sentinel protocol errors, wrapped by ProtocolError when returned
// from ReceiveMessage.
var (
	ErrDuplicateMessage    = errors.New("gg20: duplicate message from sender")
	ErrUnexpectedPhase     = errors.New("gg20: message received outside its expected phase")
	ErrUnknownSender       = errors.New("gg20: message from unrecognized sender")
	ErrMissingContribution = errors.New("gg20: required contribution missing")
)

// ProtocolError wraps an error (one of the sentinel errors above, or a
// decoding or Paillier error for a malformed payload) with the sender
// and message kind that triggered it.
type ProtocolError struct {
	Sender party.ID
	Kind   string
	Err    error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("gg20: protocol error from %s handling %s: %v", e.Sender, e.Kind, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

func newProtocolError(sender party.ID, kind string, err error) *ProtocolError {
	return &ProtocolError{Sender: sender, Kind: kind, Err: err}
}
