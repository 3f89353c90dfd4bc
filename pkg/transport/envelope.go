package transport

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/luxfi/gg20/pkg/party"
)

// Envelope is the wire-level wrapper a Delegate implementation
// transmits: a CBOR-encoded Message plus routing metadata.
type Envelope struct {
	From    party.ID
	To      party.ID // empty for broadcast messages
	Payload []byte
}

// Encode CBOR-marshals msg into an Envelope addressed from `from` to
// `to` (`to` is the zero value for a broadcast).
func Encode(from, to party.ID, msg Message) (Envelope, error) {
	payload, err := cbor.Marshal(msg)
	if err != nil {
		return Envelope{}, fmt.Errorf("transport: encode message: %w", err)
	}
	return Envelope{From: from, To: to, Payload: payload}, nil
}

// Decode CBOR-unmarshals the payload of e back into a Message.
func Decode(e Envelope) (Message, error) {
	var msg Message
	if err := cbor.Unmarshal(e.Payload, &msg); err != nil {
		return Message{}, fmt.Errorf("transport: decode message: %w", err)
	}
	return msg, nil
}
