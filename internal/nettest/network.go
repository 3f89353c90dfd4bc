// Package nettest provides a synchronous, same-process transport.Delegate
// and driver used by pkg/gg20's test suites to run a multi-participant
// protocol session without a real network.
package nettest

import (
	"fmt"

	"github.com/luxfi/gg20/pkg/party"
	"github.com/luxfi/gg20/pkg/transport"
)

// Receiver is implemented by anything that can accept a dispatched
// protocol message — in practice, *gg20.Participant.
type Receiver interface {
	PartyID() party.ID
	ReceiveMessage(sender party.ID, msg transport.Message) error
}

// PartyIDs returns n sequentially numbered party identifiers, "1"
// through strconv(n), matching the ordinal convention pkg/party.ID.Scalar
// relies on.
func PartyIDs(n int) party.IDSlice {
	ids := make(party.IDSlice, n)
	for i := 0; i < n; i++ {
		ids[i] = party.ID(fmt.Sprintf("%d", i+1))
	}
	return ids
}

// Network is an in-process transport.Delegate that fans a broadcast
// out to every registered participant other than the sender and routes
// a send to exactly one recipient, decoding each message through a CBOR
// round trip so
// the wire encoding is exercised even in-process.
type Network struct {
	participants map[party.ID]Receiver
}

// NewNetwork builds an empty Network; participants register
// themselves via Register before any KeyGen/Sign calls occur.
func NewNetwork() *Network {
	return &Network{participants: make(map[party.ID]Receiver)}
}

// Register adds r to the network's fan-out set.
func (n *Network) Register(r Receiver) {
	n.participants[r.PartyID()] = r
}

// Broadcast delivers msg to every registered participant except the
// sender.
func (n *Network) Broadcast(sender party.ID, msg transport.Message) error {
	env, err := transport.Encode(sender, "", msg)
	if err != nil {
		return err
	}
	for id, recv := range n.participants {
		if id == sender {
			continue
		}
		decoded, err := transport.Decode(env)
		if err != nil {
			return err
		}
		if err := recv.ReceiveMessage(sender, decoded); err != nil {
			return fmt.Errorf("nettest: %s rejected broadcast from %s: %w", id, sender, err)
		}
	}
	return nil
}

// Send delivers msg to exactly one recipient.
func (n *Network) Send(sender, recipient party.ID, msg transport.Message) error {
	env, err := transport.Encode(sender, recipient, msg)
	if err != nil {
		return err
	}
	recv, ok := n.participants[recipient]
	if !ok {
		return fmt.Errorf("nettest: unknown recipient %s", recipient)
	}
	decoded, err := transport.Decode(env)
	if err != nil {
		return err
	}
	if err := recv.ReceiveMessage(sender, decoded); err != nil {
		return fmt.Errorf("nettest: %s rejected message from %s: %w", recipient, sender, err)
	}
	return nil
}
