// Package packet implements the tagged union of wire packet variants,
// keyed by (direction, client state, packet id), plus the dispatch table
// that maps an incoming identifier to its decoder.
package packet

import (
	"io"

	"mcproto/primitive"
	"mcproto/protoerr"
	"mcproto/state"
)

// ProtocolVersion is the protocol version identifier this catalog
// implements.
const ProtocolVersion = 316

// Packet is one concrete wire variant. Every registered decoder produces
// a value satisfying this interface; every value passed to Encode must
// satisfy it too.
type Packet interface {
	// PacketID is this variant's wire identifier, unique within its
	// Direction and ClientState.
	PacketID() int32
	// ClientState is the state this variant is valid in.
	ClientState() state.ClientState
	// Direction is which side originates this variant.
	Direction() state.Direction
	// Name is a human-readable identifier for diagnostics only.
	Name() string
	// EncodeBody writes the variant's fields (not including the leading
	// packet id) and reports InvalidOutbound if the value's internal
	// discriminants are inconsistent.
	EncodeBody() ([]byte, error)
}

// Decoder reads one variant's body (the stream is already positioned
// just after the packet id) and produces the typed value.
type Decoder func(r io.Reader) (Packet, error)

type key struct {
	dir state.Direction
	st  state.ClientState
	id  int32
}

var registry = make(map[key]Decoder)

// Register installs a decoder for (dir, st, id). Called from each
// variant file's init().
func Register(dir state.Direction, st state.ClientState, id int32, dec Decoder) {
	registry[key{dir, st, id}] = dec
}

// Decode reads one packet identifier plus body from r, which must be
// positioned at the start of a frame's decompressed payload.
func Decode(dir state.Direction, st state.ClientState, r io.Reader) (Packet, error) {
	id, err := primitive.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	dec, ok := registry[key{dir, st, id}]
	if !ok {
		return nil, protoerr.New(protoerr.KindUnknownPacket, "no decoder for direction=%s state=%s id=%d", dir, st, id)
	}
	return dec(r)
}

// Encode serializes p's full wire body, including its leading packet id.
func Encode(p Packet) ([]byte, error) {
	body, err := p.EncodeBody()
	if err != nil {
		return nil, err
	}
	out := primitive.WriteVarInt(nil, p.PacketID())
	return append(out, body...), nil
}
