package packet

import (
	"io"

	"mcproto/primitive"
	"mcproto/state"
)

// Handshake is the single serverbound packet valid in the Handshake
// state; its NextState field drives the only legal state transition out
// of Handshake.
type Handshake struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	NextState       int32
}

func (Handshake) PacketID() int32                { return 0x00 }
func (Handshake) ClientState() state.ClientState { return state.Handshake }
func (Handshake) Direction() state.Direction     { return state.Serverbound }
func (Handshake) Name() string                   { return "Handshake" }

func (p Handshake) EncodeBody() ([]byte, error) {
	var buf []byte
	buf = primitive.WriteVarInt(buf, p.ProtocolVersion)
	buf = primitive.WriteString(buf, p.ServerAddress)
	buf = primitive.WriteU16(buf, p.ServerPort)
	buf = primitive.WriteVarInt(buf, p.NextState)
	return buf, nil
}

func decodeHandshake(r io.Reader) (Packet, error) {
	version, err := primitive.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	addr, err := primitive.ReadString(r)
	if err != nil {
		return nil, err
	}
	port, err := primitive.ReadU16(r)
	if err != nil {
		return nil, err
	}
	next, err := primitive.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	return Handshake{ProtocolVersion: version, ServerAddress: addr, ServerPort: port, NextState: next}, nil
}

func init() {
	Register(state.Serverbound, state.Handshake, 0x00, decodeHandshake)
}
