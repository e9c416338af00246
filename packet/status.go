package packet

import (
	"io"

	"mcproto/primitive"
	"mcproto/state"
)

// StatusRequest carries no fields; it asks the server for a
// StatusResponse.
type StatusRequest struct{}

func (StatusRequest) PacketID() int32                { return 0x00 }
func (StatusRequest) ClientState() state.ClientState { return state.Status }
func (StatusRequest) Direction() state.Direction     { return state.Serverbound }
func (StatusRequest) Name() string                   { return "StatusRequest" }
func (StatusRequest) EncodeBody() ([]byte, error)    { return nil, nil }

func decodeStatusRequest(io.Reader) (Packet, error) { return StatusRequest{}, nil }

// StatusResponse carries the server-list-ping JSON document verbatim;
// its schema (version, players, description, favicon) is opaque to the
// connection engine.
type StatusResponse struct {
	JSON string
}

func (StatusResponse) PacketID() int32                { return 0x00 }
func (StatusResponse) ClientState() state.ClientState { return state.Status }
func (StatusResponse) Direction() state.Direction     { return state.Clientbound }
func (StatusResponse) Name() string                   { return "StatusResponse" }

func (p StatusResponse) EncodeBody() ([]byte, error) {
	return primitive.WriteString(nil, p.JSON), nil
}

func decodeStatusResponse(r io.Reader) (Packet, error) {
	s, err := primitive.ReadString(r)
	if err != nil {
		return nil, err
	}
	return StatusResponse{JSON: s}, nil
}

// Ping/Pong are an opaque round-trip payload used to measure latency
// during the Status handshake.
type Ping struct{ Payload int64 }

func (Ping) PacketID() int32                { return 0x01 }
func (Ping) ClientState() state.ClientState { return state.Status }
func (Ping) Direction() state.Direction     { return state.Serverbound }
func (Ping) Name() string                   { return "Ping" }
func (p Ping) EncodeBody() ([]byte, error)  { return primitive.WriteI64(nil, p.Payload), nil }

func decodePing(r io.Reader) (Packet, error) {
	v, err := primitive.ReadI64(r)
	if err != nil {
		return nil, err
	}
	return Ping{Payload: v}, nil
}

type Pong struct{ Payload int64 }

func (Pong) PacketID() int32                { return 0x01 }
func (Pong) ClientState() state.ClientState { return state.Status }
func (Pong) Direction() state.Direction     { return state.Clientbound }
func (Pong) Name() string                   { return "Pong" }
func (p Pong) EncodeBody() ([]byte, error)  { return primitive.WriteI64(nil, p.Payload), nil }

func decodePong(r io.Reader) (Packet, error) {
	v, err := primitive.ReadI64(r)
	if err != nil {
		return nil, err
	}
	return Pong{Payload: v}, nil
}

func init() {
	Register(state.Serverbound, state.Status, 0x00, decodeStatusRequest)
	Register(state.Clientbound, state.Status, 0x00, decodeStatusResponse)
	Register(state.Serverbound, state.Status, 0x01, decodePing)
	Register(state.Clientbound, state.Status, 0x01, decodePong)
}
