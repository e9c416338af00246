package packet

import (
	"io"

	"mcproto/primitive"
	"mcproto/state"
)

// LoginStart is the client's request to begin login with the given
// username; the server replies with either EncryptionRequest or, on
// offline-mode servers, LoginSuccess directly.
type LoginStart struct {
	Username string
}

func (LoginStart) PacketID() int32                { return 0x00 }
func (LoginStart) ClientState() state.ClientState { return state.Login }
func (LoginStart) Direction() state.Direction     { return state.Serverbound }
func (LoginStart) Name() string                   { return "LoginStart" }
func (p LoginStart) EncodeBody() ([]byte, error)  { return primitive.WriteString(nil, p.Username), nil }

func decodeLoginStart(r io.Reader) (Packet, error) {
	s, err := primitive.ReadString(r)
	if err != nil {
		return nil, err
	}
	return LoginStart{Username: s}, nil
}

// LoginDisconnect carries a chat-JSON reason and always ends the
// handshake with a protocol violation for the caller.
type LoginDisconnect struct {
	Reason string
}

func (LoginDisconnect) PacketID() int32                { return 0x00 }
func (LoginDisconnect) ClientState() state.ClientState { return state.Login }
func (LoginDisconnect) Direction() state.Direction     { return state.Clientbound }
func (LoginDisconnect) Name() string                   { return "LoginDisconnect" }
func (p LoginDisconnect) EncodeBody() ([]byte, error) {
	return primitive.WriteString(nil, p.Reason), nil
}

func decodeLoginDisconnect(r io.Reader) (Packet, error) {
	s, err := primitive.ReadString(r)
	if err != nil {
		return nil, err
	}
	return LoginDisconnect{Reason: s}, nil
}

// EncryptionRequest is sent by online-mode servers to begin the
// authenticated handshake; ServerID is normally empty in modern
// versions, PublicKey is a DER-encoded RSA public key, VerifyToken is
// echoed encrypted by the client.
type EncryptionRequest struct {
	ServerID    string
	PublicKey   []byte
	VerifyToken []byte
}

func (EncryptionRequest) PacketID() int32                { return 0x01 }
func (EncryptionRequest) ClientState() state.ClientState { return state.Login }
func (EncryptionRequest) Direction() state.Direction     { return state.Clientbound }
func (EncryptionRequest) Name() string                   { return "EncryptionRequest" }

func (p EncryptionRequest) EncodeBody() ([]byte, error) {
	var buf []byte
	buf = primitive.WriteString(buf, p.ServerID)
	buf = primitive.WritePrefixedByteArray(buf, p.PublicKey)
	buf = primitive.WritePrefixedByteArray(buf, p.VerifyToken)
	return buf, nil
}

func decodeEncryptionRequest(r io.Reader) (Packet, error) {
	serverID, err := primitive.ReadString(r)
	if err != nil {
		return nil, err
	}
	pub, err := primitive.ReadPrefixedByteArray(r)
	if err != nil {
		return nil, err
	}
	token, err := primitive.ReadPrefixedByteArray(r)
	if err != nil {
		return nil, err
	}
	return EncryptionRequest{ServerID: serverID, PublicKey: pub, VerifyToken: token}, nil
}

// SetCompression announces the compression threshold the connection
// must enable from this point on.
type SetCompression struct {
	Threshold int32
}

func (SetCompression) PacketID() int32                { return 0x03 }
func (SetCompression) ClientState() state.ClientState { return state.Login }
func (SetCompression) Direction() state.Direction     { return state.Clientbound }
func (SetCompression) Name() string                   { return "SetCompression" }
func (p SetCompression) EncodeBody() ([]byte, error) {
	return primitive.WriteVarInt(nil, p.Threshold), nil
}

func decodeSetCompression(r io.Reader) (Packet, error) {
	v, err := primitive.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	return SetCompression{Threshold: v}, nil
}

// LoginSuccess transitions the connection to Play; UUID is the dashed
// string form used at this point in the login sequence.
type LoginSuccess struct {
	UUID     primitive.UUID
	Username string
}

func (LoginSuccess) PacketID() int32                { return 0x02 }
func (LoginSuccess) ClientState() state.ClientState { return state.Login }
func (LoginSuccess) Direction() state.Direction     { return state.Clientbound }
func (LoginSuccess) Name() string                   { return "LoginSuccess" }

func (p LoginSuccess) EncodeBody() ([]byte, error) {
	var buf []byte
	buf = primitive.WriteUUIDStringDashes(buf, p.UUID)
	buf = primitive.WriteString(buf, p.Username)
	return buf, nil
}

func decodeLoginSuccess(r io.Reader) (Packet, error) {
	u, err := primitive.ReadUUIDStringDashes(r)
	if err != nil {
		return nil, err
	}
	name, err := primitive.ReadString(r)
	if err != nil {
		return nil, err
	}
	return LoginSuccess{UUID: u, Username: name}, nil
}

func init() {
	Register(state.Serverbound, state.Login, 0x00, decodeLoginStart)
	Register(state.Clientbound, state.Login, 0x00, decodeLoginDisconnect)
	Register(state.Clientbound, state.Login, 0x01, decodeEncryptionRequest)
	Register(state.Clientbound, state.Login, 0x02, decodeLoginSuccess)
	Register(state.Clientbound, state.Login, 0x03, decodeSetCompression)
}
