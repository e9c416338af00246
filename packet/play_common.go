package packet

import (
	"io"

	"mcproto/primitive"
	"mcproto/state"
)

// JoinGame is the first Play-state packet, establishing the player's
// entity id and initial world parameters.
type JoinGame struct {
	EntityID         int32
	Gamemode         uint8
	Dimension        int32
	Difficulty       uint8
	MaxPlayers       uint8
	LevelType        string
	ReducedDebugInfo bool
}

func (JoinGame) PacketID() int32                { return 0x23 }
func (JoinGame) ClientState() state.ClientState { return state.Play }
func (JoinGame) Direction() state.Direction     { return state.Clientbound }
func (JoinGame) Name() string                   { return "JoinGame" }

func (p JoinGame) EncodeBody() ([]byte, error) {
	var buf []byte
	buf = primitive.WriteI32(buf, p.EntityID)
	buf = primitive.WriteU8(buf, p.Gamemode)
	buf = primitive.WriteI32(buf, p.Dimension)
	buf = primitive.WriteU8(buf, p.Difficulty)
	buf = primitive.WriteU8(buf, p.MaxPlayers)
	buf = primitive.WriteString(buf, p.LevelType)
	buf = primitive.WriteBool(buf, p.ReducedDebugInfo)
	return buf, nil
}

func decodeJoinGame(r io.Reader) (Packet, error) {
	entityID, err := primitive.ReadI32(r)
	if err != nil {
		return nil, err
	}
	gamemode, err := primitive.ReadU8(r)
	if err != nil {
		return nil, err
	}
	dimension, err := primitive.ReadI32(r)
	if err != nil {
		return nil, err
	}
	difficulty, err := primitive.ReadU8(r)
	if err != nil {
		return nil, err
	}
	maxPlayers, err := primitive.ReadU8(r)
	if err != nil {
		return nil, err
	}
	levelType, err := primitive.ReadString(r)
	if err != nil {
		return nil, err
	}
	reducedDebug, err := primitive.ReadBool(r)
	if err != nil {
		return nil, err
	}
	return JoinGame{
		EntityID: entityID, Gamemode: gamemode, Dimension: dimension,
		Difficulty: difficulty, MaxPlayers: maxPlayers, LevelType: levelType,
		ReducedDebugInfo: reducedDebug,
	}, nil
}

// PlayerAbilities communicates movement flags and speeds; bit flags are
// decoded via the helper methods below rather than exposed as a raw
// byte to callers.
type PlayerAbilities struct {
	Flags       uint8
	FlyingSpeed float32
	WalkSpeed   float32
}

func (PlayerAbilities) PacketID() int32                { return 0x2C }
func (PlayerAbilities) ClientState() state.ClientState { return state.Play }
func (PlayerAbilities) Direction() state.Direction     { return state.Clientbound }
func (PlayerAbilities) Name() string                   { return "PlayerAbilities" }

func (p PlayerAbilities) EncodeBody() ([]byte, error) {
	var buf []byte
	buf = primitive.WriteU8(buf, p.Flags)
	buf = primitive.WriteF32(buf, p.FlyingSpeed)
	buf = primitive.WriteF32(buf, p.WalkSpeed)
	return buf, nil
}

func decodePlayerAbilities(r io.Reader) (Packet, error) {
	flags, err := primitive.ReadU8(r)
	if err != nil {
		return nil, err
	}
	flySpeed, err := primitive.ReadF32(r)
	if err != nil {
		return nil, err
	}
	walkSpeed, err := primitive.ReadF32(r)
	if err != nil {
		return nil, err
	}
	return PlayerAbilities{Flags: flags, FlyingSpeed: flySpeed, WalkSpeed: walkSpeed}, nil
}

func (p PlayerAbilities) IsInvulnerable() bool { return p.Flags&0x01 != 0 }
func (p PlayerAbilities) IsFlying() bool       { return p.Flags&0x02 != 0 }
func (p PlayerAbilities) AllowFlying() bool    { return p.Flags&0x04 != 0 }
func (p PlayerAbilities) IsCreative() bool     { return p.Flags&0x08 != 0 }

// ChatMessage is a chat-JSON payload tagged with a position (0=chat,
// 1=system, 2=game info/action bar).
type ChatMessage struct {
	JSON     string
	Position int8
}

func (ChatMessage) PacketID() int32                { return 0x02 }
func (ChatMessage) ClientState() state.ClientState { return state.Play }
func (ChatMessage) Direction() state.Direction     { return state.Clientbound }
func (ChatMessage) Name() string                   { return "ChatMessage" }

func (p ChatMessage) EncodeBody() ([]byte, error) {
	var buf []byte
	buf = primitive.WriteString(buf, p.JSON)
	buf = primitive.WriteI8(buf, p.Position)
	return buf, nil
}

func decodeChatMessage(r io.Reader) (Packet, error) {
	s, err := primitive.ReadString(r)
	if err != nil {
		return nil, err
	}
	pos, err := primitive.ReadI8(r)
	if err != nil {
		return nil, err
	}
	return ChatMessage{JSON: s, Position: pos}, nil
}

// Disconnect ends the Play session with a chat-JSON reason.
type Disconnect struct {
	Reason string
}

func (Disconnect) PacketID() int32                { return 0x1A }
func (Disconnect) ClientState() state.ClientState { return state.Play }
func (Disconnect) Direction() state.Direction     { return state.Clientbound }
func (Disconnect) Name() string                   { return "Disconnect" }
func (p Disconnect) EncodeBody() ([]byte, error)  { return primitive.WriteString(nil, p.Reason), nil }

func decodeDisconnect(r io.Reader) (Packet, error) {
	s, err := primitive.ReadString(r)
	if err != nil {
		return nil, err
	}
	return Disconnect{Reason: s}, nil
}

// PluginMessageClientbound and PluginMessageServerbound carry an
// arbitrary payload addressed by channel name; the payload is whatever
// bytes remain in the frame, not length-prefixed.
type PluginMessageClientbound struct {
	Channel string
	Data    []byte
}

func (PluginMessageClientbound) PacketID() int32                { return 0x18 }
func (PluginMessageClientbound) ClientState() state.ClientState { return state.Play }
func (PluginMessageClientbound) Direction() state.Direction     { return state.Clientbound }
func (PluginMessageClientbound) Name() string                   { return "PluginMessage" }

func (p PluginMessageClientbound) EncodeBody() ([]byte, error) {
	var buf []byte
	buf = primitive.WriteString(buf, p.Channel)
	buf = append(buf, p.Data...)
	return buf, nil
}

func decodePluginMessageClientbound(r io.Reader) (Packet, error) {
	channel, err := primitive.ReadString(r)
	if err != nil {
		return nil, err
	}
	data, err := primitive.ReadByteArrayToEnd(r)
	if err != nil {
		return nil, err
	}
	return PluginMessageClientbound{Channel: channel, Data: data}, nil
}

type PluginMessageServerbound struct {
	Channel string
	Data    []byte
}

func (PluginMessageServerbound) PacketID() int32                { return 0x09 }
func (PluginMessageServerbound) ClientState() state.ClientState { return state.Play }
func (PluginMessageServerbound) Direction() state.Direction     { return state.Serverbound }
func (PluginMessageServerbound) Name() string                   { return "PluginMessage" }

func (p PluginMessageServerbound) EncodeBody() ([]byte, error) {
	var buf []byte
	buf = primitive.WriteString(buf, p.Channel)
	buf = append(buf, p.Data...)
	return buf, nil
}

func decodePluginMessageServerbound(r io.Reader) (Packet, error) {
	channel, err := primitive.ReadString(r)
	if err != nil {
		return nil, err
	}
	data, err := primitive.ReadByteArrayToEnd(r)
	if err != nil {
		return nil, err
	}
	return PluginMessageServerbound{Channel: channel, Data: data}, nil
}

// ClientSettings reports client-side display preferences.
type ClientSettings struct {
	Locale             string
	ViewDistance        int8
	ChatMode            int32
	ChatColors          bool
	DisplayedSkinParts  uint8
	MainHand            int32
}

func (ClientSettings) PacketID() int32                { return 0x04 }
func (ClientSettings) ClientState() state.ClientState { return state.Play }
func (ClientSettings) Direction() state.Direction     { return state.Serverbound }
func (ClientSettings) Name() string                   { return "ClientSettings" }

func (p ClientSettings) EncodeBody() ([]byte, error) {
	var buf []byte
	buf = primitive.WriteString(buf, p.Locale)
	buf = primitive.WriteI8(buf, p.ViewDistance)
	buf = primitive.WriteVarInt(buf, p.ChatMode)
	buf = primitive.WriteBool(buf, p.ChatColors)
	buf = primitive.WriteU8(buf, p.DisplayedSkinParts)
	buf = primitive.WriteVarInt(buf, p.MainHand)
	return buf, nil
}

func decodeClientSettings(r io.Reader) (Packet, error) {
	locale, err := primitive.ReadString(r)
	if err != nil {
		return nil, err
	}
	viewDistance, err := primitive.ReadI8(r)
	if err != nil {
		return nil, err
	}
	chatMode, err := primitive.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	chatColors, err := primitive.ReadBool(r)
	if err != nil {
		return nil, err
	}
	skinParts, err := primitive.ReadU8(r)
	if err != nil {
		return nil, err
	}
	mainHand, err := primitive.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	return ClientSettings{
		Locale: locale, ViewDistance: viewDistance, ChatMode: chatMode,
		ChatColors: chatColors, DisplayedSkinParts: skinParts, MainHand: mainHand,
	}, nil
}

// KeepAliveClientbound/KeepAliveServerbound carry an opaque id the
// client must echo back; the handshake driver's auto-handle path does
// this without surfacing the packet to the caller.
type KeepAliveClientbound struct{ ID int64 }

func (KeepAliveClientbound) PacketID() int32                { return 0x1F }
func (KeepAliveClientbound) ClientState() state.ClientState { return state.Play }
func (KeepAliveClientbound) Direction() state.Direction     { return state.Clientbound }
func (KeepAliveClientbound) Name() string                   { return "KeepAlive" }
func (p KeepAliveClientbound) EncodeBody() ([]byte, error) {
	return primitive.WriteI64(nil, p.ID), nil
}

func decodeKeepAliveClientbound(r io.Reader) (Packet, error) {
	id, err := primitive.ReadI64(r)
	if err != nil {
		return nil, err
	}
	return KeepAliveClientbound{ID: id}, nil
}

type KeepAliveServerbound struct{ ID int64 }

func (KeepAliveServerbound) PacketID() int32                { return 0x0B }
func (KeepAliveServerbound) ClientState() state.ClientState { return state.Play }
func (KeepAliveServerbound) Direction() state.Direction     { return state.Serverbound }
func (KeepAliveServerbound) Name() string                   { return "KeepAlive" }
func (p KeepAliveServerbound) EncodeBody() ([]byte, error) {
	return primitive.WriteI64(nil, p.ID), nil
}

func decodeKeepAliveServerbound(r io.Reader) (Packet, error) {
	id, err := primitive.ReadI64(r)
	if err != nil {
		return nil, err
	}
	return KeepAliveServerbound{ID: id}, nil
}

func init() {
	Register(state.Clientbound, state.Play, 0x23, decodeJoinGame)
	Register(state.Clientbound, state.Play, 0x2C, decodePlayerAbilities)
	Register(state.Clientbound, state.Play, 0x02, decodeChatMessage)
	Register(state.Clientbound, state.Play, 0x1A, decodeDisconnect)
	Register(state.Clientbound, state.Play, 0x18, decodePluginMessageClientbound)
	Register(state.Serverbound, state.Play, 0x09, decodePluginMessageServerbound)
	Register(state.Serverbound, state.Play, 0x04, decodeClientSettings)
	Register(state.Clientbound, state.Play, 0x1F, decodeKeepAliveClientbound)
	Register(state.Serverbound, state.Play, 0x0B, decodeKeepAliveServerbound)
}
