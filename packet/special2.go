package packet

import (
	"io"

	"mcproto/primitive"
	"mcproto/protoerr"
	"mcproto/state"
)

// FacePlayer orients the client toward a target point or entity's eyes
// or feet; IsEntity gates the trailing entity reference.
type FacePlayer struct {
	FeetEyes           int32
	X, Y, Z            float64
	IsEntity           bool
	EntityID           *int32
	EntityFeetEyes     *int32
}

func (FacePlayer) PacketID() int32                { return 0x30 }
func (FacePlayer) ClientState() state.ClientState { return state.Play }
func (FacePlayer) Direction() state.Direction     { return state.Clientbound }
func (FacePlayer) Name() string                   { return "FacePlayer" }

func (p FacePlayer) EncodeBody() ([]byte, error) {
	if p.IsEntity != (p.EntityID != nil && p.EntityFeetEyes != nil) {
		return nil, protoerr.New(protoerr.KindInvalidOutbound, "FacePlayer entity fields must match IsEntity")
	}
	var buf []byte
	buf = primitive.WriteVarInt(buf, p.FeetEyes)
	buf = primitive.WriteF64(buf, p.X)
	buf = primitive.WriteF64(buf, p.Y)
	buf = primitive.WriteF64(buf, p.Z)
	buf = primitive.WriteBool(buf, p.IsEntity)
	if p.IsEntity {
		buf = primitive.WriteVarInt(buf, *p.EntityID)
		buf = primitive.WriteVarInt(buf, *p.EntityFeetEyes)
	}
	return buf, nil
}

func decodeFacePlayer(r io.Reader) (Packet, error) {
	feetEyes, err := primitive.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	x, err := primitive.ReadF64(r)
	if err != nil {
		return nil, err
	}
	y, err := primitive.ReadF64(r)
	if err != nil {
		return nil, err
	}
	z, err := primitive.ReadF64(r)
	if err != nil {
		return nil, err
	}
	isEntity, err := primitive.ReadBool(r)
	if err != nil {
		return nil, err
	}
	out := FacePlayer{FeetEyes: feetEyes, X: x, Y: y, Z: z, IsEntity: isEntity}
	if isEntity {
		id, err := primitive.ReadVarInt(r)
		if err != nil {
			return nil, err
		}
		fe, err := primitive.ReadVarInt(r)
		if err != nil {
			return nil, err
		}
		out.EntityID, out.EntityFeetEyes = &id, &fe
	}
	return out, nil
}

// UnlockRecipes toggles the recipe book; action 0 (init) carries a
// second recipe-id array beyond the first.
type UnlockRecipes struct {
	Action              int32
	CraftingBookOpen    bool
	CraftingFilterActive bool
	RecipeIDs           []int32
	RecipeIDsToDisplay  []int32
}

func (UnlockRecipes) PacketID() int32                { return 0x31 }
func (UnlockRecipes) ClientState() state.ClientState { return state.Play }
func (UnlockRecipes) Direction() state.Direction     { return state.Clientbound }
func (UnlockRecipes) Name() string                   { return "UnlockRecipes" }

func (p UnlockRecipes) EncodeBody() ([]byte, error) {
	if (p.Action == 0) != (p.RecipeIDsToDisplay != nil) {
		return nil, protoerr.New(protoerr.KindInvalidOutbound, "UnlockRecipes second array presence must match action==0")
	}
	var buf []byte
	buf = primitive.WriteVarInt(buf, p.Action)
	buf = primitive.WriteBool(buf, p.CraftingBookOpen)
	buf = primitive.WriteBool(buf, p.CraftingFilterActive)
	buf = primitive.WriteVarInt(buf, int32(len(p.RecipeIDs)))
	for _, id := range p.RecipeIDs {
		buf = primitive.WriteVarInt(buf, id)
	}
	if p.Action == 0 {
		buf = primitive.WriteVarInt(buf, int32(len(p.RecipeIDsToDisplay)))
		for _, id := range p.RecipeIDsToDisplay {
			buf = primitive.WriteVarInt(buf, id)
		}
	}
	return buf, nil
}

func decodeUnlockRecipes(r io.Reader) (Packet, error) {
	action, err := primitive.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	bookOpen, err := primitive.ReadBool(r)
	if err != nil {
		return nil, err
	}
	filterActive, err := primitive.ReadBool(r)
	if err != nil {
		return nil, err
	}
	ids, err := readVarIntArray(r)
	if err != nil {
		return nil, err
	}
	out := UnlockRecipes{Action: action, CraftingBookOpen: bookOpen, CraftingFilterActive: filterActive, RecipeIDs: ids}
	if action == 0 {
		display, err := readVarIntArray(r)
		if err != nil {
			return nil, err
		}
		out.RecipeIDsToDisplay = display
	}
	return out, nil
}

func readVarIntArray(r io.Reader) ([]int32, error) {
	count, err := primitive.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, protoerr.New(protoerr.KindMalformed, "negative varint array count %d", count)
	}
	out := make([]int32, 0, count)
	for i := int32(0); i < count; i++ {
		v, err := primitive.ReadVarInt(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// SelectAdvancementTab tells the client which advancement tab to
// display; TabID is capped at 32767 bytes rather than the usual 32768.
type SelectAdvancementTab struct {
	TabID *string
}

const maxAdvancementTabIDBytes = 32767

func (SelectAdvancementTab) PacketID() int32                { return 0x32 }
func (SelectAdvancementTab) ClientState() state.ClientState { return state.Play }
func (SelectAdvancementTab) Direction() state.Direction     { return state.Clientbound }
func (SelectAdvancementTab) Name() string                   { return "SelectAdvancementTab" }

func (p SelectAdvancementTab) EncodeBody() ([]byte, error) {
	var buf []byte
	buf = primitive.WriteBool(buf, p.TabID != nil)
	if p.TabID != nil {
		if len(*p.TabID) > maxAdvancementTabIDBytes {
			return nil, protoerr.New(protoerr.KindInvalidOutbound, "SelectAdvancementTab TabID exceeds %d bytes", maxAdvancementTabIDBytes)
		}
		buf = primitive.WriteString(buf, *p.TabID)
	}
	return buf, nil
}

func decodeSelectAdvancementTab(r io.Reader) (Packet, error) {
	has, err := primitive.ReadBool(r)
	if err != nil {
		return nil, err
	}
	if !has {
		return SelectAdvancementTab{}, nil
	}
	s, err := primitive.ReadString(r)
	if err != nil {
		return nil, err
	}
	if len(s) > maxAdvancementTabIDBytes {
		return nil, protoerr.New(protoerr.KindMalformed, "SelectAdvancementTab TabID exceeds %d bytes", maxAdvancementTabIDBytes)
	}
	return SelectAdvancementTab{TabID: &s}, nil
}

// StopSound stops sounds matching an optional source and/or name; the
// low two bits of Flags gate which of those two optional fields follow.
type StopSound struct {
	Flags  uint8
	Source *int32
	Sound  *string
}

func (StopSound) PacketID() int32                { return 0x12 }
func (StopSound) ClientState() state.ClientState { return state.Play }
func (StopSound) Direction() state.Direction     { return state.Clientbound }
func (StopSound) Name() string                   { return "StopSound" }

func (p StopSound) EncodeBody() ([]byte, error) {
	hasSource := p.Flags&0x01 != 0
	hasSound := p.Flags&0x02 != 0
	if hasSource != (p.Source != nil) || hasSound != (p.Sound != nil) {
		return nil, protoerr.New(protoerr.KindInvalidOutbound, "StopSound Source/Sound presence must match Flags bits")
	}
	var buf []byte
	buf = primitive.WriteU8(buf, p.Flags)
	if hasSource {
		buf = primitive.WriteVarInt(buf, *p.Source)
	}
	if hasSound {
		buf = primitive.WriteString(buf, *p.Sound)
	}
	return buf, nil
}

func decodeStopSound(r io.Reader) (Packet, error) {
	flags, err := primitive.ReadU8(r)
	if err != nil {
		return nil, err
	}
	out := StopSound{Flags: flags}
	if flags&0x01 != 0 {
		v, err := primitive.ReadVarInt(r)
		if err != nil {
			return nil, err
		}
		out.Source = &v
	}
	if flags&0x02 != 0 {
		s, err := primitive.ReadString(r)
		if err != nil {
			return nil, err
		}
		out.Sound = &s
	}
	return out, nil
}

func init() {
	Register(state.Clientbound, state.Play, 0x30, decodeFacePlayer)
	Register(state.Clientbound, state.Play, 0x31, decodeUnlockRecipes)
	Register(state.Clientbound, state.Play, 0x32, decodeSelectAdvancementTab)
	Register(state.Clientbound, state.Play, 0x12, decodeStopSound)
}
