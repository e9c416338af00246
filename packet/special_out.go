package packet

import (
	"io"

	"mcproto/primitive"
	"mcproto/protoerr"
	"mcproto/state"
)

// ServerboundTabComplete requests completions for partially typed text;
// Position is only sent when the client is targeting a block.
type ServerboundTabComplete struct {
	TransactionID int32
	Text          string
	Position      *primitive.Position
}

func (ServerboundTabComplete) PacketID() int32                { return 0x01 }
func (ServerboundTabComplete) ClientState() state.ClientState { return state.Play }
func (ServerboundTabComplete) Direction() state.Direction     { return state.Serverbound }
func (ServerboundTabComplete) Name() string                   { return "TabComplete" }

func (p ServerboundTabComplete) EncodeBody() ([]byte, error) {
	var buf []byte
	buf = primitive.WriteVarInt(buf, p.TransactionID)
	buf = primitive.WriteString(buf, p.Text)
	buf = primitive.WriteBool(buf, p.Position != nil)
	if p.Position != nil {
		var err error
		buf, err = primitive.WritePosition(buf, *p.Position)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func decodeServerboundTabComplete(r io.Reader) (Packet, error) {
	txn, err := primitive.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	text, err := primitive.ReadString(r)
	if err != nil {
		return nil, err
	}
	hasPos, err := primitive.ReadBool(r)
	if err != nil {
		return nil, err
	}
	out := ServerboundTabComplete{TransactionID: txn, Text: text}
	if hasPos {
		pos, err := primitive.ReadPosition(r)
		if err != nil {
			return nil, err
		}
		out.Position = &pos
	}
	return out, nil
}

// UseEntity reports an interaction with another entity. Hand is present
// when Action is 0 (interact) or 2 (interact at), per the wire reference
// resolution of the source's inconsistent branches; Location is present
// only for Action 2.
type UseEntity struct {
	Target   int32
	Action   int32
	LocationX, LocationY, LocationZ float32
	HasLocation bool
	Hand     *int32
}

func (UseEntity) PacketID() int32                { return 0x02 }
func (UseEntity) ClientState() state.ClientState { return state.Play }
func (UseEntity) Direction() state.Direction     { return state.Serverbound }
func (UseEntity) Name() string                   { return "UseEntity" }

func (p UseEntity) EncodeBody() ([]byte, error) {
	wantsHand := p.Action == 0 || p.Action == 2
	if wantsHand != (p.Hand != nil) {
		return nil, protoerr.New(protoerr.KindInvalidOutbound, "UseEntity Hand presence must match action %d", p.Action)
	}
	if (p.Action == 2) != p.HasLocation {
		return nil, protoerr.New(protoerr.KindInvalidOutbound, "UseEntity Location presence must match action==2")
	}
	var buf []byte
	buf = primitive.WriteVarInt(buf, p.Target)
	buf = primitive.WriteVarInt(buf, p.Action)
	if p.Action == 2 {
		buf = primitive.WriteF32(buf, p.LocationX)
		buf = primitive.WriteF32(buf, p.LocationY)
		buf = primitive.WriteF32(buf, p.LocationZ)
	}
	if wantsHand {
		buf = primitive.WriteVarInt(buf, *p.Hand)
	}
	return buf, nil
}

func decodeUseEntity(r io.Reader) (Packet, error) {
	target, err := primitive.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	action, err := primitive.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	out := UseEntity{Target: target, Action: action}
	if action == 2 {
		x, err := primitive.ReadF32(r)
		if err != nil {
			return nil, err
		}
		y, err := primitive.ReadF32(r)
		if err != nil {
			return nil, err
		}
		z, err := primitive.ReadF32(r)
		if err != nil {
			return nil, err
		}
		out.LocationX, out.LocationY, out.LocationZ, out.HasLocation = x, y, z, true
	}
	if action == 0 || action == 2 {
		hand, err := primitive.ReadVarInt(r)
		if err != nil {
			return nil, err
		}
		out.Hand = &hand
	}
	return out, nil
}

// EncryptionResponse answers an EncryptionRequest with the shared secret
// and verify token, both RSA-encrypted by the caller before being placed
// here; this type itself does no cryptography, it only carries the
// resulting ciphertext.
type EncryptionResponse struct {
	EncryptedSharedSecret []byte
	EncryptedVerifyToken  []byte
}

func (EncryptionResponse) PacketID() int32                { return 0x01 }
func (EncryptionResponse) ClientState() state.ClientState { return state.Login }
func (EncryptionResponse) Direction() state.Direction     { return state.Serverbound }
func (EncryptionResponse) Name() string                   { return "EncryptionResponse" }

func (p EncryptionResponse) EncodeBody() ([]byte, error) {
	var buf []byte
	buf = primitive.WritePrefixedByteArray(buf, p.EncryptedSharedSecret)
	buf = primitive.WritePrefixedByteArray(buf, p.EncryptedVerifyToken)
	return buf, nil
}

func decodeEncryptionResponse(r io.Reader) (Packet, error) {
	secret, err := primitive.ReadPrefixedByteArray(r)
	if err != nil {
		return nil, err
	}
	token, err := primitive.ReadPrefixedByteArray(r)
	if err != nil {
		return nil, err
	}
	return EncryptionResponse{EncryptedSharedSecret: secret, EncryptedVerifyToken: token}, nil
}

// RecipeBookData either reports a displayed recipe or the four recipe
// book display-state flags, selected by Type.
type RecipeBookData struct {
	Type                int32
	DisplayedRecipe     *string
	GuiOpen             *bool
	FilteringCraftable  *bool
	FurnaceGuiOpen      *bool
	FurnaceFilteringCraftable *bool
}

func (RecipeBookData) PacketID() int32                { return 0x12 }
func (RecipeBookData) ClientState() state.ClientState { return state.Play }
func (RecipeBookData) Direction() state.Direction     { return state.Serverbound }
func (RecipeBookData) Name() string                   { return "RecipeBookData" }

func (p RecipeBookData) EncodeBody() ([]byte, error) {
	var buf []byte
	buf = primitive.WriteVarInt(buf, p.Type)
	switch p.Type {
	case 0:
		if p.DisplayedRecipe == nil {
			return nil, protoerr.New(protoerr.KindInvalidOutbound, "RecipeBookData type 0 requires DisplayedRecipe")
		}
		buf = primitive.WriteString(buf, *p.DisplayedRecipe)
	case 1:
		if p.GuiOpen == nil || p.FilteringCraftable == nil || p.FurnaceGuiOpen == nil || p.FurnaceFilteringCraftable == nil {
			return nil, protoerr.New(protoerr.KindInvalidOutbound, "RecipeBookData type 1 requires all four state booleans")
		}
		buf = primitive.WriteBool(buf, *p.GuiOpen)
		buf = primitive.WriteBool(buf, *p.FilteringCraftable)
		buf = primitive.WriteBool(buf, *p.FurnaceGuiOpen)
		buf = primitive.WriteBool(buf, *p.FurnaceFilteringCraftable)
	default:
		return nil, protoerr.New(protoerr.KindInvalidOutbound, "RecipeBookData invalid type %d", p.Type)
	}
	return buf, nil
}

func decodeRecipeBookData(r io.Reader) (Packet, error) {
	t, err := primitive.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	out := RecipeBookData{Type: t}
	switch t {
	case 0:
		s, err := primitive.ReadString(r)
		if err != nil {
			return nil, err
		}
		out.DisplayedRecipe = &s
	case 1:
		a, err := primitive.ReadBool(r)
		if err != nil {
			return nil, err
		}
		b, err := primitive.ReadBool(r)
		if err != nil {
			return nil, err
		}
		c, err := primitive.ReadBool(r)
		if err != nil {
			return nil, err
		}
		d, err := primitive.ReadBool(r)
		if err != nil {
			return nil, err
		}
		out.GuiOpen, out.FilteringCraftable, out.FurnaceGuiOpen, out.FurnaceFilteringCraftable = &a, &b, &c, &d
	default:
		return nil, protoerr.New(protoerr.KindMalformed, "RecipeBookData invalid type %d", t)
	}
	return out, nil
}

// AdvancementTab either opens a specific advancement tab or closes
// whichever is open.
type AdvancementTab struct {
	TabID *string
}

func (AdvancementTab) PacketID() int32                { return 0x13 }
func (AdvancementTab) ClientState() state.ClientState { return state.Play }
func (AdvancementTab) Direction() state.Direction     { return state.Serverbound }
func (AdvancementTab) Name() string                   { return "AdvancementTab" }

func (p AdvancementTab) EncodeBody() ([]byte, error) {
	if p.TabID != nil {
		buf := primitive.WriteVarInt(nil, 0)
		return primitive.WriteString(buf, *p.TabID), nil
	}
	return primitive.WriteVarInt(nil, 1), nil
}

func decodeAdvancementTab(r io.Reader) (Packet, error) {
	action, err := primitive.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	switch action {
	case 0:
		s, err := primitive.ReadString(r)
		if err != nil {
			return nil, err
		}
		return AdvancementTab{TabID: &s}, nil
	case 1:
		return AdvancementTab{}, nil
	default:
		return nil, protoerr.New(protoerr.KindMalformed, "AdvancementTab invalid action %d", action)
	}
}

func init() {
	Register(state.Serverbound, state.Play, 0x01, decodeServerboundTabComplete)
	Register(state.Serverbound, state.Play, 0x02, decodeUseEntity)
	Register(state.Serverbound, state.Login, 0x01, decodeEncryptionResponse)
	Register(state.Serverbound, state.Play, 0x12, decodeRecipeBookData)
	Register(state.Serverbound, state.Play, 0x13, decodeAdvancementTab)
}
