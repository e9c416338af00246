// Conditional-shape variants: the handful of packets whose wire layout
// depends on a discriminant inside the packet rather than being a flat
// sequence of primitives. Grounded field-by-field on the reference
// clientbound.rs/serverbound.rs definitions, adjusted where the
// specification calls for a different resolution (UseEntity's hand
// condition, Particle's f64 coordinates).
package packet

import (
	"io"

	"mcproto/primitive"
	"mcproto/protoerr"
	"mcproto/state"
)

// Statistics reports a batch of named integer statistics.
type Statistics struct {
	Entries []StatisticEntry
}

type StatisticEntry struct {
	Name  string
	Value int32
}

func (Statistics) PacketID() int32                { return 0x07 }
func (Statistics) ClientState() state.ClientState { return state.Play }
func (Statistics) Direction() state.Direction     { return state.Clientbound }
func (Statistics) Name() string                   { return "Statistics" }

func (p Statistics) EncodeBody() ([]byte, error) {
	buf := primitive.WriteVarInt(nil, int32(len(p.Entries)))
	for _, e := range p.Entries {
		buf = primitive.WriteString(buf, e.Name)
		buf = primitive.WriteVarInt(buf, e.Value)
	}
	return buf, nil
}

func decodeStatistics(r io.Reader) (Packet, error) {
	count, err := primitive.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, protoerr.New(protoerr.KindMalformed, "negative Statistics count %d", count)
	}
	entries := make([]StatisticEntry, 0, count)
	for i := int32(0); i < count; i++ {
		name, err := primitive.ReadString(r)
		if err != nil {
			return nil, err
		}
		value, err := primitive.ReadVarInt(r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, StatisticEntry{Name: name, Value: value})
	}
	return Statistics{Entries: entries}, nil
}

// ClientboundTabComplete returns matches for a tab-complete request;
// each match optionally carries a tooltip string.
type ClientboundTabComplete struct {
	TransactionID int32
	Start         int32
	Length        int32
	Matches       []TabCompleteMatch
}

type TabCompleteMatch struct {
	Match   string
	Tooltip *string
}

func (ClientboundTabComplete) PacketID() int32                { return 0x0E }
func (ClientboundTabComplete) ClientState() state.ClientState { return state.Play }
func (ClientboundTabComplete) Direction() state.Direction     { return state.Clientbound }
func (ClientboundTabComplete) Name() string                   { return "TabComplete" }

func (p ClientboundTabComplete) EncodeBody() ([]byte, error) {
	var buf []byte
	buf = primitive.WriteVarInt(buf, p.TransactionID)
	buf = primitive.WriteVarInt(buf, p.Start)
	buf = primitive.WriteVarInt(buf, p.Length)
	buf = primitive.WriteVarInt(buf, int32(len(p.Matches)))
	for _, m := range p.Matches {
		buf = primitive.WriteString(buf, m.Match)
		buf = primitive.WriteBool(buf, m.Tooltip != nil)
		if m.Tooltip != nil {
			buf = primitive.WriteString(buf, *m.Tooltip)
		}
	}
	return buf, nil
}

func decodeClientboundTabComplete(r io.Reader) (Packet, error) {
	txn, err := primitive.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	start, err := primitive.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	length, err := primitive.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	count, err := primitive.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, protoerr.New(protoerr.KindMalformed, "negative TabComplete match count %d", count)
	}
	matches := make([]TabCompleteMatch, 0, count)
	for i := int32(0); i < count; i++ {
		m, err := primitive.ReadString(r)
		if err != nil {
			return nil, err
		}
		hasTooltip, err := primitive.ReadBool(r)
		if err != nil {
			return nil, err
		}
		var tooltip *string
		if hasTooltip {
			t, err := primitive.ReadString(r)
			if err != nil {
				return nil, err
			}
			tooltip = &t
		}
		matches = append(matches, TabCompleteMatch{Match: m, Tooltip: tooltip})
	}
	return ClientboundTabComplete{TransactionID: txn, Start: start, Length: length, Matches: matches}, nil
}

// MultiBlockChange updates several blocks within one chunk in a single
// packet; each record packs its X/Z nibble into one byte.
type MultiBlockChange struct {
	ChunkX, ChunkZ int32
	Records        []BlockChangeRecord
}

type BlockChangeRecord struct {
	X, Z       uint8 // 0-15
	Y          uint8
	BlockState int32
}

func (MultiBlockChange) PacketID() int32                { return 0x10 }
func (MultiBlockChange) ClientState() state.ClientState { return state.Play }
func (MultiBlockChange) Direction() state.Direction     { return state.Clientbound }
func (MultiBlockChange) Name() string                   { return "MultiBlockChange" }

func (p MultiBlockChange) EncodeBody() ([]byte, error) {
	var buf []byte
	buf = primitive.WriteI32(buf, p.ChunkX)
	buf = primitive.WriteI32(buf, p.ChunkZ)
	buf = primitive.WriteVarInt(buf, int32(len(p.Records)))
	for _, rec := range p.Records {
		if rec.X > 15 || rec.Z > 15 {
			return nil, protoerr.New(protoerr.KindInvalidOutbound, "MultiBlockChange record X/Z out of nibble range: %d,%d", rec.X, rec.Z)
		}
		buf = primitive.WriteU8(buf, (rec.X<<4)|rec.Z)
		buf = primitive.WriteU8(buf, rec.Y)
		buf = primitive.WriteVarInt(buf, rec.BlockState)
	}
	return buf, nil
}

func decodeMultiBlockChange(r io.Reader) (Packet, error) {
	chunkX, err := primitive.ReadI32(r)
	if err != nil {
		return nil, err
	}
	chunkZ, err := primitive.ReadI32(r)
	if err != nil {
		return nil, err
	}
	count, err := primitive.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, protoerr.New(protoerr.KindMalformed, "negative MultiBlockChange record count %d", count)
	}
	records := make([]BlockChangeRecord, 0, count)
	for i := int32(0); i < count; i++ {
		xz, err := primitive.ReadU8(r)
		if err != nil {
			return nil, err
		}
		y, err := primitive.ReadU8(r)
		if err != nil {
			return nil, err
		}
		blockState, err := primitive.ReadVarInt(r)
		if err != nil {
			return nil, err
		}
		records = append(records, BlockChangeRecord{X: xz >> 4, Z: xz & 0x0f, Y: y, BlockState: blockState})
	}
	return MultiBlockChange{ChunkX: chunkX, ChunkZ: chunkZ, Records: records}, nil
}

// OpenWindow opens a container UI; EntityID is only present for the
// EntityHorse window type.
type OpenWindow struct {
	WindowID        uint8
	WindowType      string
	WindowTitle     string
	NumberOfSlots   uint8
	EntityID        *int32
}

func (OpenWindow) PacketID() int32                { return 0x13 }
func (OpenWindow) ClientState() state.ClientState { return state.Play }
func (OpenWindow) Direction() state.Direction     { return state.Clientbound }
func (OpenWindow) Name() string                   { return "OpenWindow" }

func (p OpenWindow) EncodeBody() ([]byte, error) {
	if (p.WindowType == "EntityHorse") != (p.EntityID != nil) {
		return nil, protoerr.New(protoerr.KindInvalidOutbound, "OpenWindow EntityID presence must match window_type==EntityHorse")
	}
	var buf []byte
	buf = primitive.WriteU8(buf, p.WindowID)
	buf = primitive.WriteString(buf, p.WindowType)
	buf = primitive.WriteString(buf, p.WindowTitle)
	buf = primitive.WriteU8(buf, p.NumberOfSlots)
	if p.EntityID != nil {
		buf = primitive.WriteI32(buf, *p.EntityID)
	}
	return buf, nil
}

func decodeOpenWindow(r io.Reader) (Packet, error) {
	windowID, err := primitive.ReadU8(r)
	if err != nil {
		return nil, err
	}
	windowType, err := primitive.ReadString(r)
	if err != nil {
		return nil, err
	}
	windowTitle, err := primitive.ReadString(r)
	if err != nil {
		return nil, err
	}
	slots, err := primitive.ReadU8(r)
	if err != nil {
		return nil, err
	}
	var entityID *int32
	if windowType == "EntityHorse" {
		id, err := primitive.ReadI32(r)
		if err != nil {
			return nil, err
		}
		entityID = &id
	}
	return OpenWindow{WindowID: windowID, WindowType: windowType, WindowTitle: windowTitle, NumberOfSlots: slots, EntityID: entityID}, nil
}

// Explosion reports an explosion's epicenter, radius, affected block
// offsets, and resulting player motion.
type Explosion struct {
	X, Y, Z                float32
	Radius                 float32
	AffectedBlockOffsets   []BlockOffset
	MotionX, MotionY, MotionZ float32
}

type BlockOffset struct{ X, Y, Z int8 }

func (Explosion) PacketID() int32                { return 0x1C }
func (Explosion) ClientState() state.ClientState { return state.Play }
func (Explosion) Direction() state.Direction     { return state.Clientbound }
func (Explosion) Name() string                   { return "Explosion" }

func (p Explosion) EncodeBody() ([]byte, error) {
	var buf []byte
	buf = primitive.WriteF32(buf, p.X)
	buf = primitive.WriteF32(buf, p.Y)
	buf = primitive.WriteF32(buf, p.Z)
	buf = primitive.WriteF32(buf, p.Radius)
	buf = primitive.WriteI32(buf, int32(len(p.AffectedBlockOffsets)))
	for _, o := range p.AffectedBlockOffsets {
		buf = primitive.WriteI8(buf, o.X)
		buf = primitive.WriteI8(buf, o.Y)
		buf = primitive.WriteI8(buf, o.Z)
	}
	buf = primitive.WriteF32(buf, p.MotionX)
	buf = primitive.WriteF32(buf, p.MotionY)
	buf = primitive.WriteF32(buf, p.MotionZ)
	return buf, nil
}

func decodeExplosion(r io.Reader) (Packet, error) {
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
	radius, err := primitive.ReadF32(r)
	if err != nil {
		return nil, err
	}
	count, err := primitive.ReadI32(r)
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, protoerr.New(protoerr.KindMalformed, "negative Explosion affected block count %d", count)
	}
	offsets := make([]BlockOffset, 0, count)
	for i := int32(0); i < count; i++ {
		ox, err := primitive.ReadI8(r)
		if err != nil {
			return nil, err
		}
		oy, err := primitive.ReadI8(r)
		if err != nil {
			return nil, err
		}
		oz, err := primitive.ReadI8(r)
		if err != nil {
			return nil, err
		}
		offsets = append(offsets, BlockOffset{X: ox, Y: oy, Z: oz})
	}
	mx, err := primitive.ReadF32(r)
	if err != nil {
		return nil, err
	}
	my, err := primitive.ReadF32(r)
	if err != nil {
		return nil, err
	}
	mz, err := primitive.ReadF32(r)
	if err != nil {
		return nil, err
	}
	return Explosion{X: x, Y: y, Z: z, Radius: radius, AffectedBlockOffsets: offsets, MotionX: mx, MotionY: my, MotionZ: mz}, nil
}

// particleIDsWithID and particleIDsWithCrackData are the two families of
// particle ids that carry a trailing payload beyond the seven coordinate
// fields: "iconcrack"/"blockcrack"/"blockdust"-style ids carry an extra
// block/item id, and the first two of those also carry crack data.
var particleIDsWithID = map[int32]bool{36: true, 37: true, 38: true}
var particleIDsWithCrackData = map[int32]bool{36: true, 37: true}

// Particle reports a particle effect. Coordinates use f64 per the
// version-316 wire reference, not the f32 shown in some other protocol
// revisions.
type Particle struct {
	ParticleID                        int32
	LongDistance                      bool
	X, Y, Z                           float64
	OffsetX, OffsetY, OffsetZ         float64
	ParticleData                      float64
	Count                             int32
	Data                              *int32
	CrackData                         *int32
}

func (Particle) PacketID() int32                { return 0x22 }
func (Particle) ClientState() state.ClientState { return state.Play }
func (Particle) Direction() state.Direction     { return state.Clientbound }
func (Particle) Name() string                   { return "Particle" }

func (p Particle) EncodeBody() ([]byte, error) {
	if particleIDsWithID[p.ParticleID] != (p.Data != nil) {
		return nil, protoerr.New(protoerr.KindInvalidOutbound, "Particle Data presence must match particle_id %d", p.ParticleID)
	}
	if particleIDsWithCrackData[p.ParticleID] != (p.CrackData != nil) {
		return nil, protoerr.New(protoerr.KindInvalidOutbound, "Particle CrackData presence must match particle_id %d", p.ParticleID)
	}
	var buf []byte
	buf = primitive.WriteI32(buf, p.ParticleID)
	buf = primitive.WriteBool(buf, p.LongDistance)
	buf = primitive.WriteF64(buf, p.X)
	buf = primitive.WriteF64(buf, p.Y)
	buf = primitive.WriteF64(buf, p.Z)
	buf = primitive.WriteF64(buf, p.OffsetX)
	buf = primitive.WriteF64(buf, p.OffsetY)
	buf = primitive.WriteF64(buf, p.OffsetZ)
	buf = primitive.WriteF64(buf, p.ParticleData)
	buf = primitive.WriteI32(buf, p.Count)
	if p.Data != nil {
		buf = primitive.WriteVarInt(buf, *p.Data)
	}
	if p.CrackData != nil {
		buf = primitive.WriteVarInt(buf, *p.CrackData)
	}
	return buf, nil
}

func decodeParticle(r io.Reader) (Packet, error) {
	particleID, err := primitive.ReadI32(r)
	if err != nil {
		return nil, err
	}
	longDistance, err := primitive.ReadBool(r)
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
	ox, err := primitive.ReadF64(r)
	if err != nil {
		return nil, err
	}
	oy, err := primitive.ReadF64(r)
	if err != nil {
		return nil, err
	}
	oz, err := primitive.ReadF64(r)
	if err != nil {
		return nil, err
	}
	data, err := primitive.ReadF64(r)
	if err != nil {
		return nil, err
	}
	count, err := primitive.ReadI32(r)
	if err != nil {
		return nil, err
	}
	var idField, crackField *int32
	if particleIDsWithID[particleID] {
		v, err := primitive.ReadVarInt(r)
		if err != nil {
			return nil, err
		}
		idField = &v
	}
	if particleIDsWithCrackData[particleID] {
		v, err := primitive.ReadVarInt(r)
		if err != nil {
			return nil, err
		}
		crackField = &v
	}
	return Particle{
		ParticleID: particleID, LongDistance: longDistance,
		X: x, Y: y, Z: z, OffsetX: ox, OffsetY: oy, OffsetZ: oz,
		ParticleData: data, Count: count, Data: idField, CrackData: crackField,
	}, nil
}

// CombatEvent reports the start, end, or entity-death resolution of a
// combat encounter; event selects which optional fields follow.
type CombatEvent struct {
	Event      int32
	Duration   *int32
	EntityID   *int32
	PlayerID   *int32
	Message    *string
}

func (CombatEvent) PacketID() int32                { return 0x2E }
func (CombatEvent) ClientState() state.ClientState { return state.Play }
func (CombatEvent) Direction() state.Direction     { return state.Clientbound }
func (CombatEvent) Name() string                   { return "CombatEvent" }

func (p CombatEvent) EncodeBody() ([]byte, error) {
	var buf []byte
	buf = primitive.WriteVarInt(buf, p.Event)
	switch p.Event {
	case 0:
		// no further fields
	case 1:
		if p.Duration == nil || p.EntityID == nil {
			return nil, protoerr.New(protoerr.KindInvalidOutbound, "CombatEvent end requires Duration and EntityID")
		}
		buf = primitive.WriteVarInt(buf, *p.Duration)
		buf = primitive.WriteI32(buf, *p.EntityID)
	case 2:
		if p.PlayerID == nil || p.EntityID == nil || p.Message == nil {
			return nil, protoerr.New(protoerr.KindInvalidOutbound, "CombatEvent death requires PlayerID, EntityID and Message")
		}
		buf = primitive.WriteVarInt(buf, *p.PlayerID)
		buf = primitive.WriteI32(buf, *p.EntityID)
		buf = primitive.WriteString(buf, *p.Message)
	default:
		return nil, protoerr.New(protoerr.KindInvalidOutbound, "CombatEvent invalid event %d", p.Event)
	}
	return buf, nil
}

func decodeCombatEvent(r io.Reader) (Packet, error) {
	event, err := primitive.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	out := CombatEvent{Event: event}
	switch event {
	case 0:
	case 1:
		d, err := primitive.ReadVarInt(r)
		if err != nil {
			return nil, err
		}
		e, err := primitive.ReadI32(r)
		if err != nil {
			return nil, err
		}
		out.Duration, out.EntityID = &d, &e
	case 2:
		pid, err := primitive.ReadVarInt(r)
		if err != nil {
			return nil, err
		}
		e, err := primitive.ReadI32(r)
		if err != nil {
			return nil, err
		}
		msg, err := primitive.ReadString(r)
		if err != nil {
			return nil, err
		}
		out.PlayerID, out.EntityID, out.Message = &pid, &e, &msg
	default:
		return nil, protoerr.New(protoerr.KindMalformed, "CombatEvent invalid event %d", event)
	}
	return out, nil
}

// ScoreboardObjective creates, removes, or updates a scoreboard
// objective; Value/Type are present only on create (0) and update (2).
type ScoreboardObjective struct {
	ObjectiveName string
	Mode          uint8
	Value         *string
	Type          *string
}

func (ScoreboardObjective) PacketID() int32                { return 0x42 }
func (ScoreboardObjective) ClientState() state.ClientState { return state.Play }
func (ScoreboardObjective) Direction() state.Direction     { return state.Clientbound }
func (ScoreboardObjective) Name() string                   { return "ScoreboardObjective" }

func (p ScoreboardObjective) EncodeBody() ([]byte, error) {
	needsFields := p.Mode == 0 || p.Mode == 2
	if needsFields != (p.Value != nil && p.Type != nil) {
		return nil, protoerr.New(protoerr.KindInvalidOutbound, "ScoreboardObjective Value/Type presence must match mode %d", p.Mode)
	}
	var buf []byte
	buf = primitive.WriteString(buf, p.ObjectiveName)
	buf = primitive.WriteU8(buf, p.Mode)
	if needsFields {
		buf = primitive.WriteString(buf, *p.Value)
		buf = primitive.WriteString(buf, *p.Type)
	}
	return buf, nil
}

func decodeScoreboardObjective(r io.Reader) (Packet, error) {
	name, err := primitive.ReadString(r)
	if err != nil {
		return nil, err
	}
	mode, err := primitive.ReadU8(r)
	if err != nil {
		return nil, err
	}
	out := ScoreboardObjective{ObjectiveName: name, Mode: mode}
	if mode == 0 || mode == 2 {
		v, err := primitive.ReadString(r)
		if err != nil {
			return nil, err
		}
		t, err := primitive.ReadString(r)
		if err != nil {
			return nil, err
		}
		out.Value, out.Type = &v, &t
	}
	return out, nil
}

// UpdateScore sets or removes a scoreboard entry's score; action==1
// (remove) carries no value.
type UpdateScore struct {
	ScoreName      string
	Action         uint8
	ObjectiveName  string
	Value          *int32
}

func (UpdateScore) PacketID() int32                { return 0x44 }
func (UpdateScore) ClientState() state.ClientState { return state.Play }
func (UpdateScore) Direction() state.Direction     { return state.Clientbound }
func (UpdateScore) Name() string                   { return "UpdateScore" }

func (p UpdateScore) EncodeBody() ([]byte, error) {
	if (p.Action == 1) != (p.Value == nil) {
		return nil, protoerr.New(protoerr.KindInvalidOutbound, "UpdateScore Value presence must match action %d", p.Action)
	}
	var buf []byte
	buf = primitive.WriteString(buf, p.ScoreName)
	buf = primitive.WriteU8(buf, p.Action)
	buf = primitive.WriteString(buf, p.ObjectiveName)
	if p.Value != nil {
		buf = primitive.WriteVarInt(buf, *p.Value)
	}
	return buf, nil
}

func decodeUpdateScore(r io.Reader) (Packet, error) {
	name, err := primitive.ReadString(r)
	if err != nil {
		return nil, err
	}
	action, err := primitive.ReadU8(r)
	if err != nil {
		return nil, err
	}
	objective, err := primitive.ReadString(r)
	if err != nil {
		return nil, err
	}
	out := UpdateScore{ScoreName: name, Action: action, ObjectiveName: objective}
	if action != 1 {
		v, err := primitive.ReadVarInt(r)
		if err != nil {
			return nil, err
		}
		out.Value = &v
	}
	return out, nil
}

// Title drives the large on-screen title/subtitle/action-bar display.
// Action 0-2 carry a chat-JSON String; action 3 carries three timing
// fields; actions 4 (hide) and 5 (reset) carry nothing.
type Title struct {
	Action               int32
	Text                 *string
	FadeIn, Stay, FadeOut *int32
}

func (Title) PacketID() int32                { return 0x45 }
func (Title) ClientState() state.ClientState { return state.Play }
func (Title) Direction() state.Direction     { return state.Clientbound }
func (Title) Name() string                   { return "Title" }

func (p Title) EncodeBody() ([]byte, error) {
	var buf []byte
	buf = primitive.WriteVarInt(buf, p.Action)
	switch p.Action {
	case 0, 1, 2:
		if p.Text == nil {
			return nil, protoerr.New(protoerr.KindInvalidOutbound, "Title action %d requires Text", p.Action)
		}
		buf = primitive.WriteString(buf, *p.Text)
	case 3:
		if p.FadeIn == nil || p.Stay == nil || p.FadeOut == nil {
			return nil, protoerr.New(protoerr.KindInvalidOutbound, "Title action 3 requires FadeIn/Stay/FadeOut")
		}
		buf = primitive.WriteI32(buf, *p.FadeIn)
		buf = primitive.WriteI32(buf, *p.Stay)
		buf = primitive.WriteI32(buf, *p.FadeOut)
	case 4, 5:
		// no further fields
	default:
		return nil, protoerr.New(protoerr.KindInvalidOutbound, "Title invalid action %d", p.Action)
	}
	return buf, nil
}

func decodeTitle(r io.Reader) (Packet, error) {
	action, err := primitive.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	out := Title{Action: action}
	switch action {
	case 0, 1, 2:
		s, err := primitive.ReadString(r)
		if err != nil {
			return nil, err
		}
		out.Text = &s
	case 3:
		in, err := primitive.ReadI32(r)
		if err != nil {
			return nil, err
		}
		stay, err := primitive.ReadI32(r)
		if err != nil {
			return nil, err
		}
		out_, err := primitive.ReadI32(r)
		if err != nil {
			return nil, err
		}
		out.FadeIn, out.Stay, out.FadeOut = &in, &stay, &out_
	case 4, 5:
	default:
		return nil, protoerr.New(protoerr.KindMalformed, "Title invalid action %d", action)
	}
	return out, nil
}

func init() {
	Register(state.Clientbound, state.Play, 0x07, decodeStatistics)
	Register(state.Clientbound, state.Play, 0x0E, decodeClientboundTabComplete)
	Register(state.Clientbound, state.Play, 0x10, decodeMultiBlockChange)
	Register(state.Clientbound, state.Play, 0x13, decodeOpenWindow)
	Register(state.Clientbound, state.Play, 0x1C, decodeExplosion)
	Register(state.Clientbound, state.Play, 0x22, decodeParticle)
	Register(state.Clientbound, state.Play, 0x2E, decodeCombatEvent)
	Register(state.Clientbound, state.Play, 0x42, decodeScoreboardObjective)
	Register(state.Clientbound, state.Play, 0x44, decodeUpdateScore)
	Register(state.Clientbound, state.Play, 0x45, decodeTitle)
}
