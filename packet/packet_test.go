package packet

import (
	"bytes"
	"testing"

	"mcproto/primitive"
	"mcproto/state"
)

func roundTrip(t *testing.T, p Packet) Packet {
	t.Helper()
	body, err := p.EncodeBody()
	if err != nil {
		t.Fatalf("EncodeBody: %v", err)
	}
	got, err := Decode(p.Direction(), p.ClientState(), bytes.NewReader(appendID(p, body)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return got
}

func appendID(p Packet, body []byte) []byte {
	return append(primitive.WriteVarInt(nil, p.PacketID()), body...)
}

func TestHandshakeRoundTrip(t *testing.T) {
	p := Handshake{ProtocolVersion: ProtocolVersion, ServerAddress: "localhost", ServerPort: 25565, NextState: 2}
	got, ok := roundTrip(t, p).(Handshake)
	if !ok || got != p {
		t.Errorf("got %+v, want %+v", got, p)
	}
}

func TestLoginSuccessRoundTrip(t *testing.T) {
	p := LoginSuccess{UUID: primitive.UUID{Most: 1, Least: 2}, Username: "Alice"}
	got, ok := roundTrip(t, p).(LoginSuccess)
	if !ok || got != p {
		t.Errorf("got %+v, want %+v", got, p)
	}
}

func TestUseEntityHandPresence(t *testing.T) {
	hand := int32(1)
	// action 1 (attack): no hand, no location.
	p := UseEntity{Target: 5, Action: 1}
	got, ok := roundTrip(t, p).(UseEntity)
	if !ok || got.Hand != nil {
		t.Errorf("expected no Hand for action 1, got %+v", got)
	}

	// action 0 (interact): hand present.
	p0 := UseEntity{Target: 5, Action: 0, Hand: &hand}
	got0, ok := roundTrip(t, p0).(UseEntity)
	if !ok || got0.Hand == nil || *got0.Hand != hand {
		t.Errorf("expected Hand for action 0, got %+v", got0)
	}

	// action 2 (interact at): hand and location present.
	p2 := UseEntity{Target: 5, Action: 2, Hand: &hand, HasLocation: true, LocationX: 1, LocationY: 2, LocationZ: 3}
	got2, ok := roundTrip(t, p2).(UseEntity)
	if !ok || got2.Hand == nil || !got2.HasLocation {
		t.Errorf("expected Hand and Location for action 2, got %+v", got2)
	}
}

func TestUseEntityInvalidOutbound(t *testing.T) {
	// action 0 requires Hand; omitting it must fail EncodeBody, not
	// silently encode a wrong shape.
	p := UseEntity{Target: 1, Action: 0}
	if _, err := p.EncodeBody(); err == nil {
		t.Fatal("expected InvalidOutbound error for missing Hand")
	}
}

func TestParticleWithAndWithoutExtraFields(t *testing.T) {
	id := int32(7)
	crack := int32(3)
	withExtra := Particle{ParticleID: 36, Data: &id, CrackData: &crack, Count: 1}
	got, ok := roundTrip(t, withExtra).(Particle)
	if !ok || got.Data == nil || got.CrackData == nil {
		t.Errorf("expected Data and CrackData for particle 36, got %+v", got)
	}

	plain := Particle{ParticleID: 1, Count: 1}
	got2, ok := roundTrip(t, plain).(Particle)
	if !ok || got2.Data != nil || got2.CrackData != nil {
		t.Errorf("expected no Data/CrackData for particle 1, got %+v", got2)
	}
}

func TestCombatEventVariants(t *testing.T) {
	end := CombatEvent{Event: 1, Duration: int32p(5), EntityID: int32p(10)}
	got, ok := roundTrip(t, end).(CombatEvent)
	if !ok || got.Duration == nil || *got.Duration != 5 {
		t.Errorf("got %+v", got)
	}

	msg := "died"
	death := CombatEvent{Event: 2, PlayerID: int32p(1), EntityID: int32p(2), Message: &msg}
	got2, ok := roundTrip(t, death).(CombatEvent)
	if !ok || got2.Message == nil || *got2.Message != msg {
		t.Errorf("got %+v", got2)
	}
}

func int32p(v int32) *int32 { return &v }

func TestUnknownPacketID(t *testing.T) {
	buf := primitive.WriteVarInt(nil, 0x7f)
	if _, err := Decode(state.Clientbound, state.Play, bytes.NewReader(buf)); err == nil {
		t.Fatal("expected UnknownPacket error")
	}
}

func TestMultiBlockChangeNibblePacking(t *testing.T) {
	p := MultiBlockChange{
		ChunkX: 1, ChunkZ: -1,
		Records: []BlockChangeRecord{{X: 15, Z: 3, Y: 64, BlockState: 42}},
	}
	got, ok := roundTrip(t, p).(MultiBlockChange)
	if !ok || len(got.Records) != 1 || got.Records[0] != p.Records[0] {
		t.Errorf("got %+v, want %+v", got, p)
	}
}
