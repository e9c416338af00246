package yggdrasil

import "testing"

func TestServerHashCanonicalVectors(t *testing.T) {
	cases := []struct {
		serverID string
		want     string
	}{
		{"Notch", "4ed1f46bbe04bc756bcb17c0c7ce3e4632f06a48"},
		{"jeb_", "-7c9d5b0044c130109a5d7b5fb5c317c02b4e28c1"},
		{"simon", "88e16a1019277b15d58faf0541e11910eb756f6"},
	}
	for _, c := range cases {
		got := ServerHash(c.serverID, nil, nil)
		if got != c.want {
			t.Errorf("ServerHash(%q) = %q, want %q", c.serverID, got, c.want)
		}
	}
}
