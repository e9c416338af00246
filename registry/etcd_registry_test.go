package registry

import "testing"

// The EtcdRegistry methods themselves require a live etcd endpoint and
// are exercised in integration environments; this package's unit
// coverage targets StaticRegistry, which implements the same interface
// without that dependency.

func TestStaticRegistryDiscover(t *testing.T) {
	reg := NewStaticRegistry(map[string][]Instance{
		"survival": {
			{Addr: "127.0.0.1:25566", Weight: 10, Version: "316", MOTD: "Survival"},
			{Addr: "127.0.0.1:25567", Weight: 5, Version: "316", MOTD: "Survival overflow"},
		},
	})

	instances, err := reg.Discover("survival")
	if err != nil {
		t.Fatal(err)
	}
	if len(instances) != 2 {
		t.Fatalf("expect 2 instances, got %d", len(instances))
	}
	if instances[0].MOTD != "Survival" {
		t.Errorf("got MOTD %q", instances[0].MOTD)
	}

	if err := reg.Register("survival", Instance{Addr: "ignored"}, 10); err != nil {
		t.Fatalf("Register should be a no-op: %v", err)
	}
	if err := reg.Deregister("survival", "ignored"); err != nil {
		t.Fatalf("Deregister should be a no-op: %v", err)
	}

	instances, err = reg.Discover("survival")
	if err != nil || len(instances) != 2 {
		t.Fatalf("Register/Deregister should not mutate a StaticRegistry, got %d instances, err %v", len(instances), err)
	}

	empty, err := reg.Discover("unknown")
	if err != nil || len(empty) != 0 {
		t.Fatalf("expect empty slice for unknown service, got %v, err %v", empty, err)
	}
}

func TestStaticRegistryWatchClosed(t *testing.T) {
	reg := NewStaticRegistry(nil)
	ch := reg.Watch("survival")
	if _, ok := <-ch; ok {
		t.Fatal("expected Watch channel to be closed immediately for a StaticRegistry")
	}
}
