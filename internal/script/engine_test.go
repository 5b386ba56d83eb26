package script

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/addonkit/internal/ledger"
	"github.com/dshills/addonkit/internal/signal"
	"github.com/dshills/addonkit/internal/storage"
)

func newTestEngine(t *testing.T) (*Engine, *signal.Hub, *storage.Registry) {
	t.Helper()
	hub := signal.NewHub(signal.WithReporter(func(string, error) {}))
	dirs := storage.NewRegistry(ledger.NewMemoryStore(), "addonkit", "vault")
	e := New(hub, dirs, Options{})
	t.Cleanup(e.Close)
	return e, hub, dirs
}

func TestEngine_WriteRead(t *testing.T) {
	e, _, dirs := newTestEngine(t)

	src := `
addon.write("saves", "slot1", {level = 3, name = "overworld"})
value = addon.read("saves", "slot1")
`
	if err := e.Run(src); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// The write must be visible from Go through the same registry.
	dir, ok := dirs.Get("saves")
	if !ok {
		t.Fatal("expected saves directory to exist")
	}
	raw, err := dir.Read("slot1")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	for _, want := range []string{`"level":3`, `"name":"overworld"`} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("expected %s in %s", want, raw)
		}
	}

	// And the read back into Lua must round-trip.
	if err := e.Run(`assert(value.level == 3 and value.name == "overworld")`); err != nil {
		t.Errorf("round-trip assertion failed: %v", err)
	}
}

func TestEngine_ReadMissing(t *testing.T) {
	e, _, _ := newTestEngine(t)

	src := `
assert(addon.read("nowhere", "nothing") == nil)
assert(addon.exists("nowhere", "nothing") == false)
`
	if err := e.Run(src); err != nil {
		t.Errorf("Run failed: %v", err)
	}
}

func TestEngine_List(t *testing.T) {
	e, _, _ := newTestEngine(t)

	src := `
addon.write("saves", "x", 1)
addon.write("saves", "y", 2)
names = addon.list("saves")
assert(#names == 2)
`
	if err := e.Run(src); err != nil {
		t.Errorf("Run failed: %v", err)
	}
}

func TestEngine_OnCustomSignal(t *testing.T) {
	e, hub, _ := newTestEngine(t)

	src := `
seen = nil
addon.on("custom", function(ev)
	seen = ev.addon .. "." .. ev.emitter .. ":" .. tostring(ev.data.door)
end)
`
	if err := e.Run(src); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	hub.CustomSignal.Emit(signal.CustomSignalEvent{
		AddonID:   "other",
		EmitterID: "unlocked",
		Data:      []byte(`{"door":3}`),
	})

	if err := e.Run(`assert(seen == "other.unlocked:3")`); err != nil {
		t.Errorf("handler did not observe the signal: %v", err)
	}
}

func TestEngine_TwoHandlersOneChannel(t *testing.T) {
	e, hub, _ := newTestEngine(t)

	src := `
hits = 0
addon.on("custom", function(ev) hits = hits + 1 end)
addon.on("custom", function(ev) hits = hits + 10 end)
`
	if err := e.Run(src); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if hub.CustomSignal.Count() != 2 {
		t.Fatalf("expected 2 subscriptions, got %d", hub.CustomSignal.Count())
	}

	hub.CustomSignal.Emit(signal.CustomSignalEvent{AddonID: "other", EmitterID: "ping"})

	if err := e.Run(`assert(hits == 11, "expected both handlers to fire, hits=" .. hits)`); err != nil {
		t.Errorf("both handlers must fire once each: %v", err)
	}
}

func TestEngine_OnExtension(t *testing.T) {
	e, hub, _ := newTestEngine(t)

	src := `
count = 0
addon.on("extension", function(ev)
	if ev.extension == "open-vault" then count = count + 1 end
end)
`
	if err := e.Run(src); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	hub.ExtensionTriggered.Emit(signal.ExtensionEvent{ExtensionID: "open-vault", Actor: "steve"})
	hub.ExtensionTriggered.Emit(signal.ExtensionEvent{ExtensionID: "other", Actor: "steve"})

	if err := e.Run(`assert(count == 1)`); err != nil {
		t.Errorf("unexpected handler count: %v", err)
	}
}

func TestEngine_Emit(t *testing.T) {
	e, hub, _ := newTestEngine(t)

	var got []signal.CustomSignalEvent
	hub.CustomSignal.Subscribe(func(ev signal.CustomSignalEvent) error {
		got = append(got, ev)
		return nil
	})

	if err := e.Run(`addon.emit("unlocked", {door = 3})`); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if err := e.Run(`addon.emit("pinged")`); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 signals, got %d", len(got))
	}
	if got[0].AddonID != "vault" || got[0].EmitterID != "unlocked" {
		t.Errorf("unexpected event %+v", got[0])
	}
	if string(got[0].Data) != `{"door":3}` {
		t.Errorf("unexpected data %s", got[0].Data)
	}
	if got[1].Data != nil {
		t.Errorf("expected void data, got %s", got[1].Data)
	}
}

func TestEngine_UnknownChannel(t *testing.T) {
	e, _, _ := newTestEngine(t)

	err := e.Run(`addon.on("nonsense", function() end)`)
	if err == nil || !strings.Contains(err.Error(), "unknown channel") {
		t.Errorf("expected unknown channel error, got %v", err)
	}
}

func TestEngine_Sandbox(t *testing.T) {
	e, _, _ := newTestEngine(t)

	src := `
assert(os == nil)
assert(io == nil)
assert(dofile == nil)
assert(loadstring == nil)
`
	if err := e.Run(src); err != nil {
		t.Errorf("sandbox not applied: %v", err)
	}
}

func TestEngine_CloseCancelsSubscriptions(t *testing.T) {
	hub := signal.NewHub(signal.WithReporter(func(string, error) {}))
	dirs := storage.NewRegistry(ledger.NewMemoryStore(), "addonkit", "vault")
	e := New(hub, dirs, Options{})

	if err := e.Run(`addon.on("custom", function() end)`); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if hub.CustomSignal.Count() != 1 {
		t.Fatalf("expected 1 subscription, got %d", hub.CustomSignal.Count())
	}

	e.Close()
	if hub.CustomSignal.Count() != 0 {
		t.Errorf("expected subscriptions cancelled on close, got %d", hub.CustomSignal.Count())
	}

	if err := e.Run(`print("after close")`); !errors.Is(err, ErrEngineClosed) {
		t.Errorf("expected ErrEngineClosed, got %v", err)
	}
}
