package signal_test

import (
	"fmt"

	"github.com/dshills/addonkit/internal/signal"
)

func ExampleHub() {
	hub := signal.NewHub()

	sub, _ := hub.ExtensionTriggered.Subscribe(func(ev signal.ExtensionEvent) error {
		fmt.Printf("extension %s triggered by %s\n", ev.ExtensionID, ev.Actor)
		return nil
	})

	hub.ExtensionTriggered.Emit(signal.ExtensionEvent{ExtensionID: "open-vault", Actor: "steve"})

	sub.Cancel()
	hub.ExtensionTriggered.Emit(signal.ExtensionEvent{ExtensionID: "open-vault", Actor: "alex"})

	// Output: extension open-vault triggered by steve
}

func ExampleChannel_Subscribe() {
	hub := signal.NewHub()

	handler := func(ev signal.CustomSignalEvent) error {
		fmt.Printf("signal from %s.%s\n", ev.AddonID, ev.EmitterID)
		return nil
	}

	// Subscribing the same handler twice is a no-op.
	hub.CustomSignal.Subscribe(handler)
	hub.CustomSignal.Subscribe(handler)

	hub.CustomSignal.Emit(signal.CustomSignalEvent{AddonID: "vault", EmitterID: "unlocked"})

	// Output: signal from vault.unlocked
}
