// Package signal provides the typed publish/subscribe hub that lets addon
// code and cross-addon events propagate without direct references between
// emitters and listeners.
//
// # Architecture
//
// A Hub holds four independent channels, one per event kind:
//
//	AddonReady          - the addon's descriptor became available
//	SettingsChanged     - resolved settings plus the acting identity
//	ExtensionTriggered  - a registered extension was invoked by an actor
//	CustomSignal        - a cross-addon signal with optional JSON data
//
// Each channel keeps its own subscriber set; subscribing to one kind never
// affects another. The Hub is an explicit context object constructed once
// at startup and passed to whatever needs to publish or subscribe; there is
// no ambient global state in this package.
//
// # Delivery
//
// Emit invokes subscribers synchronously, in insertion order, against the
// subscriber view taken when the emit starts. A subscriber that returns an
// error or panics is isolated: the failure is reported through the Hub's
// Reporter together with the channel name, remaining subscribers still run,
// and the emitter never sees the failure.
//
// Subscribing or unsubscribing from inside an active emit is best-effort:
// the in-flight delivery may or may not observe the change, and no
// consistency is guaranteed until the next emit.
package signal
