// Package addon is the facade between the host runtime and the core
// components: it owns the addon's identity and manifest, decodes inbound
// host broadcasts into signal hub emissions, and serves settings from the
// host's ledger store.
//
// The facade deliberately stays thin. It implements no UI, no widget
// rendering, and no message-channel plumbing: the host's glue layer calls
// HandleMessage with every broadcast it receives, and delivers outbound
// broadcasts through the Messenger it injects. Everything interesting
// happens in the storage and signal packages the facade mediates to.
//
// # Addresses
//
// Inbound broadcasts are routed by their dotted address:
//
//	<NS>.READY                     - the host finished loading the addon
//	<NS>.TRIGGER.<extId>.<actor>   - a registered extension was invoked
//	<NS>.<addonId>.<emitterId>     - a cross-addon custom signal
//
// where NS is the configured signal namespace. The custom-signal payload is
// either the literal "void" or a JSON blob. Addresses that do not match any
// form are ignored; the channel is a broadcast medium shared by every addon
// in the runtime.
//
// # Settings
//
// Settings live in dedicated per-category ledgers. The canonical settings
// blob is the first entry whose score is exactly zero; its label is the raw
// JSON document. Reads go through gjson paths, writes rewrite the blob with
// sjson and re-install it at slot zero.
package addon
