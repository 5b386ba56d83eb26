package signal

import "encoding/json"

// Channel names, used for error reporting and diagnostics.
const (
	ChannelAddonReady         = "addon.ready"
	ChannelSettingsChanged    = "settings.changed"
	ChannelExtensionTriggered = "extension.triggered"
	ChannelCustomSignal       = "custom.signal"
)

// Descriptor is the full public identity of an addon.
type Descriptor struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Namespace   string   `json:"namespace"`
	Description string   `json:"description,omitempty"`
	Author      string   `json:"author,omitempty"`
	Extensions  []string `json:"extensions,omitempty"`
}

// DescriptorEvent is emitted on AddonReady when the addon's identity
// becomes available to the host.
type DescriptorEvent struct {
	Descriptor Descriptor
}

// SettingsEvent is emitted on SettingsChanged with the resolved settings
// object. Actor identifies who changed the settings and may be empty.
type SettingsEvent struct {
	Settings map[string]any
	Actor    string
}

// ExtensionEvent is emitted on ExtensionTriggered when one of the addon's
// registered extensions is invoked.
type ExtensionEvent struct {
	ExtensionID string
	Actor       string
}

// CustomSignalEvent is emitted on CustomSignal for cross-addon signals.
// Data is nil for void signals.
type CustomSignalEvent struct {
	AddonID   string
	EmitterID string
	Data      json.RawMessage
}
