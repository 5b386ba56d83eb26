package signal

import "log"

// Reporter receives subscriber failures together with the channel name.
type Reporter func(channel string, err error)

// defaultReporter logs failures; it is used when no reporter is configured.
func defaultReporter(channel string, err error) {
	log.Printf("signal %s: %v", channel, err)
}

// Hub holds the four signal channels as one explicit context object.
// Construct a Hub once at startup and hand it to everything that publishes
// or subscribes; the package keeps no global hub.
type Hub struct {
	AddonReady         *Channel[DescriptorEvent]
	SettingsChanged    *Channel[SettingsEvent]
	ExtensionTriggered *Channel[ExtensionEvent]
	CustomSignal       *Channel[CustomSignalEvent]
}

// hubConfig holds Hub construction options.
type hubConfig struct {
	reporter Reporter
}

// HubOption configures a Hub.
type HubOption func(*hubConfig)

// WithReporter routes subscriber failures on all four channels to r.
func WithReporter(r Reporter) HubOption {
	return func(c *hubConfig) {
		c.reporter = r
	}
}

// NewHub creates a Hub with four empty channels.
func NewHub(opts ...HubOption) *Hub {
	cfg := hubConfig{reporter: defaultReporter}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Hub{
		AddonReady:         NewChannel[DescriptorEvent](ChannelAddonReady, cfg.reporter),
		SettingsChanged:    NewChannel[SettingsEvent](ChannelSettingsChanged, cfg.reporter),
		ExtensionTriggered: NewChannel[ExtensionEvent](ChannelExtensionTriggered, cfg.reporter),
		CustomSignal:       NewChannel[CustomSignalEvent](ChannelCustomSignal, cfg.reporter),
	}
}
