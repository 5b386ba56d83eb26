package addon

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/addonkit/internal/ledger"
	"github.com/dshills/addonkit/internal/signal"
	"github.com/dshills/addonkit/internal/storage"
)

// Sentinel errors for facade operations.
var (
	// ErrUninitialized is returned when an operation requiring addon
	// identity runs before Initialize established it.
	ErrUninitialized = errors.New("addon: identity not established")

	// ErrInvalidPayload is returned when a custom-signal payload is neither
	// void nor JSON.
	ErrInvalidPayload = errors.New("addon: payload is neither void nor JSON")
)

// DefaultNamespace is the namespace used when none is configured.
const DefaultNamespace = "ADDONKIT"

// Address segments and payload sentinels of the broadcast protocol.
const (
	segReady   = "READY"
	segTrigger = "TRIGGER"

	// voidPayload marks a custom signal that carries no data.
	voidPayload = "void"
)

// Messenger is the host's broadcast channel, injected by the glue layer.
type Messenger interface {
	Broadcast(address string, payload []byte) error
}

// Addon is the facade between the host runtime and the core components.
// Operations that need the addon's identity fail with ErrUninitialized
// until Initialize has accepted a manifest.
type Addon struct {
	hub       *signal.Hub
	store     ledger.Store
	messenger Messenger
	ns        string

	manifest *Manifest
	dirs     *storage.Registry
}

// Option configures an Addon.
type Option func(*Addon)

// WithNamespace overrides the broadcast/ledger namespace.
func WithNamespace(ns string) Option {
	return func(a *Addon) {
		a.ns = strings.ToUpper(ns)
	}
}

// New creates a facade over the given hub, store, and messenger.
// The returned Addon has no identity until Initialize is called.
func New(hub *signal.Hub, store ledger.Store, messenger Messenger, opts ...Option) *Addon {
	a := &Addon{
		hub:       hub,
		store:     store,
		messenger: messenger,
		ns:        DefaultNamespace,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Initialize validates the manifest and establishes the addon's identity,
// creating the directory registry scoped to it.
func (a *Addon) Initialize(m *Manifest) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.Namespace == "" {
		m.Namespace = a.ns
	}

	a.manifest = m
	a.dirs = storage.NewRegistry(a.store, a.ns, m.Name)
	return nil
}

// Namespace returns the effective (upper-cased) broadcast namespace.
func (a *Addon) Namespace() string {
	return a.ns
}

// Initialized reports whether the addon's identity is established.
func (a *Addon) Initialized() bool {
	return a.manifest != nil
}

// Manifest returns the manifest, or nil before initialization.
func (a *Addon) Manifest() *Manifest {
	return a.manifest
}

// Descriptor returns the addon's public descriptor.
func (a *Addon) Descriptor() (signal.Descriptor, error) {
	if a.manifest == nil {
		return signal.Descriptor{}, ErrUninitialized
	}
	return signal.Descriptor{
		ID:          a.manifest.Name,
		Name:        a.manifest.DisplayName,
		Version:     a.manifest.Version,
		Namespace:   a.manifest.Namespace,
		Description: a.manifest.Description,
		Author:      a.manifest.Author,
		Extensions:  a.manifest.ExtensionIDs(),
	}, nil
}

// Directories returns the addon's directory registry.
func (a *Addon) Directories() (*storage.Registry, error) {
	if a.dirs == nil {
		return nil, ErrUninitialized
	}
	return a.dirs, nil
}

// HandleMessage decodes one inbound host broadcast and emits the matching
// signal. Addresses outside the addon's namespace, and well-formed
// addresses that target nothing this addon registered, are ignored: the
// channel is a broadcast medium shared by every addon in the runtime.
func (a *Addon) HandleMessage(address string, payload []byte) error {
	if a.manifest == nil {
		return ErrUninitialized
	}

	parts := strings.Split(address, ".")
	if parts[0] != a.ns {
		return nil
	}

	switch {
	case len(parts) == 2 && parts[1] == segReady:
		desc, err := a.Descriptor()
		if err != nil {
			return err
		}
		a.hub.AddonReady.Emit(signal.DescriptorEvent{Descriptor: desc})
		return nil

	case len(parts) == 4 && parts[1] == segTrigger:
		extID, actor := parts[2], parts[3]
		if !a.manifest.HasExtension(extID) {
			return nil
		}
		a.hub.ExtensionTriggered.Emit(signal.ExtensionEvent{
			ExtensionID: extID,
			Actor:       actor,
		})
		return nil

	case len(parts) == 3:
		data, err := decodeSignalPayload(payload)
		if err != nil {
			return fmt.Errorf("custom signal %s: %w", address, err)
		}
		a.hub.CustomSignal.Emit(signal.CustomSignalEvent{
			AddonID:   parts[1],
			EmitterID: parts[2],
			Data:      data,
		})
		return nil
	}

	return nil
}

// EmitCustom broadcasts a custom signal addressed from this addon.
// A nil data value broadcasts a void signal.
func (a *Addon) EmitCustom(emitterID string, data any) error {
	if a.manifest == nil {
		return ErrUninitialized
	}

	payload := []byte(voidPayload)
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("emit custom %s: %w", emitterID, err)
		}
		payload = encoded
	}

	address := a.ns + "." + a.manifest.Name + "." + emitterID
	return a.messenger.Broadcast(address, payload)
}

// decodeSignalPayload maps a broadcast payload to signal data: the void
// sentinel (or an empty payload) means nil, anything else must be JSON.
func decodeSignalPayload(payload []byte) (json.RawMessage, error) {
	if len(payload) == 0 || string(payload) == voidPayload {
		return nil, nil
	}
	if !json.Valid(payload) {
		return nil, ErrInvalidPayload
	}
	return json.RawMessage(payload), nil
}
