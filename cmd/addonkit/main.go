// Package main is a demo host for the addonkit runtime: it wires an
// in-memory ledger store, a signal hub, and one addon together, then walks
// through a small scenario so the pieces can be watched end to end.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dshills/addonkit/internal/addon"
	"github.com/dshills/addonkit/internal/config"
	"github.com/dshills/addonkit/internal/ledger"
	"github.com/dshills/addonkit/internal/script"
	"github.com/dshills/addonkit/internal/signal"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()
	if opts.showVersion {
		fmt.Printf("addonkit %s\n", version)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	store := ledger.NewMemoryStore()
	hub := signal.NewHub(signal.WithReporter(func(channel string, err error) {
		log.Printf("subscriber failure on %s: %v", channel, err)
	}))

	// The loopback messenger feeds outbound broadcasts straight back into
	// the facade, standing in for the host's shared message channel.
	loop := &loopback{}
	a := addon.New(hub, store, loop, addon.WithNamespace(cfg.Namespace))
	loop.addon = a

	manifest, err := loadManifest(opts.manifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := a.Initialize(manifest); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid manifest: %v\n", err)
		return 1
	}

	hub.AddonReady.Subscribe(func(ev signal.DescriptorEvent) error {
		fmt.Printf("ready: %s v%s (%d extensions)\n",
			ev.Descriptor.ID, ev.Descriptor.Version, len(ev.Descriptor.Extensions))
		return nil
	})
	hub.ExtensionTriggered.Subscribe(func(ev signal.ExtensionEvent) error {
		fmt.Printf("extension: %s by %s\n", ev.ExtensionID, ev.Actor)
		return nil
	})
	hub.CustomSignal.Subscribe(func(ev signal.CustomSignalEvent) error {
		fmt.Printf("signal: %s.%s data=%s\n", ev.AddonID, ev.EmitterID, ev.Data)
		return nil
	})
	hub.SettingsChanged.Subscribe(func(ev signal.SettingsEvent) error {
		fmt.Printf("settings: %v (by %s)\n", ev.Settings, ev.Actor)
		return nil
	})

	if cfg.Script.Enabled && opts.scriptPath != "" {
		dirs, err := a.Directories()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		engine := script.New(hub, dirs, script.Options{CallStackSize: cfg.Script.CallStackSize})
		defer engine.Close()

		src, err := os.ReadFile(opts.scriptPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if err := engine.Run(string(src)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if err := scenario(a, store); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// scenario walks the runtime surface: host messages, settings, storage.
func scenario(a *addon.Addon, store *ledger.MemoryStore) error {
	// Addresses must use the addon's effective namespace; the facade
	// upper-cases whatever the config supplied.
	ns := a.Namespace()

	if err := a.HandleMessage(ns+".READY", nil); err != nil {
		return err
	}

	manifest := a.Manifest()
	if len(manifest.Extensions) > 0 {
		addr := fmt.Sprintf("%s.TRIGGER.%s.demo-user", ns, manifest.Extensions[0].ID)
		if err := a.HandleMessage(addr, nil); err != nil {
			return err
		}
	}

	if err := a.PutSetting("", "greeting", "hello from the host"); err != nil {
		return err
	}
	if err := a.ApplySettings("", "demo-user"); err != nil {
		return err
	}

	if err := a.EmitCustom("started", map[string]any{"pid": os.Getpid()}); err != nil {
		return err
	}

	dirs, err := a.Directories()
	if err != nil {
		return err
	}
	dir, err := dirs.New("state", false)
	if err != nil {
		return err
	}
	if err := dir.Write("last-run", map[string]any{"version": version}); err != nil {
		return err
	}
	fmt.Printf("directory %s: files=%v size=%d ledgers=%d\n",
		dir.LedgerID(), dir.List(), dir.Size(), store.Count())
	return nil
}

// loadManifest reads a manifest file, falling back to a built-in demo
// manifest when no path is given.
func loadManifest(path string) (*addon.Manifest, error) {
	if path != "" {
		return addon.LoadManifest(path)
	}
	return &addon.Manifest{
		Name:        "demo-addon",
		Version:     "0.1.0",
		DisplayName: "Demo Addon",
		Extensions: []addon.ExtensionContribution{
			{ID: "show-status", Title: "Show Status"},
		},
	}, nil
}

// loopback is a Messenger that routes broadcasts back into the facade.
type loopback struct {
	addon *addon.Addon
}

// Broadcast implements addon.Messenger.
func (l *loopback) Broadcast(address string, payload []byte) error {
	// Broadcasts are JSON or the void sentinel either way; echo them to the
	// facade exactly as a shared host channel would.
	if payload != nil && !json.Valid(payload) && string(payload) != "void" {
		return fmt.Errorf("malformed broadcast payload on %s", address)
	}
	return l.addon.HandleMessage(address, payload)
}

type options struct {
	configPath   string
	manifestPath string
	scriptPath   string
	showVersion  bool
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.manifestPath, "manifest", "", "Path to addon manifest JSON")
	flag.StringVar(&opts.scriptPath, "script", "", "Path to a Lua script to run")
	flag.BoolVar(&opts.showVersion, "version", false, "Print version and exit")
	flag.Parse()
	return opts
}
