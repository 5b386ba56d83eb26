package addon

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/addonkit/internal/ledger"
	"github.com/dshills/addonkit/internal/signal"
)

// ErrSettingsNotFound is returned when no settings blob exists for the
// requested category.
var ErrSettingsNotFound = errors.New("addon: settings not found")

// settingsSlot is the score marking the canonical settings blob entry.
const settingsSlot = 0

// settingsLedgerName maps a settings category to its ledger name.
// An empty category addresses the addon's flat settings.
func (a *Addon) settingsLedgerName(category string) string {
	base := a.ns + "." + strings.ToUpper(a.manifest.Name) + ".SETTINGS"
	if category == "" {
		return base
	}
	return base + "." + strings.ToUpper(category)
}

// settingsBlob resolves the canonical settings blob: the label of the first
// entry whose score is exactly settingsSlot.
func (a *Addon) settingsBlob(category string) (string, ledger.Ledger, error) {
	led, ok := a.store.GetNamed(a.settingsLedgerName(category))
	if !ok {
		return "", nil, fmt.Errorf("settings %q: %w", category, ErrSettingsNotFound)
	}
	for _, e := range led.Entries() {
		if e.Score == settingsSlot {
			return e.Label, led, nil
		}
	}
	return "", led, fmt.Errorf("settings %q: %w", category, ErrSettingsNotFound)
}

// Settings returns the resolved settings object for a category.
// An empty category reads the addon's flat settings.
func (a *Addon) Settings(category string) (map[string]any, error) {
	if a.manifest == nil {
		return nil, ErrUninitialized
	}

	blob, _, err := a.settingsBlob(category)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(blob), &out); err != nil {
		return nil, fmt.Errorf("settings %q: %w", category, err)
	}
	return out, nil
}

// Setting resolves a single value by gjson path inside the category's
// settings blob. The zero Result is returned for missing paths.
func (a *Addon) Setting(category, path string) (gjson.Result, error) {
	if a.manifest == nil {
		return gjson.Result{}, ErrUninitialized
	}

	blob, _, err := a.settingsBlob(category)
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.Get(blob, path), nil
}

// PutSetting writes one key into the category's settings blob, creating the
// ledger and the blob when absent. The updated blob replaces the old
// slot-zero entry (remove then install, never an in-place edit).
func (a *Addon) PutSetting(category, key string, value any) error {
	if a.manifest == nil {
		return ErrUninitialized
	}

	name := a.settingsLedgerName(category)
	led, ok := a.store.GetNamed(name)
	if !ok {
		created, err := a.store.CreateNamed(name)
		if err != nil {
			return fmt.Errorf("settings %q: %w", category, err)
		}
		led = created
	}

	blob := "{}"
	old := ""
	for _, e := range led.Entries() {
		if e.Score == settingsSlot {
			blob, old = e.Label, e.Label
			break
		}
	}

	updated, err := sjson.Set(blob, key, value)
	if err != nil {
		return fmt.Errorf("settings %q: set %s: %w", category, key, err)
	}

	if old != "" {
		if err := led.RemoveEntry(old); err != nil {
			return fmt.Errorf("settings %q: %w", category, err)
		}
	}
	if err := led.SetEntry(updated, settingsSlot); err != nil {
		return fmt.Errorf("settings %q: %w", category, err)
	}
	return nil
}

// ApplySettings reads the category's settings and emits SettingsChanged
// with the optional acting identity.
func (a *Addon) ApplySettings(category, actor string) error {
	settings, err := a.Settings(category)
	if err != nil {
		return err
	}
	a.hub.SettingsChanged.Emit(signal.SettingsEvent{Settings: settings, Actor: actor})
	return nil
}
