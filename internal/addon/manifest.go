package addon

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
)

// Manifest describes an addon's identity, metadata, and contributions.
type Manifest struct {
	// Identity
	Name        string `json:"name"`        // Unique identifier (e.g., "vault-keeper")
	Version     string `json:"version"`     // Semver (e.g., "1.2.0")
	DisplayName string `json:"displayName"` // Human-readable name
	Description string `json:"description"` // Short description
	Author      string `json:"author"`      // Author name or org

	// Namespace used for ledger naming and signal addressing.
	// Defaults to the runtime namespace when empty.
	Namespace string `json:"namespace"`

	// Contributions
	Extensions []ExtensionContribution `json:"extensions"`

	// Settings schema, keyed by setting name.
	SettingsSchema map[string]SettingProperty `json:"settingsSchema"`
}

// ExtensionContribution declares an extension the addon provides,
// triggerable from the host UI.
type ExtensionContribution struct {
	ID          string `json:"id"`          // Extension ID (e.g., "open-vault")
	Title       string `json:"title"`       // Display title
	Description string `json:"description"` // Long description
}

// SettingProperty describes one settings option.
type SettingProperty struct {
	Type        string   `json:"type"`        // string, number, boolean, array, object
	Default     any      `json:"default"`     // Default value
	Description string   `json:"description"` // Property description
	Enum        []string `json:"enum"`        // Allowed values for enum types
}

// Validation errors.
var (
	ErrMissingName        = errors.New("manifest: name is required")
	ErrInvalidName        = errors.New("manifest: name must be alphanumeric with hyphens")
	ErrMissingVersion     = errors.New("manifest: version is required")
	ErrInvalidVersion     = errors.New("manifest: version must be valid semver")
	ErrMissingExtensionID = errors.New("manifest: extension id is required")
	ErrDuplicateExtension = errors.New("manifest: duplicate extension id")
	ErrInvalidSettingType = errors.New("manifest: invalid setting property type")
)

// namePattern validates addon names.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*[a-z0-9]$|^[a-z]$`)

// semverPattern validates version strings (simplified semver).
var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.-]+)?(\+[a-zA-Z0-9.-]+)?$`)

// validSettingTypes are the allowed settings property types.
var validSettingTypes = map[string]bool{
	"string":  true,
	"number":  true,
	"boolean": true,
	"array":   true,
	"object":  true,
}

// LoadManifest loads and validates a manifest from a JSON file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// applyDefaults sets default values for optional fields.
func (m *Manifest) applyDefaults() {
	if m.Version == "" {
		m.Version = "0.0.0"
	}
	if m.DisplayName == "" {
		m.DisplayName = m.Name
	}
}

// Validate checks that the manifest is valid.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return ErrMissingName
	}
	if !namePattern.MatchString(m.Name) {
		return fmt.Errorf("%w: %s", ErrInvalidName, m.Name)
	}

	if m.Version == "" {
		return ErrMissingVersion
	}
	if !semverPattern.MatchString(m.Version) {
		return fmt.Errorf("%w: %s", ErrInvalidVersion, m.Version)
	}

	seen := make(map[string]bool, len(m.Extensions))
	for _, ext := range m.Extensions {
		if ext.ID == "" {
			return ErrMissingExtensionID
		}
		if seen[ext.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateExtension, ext.ID)
		}
		seen[ext.ID] = true
	}

	for name, prop := range m.SettingsSchema {
		if !validSettingTypes[prop.Type] {
			return fmt.Errorf("%w: %s has type %q", ErrInvalidSettingType, name, prop.Type)
		}
	}

	return nil
}

// ExtensionIDs returns the IDs of all declared extensions.
func (m *Manifest) ExtensionIDs() []string {
	ids := make([]string, 0, len(m.Extensions))
	for _, ext := range m.Extensions {
		ids = append(ids, ext.ID)
	}
	return ids
}

// HasExtension reports whether the manifest declares the given extension.
func (m *Manifest) HasExtension(id string) bool {
	for _, ext := range m.Extensions {
		if ext.ID == id {
			return true
		}
	}
	return false
}
