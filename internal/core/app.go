package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
)

type App struct {
	Components []Component `json:"components"`
	Pages      []Page      `json:"pages,omitempty"`
}

type BuildOptions struct {
	BuildDir              string
	ComponentIslands      bool
	ServerPlaceholderPath string
}

// ParseRegistry decodes the registry emitted by component discovery. A bare
// JSON array is accepted as a component list without pages.
func ParseRegistry(data []byte) (*App, error) {
	var app App
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("[")) {
		if err := json.Unmarshal(data, &app.Components); err != nil {
			return nil, fmt.Errorf("decode component list: %w", err)
		}
		return &app, nil
	}
	if err := json.Unmarshal(data, &app); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	return &app, nil
}

type RegistryWarning struct {
	Subject string
	Message string
}

var identifierRE = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

func IsIdentifier(name string) bool {
	return identifierRE.MatchString(name)
}

// CheckRegistry reports entries the generators will skip or render oddly.
// Nothing here is fatal.
func CheckRegistry(app *App) []RegistryWarning {
	var warnings []RegistryWarning
	seen := make(map[string]bool)

	for _, c := range app.Components {
		if !IsIdentifier(c.PascalName) {
			warnings = append(warnings, RegistryWarning{
				Subject: c.FilePath,
				Message: fmt.Sprintf("pascal name %q is not a valid identifier", c.PascalName),
			})
		}
		key := string(c.EffectiveMode()) + "/" + c.PascalName
		if seen[key] {
			warnings = append(warnings, RegistryWarning{
				Subject: c.FilePath,
				Message: fmt.Sprintf("duplicate %s component %q", c.EffectiveMode(), c.PascalName),
			})
		}
		seen[key] = true
	}

	for _, p := range app.Pages {
		if p.Mode == ModeServer && (p.Name == "" || p.File == "") {
			warnings = append(warnings, RegistryWarning{
				Subject: p.File,
				Message: "server page without both name and file is not an island entry",
			})
		}
	}

	return warnings
}
