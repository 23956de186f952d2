package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidGlobal = errors.New("global must be a boolean or \"sync\"")
	ErrInvalidHint   = errors.New("load hint must be a boolean or a number")
)

type Mode string

const (
	ModeAll    Mode = "all"
	ModeClient Mode = "client"
	ModeServer Mode = "server"
)

// GlobalMode is the registry's `global` flag: false, true (lazy) or "sync".
type GlobalMode string

const (
	GlobalNone GlobalMode = ""
	GlobalLazy GlobalMode = "lazy"
	GlobalSync GlobalMode = "sync"
)

func (g GlobalMode) MarshalJSON() ([]byte, error) {
	switch g {
	case GlobalNone:
		return []byte("false"), nil
	case GlobalLazy:
		return []byte("true"), nil
	case GlobalSync:
		return []byte(`"sync"`), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidGlobal, string(g))
	}
}

func (g *GlobalMode) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "null", "false":
		*g = GlobalNone
	case "true":
		*g = GlobalLazy
	case `"sync"`:
		*g = GlobalSync
	default:
		return fmt.Errorf("%w: %s", ErrInvalidGlobal, data)
	}
	return nil
}

// LoadHint is a bundler prefetch/preload hint. The registry carries either a
// boolean or a numeric priority.
type LoadHint struct {
	Numeric bool
	Enabled bool
	Value   float64
}

func BoolHint(enabled bool) *LoadHint {
	return &LoadHint{Enabled: enabled}
}

func NumberHint(value float64) *LoadHint {
	return &LoadHint{Numeric: true, Value: value}
}

// Directive returns the value to emit after a bundler magic comment key, and
// false when the directive must be omitted.
func (h *LoadHint) Directive() (string, bool) {
	switch {
	case h == nil:
		return "", false
	case h.Numeric:
		return formatNumber(h.Value), true
	case h.Enabled:
		return "true", true
	default:
		return "", false
	}
}

func (h LoadHint) MarshalJSON() ([]byte, error) {
	if h.Numeric {
		return []byte(formatNumber(h.Value)), nil
	}
	return json.Marshal(h.Enabled)
}

func (h *LoadHint) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case bool:
		*h = LoadHint{Enabled: v}
	case float64:
		*h = LoadHint{Numeric: true, Value: v}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidHint, data)
	}
	return nil
}

// formatNumber prints v the way JavaScript's Number#toString does.
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	if abs := math.Abs(v); abs >= 1e21 || abs < 1e-6 {
		mantissa, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
		return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type Component struct {
	PascalName string     `json:"pascalName"`
	KebabName  string     `json:"kebabName,omitempty"`
	Export     string     `json:"export"`
	FilePath   string     `json:"filePath"`
	ShortPath  string     `json:"shortPath,omitempty"`
	ChunkName  string     `json:"chunkName,omitempty"`
	Prefetch   *LoadHint  `json:"prefetch,omitempty" ts_type:"boolean | number"`
	Preload    *LoadHint  `json:"preload,omitempty" ts_type:"boolean | number"`
	Global     GlobalMode `json:"global,omitempty" ts_type:"boolean | 'sync'"`
	Island     bool       `json:"island,omitempty"`
	Mode       Mode       `json:"mode,omitempty" ts_type:"'all' | 'client' | 'server'"`
	Priority   int        `json:"priority,omitempty"`

	src *source
}

// ExportName falls back to the default export when the registry leaves it blank.
func (c Component) ExportName() string {
	if c.Export == "" {
		return "default"
	}
	return c.Export
}

func (c Component) EffectiveMode() Mode {
	if c.Mode == "" {
		return ModeAll
	}
	return c.Mode
}

type Page struct {
	Name string `json:"name,omitempty"`
	File string `json:"file,omitempty"`
	Mode Mode   `json:"mode,omitempty"`
}
