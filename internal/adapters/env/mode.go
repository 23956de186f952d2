package env

import (
	"os"
	"strconv"
)

const (
	DevVar               = "COMPGEN_DEV"
	RegistryVar          = "COMPGEN_REGISTRY"
	BuildDirVar          = "COMPGEN_BUILD_DIR"
	IslandsVar           = "COMPGEN_ISLANDS"
	ServerPlaceholderVar = "COMPGEN_SERVER_PLACEHOLDER"
)

func IsDev() bool {
	return os.Getenv(DevVar) == "1"
}

// Overrides holds the settings present in the environment; nil means unset.
type Overrides struct {
	Registry          *string
	BuildDir          *string
	ComponentIslands  *bool
	ServerPlaceholder *string
	Dev               bool
}

func Read() Overrides {
	o := Overrides{Dev: IsDev()}
	if v, ok := os.LookupEnv(RegistryVar); ok && v != "" {
		o.Registry = &v
	}
	if v, ok := os.LookupEnv(BuildDirVar); ok && v != "" {
		o.BuildDir = &v
	}
	if v, ok := os.LookupEnv(ServerPlaceholderVar); ok && v != "" {
		o.ServerPlaceholder = &v
	}
	if v, ok := os.LookupEnv(IslandsVar); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			o.ComponentIslands = &b
		}
	}
	return o
}
