package porthu

import (
	"encoding/base64"
	"encoding/json"
)

// Config holds the user-configurable feature flags encoded into install URLs.
type Config struct {
	Sources Sources `json:"sources"`
}

// Sources toggles the listing sources a user wants enabled.
type Sources struct {
	Mafab  bool `json:"mafab"`
	Porthu bool `json:"porthu"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{Sources: Sources{Mafab: true, Porthu: false}}
}

// EncodeConfig serializes a config into a URL-safe token.
func EncodeConfig(cfg Config) string {
	data, _ := json.Marshal(cfg)
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeConfig parses a token produced by EncodeConfig. An empty or
// malformed token yields the default configuration.
func DecodeConfig(token string) Config {
	if token == "" {
		return DefaultConfig()
	}
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		// Tolerate padded variants of the same encoding.
		data, err = base64.URLEncoding.DecodeString(token)
		if err != nil {
			return DefaultConfig()
		}
	}
	// Missing fields keep their defaults; only present flags override.
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig()
	}
	return cfg
}
