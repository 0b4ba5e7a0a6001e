package conf

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config drives both binaries. Values come from an optional TOML file and
// can be overridden per-field via environment variables, so a bare
// `judgeboard` run against the default backend needs no file at all.
type Config struct {
	Client ClientConfig `toml:"client"`
	Server ServerConfig `toml:"server"`
}

type ClientConfig struct {
	// BaseURL of the judging backend. All requests carry the session
	// cookie; there is no bearer-token path.
	BaseURL string `toml:"base_url"`
}

type ServerConfig struct {
	ListenAddr     string   `toml:"listen_addr"`
	JwtKey         string   `toml:"jwt_key"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

func Default() Config {
	return Config{
		Client: ClientConfig{
			BaseURL: "https://judgingbackend.damrufest.org",
		},
		Server: ServerConfig{
			ListenAddr:     ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

// Load reads the TOML file at path when it exists, then applies env
// overrides. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if v := os.Getenv("JUDGEBOARD_API_URL"); v != "" {
		cfg.Client.BaseURL = v
	}
	if v := os.Getenv("JUDGEBOARD_LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := os.Getenv("JWT_KEY"); v != "" {
		cfg.Server.JwtKey = v
	}

	return cfg, nil
}
