/*
Package config loads server configuration from an optional TOML file.

PURPOSE:
  Keeps deployment knobs (port, database path, CORS origins) out of the
  code. All fields have working defaults so the server runs with no config
  file at all; command-line flags in cmd/server override the file.

EXAMPLE (booking.toml):
  [server]
  port = 8080

  [storage]
  path = "booking.db"

  [cors]
  allowed_origins = ["http://localhost:5173"]
*/
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server  Server  `toml:"server"`
	Storage Storage `toml:"storage"`
	CORS    CORS    `toml:"cors"`
}

type Server struct {
	Port int `toml:"port"`
}

type Storage struct {
	// Path is the SQLite database path. ":memory:" for ephemeral runs.
	Path string `toml:"path"`
}

type CORS struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Default returns the configuration used when no file is provided.
func Default() Config {
	return Config{
		Server:  Server{Port: 8080},
		Storage: Storage{Path: "booking.db"},
		CORS: CORS{
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		},
	}
}

// Load reads a TOML file over the defaults. Missing fields keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %q: %w", path, err)
	}
	return cfg, nil
}
