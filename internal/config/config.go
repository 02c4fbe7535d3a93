// Package config holds the settings of the demo server.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// MaxStations caps the number of generated sites per request.
const MaxStations = 5000

type Config struct {
	Addr    string  `toml:"addr"`
	Diagram Diagram `toml:"diagram"`
}

// Diagram is the default form of the page: canvas size and how stations are generated.
type Diagram struct {
	Width    int   `toml:"width"`
	Height   int   `toml:"height"`
	Stations int   `toml:"stations"`
	Random   bool  `toml:"random"`
	Seed     int64 `toml:"seed"`
	Delaunay bool  `toml:"delaunay"`
	Hull     bool  `toml:"hull"`
}

func Default() Config {
	return Config{
		Addr: ":8080",
		Diagram: Diagram{
			Width:    1000,
			Height:   1000,
			Stations: 12,
		},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their default.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Errorf("config: unknown key %q in %s", undecoded[0].String(), path)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("config: addr is empty")
	}
	return c.Diagram.Validate()
}

func (d Diagram) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return errors.Errorf("config: diagram size %dx%d must be positive", d.Width, d.Height)
	}
	if d.Stations <= 0 || d.Stations > MaxStations {
		return errors.Errorf("config: stations %d out of range [1, %d]", d.Stations, MaxStations)
	}
	return nil
}
