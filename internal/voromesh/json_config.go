package voromesh

import (
	"encoding/json"
	"os"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// Defaults for the diagnostic scenario runner.
const (
	DefaultNumSites = 1000
	DefaultRays     = 10000
	DefaultSamples  = 1000
	DefaultSeed     = 1
)

type BoxCfg struct {
	Min [3]Real `json:"min"`
	Max [3]Real `json:"max"`
}

func (b BoxCfg) Box() Box {
	return NewBox(b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
}

// Config describes one diagnostic scenario: a domain, a site catalog (either
// explicit or randomly generated), and the amount of query work to run
// against the built mesh.
type Config struct {
	Domain   BoxCfg    `json:"domain"`
	Sites    [][3]Real `json:"sites,omitempty"`
	NumSites int       `json:"num_sites,omitempty"` // used when Sites is empty
	Seed     int64     `json:"seed,omitempty"`
	Rays     int       `json:"rays,omitempty"`
	Samples  int       `json:"samples,omitempty"`
	NoDedupe bool      `json:"no_dedupe,omitempty"`
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("cannot read config").WithTag("path", path).Wrap(err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.New("cannot parse config").WithTag("path", path).Wrap(err)
	}
	// Defaults / validation
	if len(cfg.Sites) == 0 && cfg.NumSites <= 0 {
		cfg.NumSites = DefaultNumSites
	}
	if cfg.Seed == 0 {
		cfg.Seed = DefaultSeed
	}
	if cfg.Rays <= 0 {
		cfg.Rays = DefaultRays
	}
	if cfg.Samples <= 0 {
		cfg.Samples = DefaultSamples
	}
	box := cfg.Domain.Box()
	w := box.Widths()
	if w.X <= 0 || w.Y <= 0 || w.Z <= 0 {
		return nil, errors.New("config domain is empty or inverted").WithTag("path", path)
	}
	DebugLog("Loaded config from %s: sites=%d/%d, rays=%d, samples=%d, seed=%d",
		path, len(cfg.Sites), cfg.NumSites, cfg.Rays, cfg.Samples, cfg.Seed)
	return &cfg, nil
}
