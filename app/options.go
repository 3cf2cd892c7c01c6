package app

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	envPort           = "LSGMAP_PORT"
	envDataDir        = "LSGMAP_DATA_DIR"
	envGeoJSON        = "LSGMAP_GEOJSON"
	envLinkTTL        = "LSGMAP_LINK_TTL"
	envResolveTimeout = "LSGMAP_RESOLVE_TIMEOUT"
)

type Options struct {
	DataDir        string        `json:"datadir"`
	Port           uint          `json:"port"`
	GeoJSON        string        `json:"geojson"`
	LinkTTL        time.Duration `json:"linkttl"`
	ResolveTimeout time.Duration `json:"resolvetimeout"`
}

func DefaultOptions() Options {
	return Options{
		DataDir: "data",
		Port:    8080,
		LinkTTL: 7 * 24 * time.Hour,
	}
}

// OptionsFromEnv returns the default options overridden by LSGMAP_* environment variables.
func OptionsFromEnv() (Options, error) {
	return optionsFrom(os.LookupEnv)
}

func optionsFrom(lookup func(string) (string, bool)) (o Options, err error) {
	o = DefaultOptions()
	if v, ok := lookup(envDataDir); ok && v != "" {
		o.DataDir = v
	}
	if v, ok := lookup(envGeoJSON); ok {
		o.GeoJSON = v
	}
	if v, ok := lookup(envPort); ok && v != "" {
		port, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return o, fmt.Errorf("%s: %w", envPort, err)
		}
		o.Port = uint(port)
	}
	if v, ok := lookup(envLinkTTL); ok && v != "" {
		if o.LinkTTL, err = time.ParseDuration(v); err != nil {
			return o, fmt.Errorf("%s: %w", envLinkTTL, err)
		}
	}
	if v, ok := lookup(envResolveTimeout); ok && v != "" {
		if o.ResolveTimeout, err = time.ParseDuration(v); err != nil {
			return o, fmt.Errorf("%s: %w", envResolveTimeout, err)
		}
	}
	return o, nil
}
