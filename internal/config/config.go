package config

import (
	"fmt"
	"time"

	coreconfig "github.com/go-core-fx/config"
)

type Config struct {
	APIBaseURL    string        `koanf:"api_base_url"`
	APIToken      string        `koanf:"api_token"`
	Timeout       time.Duration `koanf:"timeout"`
	MapListenAddr string        `koanf:"map_listen_addr"`
	MapTransport  string        `koanf:"map_transport"`
	Latitude      float64       `koanf:"latitude"`
	Longitude     float64       `koanf:"longitude"`
	NearbyRadius  int           `koanf:"nearby_radius"`
	LogFile       string        `koanf:"log_file"`
	Debug         bool          `koanf:"debug"`
}

// defaults leave MapListenAddr empty: the map server only listens when
// map_listen_addr is set, so one-shot commands never hold a port.
func defaults() Config {
	return Config{
		Timeout:      10 * time.Second,
		MapTransport: "native",
		Latitude:     37.4979,
		Longitude:    127.0276,
		NearbyRadius: 3000,
		LogFile:      "./shop-companion.log",
		Debug:        false,
	}
}

func New() (Config, error) {
	cfg := defaults()

	if err := coreconfig.Load(&cfg); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}

	return cfg, nil
}
