// Package config loads the prop8 configuration from YAML, a .env file and
// PROP8_* environment variables, in that order of precedence.
package config

import (
	"os"
	"time"
	// session_timezone resolves without a system zoneinfo database
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/omupade20/prop8/internal/barstore"
	"github.com/omupade20/prop8/internal/srlevel"
	"github.com/omupade20/prop8/internal/strategy"
	"github.com/omupade20/prop8/internal/strategy/engine_v1"
	"github.com/omupade20/prop8/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. PROP8_STORE_CAPACITY.
const EnvPrefix = "PROP8"

const (
	defaultSnapshotInterval = 5 * time.Minute
	defaultFeedURL          = "ws://localhost:9000/stream"
	defaultReconnectDelay   = 5 * time.Second
	defaultServerAddr       = ":8080"
	defaultSessionTimezone  = "UTC"
)

// Config is the complete runtime configuration.
type Config struct {
	Store    StoreConfig                `yaml:"store" json:"store" envconfig:"store" jsonschema:"title=Store,description=Rolling bar store"`
	Alerts   engine_v1.DispatcherConfig `yaml:"alerts" json:"alerts" envconfig:"alerts" jsonschema:"title=Alerts,description=Alert cooldown and dedup"`
	Strategy StrategyConfig             `yaml:"strategy" json:"strategy" envconfig:"strategy" jsonschema:"title=Strategy,description=Decision pipeline"`
	Feed     FeedConfig                 `yaml:"feed" json:"feed" envconfig:"feed" jsonschema:"title=Feed,description=WebSocket market data feed"`
	Server   ServerConfig               `yaml:"server" json:"server" envconfig:"server" jsonschema:"title=Server,description=HTTP diagnostics"`
	Log      LogConfig                  `yaml:"log" json:"log" envconfig:"log" jsonschema:"title=Log"`
}

type StoreConfig struct {
	Capacity int `yaml:"capacity" json:"capacity" envconfig:"capacity" validate:"gte=1" jsonschema:"description=Closed bars kept per instrument,default=600"`
	// SnapshotPath disables snapshots when empty.
	SnapshotPath     string        `yaml:"snapshot_path" json:"snapshot_path" envconfig:"snapshot_path" jsonschema:"description=Snapshot file; empty disables snapshots"`
	SnapshotInterval time.Duration `yaml:"snapshot_interval" json:"snapshot_interval" envconfig:"snapshot_interval" validate:"gte=0" jsonschema:"description=Periodic snapshot interval; zero saves on shutdown only"`
}

type StrategyConfig struct {
	Kind     string          `yaml:"kind" json:"kind" envconfig:"kind" validate:"oneof=pullback breakout" jsonschema:"description=Strategy to run,enum=pullback,enum=breakout,default=pullback"`
	MinBars  int             `yaml:"min_bars" json:"min_bars" envconfig:"min_bars" validate:"gte=1" jsonschema:"description=Closed bars required before evaluating,default=40"`
	Lookback int             `yaml:"lookback" json:"lookback" envconfig:"lookback" validate:"gte=1" jsonschema:"description=Higher timeframe candles scored for persistence,default=3"`
	SR       srlevel.Params  `yaml:"sr" json:"sr" envconfig:"sr" jsonschema:"description=Support and resistance detection"`
	Params   strategy.Params `yaml:"params" json:"params" envconfig:"params" jsonschema:"description=Detector gates and policy thresholds"`
	// SessionTimezone decides the calendar day that starts a new VWAP session.
	SessionTimezone string `yaml:"session_timezone" json:"session_timezone" envconfig:"session_timezone" validate:"timezone" jsonschema:"description=IANA zone whose midnight starts a new VWAP session,default=UTC"`
}

type FeedConfig struct {
	URL            string        `yaml:"url" json:"url" envconfig:"url" validate:"omitempty,url" jsonschema:"description=WebSocket URL; empty disables the feed"`
	Instruments    []string      `yaml:"instruments" json:"instruments" envconfig:"instruments" jsonschema:"description=Instruments to subscribe"`
	ReconnectDelay time.Duration `yaml:"reconnect_delay" json:"reconnect_delay" envconfig:"reconnect_delay" validate:"gte=0" jsonschema:"description=Delay before reconnecting a dropped feed"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr" envconfig:"addr" jsonschema:"description=Listen address; empty disables the server,default=:8080"`
}

type LogConfig struct {
	Level string `yaml:"level" json:"level" envconfig:"level" validate:"oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=info"`
}

// Default returns the built-in configuration.
func Default() Config {
	engine := strategy.DefaultEngineConfig()

	return Config{
		Store: StoreConfig{
			Capacity:         barstore.DefaultCapacity,
			SnapshotPath:     "",
			SnapshotInterval: defaultSnapshotInterval,
		},
		Alerts: engine_v1.DefaultDispatcherConfig(),
		Strategy: StrategyConfig{
			Kind:     string(strategy.DefaultStrategyKind),
			MinBars:  engine.MinBars,
			Lookback: engine.Lookback,
			SR:       engine.SR,
			Params:   strategy.DefaultParams(),

			SessionTimezone: defaultSessionTimezone,
		},
		Feed: FeedConfig{
			URL:            defaultFeedURL,
			Instruments:    []string{},
			ReconnectDelay: defaultReconnectDelay,
		},
		Server: ServerConfig{Addr: defaultServerAddr},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads path on top of the defaults, applies .env and environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "read config %s", path)
		}

		if err := Parse(data, &cfg); err != nil {
			return Config{}, err
		}
	}

	// a missing .env is normal outside development
	_ = godotenv.Load()

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "apply environment overrides", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Parse decodes YAML into cfg. Keys absent from data keep their value.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "parse config", err)
	}

	return nil
}

// Validate checks every validate tag.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if c.Strategy.MinBars > c.Store.Capacity {
		return errors.Newf(errors.ErrCodeInvalidConfiguration, "strategy.min_bars %d exceeds store.capacity %d", c.Strategy.MinBars, c.Store.Capacity)
	}

	return nil
}

// StrategyKind returns the validated strategy kind.
func (c *Config) StrategyKind() (strategy.Kind, error) {
	return strategy.ParseKind(c.Strategy.Kind)
}

// SessionLocation returns the zone of the VWAP session day.
func (c *Config) SessionLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Strategy.SessionTimezone)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "strategy.session_timezone %q", c.Strategy.SessionTimezone)
	}

	return loc, nil
}

// EngineConfig returns the orchestrator settings.
func (c *Config) EngineConfig() strategy.EngineConfig {
	return strategy.EngineConfig{
		MinBars:  c.Strategy.MinBars,
		Lookback: c.Strategy.Lookback,
		SR:       c.Strategy.SR,
	}
}
