// Package config holds the settings for the spscbench command.
//
// Every setting is a pflag flag. Values are resolved through viper, so each
// flag can also be set from a SPSCBENCH_* environment variable (dashes become
// underscores) or from the file named by --config. Flags given on the command
// line win over the environment, which wins over the file.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/randomizedcoder/spsc-queue/internal/baseline"
	"github.com/randomizedcoder/spsc-queue/internal/cancel"
	"github.com/randomizedcoder/spsc-queue/internal/logging"
	"github.com/randomizedcoder/spsc-queue/internal/tick"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "SPSCBENCH"

// Flag names.
const (
	FlagConfig    = "config"
	FlagQueue     = "queue"
	FlagItems     = "items"
	FlagWarmup    = "warmup"
	FlagSize      = "size"
	FlagCanceler  = "canceler"
	FlagTicker    = "ticker"
	FlagProgress  = "progress-interval"
	FlagTimeout   = "timeout"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the resolved benchmark configuration.
type Config struct {
	// Queue is the queue kind under test, see baseline.Kinds.
	Queue string
	// Items is the number of items pushed through the pipeline.
	Items int
	// Warmup is the number of items pushed and popped before timing starts.
	Warmup int
	// Size is the capacity given to bounded queues.
	Size int
	// Canceler is the stop signal polled by the spin loops, see cancel.Kinds.
	Canceler string
	// Ticker is the progress trigger polled by the consumer, see tick.Kinds.
	Ticker string
	// ProgressInterval is how often the consumer logs progress. Zero disables it.
	ProgressInterval time.Duration
	// Timeout aborts a run that takes longer. Zero means no limit.
	Timeout time.Duration

	LogLevel  string
	LogFormat string
}

// Default returns the configuration used when nothing is set: ten million
// items through a LinkedQueue after a ten thousand item warm-up.
func Default() Config {
	return Config{
		Queue:            baseline.KindLinked,
		Items:            10_000_000,
		Warmup:           10_000,
		Size:             1024,
		Canceler:         cancel.KindAtomic,
		Ticker:           tick.KindBatch,
		ProgressInterval: tick.DefaultInterval,
		Timeout:          5 * time.Minute,
		LogLevel:         "info",
		LogFormat:        logging.FormatText,
	}
}

// RegisterFlags adds the configuration flags to fs with their defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()

	fs.String(FlagConfig, "", "Path to a config file (yaml, toml or json).")
	fs.String(FlagQueue, d.Queue, "Queue under test: "+strings.Join(baseline.Kinds(), ", ")+".")
	fs.Int(FlagItems, d.Items, "Number of items pushed through the queue.")
	fs.Int(FlagWarmup, d.Warmup, "Number of items pushed and popped before timing starts.")
	fs.Int(FlagSize, d.Size, "Capacity of bounded queues.")
	fs.String(FlagCanceler, d.Canceler, "Stop signal polled by spin loops: "+strings.Join(cancel.Kinds(), ", ")+".")
	fs.String(FlagTicker, d.Ticker, "Progress trigger polled by the consumer: "+strings.Join(tick.Kinds(), ", ")+".")
	fs.Duration(FlagProgress, d.ProgressInterval, "How often to log progress; 0 disables progress logs.")
	fs.Duration(FlagTimeout, d.Timeout, "Abort a run after this long; 0 means no limit.")
	fs.String(FlagLogLevel, d.LogLevel, "Log level: debug, info, warn or error.")
	fs.String(FlagLogFormat, d.LogFormat, "Log format: "+strings.Join(logging.Formats(), ", ")+".")
}

// Load resolves the configuration from fs, the environment and the optional
// config file, then validates it.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("binding flags: %w", err)
	}

	if file := v.GetString(FlagConfig); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}

	cfg := Config{
		Queue:            v.GetString(FlagQueue),
		Items:            v.GetInt(FlagItems),
		Warmup:           v.GetInt(FlagWarmup),
		Size:             v.GetInt(FlagSize),
		Canceler:         v.GetString(FlagCanceler),
		Ticker:           v.GetString(FlagTicker),
		ProgressInterval: v.GetDuration(FlagProgress),
		Timeout:          v.GetDuration(FlagTimeout),
		LogLevel:         v.GetString(FlagLogLevel),
		LogFormat:        v.GetString(FlagLogFormat),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case !slices.Contains(baseline.Kinds(), c.Queue):
		return fmt.Errorf("%w: unknown queue %q", ErrInvalid, c.Queue)
	case c.Items < 1:
		return fmt.Errorf("%w: items must be positive, got %d", ErrInvalid, c.Items)
	case c.Warmup < 0:
		return fmt.Errorf("%w: warmup must not be negative, got %d", ErrInvalid, c.Warmup)
	case c.Size < 1:
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalid, c.Size)
	case !slices.Contains(cancel.Kinds(), c.Canceler):
		return fmt.Errorf("%w: unknown canceler %q", ErrInvalid, c.Canceler)
	case !slices.Contains(tick.Kinds(), c.Ticker):
		return fmt.Errorf("%w: unknown ticker %q", ErrInvalid, c.Ticker)
	case c.ProgressInterval < 0:
		return fmt.Errorf("%w: progress interval must not be negative", ErrInvalid)
	case c.Timeout < 0:
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalid)
	case !slices.Contains(logging.Formats(), strings.ToLower(c.LogFormat)):
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.LogFormat)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
