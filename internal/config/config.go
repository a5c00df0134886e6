package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
)

// Environment variables consulted when the matching flag is not set.
const (
	EnvDir             = "OPTMON_DIR"
	EnvListen          = "OPTMON_LISTEN"
	EnvRefreshInterval = "OPTMON_REFRESH_INTERVAL"
	EnvDebounce        = "OPTMON_DEBOUNCE"
	EnvWatch           = "OPTMON_WATCH"
	EnvVerbose         = "OPTMON_VERBOSE"
)

var ErrNoDirectory = errors.New("log directory is required (--dir or " + EnvDir + ")")

type Config struct {
	// Directory holding the log_*.csv files
	Dir string

	Listen string

	// Polling period; 0 disables the ticker
	RefreshInterval time.Duration

	// Quiet period after the last filesystem event before refreshing
	Debounce time.Duration

	Watch   bool
	Verbose bool
}

func Default() Config {
	return Config{
		Listen:          ":8080",
		RefreshInterval: 5 * time.Second,
		Debounce:        250 * time.Millisecond,
		Watch:           true,
	}
}

// Load builds the configuration from, in increasing precedence: defaults,
// a .env file in the working directory, environment variables, and args.
func Load(args []string) (Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return parse(args, os.LookupEnv)
}

func parse(args []string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("optmonitor", flag.ContinueOnError)
	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "directory containing log_*.csv files (or set "+EnvDir+")")
	fs.StringVar(&cfg.Listen, "listen", cfg.Listen, "HTTP listen address (or set "+EnvListen+")")
	fs.DurationVar(&cfg.RefreshInterval, "refresh-interval", cfg.RefreshInterval, "periodic refresh interval, 0 to disable (or set "+EnvRefreshInterval+")")
	fs.DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "wait after file changes before refreshing (or set "+EnvDebounce+")")
	fs.BoolVar(&cfg.Watch, "watch", cfg.Watch, "refresh on filesystem changes (or set "+EnvWatch+")")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable verbose (debug) logging (or set "+EnvVerbose+")")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDir); ok {
		cfg.Dir = v
	}
	if v, ok := lookup(EnvListen); ok {
		cfg.Listen = v
	}
	if v, ok := lookup(EnvRefreshInterval); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRefreshInterval, err)
		}
		cfg.RefreshInterval = d
	}
	if v, ok := lookup(EnvDebounce); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebounce, err)
		}
		cfg.Debounce = d
	}
	if v, ok := lookup(EnvWatch); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWatch, err)
		}
		cfg.Watch = b
	}
	if v, ok := lookup(EnvVerbose); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVerbose, err)
		}
		cfg.Verbose = b
	}
	return nil
}

func (c Config) Validate() error {
	if c.Dir == "" {
		return ErrNoDirectory
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("refresh interval must not be negative: %s", c.RefreshInterval)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative: %s", c.Debounce)
	}
	if !c.Watch && c.RefreshInterval == 0 {
		return errors.New("nothing triggers refreshes: enable --watch or set --refresh-interval")
	}
	return nil
}
