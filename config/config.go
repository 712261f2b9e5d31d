package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/aarondwi/fairqueue/logging"
)

// DefaultSizeLimit is the total number of items a queue accepts before rejecting submissions.
const DefaultSizeLimit = 10000

// Environment variables read by FromEnv.
const (
	EnvSizeLimit    = "FAIRQUEUE_SIZE_LIMIT"
	EnvLogVerbosity = "FAIRQUEUE_LOG_VERBOSITY"
	EnvDevLogging   = "FAIRQUEUE_DEV_LOGGING"
)

type Config struct {
	SizeLimit    int
	LogVerbosity int
	Development  bool
}

func Default() Config {
	return Config{
		SizeLimit:    DefaultSizeLimit,
		LogVerbosity: logging.DEFAULT,
	}
}

// FromEnv returns base with every variable present in the environment applied on top.
func FromEnv(base Config, lookup func(string) (string, bool)) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	cfg := base

	if v, ok := lookup(EnvSizeLimit); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, errors.Wrapf(err, "parsing %s", EnvSizeLimit)
		}
		cfg.SizeLimit = n
	}
	if v, ok := lookup(EnvLogVerbosity); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, errors.Wrapf(err, "parsing %s", EnvLogVerbosity)
		}
		cfg.LogVerbosity = n
	}
	if v, ok := lookup(EnvDevLogging); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, errors.Wrapf(err, "parsing %s", EnvDevLogging)
		}
		cfg.Development = b
	}
	return cfg, nil
}

// BindFlags registers flags writing into c. Call it after FromEnv so flag defaults show the env values.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.IntVar(&c.SizeLimit, "size-limit", c.SizeLimit, "maximum number of queued items; submissions past it are rejected")
	fs.IntVar(&c.LogVerbosity, "v", c.LogVerbosity, "number for the log level verbosity")
	fs.BoolVar(&c.Development, "dev-logging", c.Development, "use human readable development logging")
}

func (c Config) Validate() error {
	if c.SizeLimit <= 0 {
		return errors.Errorf("size limit must be positive, got %d", c.SizeLimit)
	}
	if c.LogVerbosity < 0 {
		return errors.Errorf("log verbosity must not be negative, got %d", c.LogVerbosity)
	}
	return nil
}
