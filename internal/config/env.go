package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// EnvPrefix is prepended to every environment override key.
const EnvPrefix = "MONEYSIM_"

// ApplyEnv overrides fields from MONEYSIM_* environment variables. Unset or
// empty variables leave the field alone; malformed ones are reported.
func (c *Config) ApplyEnv() error {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	collect(envInt("FORAGERS", &c.Foragers))
	collect(envInt("WIDTH", &c.Width))
	collect(envInt("HEIGHT", &c.Height))
	collect(envFloat("CONSUME", &c.Consume))
	collect(envFloat("GROWTH", &c.Growth))
	collect(envFloat("GROWTH_VARIANCE", &c.GrowthVariance))
	collect(envInt64("SEED", &c.Seed))
	collect(envInt("TICKS", &c.Ticks))
	collect(envInt("REPORT_EVERY", &c.ReportEvery))
	collect(envDuration("INTERVAL", &c.Interval))
	envString("LOG_LEVEL", &c.LogLevel)
	envString("LOG_FORMAT", &c.LogFormat)

	return errors.Join(errs...)
}

func lookup(key string) (string, bool) {
	v := os.Getenv(EnvPrefix + key)
	return v, v != ""
}

func envString(key string, dst *string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func envInt(key string, dst *int) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
	}
	*dst = n
	return nil
}

func envInt64(key string, dst *int64) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
	}
	*dst = n
	return nil
}

func envFloat(key string, dst *float64) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
	}
	*dst = f
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
	}
	*dst = d
	return nil
}
