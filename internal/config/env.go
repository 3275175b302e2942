package config

import (
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SPACEDLIST_"

// envSetters maps environment variables to the setting they override.
var envSetters = map[string]func(*Config, string) error{
	EnvPrefix + "LOG_LEVEL": func(c *Config, v string) error {
		c.Log.Level = v
		return nil
	},
	EnvPrefix + "LOG_FORMAT": func(c *Config, v string) error {
		c.Log.Format = v
		return nil
	},
	EnvPrefix + "SCRIPT": func(c *Config, v string) error {
		c.Script.Path = v
		return nil
	},
	EnvPrefix + "WATCH": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		c.Script.Watch = b
		return nil
	},
	EnvPrefix + "CALL_LIMIT": func(c *Config, v string) error {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		c.Script.CallLimit = n
		return nil
	},
}

// ApplyEnv overrides settings from the process environment.
func (c *Config) ApplyEnv() error {
	return c.ApplyLookup(os.LookupEnv)
}

// ApplyLookup overrides settings from lookup and revalidates. Empty values
// count as set.
func (c *Config) ApplyLookup(lookup func(string) (string, bool)) error {
	for name, set := range envSetters {
		val, ok := lookup(name)
		if !ok {
			continue
		}
		if err := set(c, val); err != nil {
			return errors.Mark(errors.Wrapf(err, "%s=%q", name, val), ErrInvalid)
		}
	}
	return c.Validate()
}
