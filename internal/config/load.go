package config

import (
	stderrors "errors"
	"os"

	"github.com/spf13/viper"

	"github.com/vango-dev/contact/internal/errors"
)

// Load reads configuration with the following precedence, highest first:
// CONTACT_* environment variables, the config file, built-in defaults.
//
// When path is empty, contact.{yaml,json,toml} is searched for in the
// working directory and its absence is not an error. An explicit path must
// exist.
func Load(path string) (*Config, error) {
	return load(path, ".")
}

func load(path, searchDir string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(searchDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !stderrors.As(err, &notFound) {
			return nil, errors.New("C100").WithKey(path).Wrap(err)
		}
	}

	cfg := New()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.New("C100").WithKey(v.ConfigFileUsed()).Wrap(err)
	}
	cfg.path = v.ConfigFileUsed()
	return cfg, nil
}

// WriteDefaults writes the default configuration to path. The format
// follows the file extension (.yaml, .json or .toml). An existing file is
// only replaced when force is set.
func WriteDefaults(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("C402").WithKey(path)
		}
	}

	v := viper.New()
	setDefaults(v, New())
	if err := v.WriteConfigAs(path); err != nil {
		return errors.New("C100").WithKey(path).Wrap(err)
	}
	return nil
}
