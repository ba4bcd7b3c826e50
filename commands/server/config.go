package server

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/iov-one/timelock/errors"
)

// ConfigFile is the name of the application configuration file, stored in
// the config directory of the home.
const ConfigFile = "app.toml"

// Config holds the daemon settings. Flags given to a command override the
// values read from the file.
type Config struct {
	Bind        string `toml:"bind"`
	Debug       bool   `toml:"debug"`
	LogLevel    string `toml:"log_level"`
	MetricsBind string `toml:"metrics_bind"`
}

// DefaultConfig is used when no configuration file exists.
func DefaultConfig() Config {
	return Config{
		Bind:     "tcp://localhost:26658",
		LogLevel: "info",
	}
}

// ConfigPath returns the location of the configuration file in home.
func ConfigPath(home string) string {
	return filepath.Join(home, "config", ConfigFile)
}

// LoadConfig reads the configuration from home. A missing file results in
// the default configuration.
func LoadConfig(home string) (Config, error) {
	conf := DefaultConfig()
	path := ConfigPath(home)
	if !fileExists(path) {
		return conf, nil
	}
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return conf, errors.Wrapf(errors.ErrInput, "decode %s: %s", path, err)
	}
	return conf, nil
}

// WriteConfig stores the configuration in home, creating the config
// directory if needed.
func WriteConfig(home string, conf Config) error {
	path := ConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "config directory")
	}
	fd, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrap(err, "open config")
	}
	defer fd.Close()
	return errors.Wrap(toml.NewEncoder(fd).Encode(conf), "encode config")
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}
