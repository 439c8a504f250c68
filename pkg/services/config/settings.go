package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "GPUCOST"

	DefaultSettingsFile = ".gpucost.yaml"
	DefaultProfilesFile = ".gpucostcfg"
)

// Settings are the process-wide options shared by the CLI and the web server.
type Settings struct {
	Output      string         `mapstructure:"output"`
	LogLevel    string         `mapstructure:"log_level"`
	CatalogFile string         `mapstructure:"catalog_file"`
	Server      ServerSettings `mapstructure:"server"`
}

type ServerSettings struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr joins host and port for http.Server.
func (s ServerSettings) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Level parses LogLevel, using fallback when none is configured.
func (s Settings) Level(fallback zerolog.Level) (zerolog.Level, error) {
	if s.LogLevel == "" {
		return fallback, nil
	}
	level, err := zerolog.ParseLevel(s.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s.LogLevel, err)
	}
	return level, nil
}

// HomePath resolves a file name against the user's home directory.
// It falls back to the bare name when the home directory is unknown.
func HomePath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, name)
}

// LoadSettings reads settings from path and GPUCOST_* environment variables.
// A missing file is an error only when required is set.
func LoadSettings(path string, required bool) (*Settings, error) {
	v := viper.New()
	v.SetDefault("output", "table")
	v.SetDefault("log_level", "")
	v.SetDefault("catalog_file", "")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if required || !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
			}
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	settings.Output = strings.ToLower(strings.TrimSpace(settings.Output))
	settings.LogLevel = strings.ToLower(strings.TrimSpace(settings.LogLevel))
	return &settings, nil
}
