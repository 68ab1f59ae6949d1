package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "RELFETCH"

// Setting keys. Flags bound by Load use the same names with "-" for "_".
const (
	KeyGitHubToken  = "github_token"
	KeyDebug        = "debug"
	KeyInstallDir   = "install_dir"
	KeySelectScript = "select_script"
)

// Settings is the resolved configuration.
type Settings struct {
	GitHubToken  string `mapstructure:"github_token"`
	Debug        bool   `mapstructure:"debug"`
	InstallDir   string `mapstructure:"install_dir"`
	SelectScript string `mapstructure:"select_script"`

	// ConfigFile is the file that was read, empty when none was.
	ConfigFile string `mapstructure:"-"`
	// Warnings are non-fatal problems found while loading.
	Warnings []string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyGitHubToken, "")
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyInstallDir, "")
	v.SetDefault(KeySelectScript, "")
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/relfetch, falling back to
// ~/.config/relfetch.
func DefaultConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "relfetch"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "relfetch"), nil
}

// Load resolves settings. configFile names an explicit config file; when
// empty the default location is searched. flags may be nil; otherwise every
// flag matching a setting key overrides it when set.
func Load(flags *pflag.FlagSet, configFile string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// The conventional variable works too, with lower precedence
	_ = v.BindEnv(KeyGitHubToken, EnvPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN")

	if flags != nil {
		for _, key := range []string{KeyGitHubToken, KeyDebug, KeyInstallDir, KeySelectScript} {
			if flag := flags.Lookup(strings.ReplaceAll(key, "_", "-")); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", flag.Name, err)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		dir, err := DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	s.ConfigFile = v.ConfigFileUsed()

	if err := s.normalize(); err != nil {
		return nil, err
	}

	if s.ConfigFile != "" && v.InConfig(KeyGitHubToken) && exposedToOthers(s.ConfigFile) {
		s.Warnings = append(s.Warnings, fmt.Sprintf(
			"%s contains a GitHub token and is readable by other users; consider chmod 600", s.ConfigFile))
	}

	return &s, nil
}

// normalize expands "~/" in path settings and validates them.
func (s *Settings) normalize() error {
	var err error
	if s.InstallDir, err = expandHome(s.InstallDir); err != nil {
		return &ValidationError{Field: KeyInstallDir, Message: err.Error()}
	}
	if s.SelectScript, err = expandHome(s.SelectScript); err != nil {
		return &ValidationError{Field: KeySelectScript, Message: err.Error()}
	}
	return s.Validate()
}

// Validate checks settings that can be verified without touching the
// network.
func (s *Settings) Validate() error {
	if s.GitHubToken != "" && strings.ContainsAny(s.GitHubToken, " \t\r\n") {
		return &ValidationError{Field: KeyGitHubToken, Message: "token must not contain whitespace"}
	}
	if s.SelectScript != "" && filepath.Ext(s.SelectScript) != ".lua" {
		return &ValidationError{Field: KeySelectScript, Message: fmt.Sprintf("%s is not a .lua file", s.SelectScript)}
	}
	return nil
}

// ValidationError is a setting with an invalid value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "config validation failed for " + e.Field + ": " + e.Message
	}
	return "config validation failed: " + e.Message
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func exposedToOthers(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0o077 != 0
}
