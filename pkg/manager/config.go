// Package manager wires the hosts browser to the terminal: settings, theme,
// key bindings, the Bubble Tea program and the hand-off to the connection client.
package manager

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"sshgo/pkg/hosttree"
)

// Config is the optional sshgo settings file. Every field has a usable default,
// so a missing file is not an error.
//
// Example YAML:
//
// hosts_file: ~/work/ssh_hosts
// indent_width: 0          # 0 = detect (2 or 4 spaces)
// strict_indent: false
// client: zssh
// fallback_client: ssh
// show_comments: true
// theme: catppuccin
// colors:
//   highlight: bold white on blue
//   marker: red
type Config struct {
	// HostsFile is the hosts tree to browse. Defaults to ~/.ssh_hosts.
	HostsFile string `yaml:"hosts_file,omitempty"`

	IndentWidth  int  `yaml:"indent_width,omitempty"`
	StrictIndent bool `yaml:"strict_indent,omitempty"`

	// Client is preferred when it is on $PATH; FallbackClient is used otherwise.
	Client         string `yaml:"client,omitempty"`
	FallbackClient string `yaml:"fallback_client,omitempty"`

	// ShowComments renders a leaf's trailing '#' comment (dimmed) next to its command.
	ShowComments bool `yaml:"show_comments,omitempty"`

	Theme  string            `yaml:"theme,omitempty"`
	Colors map[string]string `yaml:"colors,omitempty"`
}

const (
	defaultConfigDirName  = "sshgo"
	defaultConfigFilename = "config.yaml"
	defaultHostsFile      = "~/.ssh_hosts"
	defaultClient         = "zssh"
	defaultFallbackClient = "ssh"
)

// ErrSettingsInvalid wraps every settings parse or validation failure.
var ErrSettingsInvalid = errors.New("invalid settings")

// DefaultConfig returns the settings used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		Client:         defaultClient,
		FallbackClient: defaultFallbackClient,
		Theme:          "auto",
	}
}

// LoadConfig discovers and loads the settings file.
// If explicitPath is empty, it searches, in order:
// 1. $SSHGO_SETTINGS
// 2. $XDG_CONFIG_HOME/sshgo/config.yaml
// 3. ~/.config/sshgo/config.yaml
//
// An explicit path must exist. When no discovered file exists, the defaults are
// returned with an empty path.
func LoadConfig(explicitPath string) (*Config, string, error) {
	if p := expandPath(strings.TrimSpace(explicitPath)); p != "" {
		cfg, err := loadConfigFile(p)
		if err != nil {
			return nil, p, err
		}
		return cfg, p, nil
	}
	for _, p := range ConfigPathCandidates("") {
		p = expandPath(p)
		if p == "" {
			continue
		}
		cfg, err := loadConfigFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, p, err
		}
		return cfg, p, nil
	}
	return DefaultConfig(), "", nil
}

func loadConfigFile(p string) (*Config, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parse yaml %s: %w", ErrSettingsInvalid, p, err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSettingsInvalid, p, err)
	}
	return cfg, nil
}

// ConfigPathCandidates returns possible settings file paths, in priority order.
// If explicitPath is provided, it is returned first.
func ConfigPathCandidates(explicitPath string) []string {
	var out []string
	if explicitPath != "" {
		out = append(out, explicitPath)
	}
	if env := os.Getenv("SSHGO_SETTINGS"); env != "" {
		out = append(out, env)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		out = append(out, filepath.Join(xdg, defaultConfigDirName, defaultConfigFilename))
	}
	if home, _ := os.UserHomeDir(); home != "" {
		out = append(out, filepath.Join(home, ".config", defaultConfigDirName, defaultConfigFilename))
	}
	return out
}

func (c *Config) normalize() {
	c.Client = strings.TrimSpace(c.Client)
	c.FallbackClient = strings.TrimSpace(c.FallbackClient)
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	if c.Theme == "" {
		c.Theme = "auto"
	}
}

// Validate performs basic sanity checks on the settings.
//
// - indent_width must be >= 0
// - client and fallback_client must not be empty
// - theme must be a known theme name
// - colors keys must be known style slots
func (c *Config) Validate() error {
	if c.IndentWidth < 0 {
		return fmt.Errorf("indent_width: must be >= 0, got %d", c.IndentWidth)
	}
	if c.Client == "" {
		return errors.New("client: must not be empty")
	}
	if c.FallbackClient == "" {
		return errors.New("fallback_client: must not be empty")
	}
	if _, ok := themeByName(c.Theme); !ok {
		return fmt.Errorf("theme: unknown theme %q (expected: auto|dark|light|catppuccin|none)", c.Theme)
	}
	for k := range c.Colors {
		if !isStyleSlot(k) {
			return fmt.Errorf("colors.%s: unknown style slot", k)
		}
	}
	return nil
}

// ParseOptions converts the indentation settings for the hosts parser.
func (c *Config) ParseOptions() hosttree.ParseOptions {
	return hosttree.ParseOptions{IndentWidth: c.IndentWidth, Strict: c.StrictIndent}
}

// ResolveHostsPath picks the hosts file:
// flag > $SSHGO_HOSTS > settings hosts_file > ~/.ssh_hosts.
func ResolveHostsPath(flagPath string, cfg *Config) string {
	if p := strings.TrimSpace(flagPath); p != "" {
		return expandPath(p)
	}
	if p := strings.TrimSpace(os.Getenv("SSHGO_HOSTS")); p != "" {
		return expandPath(p)
	}
	if cfg != nil && strings.TrimSpace(cfg.HostsFile) != "" {
		return expandPath(strings.TrimSpace(cfg.HostsFile))
	}
	return expandPath(defaultHostsFile)
}

// expandPath expands environment variables and a leading "~" in a path.
func expandPath(p string) string {
	if p == "" {
		return ""
	}
	p = os.ExpandEnv(p)
	if strings.HasPrefix(p, "~") {
		home, _ := os.UserHomeDir()
		if home != "" {
			if p == "~" {
				p = home
			} else if strings.HasPrefix(p, "~/") {
				p = filepath.Join(home, p[2:])
			}
			// "~user" is left alone.
		}
	}
	return p
}
