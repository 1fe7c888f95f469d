package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	hopperhttp "github.com/hopperhttp/hopper/http"
)

// Config represents the top-level configuration file structure.
type Config struct {
	// DefaultProfile names the profile used when none is requested
	DefaultProfile string `yaml:"defaultProfile,omitempty"`

	// Profiles defines named client profiles
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile represents one client configuration.
type Profile struct {
	// BaseURL is prepended to relative request URLs
	BaseURL string `yaml:"baseUrl,omitempty"`

	// Timeout is a Go duration string bounding each exchange (e.g. "10s")
	Timeout string `yaml:"timeout,omitempty"`

	// FollowRedirects toggles redirect following; nil keeps the client default
	FollowRedirects *bool `yaml:"followRedirects,omitempty"`

	// MaxRedirects caps followed redirect hops
	MaxRedirects int `yaml:"maxRedirects,omitempty"`

	// InsecureSkipVerify disables TLS certificate verification
	InsecureSkipVerify bool `yaml:"insecureSkipVerify,omitempty"`

	// RaiseHTTPErrors makes the synchronous path fail on error statuses
	RaiseHTTPErrors bool `yaml:"raiseHttpErrors,omitempty"`

	// Headers are default headers merged into every request
	Headers map[string]string `yaml:"headers,omitempty"`
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Profile returns the named profile, or the default profile when name is
// empty.
func (c *Config) Profile(name string) (*Profile, error) {
	if name == "" {
		name = c.DefaultProfile
	}
	if name == "" {
		return nil, fmt.Errorf("no profile requested and no defaultProfile set")
	}
	profile, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile %q not found", name)
	}
	return &profile, nil
}

// Options converts the profile into client options.
func (p *Profile) Options() ([]hopperhttp.Option, error) {
	var opts []hopperhttp.Option

	if p.BaseURL != "" {
		opts = append(opts, hopperhttp.WithBaseURL(p.BaseURL))
	}
	if p.Timeout != "" {
		d, err := time.ParseDuration(p.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", p.Timeout, err)
		}
		opts = append(opts, hopperhttp.WithTimeout(d))
	}
	if p.FollowRedirects != nil {
		opts = append(opts, hopperhttp.WithFollowRedirects(*p.FollowRedirects))
	}
	if p.MaxRedirects > 0 {
		opts = append(opts, hopperhttp.WithMaxRedirects(p.MaxRedirects))
	}
	if p.InsecureSkipVerify {
		opts = append(opts, hopperhttp.WithInsecureSkipVerify())
	}
	if p.RaiseHTTPErrors {
		opts = append(opts, hopperhttp.WithRaiseHTTPErrors())
	}
	for key, value := range p.Headers {
		opts = append(opts, hopperhttp.WithHeader(key, value))
	}

	return opts, nil
}
