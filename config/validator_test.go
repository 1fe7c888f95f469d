package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		config    *Config
		wantPaths []string
	}{
		{
			name:      "no profiles",
			config:    &Config{},
			wantPaths: []string{"profiles"},
		},
		{
			name: "valid",
			config: &Config{
				DefaultProfile: "main",
				Profiles: map[string]Profile{
					"main": {BaseURL: "https://example.com", Timeout: "5s"},
				},
			},
		},
		{
			name: "unknown default profile",
			config: &Config{
				DefaultProfile: "missing",
				Profiles:       map[string]Profile{"main": {}},
			},
			wantPaths: []string{"defaultProfile"},
		},
		{
			name: "relative base url",
			config: &Config{
				Profiles: map[string]Profile{"main": {BaseURL: "/just/a/path"}},
			},
			wantPaths: []string{"profiles.main.baseUrl"},
		},
		{
			name: "bad timeout",
			config: &Config{
				Profiles: map[string]Profile{"main": {Timeout: "soon"}},
			},
			wantPaths: []string{"profiles.main.timeout"},
		},
		{
			name: "negative timeout",
			config: &Config{
				Profiles: map[string]Profile{"main": {Timeout: "-5s"}},
			},
			wantPaths: []string{"profiles.main.timeout"},
		},
		{
			name: "negative redirects",
			config: &Config{
				Profiles: map[string]Profile{"main": {MaxRedirects: -1}},
			},
			wantPaths: []string{"profiles.main.maxRedirects"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateConfig(tt.config)

			var paths []string
			for _, e := range errs {
				paths = append(paths, e.Path)
				assert.NotEmpty(t, e.Error())
			}
			assert.ElementsMatch(t, tt.wantPaths, paths)
		})
	}
}
