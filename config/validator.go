package config

import (
	"fmt"
	"net/url"
	"time"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Path is the YAML path to the invalid field
	Path string

	// Message describes the validation error
	Message string
}

// Error returns the error message.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidateConfig validates the configuration and returns a slice of
// validation errors. An empty slice indicates the configuration is valid.
func ValidateConfig(config *Config) []ValidationError {
	var errors []ValidationError

	if len(config.Profiles) == 0 {
		errors = append(errors, ValidationError{
			Path:    "profiles",
			Message: "at least one profile is required",
		})
	}

	if config.DefaultProfile != "" {
		if _, ok := config.Profiles[config.DefaultProfile]; !ok {
			errors = append(errors, ValidationError{
				Path:    "defaultProfile",
				Message: fmt.Sprintf("profile %q is not defined", config.DefaultProfile),
			})
		}
	}

	for name, profile := range config.Profiles {
		if profile.BaseURL != "" {
			u, err := url.Parse(profile.BaseURL)
			if err != nil || u.Scheme == "" || u.Host == "" {
				errors = append(errors, ValidationError{
					Path:    fmt.Sprintf("profiles.%s.baseUrl", name),
					Message: "must be an absolute URL",
				})
			}
		}

		if profile.Timeout != "" {
			if d, err := time.ParseDuration(profile.Timeout); err != nil {
				errors = append(errors, ValidationError{
					Path:    fmt.Sprintf("profiles.%s.timeout", name),
					Message: "must be a valid duration (e.g. \"10s\")",
				})
			} else if d < 0 {
				errors = append(errors, ValidationError{
					Path:    fmt.Sprintf("profiles.%s.timeout", name),
					Message: "must not be negative",
				})
			}
		}

		if profile.MaxRedirects < 0 {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("profiles.%s.maxRedirects", name),
				Message: "must not be negative",
			})
		}
	}

	return errors
}
