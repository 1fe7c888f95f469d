package cli

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hopperhttp/hopper/config"
	hopperhttp "github.com/hopperhttp/hopper/http"
)

// addClientFlags registers the flags shared by every command that builds
// a client.
func addClientFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	cmd.Flags().DurationP("timeout", "t", 30*time.Second, "Request timeout")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().String("config", "", "Path to a profile configuration file")
	cmd.Flags().String("profile", "", "Profile name within the configuration file")
	cmd.Flags().Bool("insecure", false, "Skip TLS certificate verification")
	cmd.Flags().Bool("no-redirect", false, "Do not follow redirects")
	cmd.Flags().Bool("raise", false, "Exit with an error when the final status is >= 400")
	cmd.Flags().Int("retry", 0, "Retry failed attempts up to N times")
	cmd.Flags().IntSlice("retry-status", nil, "Only retry these status codes (default: any error status)")
	cmd.Flags().Bool("debug", false, "Log engine activity to stderr")
}

// clientFromFlags builds a client from the profile file (when given) and
// the command-line flags, flags winning.
func clientFromFlags(cmd *cobra.Command) (*hopperhttp.Client, error) {
	var opts []hopperhttp.Option

	if cfgPath, _ := cmd.Flags().GetString("config"); cfgPath != "" {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return nil, err
		}
		profileName, _ := cmd.Flags().GetString("profile")
		profile, err := cfg.Profile(profileName)
		if err != nil {
			return nil, err
		}
		profileOpts, err := profile.Options()
		if err != nil {
			return nil, err
		}
		opts = append(opts, profileOpts...)
	}

	if cmd.Flags().Changed("timeout") {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		opts = append(opts, hopperhttp.WithTimeout(timeout))
	}
	if insecure, _ := cmd.Flags().GetBool("insecure"); insecure {
		opts = append(opts, hopperhttp.WithInsecureSkipVerify())
	}
	if noRedirect, _ := cmd.Flags().GetBool("no-redirect"); noRedirect {
		opts = append(opts, hopperhttp.WithFollowRedirects(false))
	}
	if raise, _ := cmd.Flags().GetBool("raise"); raise {
		opts = append(opts, hopperhttp.WithRaiseHTTPErrors())
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger()
		opts = append(opts, hopperhttp.WithLogger(logger))
	}

	client := hopperhttp.New(opts...)

	retries, _ := cmd.Flags().GetInt("retry")
	statuses, _ := cmd.Flags().GetIntSlice("retry-status")
	registerRetryHooks(client, retries, statuses)

	return client, nil
}

// registerRetryHooks subscribes retry hooks matching the --retry and
// --retry-status flags: transport failures always retry up to the cap,
// error statuses retry on the generic channel or only on the listed
// status-scoped channels.
func registerRetryHooks(client *hopperhttp.Client, maxRetries int, statuses []int) {
	if maxRetries <= 0 {
		return
	}

	decide := func(e *hopperhttp.Event) {
		if e.Decision.Count < maxRetries {
			e.Decision.Retry = true
		}
	}

	client.On(hopperhttp.EventException, decide)
	if len(statuses) == 0 {
		client.On(hopperhttp.EventError, decide)
		return
	}
	for _, status := range statuses {
		client.On(hopperhttp.ErrorEvent(status), decide)
	}
}

// parseHeaderFlags turns "-H 'Name: value'" arguments into a header map.
func parseHeaderFlags(flags []string) map[string]string {
	headers := make(map[string]string, len(flags))
	for _, flag := range flags {
		name, value, ok := strings.Cut(flag, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		headers[name] = strings.TrimSpace(value)
	}
	return headers
}

// normalizeURL prepends a scheme when the argument has none.
func normalizeURL(rawurl string) string {
	if strings.Contains(rawurl, "://") {
		return rawurl
	}
	return "http://" + rawurl
}
