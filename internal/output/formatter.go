package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	hopperhttp "github.com/hopperhttp/hopper/http"
)

// Formatter renders requests and responses for terminal display.
type Formatter struct {
	Verbose bool
	scheme  *ColorScheme
}

// NewFormatter creates a formatter. When noColor is set all output is
// plain text.
func NewFormatter(verbose, noColor bool) *Formatter {
	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	return &Formatter{Verbose: verbose, scheme: scheme}
}

// FormatRequest formats an outgoing request for display.
func (f *Formatter) FormatRequest(req *hopperhttp.Request) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "▶ REQUEST: %s %s\n", f.scheme.Method.Sprint(req.Method), f.scheme.URL.Sprint(req.URL))

	if f.Verbose && len(req.Headers) > 0 {
		buf.WriteString("  Headers:\n")
		for _, key := range sortedKeys(req.Headers) {
			fmt.Fprintf(&buf, "    %s: %s\n", f.scheme.HeaderKey.Sprint(key), req.Headers[key])
		}
	}

	if f.Verbose && len(req.Body) > 0 {
		fmt.Fprintf(&buf, "  Body: %s\n", indentJSON(req.Body))
	}

	return buf.String()
}

// FormatResponse formats a framed response for display.
func (f *Formatter) FormatResponse(resp *hopperhttp.Response) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "◀ RESPONSE: %s\n", f.scheme.Status(resp.StatusCode).Sprintf("%d", resp.StatusCode))

	if f.Verbose && len(resp.Headers) > 0 {
		buf.WriteString("  Headers:\n")
		keys := make([]string, 0, len(resp.Headers))
		for key := range resp.Headers {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(&buf, "    %s: %s\n", f.scheme.HeaderKey.Sprint(key), resp.Headers.Get(key))
		}
	}

	if len(resp.Body) > 0 {
		fmt.Fprintf(&buf, "%s\n", indentJSON(resp.Body))
	}

	return buf.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// indentJSON pretty-prints JSON bodies and passes everything else
// through untouched.
func indentJSON(body []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return string(body)
	}
	return buf.String()
}
