package http

import (
	"fmt"
	nethttp "net/http"
	"strings"
)

// frameResponse splits a raw exchange blob into a structured Response.
// The blob holds one or more header sections (interim 100-continue
// responses or redirect hops) followed by the final body; only the last
// section's headers are authoritative.
//
// headerLen must be consistent with the blob. An inconsistent value is a
// contract violation by the Transport and panics.
func frameResponse(raw []byte, headerLen, status int) *Response {
	if headerLen < 0 || headerLen > len(raw) {
		panic(fmt.Sprintf("http: transport reported header length %d for a %d-byte exchange", headerLen, len(raw)))
	}
	return &Response{
		StatusCode: status,
		Headers:    parseHeaderLines(lastHeaderSection(raw[:headerLen])),
		Body:       raw[headerLen:],
	}
}

// lastHeaderSection returns the lines of the final blank-line-delimited
// section. Both CRLF and bare LF terminators are tolerated.
func lastHeaderSection(head []byte) []string {
	var section, current []string
	for _, line := range strings.Split(string(head), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			if len(current) > 0 {
				section = current
			}
			current = nil
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		section = current
	}
	return section
}

// parseHeaderLines builds a header map from raw lines. Lines without a
// colon (status-line remnants) are dropped; later duplicates overwrite
// earlier ones.
func parseHeaderLines(lines []string) nethttp.Header {
	headers := make(nethttp.Header, len(lines))
	for _, line := range lines {
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		headers.Set(name, strings.TrimSpace(value))
	}
	return headers
}
