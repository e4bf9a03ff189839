// Package version reports the API version and build environment.
package version

import (
	"runtime"
	"time"
)

// Summary is the public version payload.
type Summary struct {
	Version string `json:"version"`
}

// Details is the authenticated version payload.
type Details struct {
	Version        string `json:"version"`
	RuntimeVersion string `json:"runtime_version"`
	Environment    string `json:"environment"`
	Timestamp      string `json:"timestamp"`
}

// Reporter builds version payloads.
type Reporter struct {
	version     string
	environment string
	now         func() time.Time
}

// NewReporter creates a Reporter for the given API version and APP_ENV value.
func NewReporter(version, environment string) *Reporter {
	return &Reporter{
		version:     version,
		environment: environment,
		now:         time.Now,
	}
}

// Summary returns the public payload.
func (r *Reporter) Summary() Summary {
	return Summary{Version: r.version}
}

// Details returns the authenticated payload stamped with the current UTC time.
func (r *Reporter) Details() Details {
	return Details{
		Version:        r.version,
		RuntimeVersion: runtime.Version(),
		Environment:    r.environment,
		Timestamp:      r.now().UTC().Format(time.RFC3339),
	}
}
