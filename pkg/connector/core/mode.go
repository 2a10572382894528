package core

import (
	"strings"

	"github.com/ajitpratap0/lakesoul-connector/pkg/config"
	"github.com/ajitpratap0/lakesoul-connector/pkg/errors"
)

// RuntimeMode is the execution mode requested by the host session
type RuntimeMode string

const (
	RuntimeModeBatch     RuntimeMode = "BATCH"
	RuntimeModeStreaming RuntimeMode = "STREAMING"
	RuntimeModeAutomatic RuntimeMode = "AUTOMATIC"
)

// DefaultRuntimeMode applies when the session does not set a mode
const DefaultRuntimeMode = RuntimeModeStreaming

// ParseRuntimeMode parses a mode name, ignoring case and surrounding spaces
func ParseRuntimeMode(s string) (RuntimeMode, error) {
	switch mode := RuntimeMode(strings.ToUpper(strings.TrimSpace(s))); mode {
	case RuntimeModeBatch, RuntimeModeStreaming, RuntimeModeAutomatic:
		return mode, nil
	}
	return "", errors.Newf(errors.ErrorTypeConfig, "unknown runtime mode %q", s).
		WithDetail("key", config.SessionRuntimeMode)
}

// RuntimeModeFrom reads the runtime mode from the session configuration
func RuntimeModeFrom(session config.Options) (RuntimeMode, error) {
	v, ok := session.Get(config.SessionRuntimeMode)
	if !ok {
		return DefaultRuntimeMode, nil
	}
	return ParseRuntimeMode(v)
}

// Boundedness says whether a read terminates
type Boundedness string

const (
	Bounded   Boundedness = "BOUNDED"
	Unbounded Boundedness = "UNBOUNDED"
)

// IsBounded reports whether the read terminates
func (b Boundedness) IsBounded() bool {
	return b == Bounded
}

// ResolveMode maps a runtime mode to the boundedness of a read. AUTOMATIC is
// rejected because the reader cannot pick a side on its own.
func ResolveMode(mode RuntimeMode) (Boundedness, error) {
	switch mode {
	case RuntimeModeBatch:
		return Bounded, nil
	case RuntimeModeStreaming:
		return Unbounded, nil
	case RuntimeModeAutomatic:
		return "", errors.New(errors.ErrorTypeExecutionMode,
			"runtime mode AUTOMATIC is not supported, set execution.runtime-mode to BATCH or STREAMING").
			WithDetail("mode", string(mode))
	}
	return "", errors.Newf(errors.ErrorTypeConfig, "unknown runtime mode %q", mode)
}
