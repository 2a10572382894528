package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ajitpratap0/lakesoul-connector/pkg/errors"
)

// SessionOverrides builds the session layer handed to Merge from the host
// session configuration. Only the time zone and the storage settings are
// taken from the session; everything else in it belongs to the host engine.
func SessionOverrides(session Options) (Options, error) {
	out := make(Options)

	zone, err := LocalTimeZone(session)
	if err != nil {
		return nil, err
	}
	out[KeyTimeZone] = zone

	for k, v := range S3Options(session) {
		out[k] = v
	}
	return out, nil
}

// LocalTimeZone returns the session time zone name. An absent value or
// "default" selects the process local zone.
func LocalTimeZone(session Options) (string, error) {
	zone := session.GetOrDefault(SessionLocalTimeZone, DefaultTimeZone)
	if zone == "" || zone == DefaultTimeZone {
		return processZone(), nil
	}
	if _, err := time.LoadLocation(zone); err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeConfig, "invalid session time zone").
			WithDetail("key", SessionLocalTimeZone).
			WithDetail("value", zone)
	}
	return zone, nil
}

// localtimePath is the system zone link consulted when TZ is unset
var localtimePath = "/etc/localtime"

// processZone returns the IANA name of the process local zone. Go reports a
// zone loaded from /etc/localtime as "Local", so the name is recovered from TZ
// or from the link target before falling back to UTC.
func processZone() string {
	tz, tzSet := os.LookupEnv("TZ")
	return systemZone(time.Local.String(), tz, tzSet, localtimePath)
}

func systemZone(localName, tz string, tzSet bool, linkPath string) string {
	if localName != "" && localName != "Local" {
		return localName
	}
	if tzSet {
		if name := zoneName(strings.TrimPrefix(tz, ":")); name != "" {
			return name
		}
		if tz == "" {
			return "UTC"
		}
	}
	if target, err := os.Readlink(linkPath); err == nil {
		if name := zoneName(target); name != "" {
			return name
		}
	}
	return "UTC"
}

// zoneName turns a zone name or a zoneinfo file path into a loadable zone
// name, or "" when it names no known zone.
func zoneName(s string) string {
	if i := strings.LastIndex(s, "zoneinfo/"); i >= 0 {
		s = s[i+len("zoneinfo/"):]
	}
	if s == "" || s == "Local" || filepath.IsAbs(s) {
		return ""
	}
	if _, err := time.LoadLocation(s); err != nil {
		return ""
	}
	return s
}

// S3Options extracts the storage endpoint and credential settings from the
// session. Hadoop-style aliases are normalized to the canonical keys; when both
// spellings are set the canonical one wins.
func S3Options(session Options) Options {
	out := make(Options)
	for alias, canonical := range s3Aliases {
		if v, ok := session[alias]; ok {
			out[canonical] = v
		}
	}
	for _, k := range S3Keys {
		if v, ok := session[k]; ok {
			out[k] = v
		}
	}
	return out
}
