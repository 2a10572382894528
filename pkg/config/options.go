package config

import (
	"sort"
	"strconv"
)

// Options is a flat option name to value mapping. An Options value returned by
// Merge is owned by the caller and is never mutated by this package.
type Options map[string]string

// FromMap copies m into a new Options value
func FromMap(m map[string]string) Options {
	out := make(Options, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Get returns the value stored under key
func (o Options) Get(key string) (string, bool) {
	v, ok := o[key]
	return v, ok
}

// GetOrDefault returns the value stored under key, or def when the key is absent
func (o Options) GetOrDefault(key, def string) string {
	if v, ok := o[key]; ok {
		return v
	}
	return def
}

// GetBool parses the value under key as a boolean. The second result is false
// when the key is absent.
func (o Options) GetBool(key string) (bool, bool, error) {
	v, ok := o[key]
	if !ok {
		return false, false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, true, err
	}
	return b, true, nil
}

// Contains reports whether key is set
func (o Options) Contains(key string) bool {
	_, ok := o[key]
	return ok
}

// Keys returns the option names in sorted order
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy. A nil receiver yields an empty, non-nil map.
func (o Options) Clone() Options {
	return FromMap(o)
}

// ToMap returns the options as a plain map, copied
func (o Options) ToMap() map[string]string {
	out := make(map[string]string, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Redacted returns a copy with credential values masked, for logging
func (o Options) Redacted() map[string]string {
	out := o.ToMap()
	for k := range out {
		if IsSecretKey(k) {
			out[k] = "******"
		}
	}
	return out
}

// Merge layers defaults, session and statement options in increasing precedence.
// Later layers override earlier ones key by key; a key absent from a higher layer
// keeps the lower layer's value. Any layer may be nil. No key validation happens
// here, unknown keys are passed through verbatim.
func Merge(defaults, session, statement Options) Options {
	merged := make(Options, len(defaults)+len(session)+len(statement))
	for _, layer := range []Options{defaults, session, statement} {
		for k, v := range layer {
			merged[k] = v
		}
	}
	return merged
}
