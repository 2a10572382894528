package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/ajitpratap0/lakesoul-connector/pkg/errors"
)

const (
	// GlobalConfigName is the base name of the process defaults file
	GlobalConfigName = "lakesoul-conf"
	// ConfDirEnv points at the directory holding the process defaults file
	ConfDirEnv = "LAKESOUL_CONF_DIR"
)

// LoadGlobal loads the process-wide default options from lakesoul-conf.yaml in
// dir, or in $LAKESOUL_CONF_DIR when dir is empty. A missing file is not an
// error and yields empty defaults. The result is meant to be loaded once at
// start and injected into factories; it is never mutated afterwards.
func LoadGlobal(dir string) (Options, error) {
	if dir == "" {
		dir = os.Getenv(ConfDirEnv)
	}
	if dir == "" {
		return Options{}, nil
	}

	v := viper.New()
	v.SetConfigName(GlobalConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if stderrors.As(err, &notFound) {
			return Options{}, nil
		}
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to read process defaults").
			WithDetail("path", filepath.Join(dir, GlobalConfigName+".yaml"))
	}

	return flatten(v), nil
}

// flatten turns viper's nested view into dotted option names. viper lowercases
// keys; option names are lowercase throughout so nothing is lost.
func flatten(v *viper.Viper) Options {
	out := make(Options)
	for _, key := range v.AllKeys() {
		raw := v.Get(key)
		switch val := raw.(type) {
		case []interface{}:
			s := make([]string, 0, len(val))
			for _, item := range val {
				s = append(s, cast.ToString(item))
			}
			out[key] = strings.Join(s, ",")
		default:
			out[key] = cast.ToString(val)
		}
	}
	return out
}
