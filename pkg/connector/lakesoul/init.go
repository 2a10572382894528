package lakesoul

import (
	"github.com/ajitpratap0/lakesoul-connector/pkg/config"
	"github.com/ajitpratap0/lakesoul-connector/pkg/connector/core"
	"github.com/ajitpratap0/lakesoul-connector/pkg/connector/registry"
)

func init() {
	_ = registry.Register(Identifier, func(defaults config.Options) core.TableFactory {
		return NewFactory(defaults)
	})
}
