package lakesoul

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/xxh3"

	"github.com/ajitpratap0/lakesoul-connector/pkg/catalog"
	"github.com/ajitpratap0/lakesoul-connector/pkg/config"
	"github.com/ajitpratap0/lakesoul-connector/pkg/connector/core"
	"github.com/ajitpratap0/lakesoul-connector/pkg/errors"
	"github.com/ajitpratap0/lakesoul-connector/pkg/json"
)

// DefaultCacheSize bounds a cache created with a non-positive size
const DefaultCacheSize = 1024

// cacheKey is everything a descriptor depends on. Two resolutions with equal
// keys produce equal descriptors.
type cacheKey struct {
	Direction   string                   `json:"direction"`
	Identifier  catalog.ObjectIdentifier `json:"identifier"`
	Options     config.Options           `json:"options"`
	Table       *catalog.ResolvedTable   `json:"table"`
	Boundedness core.Boundedness         `json:"boundedness,omitempty"`
}

func (k cacheKey) fingerprint() (xxh3.Uint128, error) {
	buf, err := json.MarshalToBuffer(k)
	if err != nil {
		return xxh3.Uint128{}, errors.Wrap(err, errors.ErrorTypeInternal, "failed to encode descriptor cache key")
	}
	defer json.PutBuffer(buf)
	return xxh3.Hash128(buf.Bytes()), nil
}

// DescriptorCache memoizes resolved descriptors in a bounded LRU. The factory
// stores a private copy and hands out copies, so cached values are never seen
// by callers. Safe for concurrent use.
type DescriptorCache struct {
	maxSize int
	entries *lru.Cache[xxh3.Uint128, interface{}]
}

// NewDescriptorCache creates a cache holding at most maxSize descriptors
func NewDescriptorCache(maxSize int) *DescriptorCache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	// lru.New only fails for a non-positive size
	entries, _ := lru.New[xxh3.Uint128, interface{}](maxSize)
	return &DescriptorCache{maxSize: maxSize, entries: entries}
}

func (c *DescriptorCache) get(key xxh3.Uint128) (interface{}, bool) {
	return c.entries.Get(key)
}

func (c *DescriptorCache) put(key xxh3.Uint128, v interface{}) {
	c.entries.Add(key, v)
}

// Len returns the number of cached descriptors
func (c *DescriptorCache) Len() int {
	return c.entries.Len()
}

// Purge drops every cached descriptor
func (c *DescriptorCache) Purge() {
	c.entries.Purge()
}
