package langdef

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/CausticLang/CausticLexer/source"
)

// Cache keeps recently compiled grammars keyed by description content and regexp engine.
// Failed compilations are not cached. Safe for concurrent use.
type Cache struct {
	results *lru.Cache[string, *Result]
	opts    []Option
	engine  string
}

// NewCache creates cache holding up to size results; opts are used for every compilation.
func NewCache(size int, opts ...Option) (*Cache, error) {
	results, e := lru.New[string, *Result](size)
	if e != nil {
		return nil, e
	}
	return &Cache{results: results, opts: opts, engine: newConfig(opts).engine.Name()}, nil
}

// Compile returns cached result for src content or compiles it.
func (c *Cache) Compile(src *source.Source) (*Result, error) {
	sum := sha256.Sum256(src.Content())
	key := c.engine + ":" + hex.EncodeToString(sum[:])
	if res, found := c.results.Get(key); found {
		return res, nil
	}

	res, e := Compile(src, c.opts...)
	if e != nil {
		return nil, e
	}
	c.results.Add(key, res)
	return res, nil
}

func (c *Cache) Len() int {
	return c.results.Len()
}

func (c *Cache) Purge() {
	c.results.Purge()
}
