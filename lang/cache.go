package lang

import (
	"context"
	"encoding/gob"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/sdl/lang/ast"
)

// Cache memoizes parse results by source text, locator and configuration.
// Trees are immutable, so a cached program is shared by every caller that
// parses the same input. A Cache is safe for concurrent use.
type Cache struct {
	entries sync.Map // [16]byte → *cacheEntry
	size    atomic.Int64
}

// cacheEntry holds the outcome of one parse. The parse runs at most once.
type cacheEntry struct {
	once sync.Once
	prog *ast.Program
	err  error
}

// NewCache returns an empty cache.
func NewCache() *Cache { return new(Cache) }

// Parse returns the cached result of cfg.Parse(ctx, src), parsing on the
// first request. Failures are cached as well. Errors from src are returned
// unchanged and never cached.
func (c *Cache) Parse(
	ctx context.Context,
	cfg *ParserConfig,
	src Source,
) (*ast.Program, error) {
	text, err := src.Text()
	if err != nil {
		return nil, err
	}

	key := cacheKey(cfg, src.Locator(), text)

	value, hit := c.entries.LoadOrStore(key, new(cacheEntry))
	if !hit {
		c.size.Add(1)
	}

	entry, _ := value.(*cacheEntry)

	cfg.logger.TraceContext(ctx, "cache lookup",
		slog.String("locator", src.Locator()),
		slog.Bool("cache_hit", hit))

	entry.once.Do(func() {
		// Parse with a private copy; cfg may serve other keys concurrently.
		local := *cfg
		entry.prog, entry.err = local.Parse(ctx, Named(src.Locator(), text))
	})

	return entry.prog, entry.err
}

// Len returns the number of cached entries.
func (c *Cache) Len() int { return int(c.size.Load()) }

// Reset discards every cached entry.
func (c *Cache) Reset() {
	c.entries.Range(func(key, _ any) bool {
		if _, ok := c.entries.LoadAndDelete(key); ok {
			c.size.Add(-1)
		}

		return true
	})
}

// cacheKey hashes the text, locator and every setting that affects the
// resulting tree.
func cacheKey(cfg *ParserConfig, locator, text string) [16]byte {
	h := xxh3.New()

	enc := gob.NewEncoder(h)
	_ = enc.Encode(cfg.tabSize)
	_ = enc.Encode(cfg.maxDepth)
	_ = enc.Encode(operatorKey(cfg.operators))
	_ = enc.Encode(locator)
	_ = enc.Encode(text)

	return h.Sum128().Bytes()
}

// operatorKey renders the table in a stable order.
func operatorKey(t OperatorTable) []string {
	keys := make([]string, 0, len(t))

	for sym, op := range t {
		var sb strings.Builder

		sb.WriteString(sym)
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(op.Precedence))
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(int(op.Associativity)))

		keys = append(keys, sb.String())
	}

	slices.Sort(keys)

	return keys
}
