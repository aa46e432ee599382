// Package sealedcache caches the sealed fields of a document per editor.
//
// Entries of one document live in a single Redis hash keyed by document, one
// hash field per editor, so a write invalidates every editor with one DEL.
// Each document also carries a generation counter bumped on invalidation.
// A reader gets the generation along with its miss and hands it back to
// Put, which drops the write if the document was invalidated in between.
package sealedcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"bordereau/pkg/platform/circuit"
	"bordereau/pkg/requestcontext"
)

const (
	keyPrefix        = "sealed:"
	generationPrefix = "sealedgen:"
	defaultTTL       = 10 * time.Minute

	// noGeneration is returned when Redis was not read. Put ignores it.
	noGeneration int64 = -1
)

var errStale = errors.New("sealed fields invalidated since read")

// RedisCache is a Redis-backed sealed-fields cache.
type RedisCache struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *circuit.Breaker
	logger  *slog.Logger
}

// Option configures a RedisCache.
type Option func(*RedisCache)

// WithTTL bounds how long a document's entries live without writes.
func WithTTL(ttl time.Duration) Option {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithBreaker skips reads and writes while Redis keeps failing. Invalidate
// is always attempted.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *RedisCache) {
		c.breaker = b
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *RedisCache) {
		c.logger = logger
	}
}

// New constructs a cache over client.
func New(client *redis.Client, opts ...Option) *RedisCache {
	c := &RedisCache{client: client, ttl: defaultTTL, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Get returns the cached sealed fields of a document for editor. ok is
// false on a miss. generation must be passed to Put when the fields are
// computed after the miss.
func (c *RedisCache) Get(ctx context.Context, kind, id string, editor requestcontext.Editor) ([]string, int64, bool, error) {
	if !c.allow() {
		return nil, noGeneration, false, nil
	}
	pipe := c.client.TxPipeline()
	entry := pipe.HGet(ctx, documentKey(kind, id), editorKey(editor))
	gen := pipe.Get(ctx, generationKey(kind, id))
	_, err := pipe.Exec(ctx)
	if err != nil && !errors.Is(err, redis.Nil) {
		c.record(ctx, err)
		return nil, noGeneration, false, fmt.Errorf("read sealed fields: %w", err)
	}
	c.record(ctx, nil)

	generation, err := gen.Int64()
	if errors.Is(err, redis.Nil) {
		generation = 0
	} else if err != nil {
		return nil, noGeneration, false, fmt.Errorf("read sealed fields generation: %w", err)
	}
	raw, err := entry.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, generation, false, nil
	}
	if err != nil {
		return nil, noGeneration, false, fmt.Errorf("read sealed fields: %w", err)
	}
	var fields []string
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, generation, false, fmt.Errorf("decode sealed fields: %w", err)
	}
	return fields, generation, true, nil
}

// Put stores fields and refreshes the document's TTL. The write is dropped
// when the document's generation moved past the one returned by Get.
func (c *RedisCache) Put(ctx context.Context, kind, id string, editor requestcontext.Editor, generation int64, fields []string) error {
	if generation == noGeneration {
		return nil
	}
	if fields == nil {
		fields = []string{}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode sealed fields: %w", err)
	}
	if !c.allow() {
		return nil
	}
	key, genKey := documentKey(kind, id), generationKey(kind, id)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if errors.Is(err, redis.Nil) {
			current = 0
		} else if err != nil {
			return err
		}
		if current != generation {
			return errStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, editorKey(editor), raw)
			pipe.Expire(ctx, key, c.ttl)
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, errStale) || errors.Is(err, redis.TxFailedErr) {
		c.record(ctx, nil)
		c.logger.DebugContext(ctx, "stale sealed fields dropped", "kind", kind, "id", id)
		return nil
	}
	c.record(ctx, err)
	if err != nil {
		return fmt.Errorf("write sealed fields: %w", err)
	}
	return nil
}

// Invalidate drops every editor's entry for a document and bumps its
// generation so that reads in flight cannot store what they computed.
func (c *RedisCache) Invalidate(ctx context.Context, kind, id string) error {
	genKey := generationKey(kind, id)
	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, genKey)
	pipe.Expire(ctx, genKey, c.ttl)
	pipe.Del(ctx, documentKey(kind, id))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("invalidate sealed fields: %w", err)
	}
	return nil
}

func (c *RedisCache) allow() bool {
	return c.breaker == nil || c.breaker.Allow()
}

func (c *RedisCache) record(ctx context.Context, err error) {
	if c.breaker == nil {
		return
	}
	if err == nil {
		if _, change := c.breaker.RecordSuccess(); change.Closed {
			c.logger.InfoContext(ctx, "sealed fields cache recovered", "breaker", c.breaker.Name())
		}
		return
	}
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.WarnContext(ctx, "sealed fields cache disabled after repeated failures",
			"breaker", c.breaker.Name(),
			"error", err,
		)
	}
}

func documentKey(kind, id string) string {
	return keyPrefix + kind + ":" + id
}

func generationKey(kind, id string) string {
	return generationPrefix + kind + ":" + id
}

// editorKey depends only on the companies of the editor: two users of the
// same companies see the same sealed fields.
func editorKey(editor requestcontext.Editor) string {
	sirets := slices.Clone(editor.Sirets)
	slices.Sort(sirets)
	return strings.Join(slices.Compact(sirets), ",")
}
