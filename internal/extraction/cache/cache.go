// Package cache keeps recent remote extraction results in Redis so repeated
// descriptions skip the remote call.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"requirement-extractor/internal/models"
)

const (
	keyPrefix  = "extract:"
	DefaultTTL = 10 * time.Minute
)

type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResultCache{client: client, ttl: ttl}
}

// Key is the Redis key for a description. Surrounding whitespace is ignored.
func Key(description string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(description)))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached result, or (nil, false, nil) on a miss. An entry
// without an app name is treated as a miss.
func (c *ResultCache) Get(ctx context.Context, description string) (*models.ExtractionResult, bool, error) {
	raw, err := c.client.Get(ctx, Key(description)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var result models.ExtractionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	if strings.TrimSpace(result.AppName) == "" {
		return nil, false, nil
	}
	return &result, true, nil
}

// Set stores result. Only clean remote results belong here.
func (c *ResultCache) Set(ctx context.Context, description string, result *models.ExtractionResult) error {
	if result == nil || result.Metadata.Model != models.ModelRemote || result.Metadata.Error != "" {
		return nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, Key(description), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
