// Package cache provides an optional Valkey-backed cache of classifier
// outputs so repeated texts skip inference.
package cache

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/lkumawat9176/sentimentscope/internal/models"
)

const (
	cacheKeyPrefix = "sentiment:cache:"
	cacheTTLSecs   = 86400
	doRetries      = 3
)

type ClassificationCache struct {
	client valkey.Client
}

// NewClassificationCache connects to the Valkey instance named by
// VALKEY_INIT_ADDRESS and verifies it with a ping.
func NewClassificationCache() (*ClassificationCache, error) {
	opts := valkey.ClientOption{
		InitAddress: []string{
			os.Getenv("VALKEY_INIT_ADDRESS"),
		},
		Password:         os.Getenv("VALKEY_PASSWORD"),
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if os.Getenv("VALKEY_TLS") == "true" {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ClassificationCache] failed to create Valkey client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if res := client.Do(ctx, client.B().Ping().Build()); res.Error() != nil {
		client.Close()
		return nil, fmt.Errorf("[ClassificationCache] failed to ping Valkey: %w", res.Error())
	}

	slog.Info("[ClassificationCache] Successfully connected to valkey")

	return &ClassificationCache{client: client}, nil
}

func (c *ClassificationCache) Close() {
	c.client.Close()
}

// Get returns a cached classification for text, reporting false on miss or
// on any cache failure. Cache failures never fail a run.
func (c *ClassificationCache) Get(ctx context.Context, text string) (models.Classification, bool) {
	res := c.doWithRetry(ctx, c.client.B().Get().Key(keyForText(text)).Build())
	if res.Error() != nil {
		return models.Classification{}, false
	}

	raw, err := res.AsBytes()
	if err != nil {
		return models.Classification{}, false
	}

	var classification models.Classification
	if err := json.Unmarshal(raw, &classification); err != nil {
		slog.Warn("[ClassificationCache] Failed to decode cached entry",
			slog.String("error", err.Error()))
		return models.Classification{}, false
	}

	return classification, true
}

func (c *ClassificationCache) Set(ctx context.Context, text string, classification models.Classification) {
	raw, err := json.Marshal(classification)
	if err != nil {
		slog.Warn("[ClassificationCache] Failed to encode entry",
			slog.String("error", err.Error()))
		return
	}

	res := c.doWithRetry(ctx,
		c.client.B().Set().Key(keyForText(text)).Value(string(raw)).ExSeconds(cacheTTLSecs).Build())
	if res.Error() != nil {
		slog.Warn("[ClassificationCache] Failed to store entry",
			slog.String("error", res.Error().Error()))
	}
}

func (c *ClassificationCache) doWithRetry(ctx context.Context, completed valkey.Completed) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < doRetries; i++ {
		result = c.client.Do(ctx, completed)
		if result.Error() == nil || !isConnectionError(result.Error()) {
			break
		}

		slog.Warn("[ClassificationCache] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))

		time.Sleep(250 * time.Millisecond)
	}

	return result
}

func keyForText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
