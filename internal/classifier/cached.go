package classifier

import (
	"context"

	"github.com/lkumawat9176/sentimentscope/internal/models"
)

// ClassificationCache is implemented by the Valkey-backed cache. Lookups and
// stores are best-effort; failures fall through to the wrapped classifier.
type ClassificationCache interface {
	Get(ctx context.Context, text string) (models.Classification, bool)
	Set(ctx context.Context, text string, classification models.Classification)
}

type cachedClassifier struct {
	inner Classifier
	cache ClassificationCache
}

// WithCache wraps a classifier so repeated texts are served from the cache
// instead of re-running inference.
func WithCache(inner Classifier, cache ClassificationCache) Classifier {
	return &cachedClassifier{inner: inner, cache: cache}
}

func (c *cachedClassifier) Classify(ctx context.Context, text string) (models.Classification, error) {
	if hit, ok := c.cache.Get(ctx, text); ok {
		return hit, nil
	}

	result, err := c.inner.Classify(ctx, text)
	if err != nil {
		return models.Classification{}, err
	}

	c.cache.Set(ctx, text, result)
	return result, nil
}

func (c *cachedClassifier) ClassifyBatch(ctx context.Context, texts []string) ([]models.Classification, error) {
	results := make([]models.Classification, len(texts))

	// Only cache misses go to the model, batched together in input order.
	var missTexts []string
	var missIndexes []int
	for i, text := range texts {
		if hit, ok := c.cache.Get(ctx, text); ok {
			results[i] = hit
			continue
		}
		missTexts = append(missTexts, text)
		missIndexes = append(missIndexes, i)
	}

	if len(missTexts) > 0 {
		fresh, err := c.inner.ClassifyBatch(ctx, missTexts)
		if err != nil {
			return nil, err
		}
		for j, result := range fresh {
			results[missIndexes[j]] = result
			c.cache.Set(ctx, missTexts[j], result)
		}
	}

	return results, nil
}

func (c *cachedClassifier) Close() error {
	return c.inner.Close()
}
