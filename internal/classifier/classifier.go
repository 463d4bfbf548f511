// Package classifier wraps the pretrained sentiment models behind a single
// interface the analysis session consumes.
package classifier

import (
	"context"
	"errors"

	"github.com/lkumawat9176/sentimentscope/internal/models"
)

// ErrUnavailable wraps any failure to load or run the underlying model. A
// run that hits it aborts without publishing partial results.
var ErrUnavailable = errors.New("sentiment classifier unavailable")

type Classifier interface {
	Classify(ctx context.Context, text string) (models.Classification, error)
	ClassifyBatch(ctx context.Context, texts []string) ([]models.Classification, error)
	Close() error
}
