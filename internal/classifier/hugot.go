package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/lkumawat9176/sentimentscope/internal/models"
)

const (
	defaultModelName = "KnightsAnalytics/distilbert-base-uncased-finetuned-sst-2-english"
	defaultModelDir  = "./models"

	// Pipeline runs are chunked so one oversized upload cannot hold a
	// single inference call for the whole dataset.
	classifyBatchSize = 10
)

// HugotClassifier runs a pretrained ONNX text-classification pipeline
// locally through hugot.
type HugotClassifier struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

// NewHugotClassifier downloads the sentiment model if it is not already on
// disk and initializes an ORT session with a text-classification pipeline.
func NewHugotClassifier() (*HugotClassifier, error) {
	modelName := os.Getenv("SENTIMENT_MODEL")
	if modelName == "" {
		modelName = defaultModelName
	}
	modelDir := os.Getenv("SENTIMENT_MODEL_DIR")
	if modelDir == "" {
		modelDir = defaultModelDir
	}

	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("%w: failed to create model directory: %v", ErrUnavailable, err)
	}

	slog.Info("[HugotClassifier] Ensuring model is present",
		slog.String("model", modelName),
		slog.String("dir", modelDir))

	modelPath, err := hugot.DownloadModel(modelName, modelDir, hugot.NewDownloadOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to download model: %v", ErrUnavailable, err)
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to initialize ORT session: %v", ErrUnavailable, err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "sentimentScopePipeline",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("%w: failed to initialize pipeline: %v", ErrUnavailable, err)
	}

	slog.Info("[HugotClassifier] Pipeline ready", slog.String("path", modelPath))

	return &HugotClassifier{session: session, pipeline: pipeline}, nil
}

func (h *HugotClassifier) Classify(ctx context.Context, text string) (models.Classification, error) {
	results, err := h.ClassifyBatch(ctx, []string{text})
	if err != nil {
		return models.Classification{}, err
	}
	return results[0], nil
}

func (h *HugotClassifier) ClassifyBatch(ctx context.Context, texts []string) ([]models.Classification, error) {
	results := make([]models.Classification, 0, len(texts))

	for start := 0; start < len(texts); start += classifyBatchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := start + classifyBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		output, err := h.pipeline.RunPipeline(texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("%w: pipeline run failed: %v", ErrUnavailable, err)
		}

		if len(output.ClassificationOutputs) != end-start {
			return nil, fmt.Errorf("%w: pipeline returned %d outputs for %d inputs",
				ErrUnavailable, len(output.ClassificationOutputs), end-start)
		}

		for _, candidates := range output.ClassificationOutputs {
			results = append(results, bestCandidate(candidates))
		}
	}

	return results, nil
}

// bestCandidate picks the highest-scoring label for one input. The pipeline
// reports one candidate per label; the dashboard only cares about the top
// one, matching the upstream sentiment-analysis pipeline default.
func bestCandidate(candidates []pipelines.ClassificationOutput) models.Classification {
	best := models.Classification{Label: "UNKNOWN", Score: 0.0}
	for _, candidate := range candidates {
		if float64(candidate.Score) >= best.Score {
			best = models.Classification{
				Label: candidate.Label,
				Score: float64(candidate.Score),
			}
		}
	}
	return best
}

func (h *HugotClassifier) Close() error {
	if h.session != nil {
		return h.session.Destroy()
	}
	return nil
}
