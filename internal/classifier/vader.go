package classifier

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/lkumawat9176/sentimentscope/internal/models"
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// VaderClassifier scores text with the VADER lexicon. It needs no model
// files and serves as the fallback backend when no ONNX runtime is
// available.
type VaderClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderClassifier() *VaderClassifier {
	return &VaderClassifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := strings.Join(strings.Fields(string(output)), " ")

	return RemoveLinks(plainText)
}

func (v *VaderClassifier) Classify(_ context.Context, text string) (models.Classification, error) {
	plainText := ConvertMarkdownToText(text)

	sentiment := v.analyzer.PolarityScores(plainText)
	score := sentiment.Compound

	var label string
	if score >= 0.20 {
		label = "positive"
	} else if score <= -0.20 {
		label = "negative"
	} else {
		label = "neutral"
	}

	// VADER's compound score spans [-1,1]; report its magnitude as the
	// confidence so scores stay in [0,1] like the transformer backend.
	confidence := score
	if confidence < 0 {
		confidence = -confidence
	}

	return models.Classification{Label: label, Score: confidence}, nil
}

func (v *VaderClassifier) ClassifyBatch(ctx context.Context, texts []string) ([]models.Classification, error) {
	results := make([]models.Classification, 0, len(texts))
	for _, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := v.Classify(ctx, text)
		if err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, nil
}

func (v *VaderClassifier) Close() error { return nil }
