package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lkumawat9176/sentimentscope/internal/analysis"
	"github.com/lkumawat9176/sentimentscope/internal/classifier"
	"github.com/lkumawat9176/sentimentscope/internal/models"
)

type fakeClassifier struct {
	fail bool
}

func (f *fakeClassifier) Classify(_ context.Context, text string) (models.Classification, error) {
	if f.fail {
		return models.Classification{}, fmt.Errorf("%w: model offline", classifier.ErrUnavailable)
	}
	if strings.Contains(strings.ToLower(text), "love") {
		return models.Classification{Label: "POSITIVE", Score: 0.98}, nil
	}
	return models.Classification{Label: "NEGATIVE", Score: 0.91}, nil
}

func (f *fakeClassifier) ClassifyBatch(ctx context.Context, texts []string) ([]models.Classification, error) {
	results := make([]models.Classification, 0, len(texts))
	for _, text := range texts {
		c, err := f.Classify(ctx, text)
		if err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, nil
}

func (f *fakeClassifier) Close() error { return nil }

func newTestServer(fake *fakeClassifier) *Server {
	return NewServer("0", analysis.NewSession(fake))
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echoHeaderContentType, "application/json")
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

const echoHeaderContentType = "Content-Type"

func TestHandleLiveness(t *testing.T) {
	rec := doJSON(t, newTestServer(&fakeClassifier{}), http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleSession_Empty(t *testing.T) {
	rec := doJSON(t, newTestServer(&fakeClassifier{}), http.MethodGet, "/api/session", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.RecordCount)
	assert.False(t, resp.HasReport)
	assert.NotEmpty(t, resp.SessionID)
}

func TestHandleSetVocabulary(t *testing.T) {
	srv := newTestServer(&fakeClassifier{})

	rec := doJSON(t, srv, http.MethodPut, "/api/vocabulary", `{"keywords":" food , Food, staff "}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Vocabulary []string `json:"vocabulary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"food", "staff"}, resp.Vocabulary)
}

func TestHandleLoadSample(t *testing.T) {
	srv := newTestServer(&fakeClassifier{})

	rec := doJSON(t, srv, http.MethodPost, "/api/dataset/sample", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 8, resp["record_count"])
}

func uploadCSV(t *testing.T, srv *Server, csv string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "upload.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/dataset/upload", &buf)
	req.Header.Set(echoHeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func TestHandleUpload(t *testing.T) {
	srv := newTestServer(&fakeClassifier{})

	rec := uploadCSV(t, srv, "text,source\nI love this,Tweet\nawful experience,Review\n")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp["record_count"])
}

func TestHandleUpload_MissingTextColumn(t *testing.T) {
	srv := newTestServer(&fakeClassifier{})

	rec := uploadCSV(t, srv, "body,source\nhello,Tweet\n")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "text")
}

func TestHandleUpload_MissingFilePart(t *testing.T) {
	rec := doJSON(t, newTestServer(&fakeClassifier{}), http.MethodPost, "/api/dataset/upload", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAnalyze_NoRecords(t *testing.T) {
	rec := doJSON(t, newTestServer(&fakeClassifier{}), http.MethodPost, "/api/analyze", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleAnalyze_Success(t *testing.T) {
	srv := newTestServer(&fakeClassifier{})
	require.Equal(t, http.StatusOK, doJSON(t, srv, http.MethodPost, "/api/dataset/sample", "").Code)
	require.Equal(t, http.StatusOK,
		doJSON(t, srv, http.MethodPut, "/api/vocabulary", `{"keywords":"service,food,price,parking,staff,ambience,delivery"}`).Code)

	rec := doJSON(t, srv, http.MethodPost, "/api/analyze", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var report models.AnalysisReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 8, report.Summary.TotalEntries)
	assert.NotEmpty(t, report.RunID)
	assert.NotEmpty(t, report.Breakdown)

	total := 0
	for _, lc := range report.Distribution {
		total += lc.Count
	}
	assert.Equal(t, 8, total)
}

func TestHandleAnalyze_ClassifierUnavailable(t *testing.T) {
	fake := &fakeClassifier{}
	srv := newTestServer(fake)
	require.Equal(t, http.StatusOK, doJSON(t, srv, http.MethodPost, "/api/dataset/sample", "").Code)

	fake.fail = true
	rec := doJSON(t, srv, http.MethodPost, "/api/analyze", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	// Failed run leaves no report behind.
	rec = doJSON(t, srv, http.MethodGet, "/api/report", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleAnalyze_FailedRunKeepsPreviousReport(t *testing.T) {
	fake := &fakeClassifier{}
	srv := newTestServer(fake)
	require.Equal(t, http.StatusOK, doJSON(t, srv, http.MethodPost, "/api/dataset/sample", "").Code)
	require.Equal(t, http.StatusOK, doJSON(t, srv, http.MethodPost, "/api/analyze", "").Code)

	var first models.AnalysisReport
	rec := doJSON(t, srv, http.MethodGet, "/api/report", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

	fake.fail = true
	assert.Equal(t, http.StatusBadGateway, doJSON(t, srv, http.MethodPost, "/api/analyze", "").Code)

	var second models.AnalysisReport
	rec = doJSON(t, srv, http.MethodGet, "/api/report", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Equal(t, first.RunID, second.RunID)
}

func TestHandleReport_NoneYet(t *testing.T) {
	rec := doJSON(t, newTestServer(&fakeClassifier{}), http.MethodGet, "/api/report", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleQuickCheck(t *testing.T) {
	srv := newTestServer(&fakeClassifier{})

	rec := doJSON(t, srv, http.MethodPost, "/api/quick-check", `{"text":"I love this place"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.Classification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "POSITIVE", result.Label)
	assert.InDelta(t, 0.98, result.Score, 1e-9)
}

func TestHandleQuickCheck_EmptyText(t *testing.T) {
	srv := newTestServer(&fakeClassifier{})

	rec := doJSON(t, srv, http.MethodPost, "/api/quick-check", `{"text":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleQuickCheck_ClassifierUnavailable(t *testing.T) {
	srv := newTestServer(&fakeClassifier{fail: true})

	rec := doJSON(t, srv, http.MethodPost, "/api/quick-check", `{"text":"hello"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
