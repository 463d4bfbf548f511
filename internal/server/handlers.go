package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lkumawat9176/sentimentscope/internal/analysis"
	"github.com/lkumawat9176/sentimentscope/internal/classifier"
	"github.com/lkumawat9176/sentimentscope/internal/dataset"
)

type errorResponse struct {
	Error string `json:"error"`
}

type sessionResponse struct {
	SessionID   string   `json:"session_id"`
	Vocabulary  []string `json:"vocabulary"`
	RecordCount int      `json:"record_count"`
	HasReport   bool     `json:"has_report"`
}

type vocabularyRequest struct {
	Keywords string `json:"keywords"`
}

type quickCheckRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleLiveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadiness(c echo.Context) error {
	// The classifier is constructed before the server starts; once we
	// serve traffic the session is fully wired.
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleSession(c echo.Context) error {
	return c.JSON(http.StatusOK, sessionResponse{
		SessionID:   s.session.ID().String(),
		Vocabulary:  s.session.Vocabulary(),
		RecordCount: s.session.RecordCount(),
		HasReport:   s.session.LastReport() != nil,
	})
}

func (s *Server) handleSetVocabulary(c echo.Context) error {
	var req vocabularyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	vocab := s.session.SetVocabulary(req.Keywords)
	return c.JSON(http.StatusOK, map[string]any{"vocabulary": vocab})
}

func (s *Server) handleLoadSample(c echo.Context) error {
	records := dataset.Sample()
	if err := s.session.LoadRecords(records); err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]int{"record_count": len(records)})
}

func (s *Server) handleUpload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "missing 'file' upload"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "failed to open upload"})
	}
	defer file.Close()

	records, err := dataset.ReadCSV(file)
	if err != nil {
		if errors.Is(err, dataset.ErrMissingTextColumn) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "failed to read CSV: " + err.Error()})
	}

	if err := s.session.LoadRecords(records); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]int{"record_count": len(records)})
}

func (s *Server) handleAnalyze(c echo.Context) error {
	report, err := s.session.RunAnalysis(c.Request().Context())
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrNoRecords):
			return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "no records loaded; load the sample or upload a CSV first"})
		case errors.Is(err, classifier.ErrUnavailable):
			return c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
		default:
			slog.Error("[Server] Analysis run failed",
				slog.String("error", err.Error()))
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "analysis failed"})
		}
	}

	return c.JSON(http.StatusOK, report)
}

func (s *Server) handleReport(c echo.Context) error {
	report := s.session.LastReport()
	if report == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "no completed analysis run"})
	}

	return c.JSON(http.StatusOK, report)
}

func (s *Server) handleQuickCheck(c echo.Context) error {
	var req quickCheckRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	result, err := s.session.QuickCheck(c.Request().Context(), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrEmptyInput):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "enter some text to analyze"})
		case errors.Is(err, classifier.ErrUnavailable):
			return c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "quick check failed"})
		}
	}

	return c.JSON(http.StatusOK, result)
}
