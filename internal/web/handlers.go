package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/huangsam/ytdash/core"
	"github.com/huangsam/ytdash/internal/chart"
	"github.com/huangsam/ytdash/internal/contract"
	"github.com/huangsam/ytdash/schema"
	"go.uber.org/zap"
)

// requestConfig copies the server config and applies the optional ?limit= parameter.
func (s *Server) requestConfig(r *http.Request) (*contract.Config, error) {
	cfg := s.cfg.Clone()
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 || limit > contract.MaxResultLimit {
			return nil, errors.New("limit must be a number between 0 and " + strconv.Itoa(contract.MaxResultLimit))
		}
		cfg.ResultLimit = limit
	}
	return cfg, nil
}

// statusFor maps an analysis error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrVideoNotFound), errors.Is(err, chart.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, core.ErrNoVideos):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) logFailure(r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeAPIError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logFailure(r, status, err)
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writePageError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logFailure(r, status, err)
	http.Error(w, err.Error(), status)
}

// renderPage executes a page fully before writing so template errors become a 500.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := s.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		s.writePageError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/aggregate", http.StatusFound)
}

func (s *Server) handleAggregatePage(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.requestConfig(r)
	if err != nil {
		s.writePageError(w, r, http.StatusBadRequest, err)
		return
	}
	result, err := core.GetAggregateResults(core.WithDataset(r.Context(), s.memo), cfg, nil)
	if err != nil {
		s.writePageError(w, r, statusFor(err), err)
		return
	}
	s.renderPage(w, r, "aggregate.html", newAggregatePage(cfg, result))
}

func (s *Server) handleVideosPage(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.requestConfig(r)
	if err != nil {
		s.writePageError(w, r, http.StatusBadRequest, err)
		return
	}
	videos, err := core.GetVideoList(core.WithDataset(r.Context(), s.memo), cfg)
	if err != nil {
		s.writePageError(w, r, statusFor(err), err)
		return
	}
	s.renderPage(w, r, "videos.html", newVideosPage(cfg, videos))
}

func (s *Server) handleVideoPage(w http.ResponseWriter, r *http.Request) {
	cfg := s.cfg.CloneWithVideo(mux.Vars(r)["id"])
	analysis, err := core.GetVideoResults(core.WithDataset(r.Context(), s.memo), cfg)
	if err != nil {
		s.writePageError(w, r, statusFor(err), err)
		return
	}
	s.renderPage(w, r, "video.html", newVideoPage(cfg, analysis))
}

func (s *Server) handleAudienceChart(w http.ResponseWriter, r *http.Request) {
	s.renderChart(w, r, func(out io.Writer, a schema.VideoAnalysis, format schema.ChartFormat) error {
		return chart.RenderAudience(out, a.Audience, format)
	})
}

func (s *Server) handleViewsChart(w http.ResponseWriter, r *http.Request) {
	s.renderChart(w, r, func(out io.Writer, a schema.VideoAnalysis, format schema.ChartFormat) error {
		return chart.RenderViews(out, a.Comparison, format)
	})
}

// renderChart renders one chart of the video in the path, in the format of the path extension.
func (s *Server) renderChart(w http.ResponseWriter, r *http.Request, render func(io.Writer, schema.VideoAnalysis, schema.ChartFormat) error) {
	vars := mux.Vars(r)
	format := schema.ChartFormat(vars["format"])
	analysis, err := core.GetVideoResults(core.WithDataset(r.Context(), s.memo), s.cfg.CloneWithVideo(vars["id"]))
	if err != nil {
		s.writePageError(w, r, statusFor(err), err)
		return
	}
	var buf bytes.Buffer
	if err := render(&buf, analysis, format); err != nil {
		s.writePageError(w, r, statusFor(err), err)
		return
	}
	w.Header().Set("Content-Type", chart.ContentType(format))
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleAPIAggregate(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.requestConfig(r)
	if err != nil {
		s.writeAPIError(w, r, http.StatusBadRequest, err)
		return
	}
	result, err := core.GetAggregateResults(core.WithDataset(r.Context(), s.memo), cfg, nil)
	if err != nil {
		s.writeAPIError(w, r, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, schema.EnrichAggregate(result))
}

func (s *Server) handleAPIVideos(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.requestConfig(r)
	if err != nil {
		s.writeAPIError(w, r, http.StatusBadRequest, err)
		return
	}
	videos, err := core.GetVideoList(core.WithDataset(r.Context(), s.memo), cfg)
	if err != nil {
		s.writeAPIError(w, r, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, schema.SummarizeVideos(videos))
}

func (s *Server) handleAPIVideo(w http.ResponseWriter, r *http.Request) {
	cfg := s.cfg.CloneWithVideo(mux.Vars(r)["id"])
	analysis, err := core.GetVideoResults(core.WithDataset(r.Context(), s.memo), cfg)
	if err != nil {
		s.writeAPIError(w, r, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, schema.EnrichVideoAnalysis(analysis))
}
