package httpapi

import (
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/opencourse-labs/virta/internal/core/domain"
	"github.com/opencourse-labs/virta/internal/logger"
	"github.com/opencourse-labs/virta/internal/metrics"
)

// askRequest is the body of POST /api. The image, when present, is
// base64 encoded.
type askRequest struct {
	Question string `json:"question"`
	Image    string `json:"image"`
	Link     string `json:"link"`
}

type askResponse struct {
	Answer    string        `json:"answer"`
	Links     []domain.Link `json:"links"`
	Question  string        `json:"question"`
	Timestamp string        `json:"timestamp"`
}

func (s *Server) handleAsk(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.QuestionsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	query := domain.Query{Question: req.Question}
	if req.Image != "" {
		img, err := base64.StdEncoding.DecodeString(req.Image)
		if err != nil {
			metrics.QuestionsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "image must be base64 encoded"})
			return
		}
		query.Image = img
	}

	start := time.Now()
	answer, err := s.answers.Ask(c.Request.Context(), query)
	metrics.UpstreamLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			metrics.QuestionsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
			return
		}
		logger.Error("answering failed: %v", err)
		metrics.QuestionsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	outcome := metrics.OutcomeAnswered
	if answer.Degraded {
		outcome = metrics.OutcomeDegraded
	}
	metrics.QuestionsTotal.WithLabelValues(outcome).Inc()

	links := answer.Links
	if links == nil {
		links = []domain.Link{}
	}
	c.JSON(http.StatusOK, askResponse{
		Answer:    answer.Text,
		Links:     links,
		Question:  req.Question,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"uptime": time.Since(s.started).String(),
	})
}

func (s *Server) handleSummary(c *gin.Context) {
	stats, err := s.knowledge.Stats(c.Request.Context())
	if err != nil {
		logger.Error("stats failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "knowledge base unavailable"})
		return
	}

	counts := make(map[string]int, len(stats.Counts))
	total := 0
	for collection, n := range stats.Counts {
		counts[string(collection)] = n
		total += n
	}

	resp := gin.H{
		"documents":   total,
		"collections": counts,
	}
	if !stats.LastUpdated.IsZero() {
		resp["last_updated"] = stats.LastUpdated.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}
