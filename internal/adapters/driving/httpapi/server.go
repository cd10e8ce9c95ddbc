// Package httpapi exposes the answering service over HTTP using gin.
package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/opencourse-labs/virta/internal/core/ports/driving"
	"github.com/opencourse-labs/virta/internal/logger"
	"github.com/opencourse-labs/virta/internal/metrics"
)

// Server wires the answering and knowledge services to HTTP routes.
type Server struct {
	engine    *gin.Engine
	answers   driving.AnswerService
	knowledge driving.KnowledgeService
	addr      string
	started   time.Time
}

// NewServer builds a Server listening on addr. Metrics collectors are
// registered on the default Prometheus registry.
func NewServer(answers driving.AnswerService, knowledge driving.KnowledgeService, addr string) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine:    gin.New(),
		answers:   answers,
		knowledge: knowledge,
		addr:      addr,
		started:   time.Now(),
	}

	s.engine.Use(gin.Recovery(), s.observe())
	s.registerRoutes()
	return s
}

// Collector registration happens once per process; building a second
// Server (as tests do) must not re-register.
var registerOnce sync.Once

func (s *Server) registerRoutes() {
	s.engine.POST("/api", s.handleAsk)
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/api/summary", s.handleSummary)

	registerOnce.Do(func() {
		metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// observe counts requests per path and status and logs each request
// when verbose output is on.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		code := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequests.WithLabelValues(c.FullPath(), code).Inc()
		logger.Debug("%s %s %s %s", c.Request.Method, c.Request.URL.Path, code, time.Since(start))
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info("listening on %s", s.addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
