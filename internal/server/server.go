package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rhyrak/go-facultyload/internal/config"
	"github.com/rhyrak/go-facultyload/internal/csvio"
	"github.com/rhyrak/go-facultyload/internal/loads"
	"github.com/rhyrak/go-facultyload/internal/logger"
	"github.com/rhyrak/go-facultyload/internal/metrics"
)

// RequestIDHeader carries the id assigned to every request.
const RequestIDHeader = "X-Request-ID"

// Server exposes the loads table and CSV exports over HTTP.
type Server struct {
	cfg      *config.Config
	log      logger.Logger
	agg      *loads.Aggregator
	exporter *csvio.Exporter
	gatherer prometheus.Gatherer
}

// New wires a Server. Metrics are registered on reg and served from it; a
// nil reg gets a fresh registry.
func New(cfg *config.Config, log logger.Logger, reg *prometheus.Registry) (*Server, error) {
	if log == nil {
		log = logger.NopLogger{}
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	rec, err := metrics.NewPromRecorder(reg)
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:      cfg,
		log:      log,
		agg:      loads.NewAggregator(cfg.MergeRule(), log, rec),
		exporter: &csvio.Exporter{Logger: log, Metrics: rec},
		gatherer: reg,
	}, nil
}

// Router returns the gin engine with all routes installed.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.cors())

	r.POST("/loads", s.handlePostLoads)
	r.POST("/export/teaching", s.handleExportTeaching)
	r.POST("/export/non-teaching", s.handleExportNonTeaching)
	r.POST("/validate", s.handleValidate)
	r.POST("/sections/find", s.handleFindSection)
	r.POST("/non-teaching", s.handleAddNonTeaching)
	r.POST("/non-teaching/form", s.handleNonTeachingForm)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	return r
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", s.cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

func (s *Server) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", s.cfg.Server.AllowOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, "+RequestIDHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
