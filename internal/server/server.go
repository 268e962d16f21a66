// Package server exposes the Google services manager over HTTP: GA4
// operations proxied through the admin script, the auxiliary Tag Manager /
// AdSense / Ads surfaces, and product API enablement backed by Cosmos DB.
// Responses use the {"success": ..., "data"/"error": ...} envelope the
// frontends already consume; the API-management gateway in front owns real
// authentication, this service only checks the subscription key is present.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/acidni/googleops/internal/analytics"
	"github.com/acidni/googleops/internal/logging"
	"github.com/acidni/googleops/internal/products"
	"github.com/acidni/googleops/internal/services"
)

const (
	// ServiceName identifies this service in health responses.
	ServiceName = "acidni-google"
	// ServiceVersion is reported by /health and the build info metric.
	ServiceVersion = "1.0.0"
	// DefaultAddr is the conventional listen address.
	DefaultAddr = ":8000"
)

// AnalyticsAPI is the slice of the analytics client the handlers use.
type AnalyticsAPI interface {
	ListProperties(ctx context.Context) (analytics.Result, error)
	GetProperty(ctx context.Context, propertyID string) (analytics.Result, error)
	RunReport(ctx context.Context, propertyID, startDate, endDate string, opts analytics.ReportOptions) (analytics.Result, error)
}

// ProductsAPI is the slice of the products store the handlers use.
type ProductsAPI interface {
	EnableAPIs(ctx context.Context, productCode string, services []string, config map[string]interface{}) (*products.EnableResult, error)
	GetStatus(ctx context.Context, productCode string) (*products.Status, error)
}

// Options configures a Server. Nil manager fields fall back to the built-in
// placeholder managers; Analytics and Products stay nil-checked per route so
// a partially wired server still serves what it can.
type Options struct {
	Addr      string
	Analytics AnalyticsAPI
	Products  ProductsAPI
	Tags      services.TagManagerAPI
	AdSense   services.AdSenseAPI
	Ads       services.AdsAPI
	Logger    *logging.Logger
}

// Server is the HTTP service.
type Server struct {
	analytics AnalyticsAPI
	products  ProductsAPI
	tags      services.TagManagerAPI
	adsense   services.AdSenseAPI
	ads       services.AdsAPI
	logger    *logging.Logger

	httpServer *http.Server
}

// New builds a Server listening on opts.Addr.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logging.New(false, false)
	}

	addr := opts.Addr
	if addr == "" {
		addr = DefaultAddr
	}

	s := &Server{
		analytics: opts.Analytics,
		products:  opts.Products,
		tags:      opts.Tags,
		adsense:   opts.AdSense,
		ads:       opts.Ads,
		logger:    logger,
	}
	if s.tags == nil {
		s.tags = services.NewTagManager(logger)
	}
	if s.adsense == nil {
		s.adsense = services.NewAdSense(logger)
	}
	if s.ads == nil {
		s.ads = services.NewAds(logger)
	}

	InitMetrics()

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the route table as an http.Handler, so tests can drive the
// server through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Open endpoints: health, service info, metrics.
	s.route(mux, "GET /health", s.handleHealth)
	s.route(mux, "GET /{$}", s.handleRoot)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Everything else requires the subscription key header.
	s.route(mux, "GET /analytics/properties", s.requireKey(s.handleListProperties))
	s.route(mux, "GET /analytics/properties/{id}", s.requireKey(s.handleGetProperty))
	s.route(mux, "POST /analytics/events", s.requireKey(s.handleSendEvent))
	s.route(mux, "GET /analytics/reports", s.requireKey(s.handleRunReport))
	s.route(mux, "GET /tags/containers", s.requireKey(s.handleListContainers))
	s.route(mux, "GET /tags/containers/{id}", s.requireKey(s.handleGetContainer))
	s.route(mux, "GET /adsense/reports/revenue", s.requireKey(s.handleRevenueReport))
	s.route(mux, "GET /ads/campaigns", s.requireKey(s.handleListCampaigns))
	s.route(mux, "POST /apis/enable", s.requireKey(s.handleEnableAPIs))
	s.route(mux, "GET /apis/status/{productCode}", s.requireKey(s.handleAPIStatus))

	return mux
}

// route registers pattern with the metrics instrumentation wrapped around
// handler. The pattern's path part becomes the metric label, keeping label
// cardinality bounded by the route table.
func (s *Server) route(mux *http.ServeMux, pattern string, handler http.HandlerFunc) {
	mux.HandleFunc(pattern, s.instrument(pattern, handler))
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start listens and serves until Shutdown is called. A graceful shutdown is
// not an error.
func (s *Server) Start() error {
	s.logger.Info("%s %s listening on %s", ServiceName, ServiceVersion, s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests,
// bounded by ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
