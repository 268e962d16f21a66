package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/acidni/googleops/internal/analytics"
)

// successEnvelope wraps handler payloads.
type successEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// errorEnvelope wraps handler failures.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, successEnvelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorEnvelope{Success: false, Error: message})
}

// healthResponse is the unenveloped /health payload.
type healthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Service:   ServiceName,
		Version:   ServiceVersion,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "Acidni Google Services Manager",
		"version": ServiceVersion,
		"status":  "running",
		"endpoints": map[string]string{
			"health":    "/health",
			"analytics": "/analytics/*",
			"tags":      "/tags/*",
			"adsense":   "/adsense/*",
			"ads":       "/ads/*",
			"apis":      "/apis/*",
			"metrics":   "/metrics",
		},
		"documentation": "/docs",
	})
}

func (s *Server) handleListProperties(w http.ResponseWriter, r *http.Request) {
	if s.analytics == nil {
		writeError(w, http.StatusServiceUnavailable, "Analytics backend is not available")
		return
	}

	result, err := s.analytics.ListProperties(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeData(w, result)
}

func (s *Server) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	if s.analytics == nil {
		writeError(w, http.StatusServiceUnavailable, "Analytics backend is not available")
		return
	}

	result, err := s.analytics.GetProperty(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeData(w, result)
}

// AnalyticsEvent is the POST /analytics/events request body.
type AnalyticsEvent struct {
	PropertyID string                 `json:"propertyId"`
	EventName  string                 `json:"eventName"`
	Params     map[string]interface{} `json:"params,omitempty"`
	UserID     string                 `json:"userId,omitempty"`
}

// eventAck acknowledges an accepted event.
// TODO: forward events via the GA4 Measurement Protocol instead of just
// acknowledging them.
type eventAck struct {
	Sent       bool   `json:"sent"`
	EventName  string `json:"eventName"`
	PropertyID string `json:"propertyId"`
	Timestamp  string `json:"timestamp"`
}

func (s *Server) handleSendEvent(w http.ResponseWriter, r *http.Request) {
	var event AnalyticsEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if event.PropertyID == "" || event.EventName == "" {
		writeError(w, http.StatusBadRequest, "propertyId and eventName are required")
		return
	}

	s.logger.Debug("Accepted event '%s' for property %s", event.EventName, event.PropertyID)
	writeData(w, eventAck{
		Sent:       true,
		EventName:  event.EventName,
		PropertyID: event.PropertyID,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleRunReport(w http.ResponseWriter, r *http.Request) {
	if s.analytics == nil {
		writeError(w, http.StatusServiceUnavailable, "Analytics backend is not available")
		return
	}

	query := r.URL.Query()

	propertyID := query.Get("property_id")
	if propertyID == "" {
		writeError(w, http.StatusBadRequest, "property_id is required")
		return
	}

	startDate := query.Get("start_date")
	if startDate == "" {
		startDate = "7daysAgo"
	}
	endDate := query.Get("end_date")
	if endDate == "" {
		endDate = "today"
	}
	metrics := query.Get("metrics")
	if metrics == "" {
		metrics = "activeUsers"
	}

	result, err := s.analytics.RunReport(r.Context(), propertyID, startDate, endDate, analytics.ReportOptions{
		Metrics:    metrics,
		Dimensions: query.Get("dimensions"),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeData(w, result)
}

func (s *Server) handleListContainers(w http.ResponseWriter, r *http.Request) {
	containers, err := s.tags.ListContainers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeData(w, containers)
}

func (s *Server) handleGetContainer(w http.ResponseWriter, r *http.Request) {
	container, err := s.tags.GetContainer(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeData(w, container)
}

func (s *Server) handleRevenueReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	startDate := query.Get("start_date")
	endDate := query.Get("end_date")
	if startDate == "" || endDate == "" {
		writeError(w, http.StatusBadRequest, "start_date and end_date are required")
		return
	}

	report, err := s.adsense.RevenueReport(r.Context(), startDate, endDate, query.Get("product"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeData(w, report)
}

func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := s.ads.ListCampaigns(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeData(w, campaigns)
}

// APIEnableRequest is the POST /apis/enable request body.
type APIEnableRequest struct {
	ProductCode string                 `json:"productCode"`
	Services    []string               `json:"services"`
	Config      map[string]interface{} `json:"config,omitempty"`
}

func (s *Server) handleEnableAPIs(w http.ResponseWriter, r *http.Request) {
	if s.products == nil {
		writeError(w, http.StatusServiceUnavailable, "Product configuration store is not available")
		return
	}

	var request APIEnableRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if request.ProductCode == "" || len(request.Services) == 0 {
		writeError(w, http.StatusBadRequest, "productCode and services are required")
		return
	}

	result, err := s.products.EnableAPIs(r.Context(), request.ProductCode, request.Services, request.Config)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeData(w, result)
}

func (s *Server) handleAPIStatus(w http.ResponseWriter, r *http.Request) {
	if s.products == nil {
		writeError(w, http.StatusServiceUnavailable, "Product configuration store is not available")
		return
	}

	status, err := s.products.GetStatus(r.Context(), r.PathValue("productCode"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeData(w, status)
}
