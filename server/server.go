// Package server exposes the price comparison engine over HTTP with the
// /api route set the web front end consumes.
package server

import (
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"github.com/pixelfederation/ec2-price-compare/compare"
	"github.com/pixelfederation/ec2-price-compare/currency"
)

// Server wires the engine and converter into HTTP handlers.
type Server struct {
	engine    *compare.Engine
	converter *currency.Converter
}

// New returns a server around the given engine and converter.
func New(engine *compare.Engine, converter *currency.Converter) *Server {
	return &Server{engine: engine, converter: converter}
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type pricesRequest struct {
	InstanceType string   `json:"instanceType"`
	Regions      []string `json:"regions"`
	PriceType    string   `json:"priceType"`
}

// Handler builds the full route set, including the prometheus endpoint and
// the index page. CORS is open, matching the web front end's needs.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/regions", s.getRegions)
	mux.HandleFunc("GET /api/instance-types", s.getInstanceTypes)
	mux.HandleFunc("GET /api/ec2/{instanceType}", s.getPricesByInstanceType)
	mux.HandleFunc("POST /api/prices", s.postPrices)
	mux.HandleFunc("GET /api/exchange-rate", s.getExchangeRate)
	mux.HandleFunc("GET /api/savings-plans", s.getSavingsPlans)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", rootHandler)

	return cors.Default().Handler(logRequests(mux))
}

// getRegions keeps the legacy route alive; the region catalog moved to the
// front end, so the payload is deliberately empty.
func (s *Server) getRegions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: []any{}})
}

func (s *Server) getInstanceTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.engine.ListInstanceTypes(r.Context())
	if err != nil {
		log.WithError(err).Error("error fetching instance types")
		writeError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to fetch instance types")
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: types})
}

func (s *Server) getPricesByInstanceType(w http.ResponseWriter, r *http.Request) {
	instanceType := r.PathValue("instanceType")
	regions := splitParams(r.URL.Query()["regions"])

	plan, err := compare.ParsePlan(r.URL.Query().Get("priceType"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
		return
	}

	prices := s.engine.ResolveAll(r.Context(), instanceType, regions, plan)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: prices})
}

func (s *Server) postPrices(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "Failed to read request body")
		return
	}
	var req pricesRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "Request body is not valid JSON")
		return
	}
	if req.InstanceType == "" {
		writeError(w, http.StatusBadRequest, "MISSING_PARAMETER", "Instance type is required")
		return
	}
	plan, err := compare.ParsePlan(req.PriceType)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
		return
	}

	prices := s.engine.ResolveAll(r.Context(), req.InstanceType, req.Regions, plan)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: prices})
}

func (s *Server) getExchangeRate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: map[string]float64{"rate": s.converter.Rate()}})
}

func (s *Server) getSavingsPlans(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	if region == "" {
		writeError(w, http.StatusBadRequest, "MISSING_PARAMETER", "Region is required")
		return
	}
	instanceType := r.URL.Query().Get("instanceType")
	planTypes := splitParams(r.URL.Query()["planTypes"])

	rates, err := s.engine.ListSavingsPlanRates(r.Context(), region, instanceType, planTypes)
	if err != nil {
		log.WithError(err).Errorf("error fetching savings plan rates [region=%s]", region)
		writeError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to fetch savings plan rates")
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: rates})
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`<html>
		<head><title>EC2 Price Compare</title></head>
		<body>
		<h1>EC2 Price Compare</h1>
		<p><a href="` + html.EscapeString("/api/instance-types") + `">Instance types</a></p>
		<p><a href="` + html.EscapeString("/metrics") + `">Metrics</a></p>
		</body>
		</html>
	`))
}

// splitParams accepts both repeated query parameters and comma separated
// lists, which is how the front end and curl users pass regions.
func splitParams(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, payload envelope) {
	body, err := sonic.Marshal(payload)
	if err != nil {
		log.WithError(err).Error("failed to encode response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, envelope{Success: false, Error: &apiError{Code: code, Message: message}})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Infof("%s %s [status=%d, duration=%s]", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
