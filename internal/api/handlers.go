package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"StockAnalyzer/internal/analyzer"
)

const (
	serviceName = "Stock Analyzer API"
	version     = "2.0.0"
	searchLimit = 10
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": serviceName,
		"version": version,
		"features": []string{
			"Search by company name or ticker",
			"Real-time stock data",
			"ML price predictions",
			"Technical analysis (RSI, MACD, MA)",
			"Trading signals",
		},
		"endpoints": map[string]string{
			"/api/stock/<ticker>":          "Get full stock analysis (accepts name or ticker)",
			"/api/search/<query>":          "Search for stocks",
			"/api/predict/<ticker>/<days>": "Get price predictions",
			"/health":                      "Health check",
			"/metrics":                     "Prometheus metrics",
		},
		"stocksAvailable": len(s.service.Directory().Tickers()),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "healthy",
		"service":         serviceName,
		"timestamp":       formatTimestamp(s.now()),
		"stocksAvailable": s.service.Directory().Tickers(),
	})
}

func (s *Server) handleStock(w http.ResponseWriter, r *http.Request) {
	input := mux.Vars(r)["ticker"]

	rep, err := s.service.Analyze(r.Context(), input, "api")
	if err != nil {
		var le *analyzer.LookupError
		if errors.As(err, &le) {
			writeJSON(w, http.StatusNotFound, errorDTO{
				Error:       fmt.Sprintf("Invalid ticker or data unavailable for %s", le.SearchedFor),
				SearchedFor: le.SearchedFor,
				ResolvedTo:  le.ResolvedTo,
			})
			return
		}
		log.Error().Str("input", input).Err(err).Msg("analysis failed")
		writeJSON(w, http.StatusInternalServerError, errorDTO{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, toStock(rep))
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	days, err := strconv.Atoi(vars["days"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorDTO{Error: "days must be an integer"})
		return
	}

	p, err := s.service.Predict(r.Context(), vars["ticker"], days)
	if err != nil {
		var he *analyzer.HorizonError
		if errors.As(err, &he) {
			writeJSON(w, http.StatusBadRequest, errorDTO{Error: he.Error()})
			return
		}
		log.Warn().Str("input", vars["ticker"]).Int("days", days).Err(err).Msg("prediction failed")
		writeJSON(w, http.StatusInternalServerError, errorDTO{Error: "Unable to generate predictions"})
		return
	}
	writeJSON(w, http.StatusOK, toPredictions(p.Forecast))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := mux.Vars(r)["query"]
	writeJSON(w, http.StatusOK, map[string]any{
		"suggestions": s.service.Directory().Search(query, searchLimit),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorDTO{Error: fmt.Sprintf("route %s not found", r.URL.Path)})
}
