package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/couchcryptid/market-prices-dashboard/internal/dashboard"
	"github.com/couchcryptid/market-prices-dashboard/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

// User-facing messages for load failures.
const (
	msgConnection = "Could not reach the price database. Please try again later."
	msgSchema     = "The price table is missing or has an unexpected layout."
	msgInternal   = "Something went wrong while loading prices."
)

const pageTitle = "Kenya Market Prices"

type pageData struct {
	Title  string
	Result *dashboard.Result
	Error  string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	c, err := criteriaFromRequest(r)
	if err != nil {
		s.service.CountInvalid()
		s.renderPage(w, http.StatusBadRequest, pageData{Title: pageTitle, Error: err.Error()})
		return
	}

	res, err := s.service.Query(r.Context(), c)
	if err != nil {
		status, msg := s.classify(r, err)
		s.renderPage(w, status, pageData{Title: pageTitle, Error: msg})
		return
	}
	s.renderPage(w, http.StatusOK, pageData{Title: pageTitle + res.Heading, Result: &res})
}

func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	c, err := criteriaFromRequest(r)
	if err != nil {
		s.service.CountInvalid()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.service.Query(r.Context(), c)
	if err != nil {
		status, msg := s.classify(r, err)
		writeError(w, status, msg)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, res)
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.service.Options(r.Context())
	if err != nil {
		status, msg := s.classify(r, err)
		writeError(w, status, msg)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, opts)
}

func (s *Server) handleCounties(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.counties.Counties())
}

type nearestResponse struct {
	County     string  `json:"county"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	DistanceKm float64 `json:"distance_km"`
}

func (s *Server) handleNearest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, err := parseCoordinate(q.Get("lat"), 90)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lat: "+err.Error())
		return
	}
	lon, err := parseCoordinate(q.Get("lon"), 180)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lon: "+err.Error())
		return
	}

	county, km, ok := s.counties.Nearest(lat, lon)
	if !ok {
		writeError(w, http.StatusNotFound, "no counties indexed")
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, nearestResponse{
		County:     county.Name,
		Lat:        county.Coord.Lat,
		Lon:        county.Coord.Lon,
		DistanceKm: km,
	})
}

// classify maps a query error to a status code and a message safe to show
// users. The underlying error is logged.
func (s *Server) classify(r *http.Request, err error) (int, string) {
	var status int
	var msg string
	switch {
	case errors.Is(err, domain.ErrInvalidCriteria):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrConnection),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		status, msg = http.StatusServiceUnavailable, msgConnection
	case errors.Is(err, domain.ErrSchema):
		status, msg = http.StatusInternalServerError, msgSchema
	default:
		status, msg = http.StatusInternalServerError, msgInternal
	}
	s.logger.Error("query failed", "path", r.URL.Path, "status", status, "error", err)
	return status, msg
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.logger.Error("render page", "error", err)
		http.Error(w, msgInternal, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes()) //nolint:errcheck // client may have gone away
}

func criteriaFromRequest(r *http.Request) (domain.Criteria, error) {
	q := r.URL.Query()
	return domain.ParseCriteria(q.Get("commodity"), q.Get("year"), q.Get("month"))
}

func parseCoordinate(s string, limit float64) (float64, error) {
	if s == "" {
		return 0, errors.New("required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if v < -limit || v > limit {
		return 0, fmt.Errorf("%v is out of range", v)
	}
	return v, nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}
