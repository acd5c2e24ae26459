package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lhagen/tripchat/backend/internal/domain"
	"github.com/lhagen/tripchat/backend/internal/service"
	"github.com/lhagen/tripchat/backend/internal/web"
)

// createTripRequest is the POST /trips body. Days arrives in text form (the
// creation page submits whatever was typed); the handler parses it.
type createTripRequest struct {
	Destination string `json:"destination"`
	Days        string `json:"days"`
}

// getIndex handles GET / by serving the embedded trip creation page.
func (s *Server) getIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(web.IndexHTML)
}

// createTrip handles POST /trips: the whole creation flow, ending in a 201
// with the new trip identifier and its Location.
func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request body is required")
		return
	}

	if strings.TrimSpace(req.Days) == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "days is required")
		return
	}
	days, err := strconv.Atoi(strings.TrimSpace(req.Days))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "days must be a number")
		return
	}

	id, err := s.trips.Create(r.Context(), service.CreateTripInput{
		Destination: req.Destination,
		Days:        days,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Location", "/trips/"+id.String())
	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

// listTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) listTrips(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	trips, total, err := s.trips.List(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if trips == nil {
		trips = []domain.Trip{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data": trips,
		"pagination": map[string]any{
			"page":  params.Page,
			"limit": params.Limit,
			"total": total,
		},
	})
}

// getTrip handles GET /trips/{tripID}. Browsers asking for HTML get the chat
// page; everything else gets the trip definition straight from its actor.
func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(web.ChatHTML)
		return
	}

	id, ok := parseTripID(w, r)
	if !ok {
		return
	}

	def, err := s.trips.Definition(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, def)
}

// parseTripID parses the {tripID} path segment. A malformed identifier can
// never address a trip, so it responds 404 and reports false.
func parseTripID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "trip not found")
		return uuid.Nil, false
	}
	return id, true
}

// queryInt returns the named query parameter as *int, or nil when absent or
// malformed (malformed values fall back to the pagination defaults).
func queryInt(r *http.Request, name string) *int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
