package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ListDestinations handles GET /destinations.
// ?q= filters by name or country; ?page= and ?limit= paginate.
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	params, err := pagination(r)
	if err != nil {
		writeRequestError(w, err)
		return
	}

	dests, total, err := s.catalog.SearchDestinations(r.Context(), r.URL.Query().Get("q"), params)
	if err != nil {
		writeServiceError(w, r, err, "destination")
		return
	}
	writeJSON(w, http.StatusOK, DestinationList{Data: dests, Pagination: paginationOf(params, total)})
}

// GetDestination handles GET /destinations/{id}.
func (s *Server) GetDestination(w http.ResponseWriter, r *http.Request) {
	d, err := s.catalog.GetDestination(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "destination")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// CompareDestinations handles
// GET /destinations/compare?ids=istanbul,kyoto&tier=standard&days=3[&party=2].
func (s *Server) CompareDestinations(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseCompareQuery(r)
	if err != nil {
		writeRequestError(w, err)
		return
	}

	rows, err := s.catalog.Compare(r.Context(), q.IDs, domain.BudgetTier(q.Tier), q.Duration, q.PartySize)
	if err != nil {
		writeServiceError(w, r, err, "destination")
		return
	}

	data := make([]Comparison, len(rows))
	for i, c := range rows {
		data[i] = comparisonToResponse(c)
	}
	writeJSON(w, http.StatusOK, ComparisonList{Data: data})
}

func (s *Server) parseCompareQuery(r *http.Request) (compareQuery, error) {
	values := r.URL.Query()
	q := compareQuery{Tier: values.Get("tier"), PartySize: 1}

	for _, raw := range values["ids"] {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				q.IDs = append(q.IDs, id)
			}
		}
	}

	days, err := queryInt(r, "days")
	if err != nil {
		return compareQuery{}, err
	}
	if days != nil {
		q.Duration = *days
	}
	party, err := queryInt(r, "party")
	if err != nil {
		return compareQuery{}, err
	}
	if party != nil {
		q.PartySize = *party
	}

	if err := s.validateStruct(q); err != nil {
		return compareQuery{}, err
	}
	return q, nil
}
