package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paolobenve/wanderlust/internal/discovery"
)

// handleDiscover handles GET /discover?q=&category=. Both filters are
// optional; an empty query returns the whole catalog.
func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	places := discovery.Search(q.Get("q"), q.Get("category"))
	writeJSON(w, http.StatusOK, places)
}

// handleDiscoverCategories handles GET /discover/categories.
func (s *Server) handleDiscoverCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, discovery.Categories)
}

// handleAddFromDiscovery handles POST /days/{dayID}/places/{placeID}: it adds
// a catalog place to the day as a regular itinerary item.
func (s *Server) handleAddFromDiscovery(w http.ResponseWriter, r *http.Request) {
	place, ok := discovery.Find(chi.URLParam(r, "placeID"))
	if !ok {
		notFound(w, "place not found")
		return
	}

	created, err := s.trips.AddItem(r.Context(), chi.URLParam(r, "dayID"), discovery.ItemDraft(place))
	if err != nil {
		writeItemMutationError(w, err, "day not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
