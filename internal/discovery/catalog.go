// Package discovery provides the "nearby places" search. The catalog is a
// fixed in-memory list — there is no real geolocation lookup behind it.
package discovery

import (
	"strings"

	"github.com/paolobenve/wanderlust/internal/domain"
)

// Place is one discoverable attraction.
type Place struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Rating   float64 `json:"rating"`
	Reviews  int     `json:"reviews"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
	Duration string  `json:"duration"`
	Price    string  `json:"price"`
}

// Category is a search filter option.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Categories lists the available search filters. "all" disables filtering.
var Categories = []Category{
	{ID: "all", Name: "Tutti", Icon: "🌟"},
	{ID: "monumento", Name: "Monumenti", Icon: "🏛️"},
	{ID: "museo", Name: "Musei", Icon: "🎨"},
	{ID: "natura", Name: "Natura", Icon: "🌿"},
	{ID: "ristorante", Name: "Gastronomia", Icon: "🍝"},
}

// catalog is the static place list backing the search.
var catalog = []Place{
	{ID: "torre-di-pisa", Name: "Torre di Pisa", Location: "Pisa, Toscana", Rating: 4.7, Reviews: 12450, Image: "🗼", Category: "Monumento", Duration: "2-3 ore", Price: "€18"},
	{ID: "cinque-terre", Name: "Cinque Terre", Location: "Liguria", Rating: 4.8, Reviews: 8930, Image: "🏔️", Category: "Natura", Duration: "1 giorno", Price: "Gratis"},
	{ID: "palazzo-pitti", Name: "Palazzo Pitti", Location: "Firenze, Toscana", Rating: 4.6, Reviews: 5670, Image: "🏰", Category: "Museo", Duration: "3-4 ore", Price: "€25"},
	{ID: "duomo-di-siena", Name: "Duomo di Siena", Location: "Siena, Toscana", Rating: 4.9, Reviews: 3420, Image: "⛪", Category: "Monumento", Duration: "1-2 ore", Price: "€12"},
	{ID: "galleria-accademia", Name: "Galleria dell'Accademia", Location: "Firenze, Toscana", Rating: 4.8, Reviews: 9210, Image: "🗿", Category: "Museo", Duration: "2 ore", Price: "€16"},
	{ID: "val-d-orcia", Name: "Val d'Orcia", Location: "Siena, Toscana", Rating: 4.9, Reviews: 2140, Image: "🌄", Category: "Natura", Duration: "1 giorno", Price: "Gratis"},
}

// Search filters the catalog by a free-text query (matched against name and
// location, case-insensitive) and a category id ("all" or empty matches
// everything). Always returns a non-nil slice.
func Search(query, category string) []Place {
	query = strings.ToLower(strings.TrimSpace(query))
	category = strings.ToLower(strings.TrimSpace(category))

	out := []Place{}
	for _, p := range catalog {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Location), query) {
			continue
		}
		if category != "" && category != "all" &&
			!strings.Contains(strings.ToLower(p.Category), category) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Find returns the catalog place with the given id.
func Find(id string) (Place, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Place{}, false
}

// ItemDraft converts a place into an itinerary item draft for the
// "add from discovery" flow. Time defaults to mid-afternoon and coordinates
// to the catalog's home region.
func ItemDraft(p Place) domain.ItemDraft {
	return domain.ItemDraft{
		Name:     p.Name,
		Time:     "14:00",
		Duration: p.Duration,
		Type:     p.Category,
		Rating:   p.Rating,
		Image:    p.Image,
		Location: domain.Location{
			Lat:     43.7731,
			Lng:     11.2560,
			Address: p.Location,
		},
		EstimatedCost: p.Price,
	}
}
