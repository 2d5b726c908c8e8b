package domain

// Location is the geographic position of an itinerary item. It is never
// optional at the type level; construction paths without real coordinates
// default to (0, 0).
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// ItineraryItem is one stop/activity within a travel day.
//
// Duration and EstimatedCost are free-text strings ("2 ore", "€15", "Gratis"),
// not structured types; aggregation parses only a leading integer. Rating is
// a decimal in [0,5] by convention but is not clamped. Image is a short emoji
// glyph derived from Type.
type ItineraryItem struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Time          string   `json:"time"`
	Duration      string   `json:"duration"`
	Type          string   `json:"type"`
	Rating        float64  `json:"rating"`
	Image         string   `json:"image"`
	Location      Location `json:"location"`
	EstimatedCost string   `json:"estimatedCost,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

// ItemDraft carries user-supplied fields for a new item; the service assigns
// the ID and derives Image from Type when the draft leaves it empty.
type ItemDraft struct {
	Name          string
	Time          string
	Duration      string
	Type          string
	Rating        float64
	Image         string
	Location      Location
	EstimatedCost string
	Notes         string
}

// ItemPatch is a partial update of an item. Nil pointers leave fields
// unchanged. DayID, when set, moves the item to the end of that day.
type ItemPatch struct {
	Name          *string
	Time          *string
	Duration      *string
	Type          *string
	Rating        *float64
	Image         *string
	Location      *Location
	EstimatedCost *string
	Notes         *string
	DayID         *string
}

// DaySummary aggregates a day's items: total visit hours (leading integer of
// each duration, unparsable counts as one hour) and total cost in euro
// (leading integer after stripping "€"; "Gratis" and unparsable are zero).
type DaySummary struct {
	Date       string `json:"date"`
	ItemCount  int    `json:"itemCount"`
	TotalHours int    `json:"totalHours"`
	TotalCost  int    `json:"totalCost"`
}

// ItemTypes is the UI-suggested category enumeration. It is open: items may
// carry any type string, and unknown types fall back to the default glyph.
var ItemTypes = []string{
	"Attrazione", "Ristorante", "Hotel", "Museo", "Monumento",
	"Natura", "Shopping", "Trasporto", "Altro",
}

// typeGlyphs maps item types to their display emoji.
var typeGlyphs = map[string]string{
	"Attrazione": "🎯",
	"Ristorante": "🍽️",
	"Hotel":      "🏨",
	"Museo":      "🎨",
	"Monumento":  "🏛️",
	"Natura":     "🌿",
	"Shopping":   "🛍️",
	"Trasporto":  "🚗",
	"Altro":      "📍",
}

// GlyphForType returns the display emoji for an item type, falling back to
// the generic pin for unknown types.
func GlyphForType(itemType string) string {
	if g, ok := typeGlyphs[itemType]; ok {
		return g
	}
	return "📍"
}
