package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/paolobenve/wanderlust/internal/domain"
)

// ImportTrip parses external content into a Trip, appends it to the
// collection, makes it the current trip, and persists. The import is
// all-or-nothing: when no parser recognizes the content, ErrImportFormat is
// returned and nothing is written.
//
// Parsers are tagged variants tried in a fixed order, first success wins.
// The filename narrows the chain the way the original importer dispatched:
// *.json runs the native-format parser then the generic-places parser,
// *.csv runs the CSV parser, and anything else is treated as free text.
func (s *ItineraryService) ImportTrip(ctx context.Context, content []byte, filename string) (domain.Trip, error) {
	trip, ok := parseTrip(content, filename)
	if !ok {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.ImportTrip: %w", domain.ErrImportFormat)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.trips = append(s.trips, trip)
	s.currentID = trip.ID

	if err := s.persist(ctx); err != nil {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.ImportTrip: %w", err)
	}
	return cloneTrip(trip), nil
}

func parseTrip(content []byte, filename string) (domain.Trip, bool) {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".json"):
		if trip, ok := tryParseNativeFormat(content); ok {
			return trip, true
		}
		return tryParseGenericPlaces(content)
	case strings.HasSuffix(lower, ".csv"):
		return tryParseCSV(content)
	default:
		return tryParseFreeText(content)
	}
}

// tryParseNativeFormat accepts a Trip-shaped JSON object — the same shape
// the exporter produces — and imports it as-is.
func tryParseNativeFormat(content []byte) (domain.Trip, bool) {
	var trip domain.Trip
	if err := json.Unmarshal(content, &trip); err != nil {
		return domain.Trip{}, false
	}
	if trip.ID == "" || trip.Name == "" || trip.Days == nil {
		return domain.Trip{}, false
	}
	return trip, true
}

// genericImport is the loose shape accepted by tryParseGenericPlaces:
// any JSON object carrying an itinerary/places/destinations array.
type genericImport struct {
	Name         string         `json:"name"`
	Title        string         `json:"title"`
	StartDate    string         `json:"startDate"`
	EndDate      string         `json:"endDate"`
	Participants int            `json:"participants"`
	Itinerary    []genericPlace `json:"itinerary"`
	Places       []genericPlace `json:"places"`
	Destinations []genericPlace `json:"destinations"`
}

// genericPlace tolerates the field aliases seen in third-party exports.
// Every field is optional; missing values fall back to fixed defaults.
type genericPlace struct {
	Name        string  `json:"name"`
	Title       string  `json:"title"`
	Destination string  `json:"destination"`
	Time        string  `json:"time"`
	Duration    string  `json:"duration"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Rating      float64 `json:"rating"`
	Emoji       string  `json:"emoji"`
	Icon        string  `json:"icon"`
	Lat         float64 `json:"lat"`
	Latitude    float64 `json:"latitude"`
	Lng         float64 `json:"lng"`
	Longitude   float64 `json:"longitude"`
	Address     string  `json:"address"`
	Location    string  `json:"location"`
	Cost        string  `json:"cost"`
	Price       string  `json:"price"`
}

func tryParseGenericPlaces(content []byte) (domain.Trip, bool) {
	var doc genericImport
	if err := json.Unmarshal(content, &doc); err != nil {
		return domain.Trip{}, false
	}

	places := doc.Itinerary
	if places == nil {
		places = doc.Places
	}
	if places == nil {
		places = doc.Destinations
	}
	if places == nil {
		return domain.Trip{}, false
	}

	items := make([]domain.ItineraryItem, 0, len(places))
	for i, p := range places {
		items = append(items, domain.ItineraryItem{
			ID:       fmt.Sprintf("imported-%d", i),
			Name:     firstNonEmpty(p.Name, p.Title, p.Destination, "Luogo sconosciuto"),
			Time:     firstNonEmpty(p.Time, fmt.Sprintf("%d:00", 9+i)),
			Duration: firstNonEmpty(p.Duration, "2 ore"),
			Type:     firstNonEmpty(p.Type, p.Category, "Attrazione"),
			Rating:   defaultRating(p.Rating),
			Image:    firstNonEmpty(p.Emoji, p.Icon, "📍"),
			Location: domain.Location{
				Lat:     firstNonZero(p.Lat, p.Latitude),
				Lng:     firstNonZero(p.Lng, p.Longitude),
				Address: firstNonEmpty(p.Address, p.Location, "Indirizzo non specificato"),
			},
			EstimatedCost: firstNonEmpty(p.Cost, p.Price, "€0"),
		})
	}

	start := firstNonEmpty(doc.StartDate, today())
	participants := doc.Participants
	if participants <= 0 {
		participants = 1
	}

	return domain.Trip{
		ID:           uuid.NewString(),
		Name:         firstNonEmpty(doc.Name, doc.Title, "Itinerario Importato"),
		StartDate:    start,
		EndDate:      firstNonEmpty(doc.EndDate, today()),
		Participants: participants,
		Status:       domain.StatusPlanning,
		Days: []domain.TravelDay{{
			ID:    uuid.NewString(),
			Date:  start,
			Items: items,
		}},
	}, true
}

// tryParseCSV maps columns by case-insensitive header name against
// {name,time,duration,type,rating,emoji,lat,lng,address,cost}. Missing
// columns fall back to the generic-places defaults; item ids are synthesized
// as "csv-{rowIndex}" with rows counted from 1 (the header is row 0).
func tryParseCSV(content []byte) (domain.Trip, bool) {
	r := csv.NewReader(strings.NewReader(string(content)))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil || len(records) < 2 {
		return domain.Trip{}, false
	}

	col := map[string]int{}
	for i, h := range records[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	items := make([]domain.ItineraryItem, 0, len(records)-1)
	for i, row := range records[1:] {
		n := i + 1 // 1-based data row index
		name := field(row, "name")
		if name == "" && len(row) > 0 {
			name = strings.TrimSpace(row[0])
		}
		if name == "" {
			name = fmt.Sprintf("Luogo %d", n)
		}
		items = append(items, domain.ItineraryItem{
			ID:       fmt.Sprintf("csv-%d", n),
			Name:     name,
			Time:     firstNonEmpty(field(row, "time"), fmt.Sprintf("%d:00", 8+n)),
			Duration: firstNonEmpty(field(row, "duration"), "2 ore"),
			Type:     firstNonEmpty(field(row, "type"), "Attrazione"),
			Rating:   parseFloatOr(field(row, "rating"), 4.0),
			Image:    firstNonEmpty(field(row, "emoji"), "📍"),
			Location: domain.Location{
				Lat:     parseFloatOr(field(row, "lat"), 0),
				Lng:     parseFloatOr(field(row, "lng"), 0),
				Address: firstNonEmpty(field(row, "address"), "Indirizzo non specificato"),
			},
			EstimatedCost: firstNonEmpty(field(row, "cost"), "€0"),
		})
	}

	return singleDayImport("Itinerario CSV Importato", items), true
}

var timeTokenRe = regexp.MustCompile(`(\d{1,2}:\d{2})`)
var timePrefixRe = regexp.MustCompile(`^\d{1,2}:\d{2}\s*-?\s*`)

// tryParseFreeText builds one item per non-empty line. A leading "HH:MM"
// token becomes the item's time and is stripped from the name. Lines
// containing the word "itinerario" are skipped as presumed headers.
func tryParseFreeText(content []byte) (domain.Trip, bool) {
	var items []domain.ItineraryItem
	for i, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.Contains(strings.ToLower(trimmed), "itinerario") {
			continue
		}

		itemTime := fmt.Sprintf("%d:00", 9+i)
		if m := timeTokenRe.FindString(trimmed); m != "" {
			itemTime = m
		}
		name := strings.TrimSpace(timePrefixRe.ReplaceAllString(trimmed, ""))
		if name == "" {
			name = fmt.Sprintf("Tappa %d", i+1)
		}

		items = append(items, domain.ItineraryItem{
			ID:       fmt.Sprintf("text-%d", i),
			Name:     name,
			Time:     itemTime,
			Duration: "2 ore",
			Type:     "Attrazione",
			Rating:   4.0,
			Image:    "📍",
			Location: domain.Location{
				Address: "Da specificare",
			},
			EstimatedCost: "€0",
		})
	}
	if len(items) == 0 {
		return domain.Trip{}, false
	}

	return singleDayImport("Itinerario di Testo Importato", items), true
}

// singleDayImport wraps imported items in a fresh one-day trip dated today.
func singleDayImport(name string, items []domain.ItineraryItem) domain.Trip {
	date := today()
	return domain.Trip{
		ID:           uuid.NewString(),
		Name:         name,
		StartDate:    date,
		EndDate:      date,
		Participants: 1,
		Status:       domain.StatusPlanning,
		Days: []domain.TravelDay{{
			ID:    uuid.NewString(),
			Date:  date,
			Items: items,
		}},
	}
}

func today() string {
	return time.Now().Format("2006-01-02")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func defaultRating(r float64) float64 {
	if r == 0 {
		return 4.0
	}
	return r
}

func parseFloatOr(s string, fallback float64) float64 {
	if s == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return f
}
