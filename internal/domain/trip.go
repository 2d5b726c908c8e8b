// Package domain contains the core data types for the Wanderlust itinerary
// planner. This package has zero external dependencies and is imported by
// every other internal package (store, service, handler).
//
// JSON tags mirror the persisted representation byte for byte: the whole trip
// collection is serialized as one JSON array under a single storage key, and
// exports reuse the same shape.
package domain

// TripStatus is the lifecycle label of a trip. The system never transitions
// it automatically; it is set at creation and changed only by explicit update.
type TripStatus string

const (
	StatusPlanning  TripStatus = "planning"
	StatusActive    TripStatus = "active"
	StatusCompleted TripStatus = "completed"
)

// Trip is a complete planned journey. It is the top-level aggregate: a trip
// exclusively owns its days, and each day exclusively owns its items.
//
// StartDate and EndDate are ISO 8601 date strings ("2006-01-02"). The system
// does not enforce StartDate <= EndDate, nor that day dates fall inside the
// range — flexible authoring is tolerated, matching the stored data in the
// wild.
type Trip struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	StartDate    string      `json:"startDate"`
	EndDate      string      `json:"endDate"`
	Participants int         `json:"participants"`
	Status       TripStatus  `json:"status"`
	Days         []TravelDay `json:"days"`
}

// TravelDay is one calendar day of a trip. Items is the visit order: the
// slice position is the order, directly manipulated by drag reorder. The
// advisory per-item Time field is never used for sorting.
type TravelDay struct {
	ID    string          `json:"id"`
	Date  string          `json:"date"`
	Items []ItineraryItem `json:"items"`
}

// TripDraft carries the user-supplied fields for creating a trip.
// The service assigns the ID and the initial day.
type TripDraft struct {
	Name         string
	StartDate    string
	EndDate      string
	Participants int
	Status       TripStatus
}

// TripPatch is a partial update of a trip's own fields (not its days).
// Nil pointers leave the corresponding field unchanged.
type TripPatch struct {
	Name         *string
	StartDate    *string
	EndDate      *string
	Participants *int
	Status       *TripStatus
}
