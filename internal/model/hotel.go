package model

// Hotel is a lookup dimension joined to hotel-level tour facts.  The
// IsActual flag hides stale catalog entries from filter reference
// lists without deleting them.
type Hotel struct {
	ID       uint64   // hotels.id
	Name     string   // hotels.name
	Stars    string   // hotels.stars
	Rating   *float64 // hotels.rating (nullable)
	ResortID uint64   // hotels.resort_id
	IsActual bool     // hotels.is_actual
}

// Room is a room type dimension (original operator wording plus a
// localized label and the occupancy description).
type Room struct {
	ID       uint64 // rooms.id
	Room     string // rooms.room
	RoomRus  string // rooms.room_rus
	Place    string // rooms.place
	IsActual bool   // rooms.is_actual
}

// Meal is a meal plan dimension.  AllInclusive marks plans that count
// as "all inclusive" for the gated search blocks.
type Meal struct {
	ID           uint64 // meals.id
	Meal         string // meals.meal
	Description  string // meals.description
	AllInclusive bool   // meals.all_inclusive
}

// TourName is an operator-facing tour title dimension.
type TourName struct {
	ID       uint64 // tour_names.id
	Name     string // tour_names.name
	IsActual bool   // tour_names.is_actual
}

// TourOperator names the operator a detailed tour fact came from.
type TourOperator struct {
	ID   uint64 // tour_operators.id
	Name string // tour_operators.name
}
