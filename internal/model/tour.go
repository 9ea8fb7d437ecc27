package model

import "time"

// Tour is one scanned tour fact: a departure city, a resort, a date
// and the minimum price found for that combination.  Only tours with
// both ticket directions available are bookable round trips and take
// part in search.  Rows are soft-marked NeedDel during a rescan and
// swapped out atomically instead of being deleted in place.
//
// Fields:
//  ID           – primary key identifier.
//  CityID       – departure city.
//  ResortID     – destination resort.
//  TourDate     – travel date (nullable).
//  ScanDate     – when this fact was scanned (nullable).
//  MinPrice     – minimum price found, >= 0.
//  Nights       – number of nights, >= 0.
//  TicketsDpt   – outbound tickets available.
//  TicketsRtn   – return tickets available.
//  AllInclusive – tour is flagged all-inclusive.
//  NeedDel      – marked for removal after a full rescan.
type Tour struct {
	ID           uint64     // tours.id
	CityID       uint64     // tours.city_id
	ResortID     uint64     // tours.resort_id
	TourDate     *time.Time // tours.tour_date (nullable)
	ScanDate     *time.Time // tours.scan_date (nullable)
	MinPrice     int        // tours.min_price
	Nights       int        // tours.nights
	TicketsDpt   bool       // tours.tickets_dpt
	TicketsRtn   bool       // tours.tickets_rtn
	AllInclusive bool       // tours.all_inclusive
	NeedDel      bool       // tours.need_del
}

// TourDetail is the hotel-level tour fact used by the extended search
// form.  It joins the lookup dimensions (hotel, room, meal, tour name,
// operator) to a single dated price.
type TourDetail struct {
	ID           uint64     // tour_details.id
	CityID       uint64     // tour_details.city_id
	ResortID     uint64     // tour_details.resort_id
	AreaID       *uint64    // tour_details.area_id (nullable)
	TourDate     *time.Time // tour_details.tour_date (nullable)
	ScanDate     *time.Time // tour_details.scan_date (nullable)
	Price        int        // tour_details.price
	Nights       int        // tour_details.nights
	TicketsDpt   bool       // tour_details.tickets_dpt
	TicketsRtn   bool       // tour_details.tickets_rtn
	HotelID      uint64     // tour_details.hotel_id
	RoomID       uint64     // tour_details.room_id
	MealID       uint64     // tour_details.meal_id
	TourNameID   uint64     // tour_details.tour_name_id
	OperatorID   *uint64    // tour_details.operator_id (nullable)
	AllInclusive bool       // tour_details.all_inclusive
	NeedDel      bool       // tour_details.need_del
}
