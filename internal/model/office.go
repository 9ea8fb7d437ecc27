package model

// Office is a sales office shown for the currently selected departure
// city.  Cities without their own offices fall back to the offices
// flagged Default, optionally supplemented by satellite-city offices.
//
// Fields:
//  ID         – primary key identifier.
//  CityID     – departure city the office belongs to.
//  Street     – street address.
//  OfficeInfo – free-form note for the address (optional).
//  Phone1     – primary phone.
//  Phone2     – secondary phone (optional).
//  WorkTime   – opening hours text.
//  Sort       – ordering weight, ascending.
//  Default    – used for cities without offices of their own.
type Office struct {
	ID         uint64 // offices.id
	CityID     uint64 // offices.city_id
	Street     string // offices.street
	OfficeInfo string // offices.office_info
	Phone1     string // offices.phone1
	Phone2     string // offices.phone2
	WorkTime   string // offices.work_time
	Sort       int    // offices.sort
	Default    bool   // offices.default
}
