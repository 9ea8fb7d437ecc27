package model

// Country represents a destination country.  Countries group resorts
// and carry a translit slug used in search URLs.  The NameTo and
// NameWhere variants hold declined forms for rendered headings and
// fall back to Name when empty.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique country name.
//  NameTo    – "to which country" declined form (optional).
//  NameWhere – "in which country" declined form (optional).
//  Code      – external operator code (optional).
//  Translit  – URL-safe transliterated slug, indexed.
type Country struct {
	ID        uint64  // countries.id
	Name      string  // countries.name
	NameTo    string  // countries.name_to
	NameWhere string  // countries.name_where
	Code      *int    // countries.code (nullable)
	Translit  string  // countries.translit
}

// DisplayTo returns the declined "to X" form when present.
func (c Country) DisplayTo() string {
	if c.NameTo != "" {
		return c.NameTo
	}
	return c.Name
}

// DepartureCity represents a city tours depart from.  Cities may be
// pooled together through satellite links so that aggregates for a
// main city include tours from its satellites.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – city name.
//  NameFrom  – "from which city" declined form (optional).
//  Code      – external operator code (optional).
//  Translit  – URL-safe transliterated slug, indexed.
//  Latitude  – decimal latitude.
//  Longitude – decimal longitude.
type DepartureCity struct {
	ID        uint64  // departure_cities.id
	Name      string  // departure_cities.name
	NameFrom  string  // departure_cities.name_from
	Code      *int    // departure_cities.code (nullable)
	Translit  string  // departure_cities.translit
	Latitude  float64 // departure_cities.latitude
	Longitude float64 // departure_cities.longitude
}

// DisplayFrom returns the declined "from X" form when present.
func (c DepartureCity) DisplayFrom() string {
	if c.NameFrom != "" {
		return c.NameFrom
	}
	return "г. " + c.Name
}

// CitySatellite links a main departure city to one of its satellites.
// A satellite participates in pooled aggregates only when it is not
// flagged ignore and IsSatellite is set.  Manual marks links created
// by an operator rather than the distance-based autolinker.
//
// Fields:
//  ID          – primary key identifier.
//  CityID      – main city.
//  SatelliteID – pooled satellite city.
//  Manual      – link was created by hand.
//  Ignore      – exclude this satellite from pooling.
//  IsSatellite – link is an active satellite relation.
//  Distance    – distance between the cities in km.
type CitySatellite struct {
	ID          uint64 // city_satellites.id
	CityID      uint64 // city_satellites.city_id
	SatelliteID uint64 // city_satellites.satellite_id
	Manual      bool   // city_satellites.manual
	Ignore      bool   // city_satellites.ignore
	IsSatellite bool   // city_satellites.is_satellite
	Distance    uint16 // city_satellites.distance
}

// Resort represents a destination resort.  Every resort belongs to
// exactly one country.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – resort name.
//  NameTo    – "to which resort" declined form (optional).
//  NameWhere – "in which resort" declined form (optional).
//  CountryID – owning country.
//  Translit  – URL-safe transliterated slug, indexed.
//  IsChecked – resort data has been verified by an operator.
type Resort struct {
	ID        uint64 // resorts.id
	Name      string // resorts.name
	NameTo    string // resorts.name_to
	NameWhere string // resorts.name_where
	CountryID uint64 // resorts.country_id
	Translit  string // resorts.translit
	IsChecked bool   // resorts.is_checked
}

// ResortArea is a named district inside a resort, used by the
// hotel-level search filters.
type ResortArea struct {
	ID        uint64 // resort_areas.id
	ResortID  uint64 // resort_areas.resort_id
	Name      string // resort_areas.name
	FullName  string // resort_areas.full_name
	CountryID uint64 // resort_areas.country_id
	IsActual  bool   // resort_areas.is_actual
}
