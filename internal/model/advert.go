package model

import (
	"fmt"
	"time"
)

// Category kinds select which payload variant an advert carries.
// The set is closed: every category declares exactly one kind and
// the variant payload is decoded from the same adverts row.
const (
	KindApartment = "apartment"
	KindCottage   = "cottage"
)

// Category groups adverts and declares their payload variant.
//
// Fields:
//  ID    – primary key identifier.
//  Title – unique human-readable name.
//  Alias – URL slug.
//  Kind  – payload variant tag (apartment | cottage).
type Category struct {
	ID    uint64 // categories.id
	Title string // categories.title
	Alias string // categories.alias
	Kind  string // categories.kind
}

// Donor sources for ingested adverts.  DonorDummy marks adverts
// created through the bulk-create form rather than a parser.
const (
	DonorDummy  = 0
	DonorAvito  = 1
	DonorCian   = 2
	DonorDomofond = 3
)

// Advert is one classified advertisement.  Adverts are never hard
// deleted: hiding sets Visible to false.  Title and Description hold
// the working auto-generated texts while the *_Original fields keep
// the donor's version for restore.  DonorURL is globally unique and
// is the dedupe key for ingested adverts.
//
// Fields:
//  ID                  – primary key identifier.
//  CategoryID          – owning category.
//  Status              – workflow status code (see internal/workflow).
//  City/District/Metro – location labels (optional).
//  Title               – working title (auto-generated when empty on save).
//  TitleOriginal       – donor title.
//  Description         – working description.
//  DescriptionOriginal – donor description.
//  Price               – price in rubles (nullable).
//  Visible             – soft-delete flag, false hides the advert.
//  Donor               – donor source code.
//  DonorURL            – unique source URL.
//  CreatedAt           – ingestion timestamp.
//  UpdatedAt           – last mutation timestamp.
//  Apartment/Cottage   – payload variant selected by the category kind,
//                        exactly one is non-nil for a loaded advert.
type Advert struct {
	ID                  uint64     // adverts.id
	CategoryID          uint64     // adverts.category_id
	Status              int        // adverts.status
	City                string     // adverts.city
	District            string     // adverts.district
	Metro               string     // adverts.metro
	Title               string     // adverts.title
	TitleOriginal       string     // adverts.title_original
	Description         string     // adverts.description
	DescriptionOriginal string     // adverts.description_original
	Price               *int       // adverts.price (nullable)
	Visible             bool       // adverts.visible
	Donor               int        // adverts.donor
	DonorURL            string     // adverts.donor_url
	CreatedAt           time.Time  // adverts.created_at
	UpdatedAt           time.Time  // adverts.updated_at

	Apartment *ApartmentDetails
	Cottage   *CottageDetails
}

// ApartmentDetails is the apartment payload variant.
type ApartmentDetails struct {
	Street            string   // adverts.street
	HouseNumber       string   // adverts.house_number
	HouseMaterial     *int     // adverts.house_material (nullable)
	RoomsNumber       *int     // adverts.rooms_number
	Floor             *int     // adverts.floor
	FloorsTotal       *int     // adverts.floors_total
	AreaLiving        *int     // adverts.area_living
	AreaTotal         *int     // adverts.area_total
	AreaKitchen       *int     // adverts.area_kitchen
	CeilingHeight     *float64 // adverts.ceiling_height
	BedsNumber        *int     // adverts.beds_number
	Condition         *int     // adverts.condition
	ApartmentType     *int     // adverts.apartment_type
	HasFurniture      bool     // adverts.has_furniture
	HasKitchen        bool     // adverts.has_kitchen
	HasRefrigerator   bool     // adverts.has_refrigerator
	HasWashingMachine bool     // adverts.has_washing_machine
	HasConditioner    bool     // adverts.has_conditioner
	HasTV             bool     // adverts.has_tv
	HasInternet       bool     // adverts.has_internet
}

// CottageDetails is the cottage payload variant.
type CottageDetails struct {
	AreaHouse    *int // adverts.area_house
	AreaLand     *int // adverts.area_land
	WallMaterial *int // adverts.wall_material (nullable)
	NumberFloors *int // adverts.number_floors
}

// StatItem is one label/value pair in an advert's detail listing.
type StatItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ShortStatsLimit caps the short stat list shown in advert cards.
const ShortStatsLimit = 4

// ComfortLabels enumerates the comfort features of an apartment that
// are present.  The sequence is computed fresh on every call; there is
// no shared iteration state.
func (a *ApartmentDetails) ComfortLabels() []string {
	var out []string
	add := func(ok bool, label string) {
		if ok {
			out = append(out, label)
		}
	}
	add(a.HasFurniture, "мебель")
	add(a.HasKitchen, "кухня")
	add(a.HasRefrigerator, "холодильник")
	add(a.HasWashingMachine, "посудомоечная машина")
	add(a.HasConditioner, "кондиционер")
	add(a.HasTV, "телевизор")
	add(a.HasInternet, "интернет")
	return out
}

// Address assembles the hierarchical address line for an apartment
// advert.  Each deeper component is only added when its parent is set.
func (a Advert) Address() string {
	if a.City == "" {
		return ""
	}
	addr := "г. " + a.City
	if a.District == "" {
		return addr
	}
	addr += ", " + a.District + " р-н"
	if a.Apartment == nil || a.Apartment.Street == "" {
		return addr
	}
	addr += ", " + a.Apartment.Street
	if a.Apartment.HouseNumber != "" {
		addr += " " + a.Apartment.HouseNumber
	}
	return addr
}

// DaysSinceCreated reports the advert's age in whole days.
func (a Advert) DaysSinceCreated(now time.Time) int {
	return int(now.Sub(a.CreatedAt).Hours() / 24)
}

// StatItems builds the full detail listing for the advert: base stats
// first, then variant stats, then comfort features.  The slice is
// rebuilt on every call so callers may truncate or reorder freely.
func (a Advert) StatItems(now time.Time) []StatItem {
	var items []StatItem
	if a.Price != nil && *a.Price > 0 {
		items = append(items, StatItem{"Цена", fmt.Sprintf("%d руб.", *a.Price)})
	}
	switch {
	case a.Apartment != nil:
		items = append(items, a.Apartment.statItems()...)
	case a.Cottage != nil:
		items = append(items, a.Cottage.statItems()...)
	}
	items = append(items, StatItem{"Счётчик жизни объявления", fmt.Sprintf("%d дн.", a.DaysSinceCreated(now))})
	return items
}

// ShortStats returns the truncated stat list for advert cards.
func (a Advert) ShortStats(now time.Time) []StatItem {
	items := a.StatItems(now)
	if len(items) > ShortStatsLimit {
		items = items[:ShortStatsLimit]
	}
	return items
}

func (a *ApartmentDetails) statItems() []StatItem {
	var items []StatItem
	if v := a.RoomsNumber; v != nil && *v > 0 {
		items = append(items, StatItem{"Количество комнат", fmt.Sprintf("%d", *v)})
	}
	if v := a.Floor; v != nil && *v > 0 {
		val := fmt.Sprintf("%d", *v)
		if t := a.FloorsTotal; t != nil && *t > 0 {
			val = fmt.Sprintf("%d/%d", *v, *t)
		}
		items = append(items, StatItem{"Этаж", val})
	}
	if v := a.AreaLiving; v != nil && *v > 0 {
		items = append(items, StatItem{"Жилая площадь", fmt.Sprintf("%d кв. м", *v)})
	}
	if v := a.AreaTotal; v != nil && *v > 0 {
		items = append(items, StatItem{"Общая площадь", fmt.Sprintf("%d кв. м", *v)})
	}
	if v := a.AreaKitchen; v != nil && *v > 0 {
		items = append(items, StatItem{"Площадь кухни", fmt.Sprintf("%d кв. м", *v)})
	}
	if v := a.BedsNumber; v != nil && *v > 0 {
		items = append(items, StatItem{"Спальных мест", fmt.Sprintf("%d", *v)})
	}
	for _, label := range a.ComfortLabels() {
		items = append(items, StatItem{capitalize(label), "да"})
	}
	return items
}

func (c *CottageDetails) statItems() []StatItem {
	var items []StatItem
	if v := c.AreaHouse; v != nil && *v > 0 {
		items = append(items, StatItem{"Площадь дома", fmt.Sprintf("%d кв. м", *v)})
	}
	if v := c.AreaLand; v != nil && *v > 0 {
		items = append(items, StatItem{"Площадь участка", fmt.Sprintf("%d соток", *v)})
	}
	if v := c.NumberFloors; v != nil && *v > 0 {
		items = append(items, StatItem{"Кол-во этажей", fmt.Sprintf("%d", *v)})
	}
	return items
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	// Cyrillic lowercase а..я sits 32 code points above uppercase.
	if r[0] >= 'а' && r[0] <= 'я' {
		r[0] -= 32
	} else if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 32
	}
	return string(r)
}
