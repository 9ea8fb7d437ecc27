package search

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Scope is the currently selected drill-down position expressed both
// as raw path segments (slug form, possibly the sentinel) and as the
// display name of the first selected entity per dimension.  The
// navigation generator derives every link set from it.
type Scope struct {
	CitySeg    string // departure city segment, e.g. "moscow+spb" or "-"
	CountrySeg string
	ResortSeg  string

	CityName    string // display name of the first selected city
	CountryName string
	ResortName  string
}

// Crumb is one breadcrumb entry.  URL is empty for the last crumb,
// which renders as plain text.
type Crumb struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Link annotates a child-scope URL with its aggregate count and
// minimum price for the "down" navigation block.
type Link struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	MinPrice int    `json:"min_price"`
	Count    int    `json:"count"`
}

// DownLists is the one-level-deeper navigation split into scopes that
// have matching tours and scopes that currently have none.  The
// unavailable part is still listed so the hierarchy stays browsable.
type DownLists struct {
	Available   []Link `json:"available"`
	Unavailable []Link `json:"unavailable"`
}

// ---- URL builders ----

const toursBase = "/v1/tours"

// CityURL builds the city-scope listing URL.
func CityURL(citySeg string) string {
	return fmt.Sprintf("%s/%s", toursBase, segOr(citySeg))
}

// CountryURL builds the country-scope listing URL.
func CountryURL(citySeg, countrySeg string) string {
	return fmt.Sprintf("%s/%s/%s", toursBase, segOr(citySeg), segOr(countrySeg))
}

// ResortURL builds the resort-scope listing URL.
func ResortURL(citySeg, countrySeg, resortSeg string) string {
	return fmt.Sprintf("%s/%s/%s/%s", toursBase, segOr(citySeg), segOr(countrySeg), segOr(resortSeg))
}

// DateURL builds the month-constrained listing URL for a scope.
func DateURL(s Scope, monthToken string) string {
	return fmt.Sprintf("%s/date/%s", ResortURL(s.CitySeg, s.CountrySeg, s.ResortSeg), monthToken)
}

// YearURL builds the year-constrained listing URL for a scope.
func YearURL(s Scope, year int) string {
	return fmt.Sprintf("%s/year/%d", ResortURL(s.CitySeg, s.CountrySeg, s.ResortSeg), year)
}

// AllInclusiveURL builds the all-inclusive listing URL for a scope.
func AllInclusiveURL(citySeg, countrySeg, resortSeg string) string {
	return fmt.Sprintf("%s/all-inclusive", ResortURL(citySeg, countrySeg, resortSeg))
}

func segOr(seg string) string {
	if seg == "" {
		return Unconstrained
	}
	return seg
}

// ---- Breadcrumbs ----

// Breadcrumbs derives the ordered trail from the root down to the
// most specific selected scope.  Every crumb before the last links to
// its scope; the last one is plain text.  A sentinel segment at a
// level renders the "all ..." wording for that level.
func Breadcrumbs(s Scope) []Crumb {
	crumbs := []Crumb{{Title: "Все туры"}}
	hasCity := s.CitySeg != ""
	hasCountry := s.CountrySeg != ""
	hasResort := s.ResortSeg != ""

	if hasCity {
		crumbs[0].URL = toursBase

		title := "Туры из всех городов"
		if s.CitySeg != Unconstrained {
			title = "Туры из " + s.CityName
		}
		c := Crumb{Title: title}
		if hasCountry {
			c.URL = CityURL(s.CitySeg)
		}
		crumbs = append(crumbs, c)
	}
	if hasCountry {
		title := "всех стран"
		if s.CountrySeg != Unconstrained {
			title = s.CountryName
		}
		c := Crumb{Title: title}
		if hasResort {
			c.URL = CountryURL(s.CitySeg, s.CountrySeg)
		}
		crumbs = append(crumbs, c)
	}
	if hasResort {
		title := "Все курорты"
		if s.ResortSeg != Unconstrained {
			title = s.ResortName
		}
		crumbs = append(crumbs, Crumb{Title: title})
	}
	return crumbs
}

// ---- Down lists ----

// DownEntry is one candidate child scope: an entity with its slug,
// plus its aggregate when the scope has matching tours.
type DownEntry struct {
	Name     string
	Translit string
	MinPrice int
	Count    int
}

// SplitDown builds the down navigation from the aggregated child
// scopes and the full reference list of that level.  Entities present
// in agg become available links with count and minimum price; the
// rest are listed as unavailable.  Both halves are sorted
// case-insensitively by name.
func SplitDown(all []DownEntry, agg map[string]DownEntry, urlFor func(translit string) string) DownLists {
	var down DownLists
	for _, e := range all {
		if a, ok := agg[e.Translit]; ok {
			down.Available = append(down.Available, Link{
				Name:     e.Name,
				URL:      urlFor(e.Translit),
				MinPrice: a.MinPrice,
				Count:    a.Count,
			})
		} else {
			down.Unavailable = append(down.Unavailable, Link{
				Name: e.Name,
				URL:  urlFor(e.Translit),
			})
		}
	}
	byName := func(links []Link) func(i, j int) bool {
		return func(i, j int) bool {
			return strings.ToLower(links[i].Name) < strings.ToLower(links[j].Name)
		}
	}
	sort.Slice(down.Available, byName(down.Available))
	sort.Slice(down.Unavailable, byName(down.Unavailable))
	return down
}

// ---- Date links ----

// DateLink is one "search by month" or "search by year" entry.  These
// links are exploratory: they are generated for the next twelve
// months and two years whether or not tours exist for the period.
type DateLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// DateLinks produces twelve month links starting from today's month
// plus links for the current and the next year, all within the given
// scope.
func DateLinks(s Scope, today time.Time) []DateLink {
	links := make([]DateLink, 0, 14)
	// Step from the first of the current month: adding months to a
	// day past the 28th would normalize into the wrong month.
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	for i := 0; i < 12; i++ {
		token := MonthToken(first.AddDate(0, i, 0))
		links = append(links, DateLink{Label: token, URL: DateURL(s, token)})
	}
	for i := 0; i < 2; i++ {
		year := today.Year() + i
		links = append(links, DateLink{Label: fmt.Sprintf("%d", year), URL: YearURL(s, year)})
	}
	return links
}

// ---- Satellite links ----

// SatelliteCity is the slice of a departure city the navigation needs.
type SatelliteCity struct {
	Name     string
	Translit string
}

// SatelliteLinks translates the current scope across each satellite
// city: the same country/resort selection re-rooted at the satellite.
func SatelliteLinks(s Scope, satellites []SatelliteCity) []Link {
	links := make([]Link, 0, len(satellites))
	for _, sat := range satellites {
		links = append(links, Link{
			Name: sat.Name,
			URL:  scopeURL(sat.Translit, s),
		})
	}
	return links
}

// PooledLink is the single link covering the city and all of its
// satellites at once.
func PooledLink(s Scope, satellites []SatelliteCity) string {
	slugs := make([]string, 0, len(satellites))
	for _, sat := range satellites {
		slugs = append(slugs, sat.Translit)
	}
	return scopeURL(JoinSlugs(slugs), s)
}

func scopeURL(citySeg string, s Scope) string {
	switch {
	case s.ResortSeg != "":
		return ResortURL(citySeg, s.CountrySeg, s.ResortSeg)
	case s.CountrySeg != "":
		return CountryURL(citySeg, s.CountrySeg)
	default:
		return CityURL(citySeg)
	}
}
