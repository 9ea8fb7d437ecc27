package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreadcrumbs(t *testing.T) {
	t.Run("root scope is a single plain crumb", func(t *testing.T) {
		crumbs := Breadcrumbs(Scope{})
		require.Len(t, crumbs, 1)
		assert.Equal(t, "Все туры", crumbs[0].Title)
		assert.Empty(t, crumbs[0].URL)
	})

	t.Run("city scope: root links, city is plain", func(t *testing.T) {
		crumbs := Breadcrumbs(Scope{CitySeg: "moscow", CityName: "Москва"})
		require.Len(t, crumbs, 2)
		assert.Equal(t, "/v1/tours", crumbs[0].URL)
		assert.Equal(t, "Туры из Москва", crumbs[1].Title)
		assert.Empty(t, crumbs[1].URL)
	})

	t.Run("full drill-down links everything but the last", func(t *testing.T) {
		crumbs := Breadcrumbs(Scope{
			CitySeg: "moscow", CityName: "Москва",
			CountrySeg: "turkey", CountryName: "Турция",
			ResortSeg: "antalya", ResortName: "Анталья",
		})
		require.Len(t, crumbs, 4)
		for _, c := range crumbs[:3] {
			assert.NotEmpty(t, c.URL, c.Title)
		}
		assert.Equal(t, "/v1/tours/moscow", crumbs[1].URL)
		assert.Equal(t, "/v1/tours/moscow/turkey", crumbs[2].URL)
		assert.Equal(t, "Анталья", crumbs[3].Title)
		assert.Empty(t, crumbs[3].URL)
	})

	t.Run("sentinel renders the all-of wording", func(t *testing.T) {
		crumbs := Breadcrumbs(Scope{CitySeg: "-", CountrySeg: "turkey", CountryName: "Турция"})
		require.Len(t, crumbs, 3)
		assert.Equal(t, "Туры из всех городов", crumbs[1].Title)
	})
}

func TestSplitDown(t *testing.T) {
	all := []DownEntry{
		{Name: "Турция", Translit: "turkey"},
		{Name: "Египет", Translit: "egypt"},
		{Name: "абхазия", Translit: "abkhazia"},
	}
	agg := map[string]DownEntry{
		"turkey": {MinPrice: 35000, Count: 12},
		"egypt":  {MinPrice: 41000, Count: 3},
	}
	urlFor := func(translit string) string { return CountryURL("moscow", translit) }

	down := SplitDown(all, agg, urlFor)

	require.Len(t, down.Available, 2)
	require.Len(t, down.Unavailable, 1)

	// case-insensitive name order
	assert.Equal(t, "Египет", down.Available[0].Name)
	assert.Equal(t, "Турция", down.Available[1].Name)

	assert.Equal(t, 35000, down.Available[1].MinPrice)
	assert.Equal(t, 12, down.Available[1].Count)
	assert.Equal(t, "/v1/tours/moscow/turkey", down.Available[1].URL)

	assert.Equal(t, "абхазия", down.Unavailable[0].Name)
	assert.Zero(t, down.Unavailable[0].Count)
}

func TestDateLinks(t *testing.T) {
	s := Scope{CitySeg: "moscow", CountrySeg: "-", ResortSeg: "-"}
	today := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	links := DateLinks(s, today)
	require.Len(t, links, 14)

	assert.Equal(t, "august-2026", links[0].Label)
	assert.Equal(t, "/v1/tours/moscow/-/-/date/august-2026", links[0].URL)
	assert.Equal(t, "july-2027", links[11].Label)
	assert.Equal(t, "2026", links[12].Label)
	assert.Equal(t, "/v1/tours/moscow/-/-/year/2027", links[13].URL)
}

func TestDateLinksMonthEnd(t *testing.T) {
	// A month-end date must still yield twelve distinct consecutive
	// months: naive AddDate from Jan 31 lands in March and skips
	// February.
	s := Scope{CitySeg: "-", CountrySeg: "-", ResortSeg: "-"}
	today := time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC)

	links := DateLinks(s, today)
	require.Len(t, links, 14)

	want := []string{
		"january-2026", "february-2026", "march-2026", "april-2026",
		"may-2026", "june-2026", "july-2026", "august-2026",
		"september-2026", "october-2026", "november-2026", "december-2026",
	}
	for i, label := range want {
		assert.Equal(t, label, links[i].Label)
	}
}

func TestSatelliteLinks(t *testing.T) {
	s := Scope{CitySeg: "moscow", CountrySeg: "turkey"}
	sats := []SatelliteCity{
		{Name: "Москва", Translit: "moscow"},
		{Name: "Домодедово", Translit: "domodedovo"},
	}

	links := SatelliteLinks(s, sats)
	require.Len(t, links, 2)
	assert.Equal(t, "/v1/tours/domodedovo/turkey", links[1].URL)

	pooled := PooledLink(s, sats)
	assert.Equal(t, "/v1/tours/domodedovo+moscow/turkey", pooled)
}
