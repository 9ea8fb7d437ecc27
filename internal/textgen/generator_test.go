package textgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvolkova/travelads/internal/model"
)

func intp(v int) *int { return &v }

func sampleApartment() model.Advert {
	return model.Advert{
		City:     "Казань",
		District: "Вахитовский",
		Price:    intp(25000),
		Apartment: &model.ApartmentDetails{
			RoomsNumber:  intp(2),
			Floor:        intp(3),
			FloorsTotal:  intp(9),
			AreaTotal:    intp(54),
			HasFurniture: true,
			HasInternet:  true,
		},
	}
}

func TestGenerateUnknownField(t *testing.T) {
	g := New(1)
	_, err := g.Generate("price", sampleApartment())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enabled for text generation")
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	a := sampleApartment()

	first, err := New(42).Generate("description", a)
	require.NoError(t, err)
	second, err := New(42).Generate("description", a)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestGenerateSkipsUnresolvablePhrases(t *testing.T) {
	// Bare advert: only the city is known.
	a := model.Advert{City: "Казань", Apartment: &model.ApartmentDetails{}}

	g := New(7)
	title, err := g.Generate("title", a)
	require.NoError(t, err)

	assert.NotContains(t, title, "{")
	assert.Contains(t, title, "Казань")
}

func TestGenerateDescriptionUsesComfort(t *testing.T) {
	a := sampleApartment()

	// Try several seeds; at least one draw should pick a comfort
	// phrase since the advert has comfort features.
	found := false
	for seed := int64(0); seed < 20 && !found; seed++ {
		text, err := New(seed).Generate("description", a)
		require.NoError(t, err)
		if strings.Contains(text, "мебель") || strings.Contains(text, "интернет") {
			found = true
		}
	}
	assert.True(t, found, "no seed produced a comfort phrase")
}

func TestGenerateCottage(t *testing.T) {
	a := model.Advert{
		City:  "Казань",
		Price: intp(40000),
		Cottage: &model.CottageDetails{
			AreaHouse: intp(120),
			AreaLand:  intp(6),
		},
	}
	g := New(3)
	text, err := g.Generate("description", a)
	require.NoError(t, err)
	assert.NotContains(t, text, "{")
	assert.NotEmpty(t, text)
}
