// Package textgen builds advert titles and descriptions from phrase
// templates.  Each auto-generated field has an ordered list of phrase
// groups; one variant is drawn from each group and its placeholders
// are filled from the advert.  Variants whose placeholders cannot all
// be resolved are skipped, so sparse adverts still produce coherent
// text, just shorter.
package textgen

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/mvolkova/travelads/internal/model"
)

// Fields enabled for generation.  Matches the columns that carry an
// *_original counterpart.
var generatedFields = map[string]bool{
	"title":       true,
	"description": true,
}

// group is a set of interchangeable phrase variants.  Placeholders use
// {name} syntax and resolve against the advert's value map.
type group []string

var titleGroups = []group{
	{
		"Сдаётся {rooms}-комнатная квартира в г. {city}",
		"{rooms}-комнатная квартира, г. {city}",
		"Квартира в г. {city}, {district} р-н",
		"Сдаётся квартира в г. {city}",
		"Дом {area_house} кв. м, г. {city}",
		"Сдаётся дом в г. {city}",
	},
	{
		"за {price} руб.",
		"недорого",
		"",
	},
}

var descriptionGroups = []group{
	{
		"Сдаётся {rooms}-комнатная квартира общей площадью {area_total} кв. м.",
		"Предлагается квартира площадью {area_total} кв. м.",
		"Сдаётся уютная квартира в районе {district}.",
		"Сдаётся дом площадью {area_house} кв. м на участке {area_land} соток.",
		"Предлагается дом в г. {city}.",
	},
	{
		"Этаж {floor} из {floors_total}.",
		"Квартира расположена на {floor} этаже.",
		"",
	},
	{
		"В квартире есть: {comfort}.",
		"Удобства: {comfort}.",
		"",
	},
	{
		"Рядом метро {metro}.",
		"",
	},
	{
		"Цена {price} руб. Звоните!",
		"Стоимость: {price} руб.",
		"Цена договорная, звоните!",
	},
}

// Generator draws phrase variants with its own random source so tests
// can seed it for reproducible output.
type Generator struct {
	rng *rand.Rand
}

// New returns a Generator seeded for reproducible draws.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate produces the text for one auto-generated field of the
// advert.  Unknown field names are a validation error.
func (g *Generator) Generate(field string, a model.Advert) (string, error) {
	if !generatedFields[field] {
		return "", fmt.Errorf("field %q is not enabled for text generation", field)
	}
	groups := titleGroups
	if field == "description" {
		groups = descriptionGroups
	}
	vals := g.values(a)

	var parts []string
	for _, grp := range groups {
		if part, ok := g.pick(grp, vals); ok && part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " "), nil
}

// pick draws one resolvable variant from the group.  The draw order is
// a seeded shuffle so every variant has a chance while unresolvable
// ones are passed over.
func (g *Generator) pick(grp group, vals map[string]string) (string, bool) {
	order := g.rng.Perm(len(grp))
	for _, i := range order {
		if out, ok := fill(grp[i], vals); ok {
			return out, true
		}
	}
	return "", false
}

// fill substitutes {name} placeholders.  It reports false when any
// placeholder has no value for this advert.
func fill(tpl string, vals map[string]string) (string, bool) {
	out := tpl
	for {
		start := strings.Index(out, "{")
		if start < 0 {
			return out, true
		}
		end := strings.Index(out[start:], "}")
		if end < 0 {
			return out, true
		}
		name := out[start+1 : start+end]
		v, ok := vals[name]
		if !ok || v == "" {
			return "", false
		}
		out = out[:start] + v + out[start+end+1:]
	}
}

// values flattens the advert into the placeholder map.  Empty values
// are omitted so templates needing them get skipped.
func (g *Generator) values(a model.Advert) map[string]string {
	vals := map[string]string{}
	put := func(k, v string) {
		if v != "" {
			vals[k] = v
		}
	}
	putInt := func(k string, v *int) {
		if v != nil && *v > 0 {
			vals[k] = fmt.Sprintf("%d", *v)
		}
	}
	put("city", a.City)
	put("district", a.District)
	put("metro", a.Metro)
	put("address", a.Address())
	putInt("price", a.Price)
	if ap := a.Apartment; ap != nil {
		putInt("rooms", ap.RoomsNumber)
		putInt("floor", ap.Floor)
		putInt("floors_total", ap.FloorsTotal)
		putInt("area_total", ap.AreaTotal)
		putInt("area_living", ap.AreaLiving)
		putInt("area_kitchen", ap.AreaKitchen)
		putInt("beds", ap.BedsNumber)
		if comfort := ap.ComfortLabels(); len(comfort) > 0 {
			g.rng.Shuffle(len(comfort), func(i, j int) {
				comfort[i], comfort[j] = comfort[j], comfort[i]
			})
			put("comfort", strings.Join(comfort, ", "))
		}
	}
	if ct := a.Cottage; ct != nil {
		putInt("area_house", ct.AreaHouse)
		putInt("area_land", ct.AreaLand)
		putInt("cottage_floors", ct.NumberFloors)
	}
	return vals
}
