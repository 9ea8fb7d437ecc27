package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvolkova/travelads/internal/model"
)

const donorPage = `<!DOCTYPE html>
<html><body>
  <h1 itemprop="name"> Сдам 2-к квартиру, 54 м² </h1>
  <div class="address">
    <span itemprop="addressLocality">Казань</span>
    <span class="district">Вахитовский</span>
    <span class="metro">Площадь Тукая</span>
  </div>
  <span itemprop="price">25 000 ₽/мес.</span>
  <div itemprop="description">Просторная квартира рядом с центром.</div>
  <div class="gallery">
    <img src="/img/1.jpg">
    <img src="/img/2.jpg">
    <img src="/img/1.jpg">
    <img src="https://cdn.example.com/3.jpg">
    <img>
  </div>
</body></html>`

func TestParseDonorPage(t *testing.T) {
	p := NewParser(Selectors{})
	d, err := p.Parse(strings.NewReader(donorPage), "https://www.avito.ru/kazan/kvartiry/123")
	require.NoError(t, err)

	assert.Equal(t, "Сдам 2-к квартиру, 54 м²", d.Title)
	assert.Equal(t, "Просторная квартира рядом с центром.", d.Description)
	require.NotNil(t, d.Price)
	assert.Equal(t, 25000, *d.Price)
	assert.Equal(t, "Казань", d.City)
	assert.Equal(t, "Вахитовский", d.District)
	assert.Equal(t, "Площадь Тукая", d.Metro)
	assert.Equal(t, model.DonorAvito, d.Donor)
	assert.Equal(t, "https://www.avito.ru/kazan/kvartiry/123", d.DonorURL)

	assert.Equal(t, []string{
		"https://www.avito.ru/img/1.jpg",
		"https://www.avito.ru/img/2.jpg",
		"https://cdn.example.com/3.jpg",
	}, d.PhotoURLs)
}

func TestParsePageWithoutTitle(t *testing.T) {
	p := NewParser(Selectors{})
	_, err := p.Parse(strings.NewReader("<html><body><p>nothing here</p></body></html>"), "https://cian.ru/x")
	require.ErrorIs(t, err, ErrNoTitle)
}

func TestDonorFor(t *testing.T) {
	cases := map[string]int{
		"https://www.avito.ru/kazan/1":   model.DonorAvito,
		"https://kazan.cian.ru/rent/2":   model.DonorCian,
		"https://www.domofond.ru/obj/3":  model.DonorDomofond,
		"http://dummy.local/abc":         model.DonorDummy,
		"::not-a-url":                    model.DonorDummy,
	}
	for u, want := range cases {
		assert.Equal(t, want, DonorFor(u), u)
	}
}

func TestParsePrice(t *testing.T) {
	assert.Equal(t, 25000, parsePrice("25 000 ₽/мес."))
	assert.Equal(t, 0, parsePrice("договорная"))
}

func TestChecksum(t *testing.T) {
	a := Checksum([]byte("photo-a"))
	b := Checksum([]byte("photo-b"))
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, Checksum([]byte("photo-a")))
}
