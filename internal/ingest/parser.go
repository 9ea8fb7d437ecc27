// Package ingest turns donor listing pages into advert drafts.  Each
// donor site gets a Selectors set describing where the fields live in
// its markup; the parser itself is donor-agnostic.
package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mvolkova/travelads/internal/model"
)

// ErrNoTitle is returned when the page has no recognizable title: the
// page is either not an advert or the donor changed its markup.
var ErrNoTitle = errors.New("donor page has no title")

// Selectors maps advert fields to CSS selectors in donor markup.
// Photos selects img elements; their src attribute is collected.
type Selectors struct {
	Title       string
	Price       string
	Description string
	City        string
	District    string
	Metro       string
	Photos      string
}

// DefaultSelectors covers the common donor markup: semantic
// itemprop attributes with a plain photo gallery.
var DefaultSelectors = Selectors{
	Title:       `[itemprop="name"], h1`,
	Price:       `[itemprop="price"], .price`,
	Description: `[itemprop="description"], .description`,
	City:        `[itemprop="addressLocality"]`,
	District:    `.address .district`,
	Metro:       `.address .metro`,
	Photos:      `.gallery img`,
}

// Draft is the parsed form of a donor page, ready to be inserted as a
// new advert once a category is chosen.
type Draft struct {
	Title       string
	Description string
	Price       *int
	City        string
	District    string
	Metro       string
	DonorURL    string
	Donor       int
	PhotoURLs   []string
}

// Parser extracts advert drafts from donor HTML.
type Parser struct {
	sel Selectors
}

// NewParser returns a Parser using the given selectors, or
// DefaultSelectors when the zero value is passed.
func NewParser(sel Selectors) *Parser {
	if sel == (Selectors{}) {
		sel = DefaultSelectors
	}
	return &Parser{sel: sel}
}

// Parse reads one donor page and builds a draft.  The donor source is
// derived from the page URL's host.  Photo URLs are resolved against
// the page URL and deduplicated in order.
func (p *Parser) Parse(r io.Reader, pageURL string) (Draft, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Draft{}, err
	}

	d := Draft{
		Title:       text(doc, p.sel.Title),
		Description: text(doc, p.sel.Description),
		City:        text(doc, p.sel.City),
		District:    text(doc, p.sel.District),
		Metro:       text(doc, p.sel.Metro),
		DonorURL:    pageURL,
		Donor:       DonorFor(pageURL),
	}
	if d.Title == "" {
		return Draft{}, ErrNoTitle
	}
	if raw := text(doc, p.sel.Price); raw != "" {
		if n := parsePrice(raw); n > 0 {
			d.Price = &n
		}
	}

	base, _ := url.Parse(pageURL)
	seen := map[string]bool{}
	doc.Find(p.sel.Photos).Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok || src == "" {
			return
		}
		if base != nil {
			if u, err := url.Parse(src); err == nil {
				src = base.ResolveReference(u).String()
			}
		}
		if !seen[src] {
			seen[src] = true
			d.PhotoURLs = append(d.PhotoURLs, src)
		}
	})
	return d, nil
}

func text(doc *goquery.Document, sel string) string {
	if sel == "" {
		return ""
	}
	return strings.TrimSpace(doc.Find(sel).First().Text())
}

// parsePrice keeps the digits of a price label such as "25 000 ₽/мес.".
func parsePrice(raw string) int {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}

// DonorFor maps a donor page URL to its donor source code.
func DonorFor(pageURL string) int {
	u, err := url.Parse(pageURL)
	if err != nil {
		return model.DonorDummy
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch {
	case strings.HasSuffix(host, "avito.ru"):
		return model.DonorAvito
	case strings.HasSuffix(host, "cian.ru"):
		return model.DonorCian
	case strings.HasSuffix(host, "domofond.ru"):
		return model.DonorDomofond
	}
	return model.DonorDummy
}

// Checksum is the content digest stored with each downloaded photo.
// It doubles as the duplicate-image key.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
