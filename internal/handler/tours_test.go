package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mvolkova/travelads/internal/search"
)

func TestListingParams(t *testing.T) {
	t.Run("pooled scope narrows back to the selected city", func(t *testing.T) {
		p := search.NewParams()
		p.Cities = search.Select([]uint64{1, 2, 3}) // city plus satellites

		lp := listingParams(p, []uint64{1})
		assert.True(t, lp.Cities.Requested)
		assert.Equal(t, []uint64{1}, lp.Cities.IDs)
		// aggregate params keep the pooled set
		assert.Equal(t, []uint64{1, 2, 3}, p.Cities.IDs)
	})

	t.Run("root scope passes through", func(t *testing.T) {
		p := search.NewParams()
		lp := listingParams(p, nil)
		assert.False(t, lp.Cities.Requested)
	})

	t.Run("unresolved city slug stays requested and empty", func(t *testing.T) {
		p := search.NewParams()
		p.Cities = search.Select(nil)

		lp := listingParams(p, nil)
		assert.True(t, lp.Cities.Requested)
		assert.Empty(t, lp.Cities.IDs)
	})
}
