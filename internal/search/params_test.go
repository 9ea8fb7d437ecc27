package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugCodec(t *testing.T) {
	t.Run("round trip is order independent", func(t *testing.T) {
		a := ParseSlugs("moscow+spb")
		b := ParseSlugs("spb+moscow")
		assert.ElementsMatch(t, a, b)
		assert.Equal(t, JoinSlugs(a), JoinSlugs(b))
		assert.ElementsMatch(t, a, ParseSlugs(JoinSlugs(a)))
	})

	t.Run("sentinel decodes to nil", func(t *testing.T) {
		assert.Nil(t, ParseSlugs("-"))
		assert.Nil(t, ParseSlugs(""))
	})

	t.Run("empty set encodes to sentinel", func(t *testing.T) {
		assert.Equal(t, "-", JoinSlugs(nil))
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		assert.Equal(t, []string{"moscow"}, ParseSlugs("moscow+moscow"))
	})
}

func TestSelection(t *testing.T) {
	t.Run("unresolvable slug means empty scope, not an error", func(t *testing.T) {
		p := NewParams()
		p.Resorts = Select(nil) // requested but nothing resolved
		assert.True(t, p.Resorts.Empty())
		assert.True(t, p.Impossible())
	})

	t.Run("unrequested dimensions are unconstrained", func(t *testing.T) {
		p := NewParams()
		assert.False(t, p.Impossible())
		assert.True(t, p.Pooled)
		assert.Equal(t, 1, p.MinNights)
	})

	t.Run("resolved selection keeps the scope possible", func(t *testing.T) {
		p := NewParams()
		p.Cities = Select([]uint64{3, 4})
		assert.False(t, p.Impossible())
	})
}

func TestMonthToken(t *testing.T) {
	t.Run("parse and encode", func(t *testing.T) {
		m, y, err := ParseMonthToken("january-2026")
		require.NoError(t, err)
		assert.Equal(t, time.January, m)
		assert.Equal(t, 2026, y)

		assert.Equal(t, "january-2026", MonthToken(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("case insensitive", func(t *testing.T) {
		m, _, err := ParseMonthToken("March-2027")
		require.NoError(t, err)
		assert.Equal(t, time.March, m)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, _, err := ParseMonthToken("smarch-2026")
		assert.Error(t, err)
		_, _, err = ParseMonthToken("january")
		assert.Error(t, err)
	})
}

func TestMonthRange(t *testing.T) {
	today := time.Date(2026, 4, 17, 10, 0, 0, 0, time.UTC)

	t.Run("current month starts today", func(t *testing.T) {
		from, to, err := MonthRange("april-2026", today)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 4, 17, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC), to)
	})

	t.Run("future month covers the whole month", func(t *testing.T) {
		from, to, err := MonthRange("february-2027", today)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, time.Date(2027, 2, 28, 0, 0, 0, 0, time.UTC), to)
	})

	t.Run("december rolls the year for its last day", func(t *testing.T) {
		_, to, err := MonthRange("december-2026", today)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), to)
	})
}

func TestYearRange(t *testing.T) {
	today := time.Date(2026, 4, 17, 10, 0, 0, 0, time.UTC)

	from, to := YearRange(2026, today)
	assert.Equal(t, time.Date(2026, 4, 17, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), to)

	from, to = YearRange(2027, today)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC), to)
}
