package complaints

import (
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/triage/pkg/query"
)

func TestFiltersFromQuery(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		f, err := FiltersFromQuery(url.Values{})
		require.NoError(t, err)
		assert.Nil(t, f.Status)
		assert.Nil(t, f.FromTimestamp)
	})

	t.Run("status and window", func(t *testing.T) {
		f, err := FiltersFromQuery(url.Values{"status": {"closed"}, "from_timestamp": {"60"}})
		require.NoError(t, err)
		require.NotNil(t, f.Status)
		require.NotNil(t, f.FromTimestamp)
		assert.Equal(t, StatusClosed, *f.Status)
		assert.Equal(t, 60, *f.FromTimestamp)
	})

	for _, values := range []url.Values{
		{"status": {"OPEN"}},
		{"from_timestamp": {"1.5"}},
		{"from_timestamp": {"-1"}},
	} {
		t.Run("rejects "+values.Encode(), func(t *testing.T) {
			_, err := FiltersFromQuery(values)
			assert.True(t, errors.Is(err, ErrInvalidFilter), "err = %v", err)
		})
	}
}

func TestFiltersSince(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	zero, hour := 0, 3600

	assert.Nil(t, Filters{}.Since(now))
	assert.Nil(t, Filters{FromTimestamp: &zero}.Since(now))

	since := Filters{FromTimestamp: &hour}.Since(now)
	require.NotNil(t, since)
	assert.Equal(t, now.Add(-time.Hour), *since)

	for _, raw := range []string{"9223372036", "10000000000", "9223372036854775807"} {
		t.Run("window "+raw, func(t *testing.T) {
			f, err := FiltersFromQuery(url.Values{"from_timestamp": {raw}})
			require.NoError(t, err)

			if since := f.Since(now); since != nil {
				assert.False(t, since.After(now), "lower bound %s is after now", since)
			}
		})
	}

	huge := int(maxWindow) + 1
	assert.Nil(t, Filters{FromTimestamp: &huge}.Since(now))
}

func TestFiltersApply(t *testing.T) {
	status := StatusOpen
	window := 300

	t.Run("no filters orders newest first", func(t *testing.T) {
		sql, args := Filters{}.Apply(query.NewBuilder(projection, defaultSort)).Build()
		assert.NotContains(t, sql, "WHERE")
		assert.True(t, strings.HasSuffix(sql, "ORDER BY c.created_at DESC"), sql)
		assert.Empty(t, args)
	})

	t.Run("status and window", func(t *testing.T) {
		before := time.Now().UTC()
		f := Filters{Status: &status, FromTimestamp: &window}
		sql, args := f.Apply(query.NewBuilder(projection, defaultSort)).Build()

		assert.Contains(t, sql, "WHERE c.status = $1 AND c.created_at >= $2")
		require.Len(t, args, 2)
		statusArg, ok := args[0].(*string)
		require.True(t, ok)
		assert.Equal(t, "open", *statusArg)

		cutoff, ok := args[1].(time.Time)
		require.True(t, ok)
		assert.WithinDuration(t, before.Add(-5*time.Minute), cutoff, time.Second)
	})
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusOpen.Valid())
	assert.True(t, StatusClosed.Valid())
	assert.False(t, Status("").Valid())
	assert.False(t, Status("pending").Valid())
}
