package shopapi

import (
	"math"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcGrol/shopcart/lib/myerrors"
)

func TestPageRequest(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		req, err := NewPageRequestFromValues(url.Values{})
		assert.NoError(t, err)
		assert.Equal(t, PageRequest{Page: 1, Limit: 10}, req)
		assert.Equal(t, 0, req.Offset())
	})

	t.Run("Explicit", func(t *testing.T) {
		req, err := NewPageRequestFromValues(url.Values{"page": {"3"}, "limit": {"4"}, "id": {"user-1"}})
		assert.NoError(t, err)
		assert.Equal(t, PageRequest{Page: 3, Limit: 4, OwnerUID: "user-1"}, req)
		assert.Equal(t, 8, req.Offset())
	})

	t.Run("Not a number", func(t *testing.T) {
		_, err := NewPageRequestFromValues(url.Values{"page": {"abc"}})
		assert.True(t, myerrors.IsInvalidInput(err))
	})

	t.Run("Negative", func(t *testing.T) {
		_, err := NewPageRequestFromValues(url.Values{"limit": {"-1"}})
		assert.True(t, myerrors.IsInvalidInput(err))
	})

	t.Run("Limit above maximum", func(t *testing.T) {
		_, err := NewPageRequestFromValues(url.Values{"limit": {"101"}})
		assert.True(t, myerrors.IsInvalidInput(err))
	})

	t.Run("Page whose window overflows", func(t *testing.T) {
		_, err := NewPageRequestFromValues(url.Values{"page": {"4611686018427387904"}, "limit": {"4"}})
		assert.True(t, myerrors.IsInvalidInput(err))
	})

	t.Run("Last addressable page", func(t *testing.T) {
		req, err := NewPageRequestFromValues(url.Values{"page": {strconv.Itoa(math.MaxInt / 100)}, "limit": {"100"}})
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, req.Offset(), 0)
	})

	t.Run("To values", func(t *testing.T) {
		values, err := PageRequest{Page: 2, Limit: 4}.ToValues()
		require.NoError(t, err)
		assert.Equal(t, "2", values.Get("page"))
		assert.Equal(t, "4", values.Get("limit"))
		_, found := values["id"]
		assert.False(t, found)
	})
}

func TestPagination(t *testing.T) {
	testCases := []struct {
		total      int
		limit      int
		totalPages int
	}{
		{total: 0, limit: 4, totalPages: 0},
		{total: 4, limit: 4, totalPages: 1},
		{total: 5, limit: 4, totalPages: 2},
		{total: 9, limit: 10, totalPages: 1},
	}
	for _, tc := range testCases {
		p := PageRequest{Page: 1, Limit: tc.limit}.Pagination(tc.total)
		assert.Equal(t, tc.totalPages, p.TotalPages, "total %d limit %d", tc.total, tc.limit)
		assert.Equal(t, tc.total, p.TotalItems)
	}
}

func TestValidateDraft(t *testing.T) {
	assert.NoError(t, ProductDraft{Name: "Pen", Price: 100}.Validate())

	for _, draft := range []ProductDraft{{Price: 100}, {Name: "Pen"}, {Name: "Pen", Price: -1}} {
		err := draft.Validate()
		assert.True(t, myerrors.IsInvalidInput(err), "%+v", draft)
	}
	assert.Equal(t, "Name and price are required.", myerrors.Message(ProductDraft{}.Validate()))
}
