package view

import (
	"strings"
	"testing"

	"VideoTube.com/pkg/errno"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageQuery(t *testing.T) {
	tests := []struct {
		name                  string
		page, limit, sortType string
		wantPage, wantLimit   int64
		wantSortType          string
	}{
		{"defaults", "", "", "", 1, 10, SortDesc},
		{"non numeric falls back", "abc", "x", "", 1, 10, SortDesc},
		{"page below one", "-3", "5", "asc", 1, 5, SortAsc},
		{"limit above max", "2", "100", "ASC", 2, 20, SortAsc},
		{"limit zero", "1", "0", "desc", 1, 1, SortDesc},
		{"unknown sort type", "1", "10", "sideways", 1, 10, SortDesc},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ParsePageQuery(tt.page, tt.limit, "", tt.sortType)
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantLimit, q.Limit)
			assert.Equal(t, tt.wantSortType, q.SortType)
		})
	}
}

func TestOffset(t *testing.T) {
	q := ParsePageQuery("2", "5", "", "")
	assert.Equal(t, int64(5), q.Offset())
	q = ParsePageQuery("3", "20", "", "")
	assert.Equal(t, int64(40), q.Offset())
}

func TestResolveWhitelist(t *testing.T) {
	q, f, err := ParsePageQuery("1", "10", "", "").Resolve(VideoSortFields)
	require.NoError(t, err)
	assert.Equal(t, DefaultSortKey, q.SortBy)
	assert.Equal(t, "created_at", f.Column)

	_, f, err = ParsePageQuery("1", "10", "views", "asc").Resolve(VideoSortFields)
	require.NoError(t, err)
	assert.Equal(t, "views", f.Column)

	_, _, err = ParsePageQuery("1", "10", "password", "").Resolve(VideoSortFields)
	assert.True(t, errors.Is(err, errno.ParamErr))
}

func TestNewPage(t *testing.T) {
	q := ParsePageQuery("2", "5", "", "")
	p := NewPage([]int{6, 7, 8, 9, 10}, 12, q)
	assert.Equal(t, int64(3), p.TotalPages)
	assert.True(t, p.HasPrevPage)
	assert.True(t, p.HasNextPage)
	require.NotNil(t, p.PrevPage)
	require.NotNil(t, p.NextPage)
	assert.Equal(t, int64(1), *p.PrevPage)
	assert.Equal(t, int64(3), *p.NextPage)
	assert.Equal(t, int64(6), p.PagingCounter)

	empty := NewPage[int](nil, 0, ParsePageQuery("", "", "", ""))
	assert.NotNil(t, empty.Docs)
	assert.Equal(t, int64(1), empty.TotalPages)
	assert.False(t, empty.HasNextPage)
	assert.Nil(t, empty.NextPage)
}

func TestMapPageKeepsPaging(t *testing.T) {
	src := NewPage([]int{6, 7}, 12, ParsePageQuery("2", "5", "", ""))
	dst := MapPage(src, func(n int) string { return strings.Repeat("x", n) })
	assert.Equal(t, []string{"xxxxxx", "xxxxxxx"}, dst.Docs)
	assert.Equal(t, src.TotalDocs, dst.TotalDocs)
	assert.Equal(t, src.TotalPages, dst.TotalPages)
	assert.Equal(t, src.PagingCounter, dst.PagingCounter)
	assert.Equal(t, src.PrevPage, dst.PrevPage)
	assert.Equal(t, src.NextPage, dst.NextPage)

	empty := MapPage(NewPage[int](nil, 0, ParsePageQuery("", "", "", "")), func(n int) string { return "" })
	assert.NotNil(t, empty.Docs)
}

func TestWindowSecondPageOfTwelve(t *testing.T) {
	items := make([]int, 12)
	for i := range items {
		items[i] = i + 1
	}
	got := Window(items, ParsePageQuery("2", "5", "", ""))
	assert.Equal(t, []int{6, 7, 8, 9, 10}, got)
	assert.Empty(t, Window(items, ParsePageQuery("4", "5", "", "")))
}

func TestProperty_PagesConcatenate(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("pages 1..k equal the first k*limit items", prop.ForAll(
		func(n, limit, k int) bool {
			items := make([]int, n)
			for i := range items {
				items[i] = i
			}
			var got []int
			for page := 1; page <= k; page++ {
				q := PageQuery{Page: int64(page), Limit: int64(limit)}
				got = append(got, Window(items, q)...)
			}
			want := k * limit
			if want > n {
				want = n
			}
			if len(got) != want {
				return false
			}
			for i := range got {
				if got[i] != i {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 120),
		gen.IntRange(1, 20),
		gen.IntRange(1, 10),
	))

	properties.Property("total pages covers every document", prop.ForAll(
		func(total, limit int) bool {
			p := NewPage[int](nil, int64(total), PageQuery{Page: 1, Limit: int64(limit)})
			return p.TotalPages*p.Limit >= p.TotalDocs && (p.TotalPages-1)*p.Limit < p.TotalDocs || total == 0
		},
		gen.IntRange(0, 500),
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t)
}
