package view

import (
	"strconv"
	"strings"

	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/errno"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// PageQuery 列表请求的分页与排序参数
type PageQuery struct {
	Page     int64
	Limit    int64
	SortBy   string
	SortType string
}

// ParsePageQuery 从原始的query参数构造PageQuery, 非数字按缺省值处理
func ParsePageQuery(page, limit, sortBy, sortType string) PageQuery {
	q := PageQuery{
		Page:     parseInt(page, constants.DefaultPage),
		Limit:    parseInt(limit, constants.DefaultLimit),
		SortBy:   strings.TrimSpace(sortBy),
		SortType: strings.ToLower(strings.TrimSpace(sortType)),
	}
	return q.Clamp()
}

func parseInt(s string, def int64) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return def
	}
	return n
}

// Clamp page>=1, 1<=limit<=20, sortType只接受asc, 其余均为desc
func (q PageQuery) Clamp() PageQuery {
	if q.Page < 1 {
		q.Page = constants.DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = 1
	}
	if q.Limit > constants.MaxLimit {
		q.Limit = constants.MaxLimit
	}
	if q.SortType != SortAsc {
		q.SortType = SortDesc
	}
	return q
}

func (q PageQuery) Offset() int64 {
	return (q.Page - 1) * q.Limit
}

func (q PageQuery) Desc() bool {
	return q.SortType != SortAsc
}

// Resolve 按白名单解析排序字段, 缺省为创建时间
func (q PageQuery) Resolve(fields SortFields) (PageQuery, SortField, error) {
	q = q.Clamp()
	if q.SortBy == "" {
		q.SortBy = DefaultSortKey
	}
	f, ok := fields[q.SortBy]
	if !ok {
		return q, SortField{}, errno.ParamErr.WithMessage("unsupported sortBy: " + q.SortBy)
	}
	return q, f, nil
}

// Page 列表接口统一的返回结构
type Page[T any] struct {
	Docs          []T    `json:"docs"`
	TotalDocs     int64  `json:"totalDocs"`
	Limit         int64  `json:"limit"`
	Page          int64  `json:"page"`
	TotalPages    int64  `json:"totalPages"`
	PagingCounter int64  `json:"pagingCounter"`
	HasPrevPage   bool   `json:"hasPrevPage"`
	HasNextPage   bool   `json:"hasNextPage"`
	PrevPage      *int64 `json:"prevPage"`
	NextPage      *int64 `json:"nextPage"`
}

func NewPage[T any](docs []T, total int64, q PageQuery) *Page[T] {
	q = q.Clamp()
	if docs == nil {
		docs = make([]T, 0)
	}
	totalPages := (total + q.Limit - 1) / q.Limit
	if totalPages < 1 {
		totalPages = 1
	}
	p := &Page[T]{
		Docs:          docs,
		TotalDocs:     total,
		Limit:         q.Limit,
		Page:          q.Page,
		TotalPages:    totalPages,
		PagingCounter: q.Offset() + 1,
		HasPrevPage:   q.Page > 1,
		HasNextPage:   q.Page < totalPages,
	}
	if p.HasPrevPage {
		prev := q.Page - 1
		p.PrevPage = &prev
	}
	if p.HasNextPage {
		next := q.Page + 1
		p.NextPage = &next
	}
	return p
}

// MapPage 转换Docs的类型, 分页信息保持不变
func MapPage[S, T any](p *Page[S], fn func(S) T) *Page[T] {
	docs := make([]T, 0, len(p.Docs))
	for _, d := range p.Docs {
		docs = append(docs, fn(d))
	}
	return &Page[T]{
		Docs:          docs,
		TotalDocs:     p.TotalDocs,
		Limit:         p.Limit,
		Page:          p.Page,
		TotalPages:    p.TotalPages,
		PagingCounter: p.PagingCounter,
		HasPrevPage:   p.HasPrevPage,
		HasNextPage:   p.HasNextPage,
		PrevPage:      p.PrevPage,
		NextPage:      p.NextPage,
	}
}

// Window 对已排序的切片取当前页
func Window[T any](items []T, q PageQuery) []T {
	q = q.Clamp()
	off := q.Offset()
	if off >= int64(len(items)) {
		return []T{}
	}
	end := off + q.Limit
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	return items[off:end]
}
