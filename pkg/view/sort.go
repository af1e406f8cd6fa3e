package view

import (
	"VideoTube.com/pkg/constants"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const DefaultSortKey = "createdAt"

// SortField 对外的排序字段名对应的列
type SortField struct {
	Table  string
	Column string
	// TieTable 提供次序主键的表, 为空时与Table相同
	TieTable string
}

// SortFields 各个列表允许的排序字段
type SortFields map[string]SortField

// CreatedSort 只允许按创建时间排序的列表
func CreatedSort(table string) SortFields {
	return SortFields{
		DefaultSortKey: {Table: table, Column: "created_at"},
	}
}

var VideoSortFields = SortFields{
	DefaultSortKey: {Table: constants.VideosTableName, Column: "created_at"},
	"updatedAt":    {Table: constants.VideosTableName, Column: "updated_at"},
	"views":        {Table: constants.VideosTableName, Column: "views"},
	"duration":     {Table: constants.VideosTableName, Column: "duration"},
	"title":        {Table: constants.VideosTableName, Column: "title"},
}

// OrderBy 主排序键之后追加主键作为稳定的次序, 方向与主排序键相同
// 雪花ID随时间递增, 因此主键顺序即创建顺序
func OrderBy(f SortField, desc bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		columns := []clause.OrderByColumn{
			{Column: clause.Column{Table: f.Table, Name: f.Column}, Desc: desc},
		}
		tie := f.TieTable
		if tie == "" {
			tie = f.Table
		}
		if f.Column != "id" || tie != f.Table {
			columns = append(columns, clause.OrderByColumn{
				Column: clause.Column{Table: tie, Name: "id"}, Desc: desc,
			})
		}
		return db.Order(clause.OrderBy{Columns: columns})
	}
}

// Paginate 取当前页
func Paginate(q PageQuery) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		q = q.Clamp()
		return db.Offset(int(q.Offset())).Limit(int(q.Limit))
	}
}
