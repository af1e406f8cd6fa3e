package view

import (
	"strings"

	"gorm.io/gorm"
)

const maxSearchTerms = 8

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchTerms 按空白拆分关键词, 去重后最多保留maxSearchTerms个
func SearchTerms(query string) []string {
	seen := make(map[string]struct{})
	terms := make([]string, 0)
	for _, t := range strings.Fields(query) {
		t = strings.ToLower(t)
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		terms = append(terms, t)
		if len(terms) == maxSearchTerms {
			break
		}
	}
	return terms
}

// Search 任意关键词命中任意一列即匹配, 关键词中的LIKE通配符按字面量处理
// columns 必须是代码中的常量, 不能来自请求
func Search(query string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		terms := SearchTerms(query)
		if len(terms) == 0 || len(columns) == 0 {
			return db
		}
		conds := make([]string, 0, len(terms)*len(columns))
		vars := make([]interface{}, 0, len(terms)*len(columns))
		for _, t := range terms {
			pattern := "%" + likeEscaper.Replace(t) + "%"
			for _, c := range columns {
				conds = append(conds, c+" LIKE ?")
				vars = append(vars, pattern)
			}
		}
		return db.Where("("+strings.Join(conds, " OR ")+")", vars...)
	}
}

// MatchTerms 内存版本的Search, 与SQL的语义一致(大小写不敏感)
func MatchTerms(query string, fields ...string) bool {
	terms := SearchTerms(query)
	if len(terms) == 0 {
		return true
	}
	for _, t := range terms {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), t) {
				return true
			}
		}
	}
	return false
}
