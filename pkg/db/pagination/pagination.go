package pagination

import "gorm.io/gorm"

const (
	defaultPageSize = 10
	maxPageSize     = 250
)

// Pagination is the page/size query shape the dashboard and partner tables use.
type Pagination struct {
	Page int `form:"page,default=1"`
	Size int `form:"size,default=10"`
}

type PageInfo struct {
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
}

func (p Pagination) normalized() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = defaultPageSize
	}
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}
	return p
}

func (p Pagination) Offset() int {
	n := p.normalized()
	return (n.Page - 1) * n.Size
}

func (p Pagination) Limit() int {
	return p.normalized().Size
}

// Apply adds LIMIT/OFFSET to a statement.
func (p Pagination) Apply(stmt *gorm.DB) *gorm.DB {
	return stmt.Offset(p.Offset()).Limit(p.Limit())
}

// BuildPageInfo pairs a page of results with the total row count.
func BuildPageInfo(p Pagination, total int64) PageInfo {
	n := p.normalized()
	return PageInfo{Page: n.Page, Size: n.Size, Total: total}
}
