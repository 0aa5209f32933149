package page

import (
	"yoga-master/biz/application/dto/yoga"
	"yoga-master/biz/infrastructure/consts"
)

// ParsePageOpt 未指定分页时返回 limit=0, 即不分页
func ParsePageOpt(p *yoga.PaginationOptions) (skip int64, limit int64) {
	if p == nil || p.Limit == nil || *p.Limit <= 0 {
		return 0, 0
	}
	limit = *p.Limit
	if limit > 10*consts.PageSize {
		limit = 10 * consts.PageSize
	}
	if p.Page != nil && *p.Page > 1 {
		skip = (*p.Page - 1) * limit
	}
	return skip, limit
}
