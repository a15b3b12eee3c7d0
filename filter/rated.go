package filter

import (
	"context"

	"github.com/rushteam/shopkit/core"
	"github.com/rushteam/shopkit/dataset"
)

// RatedFilter 过滤目标用户已经评过分的商品。
// 协同过滤打分在候选阶段已排除已评分商品；这个过滤器用在
// 混合链路上，保证内容/热门召回出来的商品同样不重复推给用户。
type RatedFilter struct {
	Table *dataset.Table
}

func (f *RatedFilter) Name() string { return "filter.rated" }

func (f *RatedFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Table == nil || rctx == nil || rctx.UserID == 0 || item == nil {
		return false, nil
	}
	for _, row := range f.Table.Rows() {
		if row.UserID == rctx.UserID && row.ItemID == item.ID {
			return true, nil
		}
	}
	return false, nil
}

var _ Filter = (*RatedFilter)(nil)
