package filter

import (
	"context"

	"github.com/rushteam/shopkit/core"
	"github.com/rushteam/shopkit/pkg/dsl"
)

// ExprFilter 按 CEL 表达式过滤：表达式为真的商品被剔除。
//
// 示例：
//   - `meta.rating < 3.0` → 剔除低分商品
//   - `label.strategy == "popularity" && item.score < 0.1` → 剔除弱热门
type ExprFilter struct {
	// Expr CEL 表达式；空表达式不过滤任何商品。
	Expr string
}

func (f *ExprFilter) Name() string { return "filter.expr" }

func (f *ExprFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Expr == "" || item == nil {
		return false, nil
	}
	return dsl.NewEval(item, rctx).Evaluate(f.Expr)
}

var _ Filter = (*ExprFilter)(nil)
