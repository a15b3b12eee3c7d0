package pipeline

import (
	"context"
	"fmt"

	"github.com/rushteam/shopkit/core"
)

// Pipeline 把推荐逻辑拆成可组合的 Node 链
// （Recall → Filter → ReRank → PostProcess），顺序执行，
// 前一个 Node 的输出作为下一个的输入。
type Pipeline struct {
	Nodes []Node
}

// Run 依次执行所有 Node。任一 Node 出错立即终止，
// 错误带上 Node 名便于定位。空链原样返回输入。
func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		if node == nil {
			continue
		}
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", node.Name(), err)
		}
		cur = next
	}
	return cur, nil
}
