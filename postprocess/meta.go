// Package postprocess 提供出口前的结果修饰节点。
package postprocess

import (
	"context"

	"github.com/rushteam/shopkit/core"
	"github.com/rushteam/shopkit/dataset"
	"github.com/rushteam/shopkit/pipeline"
)

// MetaNode 在出口前把展示元信息补到每个商品上：
// Name / Brand / ImageURL / ReviewCount / Rating（取目录中该商品的首行）。
// 调用方只看这些字段，内部混合分数不透出展示层。
type MetaNode struct {
	Table *dataset.Table
}

func (n *MetaNode) Name() string {
	return "postprocess.meta"
}

func (n *MetaNode) Kind() pipeline.Kind {
	return pipeline.KindPostProcess
}

func (n *MetaNode) Process(
	ctx context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Table == nil || len(items) == 0 {
		return items, nil
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		row, ok := n.Table.ItemMeta(it.ID)
		if !ok {
			continue
		}
		it.PutMeta(core.MetaName, row.Name)
		it.PutMeta(core.MetaBrand, row.Brand)
		it.PutMeta(core.MetaImageURL, row.ImageURL)
		it.PutMeta(core.MetaReviewCount, row.ReviewCount)
		it.PutMeta(core.MetaRating, row.Rating)
	}
	return items, nil
}

var _ pipeline.Node = (*MetaNode)(nil)
