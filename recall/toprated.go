package recall

import (
	"context"
	"sort"
	"strconv"

	"github.com/rushteam/shopkit/core"
	"github.com/rushteam/shopkit/dataset"
	"github.com/rushteam/shopkit/pipeline"
	"github.com/rushteam/shopkit/pkg/utils"
)

// TopRated 是热门召回源：全局高分商品，不做个性化，冷请求与各路兜底都走这里。
//   - 如果配了 KeyValueStore，优先读有序集合（离线作业预算好的榜单）
//   - 否则从交互表现算：按平均评分降序，同分按评论数降序，再同按表序
//
// TopRated 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type TopRated struct {
	Table *dataset.Table

	Store core.KeyValueStore // 可选
	Key   string             // 有序集合 key，例如 "toprated:items"

	// TopK 返回条数；<= 0 时取 rctx.Count。
	TopK int
}

func (r *TopRated) Name() string        { return "recall.toprated" }
func (r *TopRated) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *TopRated) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *TopRated) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	topK := r.TopK
	if topK <= 0 && rctx != nil {
		topK = rctx.Count
	}
	if topK <= 0 {
		return nil, nil
	}

	// 优先从 Store 读取预算好的榜单
	if r.Store != nil && r.Key != "" {
		members, err := r.Store.ZRange(ctx, r.Key, 0, int64(topK-1))
		if err == nil && len(members) > 0 {
			out := make([]*core.Item, 0, len(members))
			for _, m := range members {
				id, err := strconv.ParseInt(m, 10, 64)
				if err != nil {
					continue
				}
				it := core.NewItem(id)
				it.PutLabel("recall_source", utils.Label{Value: "popularity", Source: "recall"})
				out = append(out, it)
			}
			return out, nil
		}
	}

	// Fallback：从交互表现算
	if r.Table == nil || r.Table.Len() == 0 {
		return nil, nil
	}

	type stat struct {
		sum     float64
		count   int
		reviews int
	}
	stats := make(map[int64]*stat)
	order := r.Table.Items()
	for _, row := range r.Table.Rows() {
		s, ok := stats[row.ItemID]
		if !ok {
			s = &stat{}
			stats[row.ItemID] = s
		}
		s.sum += row.Rating
		s.count++
		if row.ReviewCount > s.reviews {
			s.reviews = row.ReviewCount
		}
	}

	ranked := make([]int64, len(order))
	copy(ranked, order)
	mean := func(id int64) float64 {
		s := stats[id]
		return s.sum / float64(s.count)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		mi, mj := mean(ranked[i]), mean(ranked[j])
		if mi != mj {
			return mi > mj
		}
		return stats[ranked[i]].reviews > stats[ranked[j]].reviews
	})
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	out := make([]*core.Item, 0, len(ranked))
	for _, id := range ranked {
		it := core.NewItem(id)
		it.Score = mean(id)
		it.PutLabel("recall_source", utils.Label{Value: "popularity", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

var _ Source = (*TopRated)(nil)
var _ pipeline.Node = (*TopRated)(nil)
