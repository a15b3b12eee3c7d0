package recall

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/shopkit/core"
	"github.com/rushteam/shopkit/pipeline"
	"github.com/rushteam/shopkit/pkg/utils"
)

// Fanout 并发执行多个召回源并合并结果。单个源失败或超时只丢弃
// 该源的结果，不中断请求——调用方永远拿到一个（可能变短的）列表。
// 合并顺序按 Sources 声明顺序，与并发完成顺序无关。
type Fanout struct {
	Sources       []Source
	Dedup         bool
	Timeout       time.Duration // 单个召回源的超时；0 表示不限
	MaxConcurrent int           // 最大并发数；0 表示不限
	MergeStrategy string        // first / priority（去重，先出现的源优先）/ union（不去重）
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	// 每个 goroutine 只写自己的槽位，无需加锁
	results := make([][]*core.Item, len(n.Sources))
	eg, _ := errgroup.WithContext(ctx)
	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for i, src := range n.Sources {
		idx, s := i, src
		eg.Go(func() error {
			recallCtx := ctx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(ctx, n.Timeout)
				defer cancel()
			}

			items, err := s.Recall(recallCtx, rctx)
			if err != nil {
				// 失败的源按空结果处理，其余源继续
				return nil
			}
			for _, it := range items {
				it.PutLabel("recall_source", utils.Label{Value: s.Name(), Source: "recall"})
			}
			results[idx] = items
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	all := make([]*core.Item, 0)
	for _, items := range results {
		all = append(all, items...)
	}
	if n.MergeStrategy == "union" {
		return all, nil
	}
	return n.mergeFirst(all), nil
}

// mergeFirst 按商品 ID 去重，先出现的（优先级更高的源）占住槽位，
// 后到的同 ID 商品只把 labels 合并进去，便于追踪多源命中。
func (n *Fanout) mergeFirst(all []*core.Item) []*core.Item {
	if !n.Dedup {
		return all
	}
	seen := make(map[int64]*core.Item, len(all))
	out := make([]*core.Item, 0, len(all))
	for _, it := range all {
		if it == nil {
			continue
		}
		if kept, dup := seen[it.ID]; dup {
			for k, v := range it.Labels {
				kept.PutLabel(k, v)
			}
			continue
		}
		seen[it.ID] = it
		out = append(out, it)
	}
	return out
}

var _ pipeline.Node = (*Fanout)(nil)
