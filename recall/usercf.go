package recall

import (
	"context"

	"github.com/rushteam/shopkit/cf"
	"github.com/rushteam/shopkit/core"
	"github.com/rushteam/shopkit/dataset"
	"github.com/rushteam/shopkit/pipeline"
	"github.com/rushteam/shopkit/pkg/utils"
)

// UserCF 是基于用户的协同过滤召回源（User-based Collaborative Filtering）。
//
// 核心思想："兴趣相似的用户，喜欢相似的商品"
//
// 算法流程：
//  1. 交互表 → 评分矩阵（同对多条评分取平均）
//  2. 计算全量用户余弦相似度
//  3. 取 TopK 相似用户（排除自己）
//  4. 近邻评过、目标用户没评过的商品按 评分×相似度 加权累加
//  5. 降序截断到请求条数
//
// 所有派生结构按请求现算现弃，表只读共享，无需加锁。
// 这是直连协同过滤入口：目标用户无任何交互时返回 core.ErrUnknownUser，
// 需要软降级的调用方（混合编排）自行捕获。
type UserCF struct {
	Table *dataset.Table

	// Similarity 相似度实现；为空时用余弦。换近似实现时只替换这里。
	Similarity cf.SimilarityEngine

	// NeighborK 近邻数；<= 0 时取 cf.DefaultNeighborK（2）。
	NeighborK int

	// TopK 最终返回条数；<= 0 时取 rctx.Count。
	TopK int
}

func (r *UserCF) Name() string        { return "recall.usercf" }
func (r *UserCF) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *UserCF) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *UserCF) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Table == nil || rctx == nil || rctx.UserID == 0 {
		return nil, nil
	}

	matrix := cf.BuildRatingMatrix(r.Table)

	engine := r.Similarity
	if engine == nil {
		engine = cf.Cosine{}
	}
	// 相似度是随用户数增长的主要开销，Compute 内部响应 ctx 取消
	sim, err := engine.Compute(ctx, matrix)
	if err != nil {
		return nil, err
	}

	selector := &cf.NeighborSelector{K: r.NeighborK}
	neighbors, err := selector.Select(sim, rctx.UserID)
	if err != nil {
		return nil, err
	}

	scores := cf.CandidateScorer{}.Score(matrix, rctx.UserID, neighbors)

	topK := r.TopK
	if topK <= 0 {
		topK = rctx.Count
	}
	ranked := cf.Ranker{}.TopN(scores, topK)

	out := make([]*core.Item, 0, len(ranked))
	for _, itemID := range ranked {
		it := core.NewItem(itemID)
		it.Score, _ = scores.Get(itemID)
		it.PutLabel("recall_source", utils.Label{Value: "collaborative", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

var _ Source = (*UserCF)(nil)
var _ pipeline.Node = (*UserCF)(nil)
