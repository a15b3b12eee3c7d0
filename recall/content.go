package recall

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/rushteam/shopkit/core"
	"github.com/rushteam/shopkit/dataset"
	"github.com/rushteam/shopkit/pipeline"
	"github.com/rushteam/shopkit/pkg/utils"
)

// SeedItemParam 是 rctx.Params 中种子商品 ID 的 key。
// 编排器把搜索词解析到的商品写进去，Content 据此召回相似商品。
const SeedItemParam = "seed_item_id"

// Content 是基于内容的召回源（Content-Based Recommendation）。
//
// 核心思想："和这个商品长得像的商品"。商品特征来自目录字段：
// 品牌、类目、标签分词后做 one-hot 特征向量，对全目录算相似度取 TopK。
// 种子商品自身被排除。
type Content struct {
	Table *dataset.Table

	// TopK 返回条数；<= 0 时取 rctx.Count。
	TopK int

	// Metric 相似度度量方式：cosine / jaccard
	Metric string
}

func (r *Content) Name() string        { return "recall.content" }
func (r *Content) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *Content) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口：从 rctx.Params 取种子商品。
func (r *Content) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if rctx == nil || rctx.Params == nil {
		return nil, nil
	}
	seed, ok := rctx.Params[SeedItemParam].(int64)
	if !ok || seed == 0 {
		return nil, nil
	}
	topK := r.TopK
	if topK <= 0 {
		topK = rctx.Count
	}
	return r.Similar(ctx, seed, topK)
}

// Similar 返回与种子商品内容最相似的 n 个商品。
// 种子不在目录中或特征为空时返回空结果，不报错。
func (r *Content) Similar(ctx context.Context, seedItemID int64, n int) ([]*core.Item, error) {
	if r.Table == nil || n <= 0 {
		return nil, nil
	}

	seedRow, ok := r.Table.ItemMeta(seedItemID)
	if !ok {
		return nil, nil
	}
	seedFeatures := itemFeatures(seedRow)
	if len(seedFeatures) == 0 {
		return nil, nil
	}

	metric := r.Metric
	if metric == "" {
		metric = "cosine"
	}

	type scoredItem struct {
		itemID int64
		score  float64
	}
	scores := make([]scoredItem, 0)

	for _, itemID := range r.Table.Items() {
		if itemID == seedItemID {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, ok := r.Table.ItemMeta(itemID)
		if !ok {
			continue
		}
		features := itemFeatures(row)
		if len(features) == 0 {
			continue
		}

		var score float64
		switch metric {
		case "jaccard":
			score = jaccardSimilarity(seedFeatures, features)
		case "cosine":
			fallthrough
		default:
			score = cosineSimilarityForMaps(seedFeatures, features)
		}

		if score > 0 {
			scores = append(scores, scoredItem{itemID: itemID, score: score})
		}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})
	if len(scores) > n {
		scores = scores[:n]
	}

	out := make([]*core.Item, 0, len(scores))
	for _, s := range scores {
		it := core.NewItem(s.itemID)
		it.Score = s.score
		it.PutLabel("recall_source", utils.Label{Value: "content", Source: "recall"})
		it.PutLabel("recall_metric", utils.Label{Value: metric, Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

// itemFeatures 把目录字段转成 one-hot 特征向量：
// 品牌、类目整体各算一个特征，标签按逗号/空白分词。
func itemFeatures(row dataset.Interaction) map[string]float64 {
	features := make(map[string]float64)
	if b := strings.TrimSpace(strings.ToLower(row.Brand)); b != "" {
		features["brand:"+b] = 1
	}
	if c := strings.TrimSpace(strings.ToLower(row.Category)); c != "" {
		features["category:"+c] = 1
	}
	for _, tag := range strings.FieldsFunc(strings.ToLower(row.Tags), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	}) {
		if tag = strings.TrimSpace(tag); tag != "" {
			features["tag:"+tag] = 1
		}
	}
	return features
}

// cosineSimilarityForMaps 计算两个特征向量的余弦相似度
func cosineSimilarityForMaps(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for k, va := range a {
		normA += va * va
		if vb, ok := b[k]; ok {
			dot += va * vb
		}
	}
	for _, vb := range b {
		normB += vb * vb
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// jaccardSimilarity 计算两个特征向量的 Jaccard 相似度
func jaccardSimilarity(a, b map[string]float64) float64 {
	var intersection, union float64
	for k, va := range a {
		union += va
		if vb, ok := b[k]; ok {
			intersection += math.Min(va, vb)
		}
	}
	for k, vb := range b {
		if _, ok := a[k]; !ok {
			union += vb
		}
	}

	if union == 0 {
		return 0
	}
	return intersection / union
}

var _ Source = (*Content)(nil)
var _ pipeline.Node = (*Content)(nil)
