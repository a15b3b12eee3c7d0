package cf

import "sort"

// Ranker 对候选分数表做降序排序并截断到请求条数。
type Ranker struct{}

// TopN 返回分数最高的 n 个商品 ID。同分按 ScoreMap 插入顺序（稳定）。
// 候选不足 n 时返回全部，不补齐；n <= 0 时返回空。
func (Ranker) TopN(sm *ScoreMap, n int) []int64 {
	if sm == nil || n <= 0 || sm.Len() == 0 {
		return nil
	}

	ranked := make([]int64, len(sm.Items()))
	copy(ranked, sm.Items())

	sort.SliceStable(ranked, func(i, j int) bool {
		si, _ := sm.Get(ranked[i])
		sj, _ := sm.Get(ranked[j])
		return si > sj
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
