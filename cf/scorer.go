package cf

// ScoreMap 是候选商品的累计分数表，保留首次插入顺序。
// 排序同分时按插入顺序裁决：插入顺序反映近邻优先级，
// 比按商品 ID 裁决更符合"更相似的近邻先发言"的语义。
type ScoreMap struct {
	scores map[int64]float64
	order  []int64
}

// NewScoreMap 创建空的分数表。
func NewScoreMap() *ScoreMap {
	return &ScoreMap{scores: make(map[int64]float64)}
}

// Add 为商品累加分数；首次出现时记录插入顺序。
func (sm *ScoreMap) Add(itemID int64, delta float64) {
	if _, ok := sm.scores[itemID]; !ok {
		sm.order = append(sm.order, itemID)
	}
	sm.scores[itemID] += delta
}

// Get 返回商品的累计分数。
func (sm *ScoreMap) Get(itemID int64) (float64, bool) {
	v, ok := sm.scores[itemID]
	return v, ok
}

// Len 返回候选数。
func (sm *ScoreMap) Len() int { return len(sm.order) }

// Items 返回按插入顺序的候选商品 ID。返回值只读。
func (sm *ScoreMap) Items() []int64 { return sm.order }

// CandidateScorer 把近邻评分聚合为候选分数：
//
//	score[item] += 近邻评分 × 近邻相似度
//
// 加权投票是累加而非平均：被多个相似近邻共同看好的商品分数叠加，
// 小邻域下这对精度更有利。两条排除规则：
//   - 近邻未评分（== Unrated）的商品不产生投票
//   - 目标用户已评分的商品不进候选
type CandidateScorer struct{}

// Score 产出候选分数表。近邻按给定顺序处理，每个近邻内
// 按矩阵商品顺序处理，保证插入顺序可复现。
// 目标用户评过近邻评过的所有商品时返回空表——这是合法结果，
// 上游编排器据此走兜底，不是错误。
func (CandidateScorer) Score(m *RatingMatrix, targetUserID int64, neighbors []Neighbor) *ScoreMap {
	sm := NewScoreMap()
	if m == nil || len(neighbors) == 0 {
		return sm
	}

	items := m.Items()
	for _, nb := range neighbors {
		for _, itemID := range items {
			rating := m.RatingOrZero(nb.UserID, itemID)
			if rating <= Unrated {
				continue
			}
			if m.RatingOrZero(targetUserID, itemID) != Unrated {
				continue
			}
			sm.Add(itemID, rating*nb.Similarity)
		}
	}
	return sm
}
