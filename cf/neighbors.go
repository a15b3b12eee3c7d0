package cf

import (
	"sort"

	"github.com/rushteam/shopkit/core"
)

// DefaultNeighborK 是近邻数默认值。故意取得很小：
// 小邻域让加权投票更锐利，混合结果里协同信号不被稀释。
const DefaultNeighborK = 2

// Neighbor 是一个带相似度权重的近邻用户。
type Neighbor struct {
	UserID     int64
	Similarity float64
}

// NeighborSelector 从相似度矩阵中为目标用户选出相似度最高的 K 个其他用户。
// 目标用户自身被显式排除（自相似为 1，否则必然霸榜）。
type NeighborSelector struct {
	// K 近邻数；<= 0 时取 DefaultNeighborK。
	K int
}

// Select 返回按相似度降序的近邻列表，同分按矩阵用户顺序（稳定）。
// 目标用户不在矩阵中时返回 core.ErrUnknownUser，由调用方决定
// 直接上抛还是降级兜底。
func (s *NeighborSelector) Select(sim *SimilarityMatrix, targetUserID int64) ([]Neighbor, error) {
	if sim == nil || !sim.HasUser(targetUserID) {
		return nil, core.ErrUnknownUser
	}

	users := sim.Users()
	neighbors := make([]Neighbor, 0, len(users))
	for _, u := range users {
		if u == targetUserID {
			continue
		}
		neighbors = append(neighbors, Neighbor{
			UserID:     u,
			Similarity: sim.At(targetUserID, u),
		})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Similarity > neighbors[j].Similarity
	})

	k := s.K
	if k <= 0 {
		k = DefaultNeighborK
	}
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}
