package cf

import (
	"context"
	"math"
)

// SimilarityEngine 计算全量用户两两相似度。
// 抽成接口是为了之后换近似/索引化实现（ANN、MinHash 等）时不动下游契约。
type SimilarityEngine interface {
	Compute(ctx context.Context, m *RatingMatrix) (*SimilarityMatrix, error)
}

// SimilarityMatrix 是对称的 用户 × 用户 相似度矩阵。
// 对角线：有任意评分的用户为 1；全未评分的用户为 0。
type SimilarityMatrix struct {
	users []int64
	index map[int64]int
	vals  [][]float64
}

// At 返回两个用户的相似度；任一用户不在矩阵中时返回 0。
func (s *SimilarityMatrix) At(a, b int64) float64 {
	i, ok := s.index[a]
	if !ok {
		return 0
	}
	j, ok := s.index[b]
	if !ok {
		return 0
	}
	return s.vals[i][j]
}

// HasUser 判断用户是否在矩阵中。
func (s *SimilarityMatrix) HasUser(userID int64) bool {
	_, ok := s.index[userID]
	return ok
}

// Users 返回矩阵中的用户 ID，顺序与评分矩阵一致。返回值只读。
func (s *SimilarityMatrix) Users() []int64 { return s.users }

// Cosine 是余弦相似度实现：sim(a,b) = a·b / (‖a‖·‖b‖)。
// 向量是位置化的（每个用户对每个商品一个分量，未评分为 0），
// 稀疏点积只需遍历较小的一行。任一向量范数为 0 时相似度取 0，
// 不做除零。复杂度 O(U²·I)，目录规模可接受。
type Cosine struct{}

// Compute 实现 SimilarityEngine。外层循环检查 ctx 取消：
// 相似度计算是用户量增长后的主要开销，这里是请求的协作取消点。
func (Cosine) Compute(ctx context.Context, m *RatingMatrix) (*SimilarityMatrix, error) {
	users := m.Users()
	n := len(users)

	s := &SimilarityMatrix{
		users: users,
		index: make(map[int64]int, n),
		vals:  make([][]float64, n),
	}
	for i, u := range users {
		s.index[u] = i
		s.vals[i] = make([]float64, n)
	}

	norms := make([]float64, n)
	for i, u := range users {
		row, _ := m.UserRow(u)
		var sq float64
		for _, v := range row {
			sq += v * v
		}
		norms[i] = math.Sqrt(sq)
	}

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rowI, _ := m.UserRow(users[i])
		if norms[i] > 0 {
			s.vals[i][i] = 1
		}
		for j := i + 1; j < n; j++ {
			if norms[i] == 0 || norms[j] == 0 {
				continue
			}
			rowJ, _ := m.UserRow(users[j])
			// 稀疏点积：遍历较短的一行
			a, b := rowI, rowJ
			if len(b) < len(a) {
				a, b = b, a
			}
			var dot float64
			for itemID, va := range a {
				if vb, ok := b[itemID]; ok {
					dot += va * vb
				}
			}
			sim := dot / (norms[i] * norms[j])
			s.vals[i][j] = sim
			s.vals[j][i] = sim
		}
	}
	return s, nil
}
