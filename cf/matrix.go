// Package cf 实现基于用户的协同过滤打分引擎：
// 评分矩阵构建 → 用户相似度 → 近邻选择 → 候选加权打分 → 排序截断。
//
// 所有派生结构都是请求级的：请求开始时从交互表现算，请求结束即丢弃，
// 构建后不再修改，因此每一级都可独立测试、并发请求之间互不干扰。
package cf

import (
	"github.com/rushteam/shopkit/dataset"
)

// Unrated 是"未评分"的哨兵值。矩阵中缺失的 (用户, 商品) 对
// 在位置化向量里按此值参与计算；候选打分只认 > Unrated 的评分。
const Unrated = 0.0

// RatingMatrix 是稀疏的 用户 → 商品 → 平均评分 矩阵。
// 同一 (用户, 商品) 在源表中的多条评分聚合为算术平均，而非末值覆盖。
// 用户与商品各自保留按源表首次出现的顺序，保证全链路结果可复现。
type RatingMatrix struct {
	ratings map[int64]map[int64]float64
	users   []int64
	items   []int64
}

// BuildRatingMatrix 从交互表构建评分矩阵。空表得到空矩阵，不报错。
func BuildRatingMatrix(t *dataset.Table) *RatingMatrix {
	m := &RatingMatrix{
		ratings: make(map[int64]map[int64]float64),
	}
	if t == nil || t.Len() == 0 {
		return m
	}

	type cell struct {
		sum   float64
		count int
	}
	agg := make(map[int64]map[int64]*cell)
	seenItem := make(map[int64]struct{})

	for _, r := range t.Rows() {
		row, ok := agg[r.UserID]
		if !ok {
			row = make(map[int64]*cell)
			agg[r.UserID] = row
			m.users = append(m.users, r.UserID)
		}
		c, ok := row[r.ItemID]
		if !ok {
			c = &cell{}
			row[r.ItemID] = c
		}
		c.sum += r.Rating
		c.count++

		if _, ok := seenItem[r.ItemID]; !ok {
			seenItem[r.ItemID] = struct{}{}
			m.items = append(m.items, r.ItemID)
		}
	}

	for userID, row := range agg {
		out := make(map[int64]float64, len(row))
		for itemID, c := range row {
			out[itemID] = c.sum / float64(c.count)
		}
		m.ratings[userID] = out
	}
	return m
}

// Rating 返回 (用户, 商品) 的平均评分。第二个返回值表示该对是否存在。
func (m *RatingMatrix) Rating(userID, itemID int64) (float64, bool) {
	row, ok := m.ratings[userID]
	if !ok {
		return 0, false
	}
	v, ok := row[itemID]
	return v, ok
}

// RatingOrZero 返回评分，缺失时返回 Unrated 哨兵。
// 缺键不报错，按未评分处理，调用方无需先做存在性检查。
func (m *RatingMatrix) RatingOrZero(userID, itemID int64) float64 {
	v, ok := m.Rating(userID, itemID)
	if !ok {
		return Unrated
	}
	return v
}

// UserRow 返回用户的评分行。返回值只读，不得修改。
func (m *RatingMatrix) UserRow(userID int64) (map[int64]float64, bool) {
	row, ok := m.ratings[userID]
	return row, ok
}

// HasUser 判断用户是否在矩阵中。
func (m *RatingMatrix) HasUser(userID int64) bool {
	_, ok := m.ratings[userID]
	return ok
}

// Users 返回矩阵中的用户 ID，按源表首次出现顺序。返回值只读。
func (m *RatingMatrix) Users() []int64 { return m.users }

// Items 返回矩阵中的商品 ID，按源表首次出现顺序。返回值只读。
func (m *RatingMatrix) Items() []int64 { return m.items }
