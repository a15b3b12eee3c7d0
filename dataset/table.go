// Package dataset 提供只读的用户-商品交互表。
//
// 表在服务启动时加载一次，之后只读；引擎的所有派生结构
// （评分矩阵、相似度、候选分数）都按请求从表重新计算，
// 请求之间不共享任何可变状态，因此并发读表无需加锁。
package dataset

import "strings"

// Interaction 是一条观测到的 (用户, 商品, 评分) 事实，同一对 (用户, 商品)
// 可能出现多行；展示字段（Name/Brand/ImageURL/ReviewCount）只用于出口透传。
type Interaction struct {
	UserID      int64
	ItemID      int64
	Rating      float64
	Name        string
	Brand       string
	ImageURL    string
	ReviewCount int
	Category    string
	Description string
	Tags        string
}

// Table 是只读交互表。行序即源表顺序，多处语义依赖行序：
// "用户最近评分的商品"取该用户的第一行，搜索词解析取首个子串命中。
type Table struct {
	rows []Interaction
}

// New 用给定行构建 Table。调用方交出 rows 的所有权，之后不得再修改。
func New(rows []Interaction) *Table {
	return &Table{rows: rows}
}

// Len 返回行数。空表是合法输入，下游各组件对空表返回空结果而非报错。
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows 返回底层行。返回值只读，不得修改。
func (t *Table) Rows() []Interaction {
	return t.rows
}

// Users 返回去重后的用户 ID，按首次出现顺序。
func (t *Table) Users() []int64 {
	seen := make(map[int64]struct{}, len(t.rows))
	out := make([]int64, 0, len(t.rows))
	for _, r := range t.rows {
		if _, ok := seen[r.UserID]; ok {
			continue
		}
		seen[r.UserID] = struct{}{}
		out = append(out, r.UserID)
	}
	return out
}

// Items 返回去重后的商品 ID，按首次出现顺序。
func (t *Table) Items() []int64 {
	seen := make(map[int64]struct{}, len(t.rows))
	out := make([]int64, 0, len(t.rows))
	for _, r := range t.rows {
		if _, ok := seen[r.ItemID]; ok {
			continue
		}
		seen[r.ItemID] = struct{}{}
		out = append(out, r.ItemID)
	}
	return out
}

// HasUser 判断用户是否有任何交互记录。
func (t *Table) HasUser(userID int64) bool {
	for _, r := range t.rows {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// FirstRatedItem 返回用户按表序的第一条交互的商品 ID。
// 注意：这不是按时间的"最近"，而是按行序的第一条；
// 源数据没有时间戳，行序是唯一可用的次序。
func (t *Table) FirstRatedItem(userID int64) (int64, bool) {
	for _, r := range t.rows {
		if r.UserID == userID {
			return r.ItemID, true
		}
	}
	return 0, false
}

// ItemMeta 返回商品的展示元信息（取该商品按表序的第一行）。
func (t *Table) ItemMeta(itemID int64) (Interaction, bool) {
	for _, r := range t.rows {
		if r.ItemID == itemID {
			return r, true
		}
	}
	return Interaction{}, false
}

// ResolveName 将搜索词解析为目录内商品：大小写不敏感的子串匹配，
// 返回按首次出现顺序的第一个命中。有意不做最优/模糊匹配，
// 规则简单可预期。
func (t *Table) ResolveName(query string) (itemID int64, name string, ok bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0, "", false
	}
	seen := make(map[string]struct{}, len(t.rows))
	for _, r := range t.rows {
		if _, dup := seen[r.Name]; dup {
			continue
		}
		seen[r.Name] = struct{}{}
		if strings.Contains(strings.ToLower(r.Name), q) {
			return r.ItemID, r.Name, true
		}
	}
	return 0, "", false
}
