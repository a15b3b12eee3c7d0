package core

import "github.com/rushteam/shopkit/pkg/utils"

// Item 是推荐链路中的统一承载结构：分数、展示元信息、标签。
// Score 用于排序决策；Meta 携带给调用方展示的商品字段；Labels 用于解释与策略驱动。
type Item struct {
	ID     int64
	Score  float64
	Meta   map[string]any
	Labels map[string]utils.Label
}

func NewItem(id int64) *Item {
	return &Item{
		ID:     id,
		Score:  0,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// PutMeta 写入展示元信息（Name / Brand / ImageURL / ReviewCount / Rating 等）。
func (it *Item) PutMeta(key string, value any) {
	if it.Meta == nil {
		it.Meta = make(map[string]any)
	}
	it.Meta[key] = value
}

// 展示元信息的标准 key。引擎出口统一用这些 key 填充，调用方按需取用。
const (
	MetaName        = "name"
	MetaBrand       = "brand"
	MetaImageURL    = "image_url"
	MetaReviewCount = "review_count"
	MetaRating      = "rating"
)
