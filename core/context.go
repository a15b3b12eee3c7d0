package core

import "github.com/rushteam/shopkit/pkg/utils"

// RecommendContext 承载一次推荐请求的输入，贯穿整个 Pipeline 透传。
//
// 三种请求形态：
//   - Query != ""            → 商品搜索（ItemSearch）
//   - Query == "" && UserID > 0 → 已知用户（KnownUser）
//   - 两者皆无               → 冷请求（NoInput），只出热门兜底
type RecommendContext struct {
	// UserID 目标用户 ID；0 表示新用户/未登录。
	UserID int64

	// Query 商品搜索词（自由文本，按子串匹配解析到目录内商品名）。
	Query string

	// Count 期望返回的结果条数。
	Count int

	// Labels 是请求级标签，可驱动整个 Pipeline 行为。
	Labels map[string]utils.Label

	// Params 请求级上下文参数（device_type、scene 等），按需透传。
	Params map[string]any
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
