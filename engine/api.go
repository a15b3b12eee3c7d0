package engine

import (
	"context"

	"github.com/rushteam/shopkit/core"
)

// 面向调用方的三个入口。每个入口都返回携带展示元信息
// （name / brand / image_url / review_count / rating）的商品列表，
// 内部混合分数不透出。

// RecommendForItem 返回与指定商品内容相似的 n 个商品。
// 纯内容路径，不做协同过滤。商品不在目录时返回空列表。
func (e *Engine) RecommendForItem(ctx context.Context, itemID int64, n int) ([]*core.Item, error) {
	if n <= 0 {
		return []*core.Item{}, nil
	}
	items, err := e.content.Similar(ctx, itemID, n)
	if err != nil {
		return nil, err
	}
	items, err = e.enrich.Process(ctx, nil, items)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*core.Item{}
	}
	return items, nil
}

// RecommendForUser 返回给用户的混合推荐（内容 + 协同过滤）。
// 用户无任何交互记录时降级为热门兜底，绝不报错——
// 这是与 CollaborativeRecommend 的关键差别。
func (e *Engine) RecommendForUser(ctx context.Context, userID int64, n int) (*Result, error) {
	return e.Recommend(ctx, Request{UserID: userID, Count: n})
}

// RecommendDefault 返回全局热门的 n 个商品（无个性化信号时的基线）。
// 空表得到空列表，不报错。
func (e *Engine) RecommendDefault(ctx context.Context, n int) ([]*core.Item, error) {
	if n <= 0 {
		return []*core.Item{}, nil
	}
	items, err := e.popularityTop(ctx, n)
	if err != nil {
		return nil, err
	}
	items, err = e.enrich.Process(ctx, nil, items)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*core.Item{}
	}
	return items, nil
}

// CollaborativeRecommend 是直连协同过滤入口：只走近邻加权投票，无兜底。
// 目标用户没有任何交互记录时返回 core.ErrUnknownUser——
// 这是唯一允许跨出引擎边界的错误。
func (e *Engine) CollaborativeRecommend(ctx context.Context, userID int64, n int) ([]*core.Item, error) {
	if !e.table.HasUser(userID) {
		return nil, core.ErrUnknownUser
	}
	rctx := &core.RecommendContext{UserID: userID, Count: n}
	items, err := e.collaborative.Recall(ctx, rctx)
	if err != nil {
		return nil, err
	}
	items, err = e.enrich.Process(ctx, nil, items)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*core.Item{}
	}
	return items, nil
}
