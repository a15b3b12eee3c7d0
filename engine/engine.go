// Package engine 实现混合推荐编排：按请求形态选择
// 热门 / 内容 / 协同过滤 / 混合 策略，合并去重后返回定长结果。
//
// 失败语义：数据稀疏（空表、无近邻、候选为空）一律降级为更短的
// 或热门兜底的结果，绝不向调用方抛错；唯一跨边界的错误是
// 直连协同过滤入口的 core.ErrUnknownUser。
package engine

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/shopkit/core"
	"github.com/rushteam/shopkit/dataset"
	"github.com/rushteam/shopkit/pkg/logutil"
	"github.com/rushteam/shopkit/pkg/utils"
	"github.com/rushteam/shopkit/postprocess"
	"github.com/rushteam/shopkit/recall"
)

// Strategy 标记一次请求实际走了哪条策略，调用方据此调整文案。
type Strategy string

const (
	StrategyPopularity    Strategy = "popularity"
	StrategyContent       Strategy = "content"
	StrategyCollaborative Strategy = "collaborative"
	StrategyHybrid        Strategy = "hybrid"
)

// hybridContentSlice 是混合策略中内容腿的固定条数，
// 协同过滤腿拿剩下的 count-5。
const hybridContentSlice = 5

// Request 是一次推荐请求。三种形态：
//   - Query != ""             → 商品搜索
//   - Query == "" && UserID>0 → 已知用户
//   - 两者皆无                → 冷请求，热门兜底
type Request struct {
	Query  string
	UserID int64
	Count  int
}

// Result 是一次推荐的结果。Items 永远非 nil（可能为空），
// 长度不超过请求条数，按分数降序且无重复商品。
type Result struct {
	Items    []*core.Item
	Strategy Strategy

	// ResolvedName 搜索词解析到的目录商品名（仅 ItemSearch 命中时有值）。
	ResolvedName string

	// Unresolved 软信号：搜索词没命中任何目录商品。
	// 结果仍然有效（热门兜底），不是错误。
	Unresolved bool
}

// ContentRecommender 是内容相似收敛的协作方契约：
// 给定种子商品，返回相似商品列表。算法可替换，引擎只认契约。
type ContentRecommender interface {
	Similar(ctx context.Context, seedItemID int64, n int) ([]*core.Item, error)
}

// Engine 是混合推荐编排器。表只读共享，派生结构按请求现算，
// 可安全并发调用。
type Engine struct {
	table         *dataset.Table
	popularity    recall.Source
	content       ContentRecommender
	collaborative recall.Source
	enrich        *postprocess.MetaNode
	logger        *zap.Logger
}

// Option 配置 Engine。
type Option func(*Engine)

// WithLogger 设置日志；默认静默。
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithPopularity 替换热门协作方（默认 recall.TopRated）。
func WithPopularity(s recall.Source) Option {
	return func(e *Engine) { e.popularity = s }
}

// WithContent 替换内容协作方（默认 recall.Content）。
func WithContent(c ContentRecommender) Option {
	return func(e *Engine) { e.content = c }
}

// WithCollaborative 替换协同过滤协作方（默认 recall.UserCF）。
func WithCollaborative(s recall.Source) Option {
	return func(e *Engine) { e.collaborative = s }
}

// WithTopRatedStore 让热门协作方优先读离线算好的榜单。
func WithTopRatedStore(kv core.KeyValueStore, key string) Option {
	return func(e *Engine) {
		e.popularity = &recall.TopRated{Table: e.table, Store: kv, Key: key}
	}
}

// New 创建 Engine。table 只读，加载后不得修改。
func New(table *dataset.Table, opts ...Option) *Engine {
	e := &Engine{
		table:         table,
		popularity:    &recall.TopRated{Table: table},
		content:       &recall.Content{Table: table},
		collaborative: &recall.UserCF{Table: table},
		enrich:        &postprocess.MetaNode{Table: table},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logutil.OrNop(e.logger)
	return e
}

// Recommend 是请求级状态机：
//
//	ItemSearch：搜索词按子串解析到目录商品（取首个命中，故意不做最优匹配），
//	            命中走内容策略，未命中热门兜底并置 Unresolved。
//	KnownUser： 取该用户按表序的第一条评分商品做种子，内容腿 5 条 +
//	            协同过滤腿 count-5 条，拼接去重截断；用户无记录则热门兜底。
//	NoInput：   热门兜底。
func (e *Engine) Recommend(ctx context.Context, req Request) (*Result, error) {
	if req.Count <= 0 {
		return &Result{Items: []*core.Item{}, Strategy: StrategyPopularity}, nil
	}

	var res *Result
	var err error
	switch {
	case req.Query != "":
		res, err = e.itemSearch(ctx, req)
	case req.UserID > 0:
		res, err = e.knownUser(ctx, req)
	default:
		res, err = e.noInput(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	res.Items, err = e.enrich.Process(ctx, nil, res.Items)
	if err != nil {
		return nil, err
	}
	if res.Items == nil {
		res.Items = []*core.Item{}
	}
	for _, it := range res.Items {
		it.PutLabel("strategy", utils.Label{Value: string(res.Strategy), Source: "engine"})
	}

	e.logger.Debug("recommendation served",
		zap.String("strategy", string(res.Strategy)),
		zap.Int64("user_id", req.UserID),
		zap.String("query", req.Query),
		zap.Int("returned", len(res.Items)),
	)
	return res, nil
}

func (e *Engine) itemSearch(ctx context.Context, req Request) (*Result, error) {
	itemID, name, ok := e.table.ResolveName(req.Query)
	if !ok {
		items, err := e.popularityTop(ctx, req.Count)
		if err != nil {
			return nil, err
		}
		return &Result{Items: items, Strategy: StrategyPopularity, Unresolved: true}, nil
	}

	items, err := e.content.Similar(ctx, itemID, req.Count)
	if err != nil {
		return nil, err
	}
	return &Result{Items: items, Strategy: StrategyContent, ResolvedName: name}, nil
}

func (e *Engine) knownUser(ctx context.Context, req Request) (*Result, error) {
	seed, ok := e.table.FirstRatedItem(req.UserID)
	if !ok {
		// 用户没有任何评分记录：热门兜底，不报错
		items, err := e.popularityTop(ctx, req.Count)
		if err != nil {
			return nil, err
		}
		return &Result{Items: items, Strategy: StrategyPopularity}, nil
	}

	contentN := hybridContentSlice
	if contentN > req.Count {
		contentN = req.Count
	}
	cfN := req.Count - hybridContentSlice

	var contentItems, cfItems []*core.Item
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		items, err := e.content.Similar(egCtx, seed, contentN)
		if err != nil {
			return err
		}
		contentItems = items
		return nil
	})
	if cfN > 0 {
		eg.Go(func() error {
			rctx := &core.RecommendContext{UserID: req.UserID, Count: cfN}
			items, err := e.collaborative.Recall(egCtx, rctx)
			if err != nil {
				// 协同路径的"未知用户"在编排边界吸收为"无协同候选"
				if core.IsUnknownUser(err) {
					return nil
				}
				return err
			}
			cfItems = items
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	items := blend(req.Count, contentItems, cfItems)
	return &Result{Items: items, Strategy: StrategyHybrid}, nil
}

func (e *Engine) noInput(ctx context.Context, req Request) (*Result, error) {
	items, err := e.popularityTop(ctx, req.Count)
	if err != nil {
		return nil, err
	}
	return &Result{Items: items, Strategy: StrategyPopularity}, nil
}

func (e *Engine) popularityTop(ctx context.Context, n int) ([]*core.Item, error) {
	rctx := &core.RecommendContext{Count: n}
	items, err := e.popularity.Recall(ctx, rctx)
	if err != nil {
		return nil, err
	}
	if len(items) > n {
		items = items[:n]
	}
	return items, nil
}

// blend 合并多个结果集：按给定顺序拼接，商品 ID 去重（先见者胜），
// 截断到 n。结果长度 = min(n, 去重后的条数)，绝不补齐也绝不超限。
func blend(n int, lists ...[]*core.Item) []*core.Item {
	seen := make(map[int64]struct{}, n)
	out := make([]*core.Item, 0, n)
	for _, list := range lists {
		for _, it := range list {
			if it == nil {
				continue
			}
			if _, dup := seen[it.ID]; dup {
				continue
			}
			seen[it.ID] = struct{}{}
			out = append(out, it)
			if len(out) == n {
				return out
			}
		}
	}
	return out
}
