// Package dsl 提供基于 CEL (Common Expression Language) 的过滤表达式求值。
//
// 表达式可引用四个变量：
//   - item:  id / score / meta / labels
//   - label: 各 Label 的 value 简写（label.strategy == "content"）
//   - meta:  展示元信息（meta.brand == "Nike"、meta.rating >= 4.0）
//   - rctx:  请求上下文（rctx.user_id、rctx.query、rctx.count、rctx.params）
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/shopkit/core"
)

var (
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once

	// 同一条过滤规则会对候选集里的每个商品求值一次，
	// 编译结果按表达式缓存，求值只做变量绑定。
	programs sync.Map // expr string -> cel.Program
)

func env() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("meta", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

func compile(expr string) (cel.Program, error) {
	if cached, ok := programs.Load(expr); ok {
		return cached.(cel.Program), nil
	}
	e, err := env()
	if err != nil {
		return nil, err
	}
	ast, issues := e.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}
	prg, err := e.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %v", err)
	}
	programs.Store(expr, prg)
	return prg, nil
}

// Eval 把一个商品和请求上下文绑定成 CEL 求值环境。
type Eval struct {
	item *core.Item
	rctx *core.RecommendContext
}

// NewEval 创建解释器。
func NewEval(item *core.Item, rctx *core.RecommendContext) *Eval {
	return &Eval{item: item, rctx: rctx}
}

// Evaluate 执行表达式并返回布尔结果。空表达式视为恒真。
// 访问不存在的 key 会报错，用 label.key != null 做存在性检查。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}
	prg, err := compile(expr)
	if err != nil {
		return false, err
	}

	out, _, err := prg.Eval(e.input())
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

func (e *Eval) input() map[string]interface{} {
	labels := make(map[string]interface{}, len(e.item.Labels))
	shorthand := make(map[string]interface{}, len(e.item.Labels))
	for k, v := range e.item.Labels {
		labels[k] = map[string]interface{}{"value": v.Value, "source": v.Source}
		shorthand[k] = v.Value
	}

	rctx := map[string]interface{}{}
	if e.rctx != nil {
		rctx = map[string]interface{}{
			"user_id": e.rctx.UserID,
			"query":   e.rctx.Query,
			"count":   e.rctx.Count,
			"params":  e.rctx.Params,
		}
	}

	return map[string]interface{}{
		"item": map[string]interface{}{
			"id":     e.item.ID,
			"score":  e.item.Score,
			"meta":   e.item.Meta,
			"labels": labels,
		},
		"label": shorthand,
		"meta":  e.item.Meta,
		"rctx":  rctx,
	}
}
