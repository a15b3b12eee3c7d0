// Package shopkit 是一个商品推荐引擎工具包：
// 热门 / 内容 / 协同过滤三路召回，按请求形态混合编排。
//
// 设计要点：
//   - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → ReRank → PostProcess），
//     可代码装配，也可 YAML 声明式装配
//   - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
//   - 请求级计算: 评分矩阵/相似度/候选分数按请求现算现弃，交互表只读共享，天然并发安全
//
// 高层入口见 engine 包；组件级使用见各子包与 examples/。
package shopkit

import "github.com/rushteam/shopkit/pipeline"

// 轻量 facade：便于调用方直接 import 根包使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
