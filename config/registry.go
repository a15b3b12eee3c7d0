package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rushteam/shopkit/pipeline"
)

// NodeBuilder 与 pipeline.NodeBuilder 一致：根据参数表构建 Node。
type NodeBuilder = pipeline.NodeBuilder

// 全局注册表记录所有可用的 Node 类型，配置校验据此给出
// 明确的"支持哪些类型"提示。DefaultFactory 会把内置类型注册进来。
var registry = struct {
	sync.RWMutex
	builders map[string]NodeBuilder
}{builders: make(map[string]NodeBuilder)}

// Register 注册一种 Node 类型；空类型名或 nil 构建器被忽略。
func Register(typeName string, builder NodeBuilder) {
	if typeName == "" || builder == nil {
		return
	}
	registry.Lock()
	defer registry.Unlock()
	registry.builders[typeName] = builder
}

// SupportedTypes 返回已注册的 Node 类型（排序后），用于错误提示。
func SupportedTypes() []string {
	registry.RLock()
	defer registry.RUnlock()
	types := make([]string, 0, len(registry.builders))
	for t := range registry.builders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// ValidatePipelineConfig 校验配置里的所有 Node 类型均已注册，
// 在构建前尽早暴露拼写错误。
func ValidatePipelineConfig(cfg *pipeline.Config) error {
	if cfg == nil {
		return nil
	}
	for _, nc := range cfg.Pipeline.Nodes {
		if nc.Type == "" {
			continue
		}
		registry.RLock()
		_, ok := registry.builders[nc.Type]
		registry.RUnlock()
		if !ok {
			return fmt.Errorf("unsupported node type %q (supported: %v)", nc.Type, SupportedTypes())
		}
	}
	return nil
}
