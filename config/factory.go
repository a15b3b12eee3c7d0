package config

import (
	"fmt"
	"time"

	"github.com/rushteam/shopkit/dataset"
	"github.com/rushteam/shopkit/filter"
	"github.com/rushteam/shopkit/pipeline"
	"github.com/rushteam/shopkit/pkg/conv"
	"github.com/rushteam/shopkit/postprocess"
	"github.com/rushteam/shopkit/recall"
	"github.com/rushteam/shopkit/rerank"
)

// DefaultFactory 返回一个包含所有内置 Node 的工厂。
// 交互表在进程启动时加载一次，这里闭包进各 builder——
// YAML 只描述策略参数，不描述数据来源。
func DefaultFactory(table *dataset.Table) *pipeline.NodeFactory {
	factory := pipeline.NewNodeFactory()

	register := func(typeName string, builder NodeBuilder) {
		factory.Register(typeName, builder)
		// 同步到全局注册表，ValidatePipelineConfig 据此校验配置
		Register(typeName, builder)
	}

	// Recall Nodes
	register("recall.toprated", func(config map[string]interface{}) (pipeline.Node, error) {
		return buildTopRated(table, config), nil
	})
	register("recall.usercf", func(config map[string]interface{}) (pipeline.Node, error) {
		return buildUserCF(table, config), nil
	})
	register("recall.content", func(config map[string]interface{}) (pipeline.Node, error) {
		return buildContent(table, config), nil
	})
	register("recall.fanout", func(config map[string]interface{}) (pipeline.Node, error) {
		return buildFanout(table, config)
	})

	// Filter Nodes
	register("filter", func(config map[string]interface{}) (pipeline.Node, error) {
		return buildFilterNode(table, config)
	})

	// ReRank Nodes
	register("rerank.topn", func(config map[string]interface{}) (pipeline.Node, error) {
		n := int(conv.ConfigGetInt64(config, "n", 0))
		return &rerank.TopNNode{N: n}, nil
	})

	// PostProcess Nodes
	register("postprocess.meta", func(config map[string]interface{}) (pipeline.Node, error) {
		return &postprocess.MetaNode{Table: table}, nil
	})

	return factory
}

func buildTopRated(table *dataset.Table, config map[string]interface{}) *recall.TopRated {
	return &recall.TopRated{
		Table: table,
		TopK:  int(conv.ConfigGetInt64(config, "top_k", 0)),
	}
}

func buildUserCF(table *dataset.Table, config map[string]interface{}) *recall.UserCF {
	return &recall.UserCF{
		Table:     table,
		NeighborK: int(conv.ConfigGetInt64(config, "neighbor_k", 0)),
		TopK:      int(conv.ConfigGetInt64(config, "top_k", 0)),
	}
}

func buildContent(table *dataset.Table, config map[string]interface{}) *recall.Content {
	return &recall.Content{
		Table:  table,
		TopK:   int(conv.ConfigGetInt64(config, "top_k", 0)),
		Metric: conv.ConfigGet[string](config, "metric", ""),
	}
}

func buildFanout(table *dataset.Table, config map[string]interface{}) (pipeline.Node, error) {
	sourcesConfig, ok := config["sources"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}

	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]interface{})
		if !ok {
			continue
		}
		switch sourceType := conv.ConfigGet[string](sourceMap, "type", ""); sourceType {
		case "toprated":
			sources = append(sources, buildTopRated(table, sourceMap))
		case "usercf":
			sources = append(sources, buildUserCF(table, sourceMap))
		case "content":
			sources = append(sources, buildContent(table, sourceMap))
		default:
			return nil, fmt.Errorf("unknown source type: %s", sourceType)
		}
	}

	fanout := &recall.Fanout{
		Sources:       sources,
		Dedup:         conv.ConfigGet[bool](config, "dedup", true),
		MergeStrategy: conv.ConfigGet[string](config, "merge_strategy", ""),
	}
	if sec := conv.ConfigGetInt64(config, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	if n := conv.ConfigGetInt64(config, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = int(n)
	}
	return fanout, nil
}

func buildFilterNode(table *dataset.Table, config map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := config["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		switch filterType := conv.ConfigGet[string](filterMap, "type", ""); filterType {
		case "rated":
			filters = append(filters, &filter.RatedFilter{Table: table})
		case "expr":
			filters = append(filters, &filter.ExprFilter{
				Expr: conv.ConfigGet[string](filterMap, "expr", ""),
			})
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}

	return &filter.FilterNode{Filters: filters}, nil
}
