package utils

// Label 是推荐链路中的可解释标记：每个商品带着它走过的策略
// （popularity / content / collaborative）和打标来源，
// 调用方据此向用户解释"为什么推荐这个"。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // recall / filter / rerank / engine ...
}

// MergeLabel 合并同名 Label：历史不丢，Value 以 '|'、Source 以 ',' 累积。
// 任一侧 Value 为空时直接取另一侧。
func MergeLabel(existing, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}
	return Label{
		Value:  existing.Value + "|" + incoming.Value,
		Source: joinNonEmpty(existing.Source, incoming.Source, ","),
	}
}

func joinNonEmpty(a, b, sep string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + sep + b
}
