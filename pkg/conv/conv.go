// Package conv 把 YAML/JSON 解析出的 map[string]any 安全地还原成配置值。
// Node 配置没有 schema，数字在 YAML 里可能是 int、在 JSON 里是 float64，
// 这里统一兜住，取不到或类型不符一律落回默认值而不报错。
package conv

// ConfigGet 按 key 取 T，取不到或类型不符时返回 defaultVal。
func ConfigGet[T any](m map[string]any, key string, defaultVal T) T {
	if m == nil {
		return defaultVal
	}
	v, ok := m[key]
	if !ok {
		return defaultVal
	}
	if t, ok := v.(T); ok {
		return t
	}
	return defaultVal
}

// ConfigGetInt64 按 key 取整数。兼容解析器产出的各种数字类型。
func ConfigGetInt64(m map[string]any, key string, defaultVal int64) int64 {
	if m == nil {
		return defaultVal
	}
	switch val := m[key].(type) {
	case int:
		return int64(val)
	case int64:
		return val
	case float64:
		return int64(val)
	case float32:
		return int64(val)
	default:
		return defaultVal
	}
}
