package conv

import "testing"

func TestConfigGet(t *testing.T) {
	m := map[string]any{"metric": "jaccard", "n": 3, "dedup": true}

	if got := ConfigGet[string](m, "metric", "cosine"); got != "jaccard" {
		t.Errorf("ConfigGet(metric) = %q, want jaccard", got)
	}
	if got := ConfigGet[string](m, "missing", "cosine"); got != "cosine" {
		t.Errorf("ConfigGet(missing) = %q, want default cosine", got)
	}
	if got := ConfigGet[string](m, "n", "fallback"); got != "fallback" {
		t.Errorf("ConfigGet with wrong type = %q, want default", got)
	}
	if got := ConfigGet[bool](m, "dedup", false); !got {
		t.Error("ConfigGet(dedup) = false, want true")
	}
	if got := ConfigGet[string](nil, "any", "d"); got != "d" {
		t.Errorf("ConfigGet(nil map) = %q, want default", got)
	}
}

func TestConfigGetInt64(t *testing.T) {
	m := map[string]any{"a": 3, "b": 4.0, "c": int64(5), "d": "nope"}

	tests := []struct {
		key  string
		want int64
	}{
		{"a", 3},
		{"b", 4},
		{"c", 5},
		{"d", -1},
		{"missing", -1},
	}
	for _, tt := range tests {
		if got := ConfigGetInt64(m, tt.key, -1); got != tt.want {
			t.Errorf("ConfigGetInt64(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
	if got := ConfigGetInt64(nil, "any", 7); got != 7 {
		t.Errorf("ConfigGetInt64(nil map) = %d, want default 7", got)
	}
}
