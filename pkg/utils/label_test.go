package utils

import "testing"

func TestMergeLabel(t *testing.T) {
	tests := []struct {
		name     string
		existing Label
		incoming Label
		want     Label
	}{
		{
			name:     "both set accumulate",
			existing: Label{Value: "popularity", Source: "recall"},
			incoming: Label{Value: "content", Source: "engine"},
			want:     Label{Value: "popularity|content", Source: "recall,engine"},
		},
		{
			name:     "empty existing yields incoming",
			existing: Label{},
			incoming: Label{Value: "content", Source: "engine"},
			want:     Label{Value: "content", Source: "engine"},
		},
		{
			name:     "empty incoming yields existing",
			existing: Label{Value: "popularity", Source: "recall"},
			incoming: Label{},
			want:     Label{Value: "popularity", Source: "recall"},
		},
		{
			name:     "missing incoming source keeps existing source",
			existing: Label{Value: "a", Source: "recall"},
			incoming: Label{Value: "b"},
			want:     Label{Value: "a|b", Source: "recall"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergeLabel(tt.existing, tt.incoming); got != tt.want {
				t.Errorf("MergeLabel() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
