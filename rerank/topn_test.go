package rerank

import (
	"context"
	"testing"

	"github.com/rushteam/shopkit/core"
)

func TestTopNNode(t *testing.T) {
	items := []*core.Item{core.NewItem(1), core.NewItem(2), core.NewItem(3)}

	tests := []struct {
		name    string
		n       int
		wantLen int
	}{
		{"truncates", 2, 2},
		{"fewer than n", 10, 3},
		{"zero means no truncation", 0, 3},
		{"negative means no truncation", -1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopNNode{N: tt.n}
			out, err := node.Process(context.Background(), nil, items)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(out) != tt.wantLen {
				t.Errorf("len(out) = %d, want %d", len(out), tt.wantLen)
			}
		})
	}
}

func TestTopNNode_KeepsOrder(t *testing.T) {
	items := []*core.Item{core.NewItem(5), core.NewItem(3), core.NewItem(9)}
	out, err := (&TopNNode{N: 2}).Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if out[0].ID != 5 || out[1].ID != 3 {
		t.Errorf("Process() reordered items: got [%d %d]", out[0].ID, out[1].ID)
	}
}
