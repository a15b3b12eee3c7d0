package recall

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rushteam/shopkit/core"
	"github.com/rushteam/shopkit/pkg/utils"
)

type stubSource struct {
	name  string
	items []*core.Item
	err   error
	delay time.Duration
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Recall(ctx context.Context, _ *core.RecommendContext) ([]*core.Item, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.items, s.err
}

func newStubItem(id int64, label string) *core.Item {
	it := core.NewItem(id)
	it.PutLabel("origin", utils.Label{Value: label, Source: "test"})
	return it
}

func TestFanout_MergeKeepsSourceOrder(t *testing.T) {
	n := &Fanout{
		Sources: []Source{
			&stubSource{name: "a", items: []*core.Item{newStubItem(1, "a"), newStubItem(2, "a")}},
			&stubSource{name: "b", items: []*core.Item{newStubItem(3, "b")}},
		},
	}

	items, err := n.Process(context.Background(), &core.RecommendContext{Count: 10}, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	want := []int64{1, 2, 3}
	if len(items) != len(want) {
		t.Fatalf("Process() = %v, want %v", ids(items), want)
	}
	for i := range want {
		if items[i].ID != want[i] {
			t.Fatalf("Process() = %v, want source order %v", ids(items), want)
		}
	}
}

func TestFanout_DedupFirstWins(t *testing.T) {
	n := &Fanout{
		Dedup: true,
		Sources: []Source{
			&stubSource{name: "a", items: []*core.Item{newStubItem(1, "a")}},
			&stubSource{name: "b", items: []*core.Item{newStubItem(1, "b"), newStubItem(2, "b")}},
		},
	}

	items, err := n.Process(context.Background(), &core.RecommendContext{Count: 10}, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want duplicates collapsed to 2", len(items))
	}
	if items[0].ID != 1 || items[1].ID != 2 {
		t.Fatalf("Process() = %v, want [1 2]", ids(items))
	}
	// Earlier source wins the slot; the later duplicate only merges labels in.
	if lb := items[0].Labels["origin"]; lb.Value != "a|b" {
		t.Errorf("dedup merged origin = %q, want accumulated a|b", lb.Value)
	}
}

func TestFanout_SourceErrorDoesNotFailRequest(t *testing.T) {
	n := &Fanout{
		Sources: []Source{
			&stubSource{name: "bad", err: errors.New("backend down")},
			&stubSource{name: "good", items: []*core.Item{newStubItem(7, "good")}},
		},
	}

	items, err := n.Process(context.Background(), &core.RecommendContext{Count: 10}, nil)
	if err != nil {
		t.Fatalf("Process() error = %v, want degraded success", err)
	}
	if len(items) != 1 || items[0].ID != 7 {
		t.Errorf("Process() = %v, want surviving source result [7]", ids(items))
	}
}

func TestFanout_TimeoutDropsSlowSource(t *testing.T) {
	n := &Fanout{
		Timeout: 10 * time.Millisecond,
		Sources: []Source{
			&stubSource{name: "slow", delay: time.Second, items: []*core.Item{newStubItem(1, "slow")}},
			&stubSource{name: "fast", items: []*core.Item{newStubItem(2, "fast")}},
		},
	}

	items, err := n.Process(context.Background(), &core.RecommendContext{Count: 10}, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != 2 {
		t.Errorf("Process() = %v, want only the fast source's [2]", ids(items))
	}
}

func TestFanout_NoSources(t *testing.T) {
	items, err := (&Fanout{}).Process(context.Background(), &core.RecommendContext{}, nil)
	if err != nil || items != nil {
		t.Errorf("Process() = (%v, %v), want (nil, nil)", ids(items), err)
	}
}
