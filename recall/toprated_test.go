package recall

import (
	"context"
	"testing"

	"github.com/rushteam/shopkit/core"
	"github.com/rushteam/shopkit/dataset"
	"github.com/rushteam/shopkit/store"
)

func TestTopRated_TableFallback(t *testing.T) {
	table := dataset.New([]dataset.Interaction{
		{UserID: 1, ItemID: 10, Rating: 3, ReviewCount: 100},
		{UserID: 2, ItemID: 10, Rating: 5, ReviewCount: 100}, // mean 4
		{UserID: 1, ItemID: 20, Rating: 5, ReviewCount: 10},  // mean 5
		{UserID: 1, ItemID: 30, Rating: 4, ReviewCount: 50},  // mean 4, fewer reviews than 10
	})
	src := &TopRated{Table: table, TopK: 3}

	items, err := src.Recall(context.Background(), &core.RecommendContext{Count: 3})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	want := []int64{20, 10, 30}
	if len(items) != len(want) {
		t.Fatalf("len(items) = %d, want %d", len(items), len(want))
	}
	for i, it := range items {
		if it.ID != want[i] {
			t.Fatalf("ranking = %v, want %v (mean desc, tie by review count desc)", ids(items), want)
		}
	}
	if items[0].Score != 5 {
		t.Errorf("top item score = %v, want mean rating 5", items[0].Score)
	}
}

func TestTopRated_TruncatesToTopK(t *testing.T) {
	table := dataset.New([]dataset.Interaction{
		{UserID: 1, ItemID: 10, Rating: 5},
		{UserID: 1, ItemID: 20, Rating: 4},
		{UserID: 1, ItemID: 30, Rating: 3},
	})
	src := &TopRated{Table: table, TopK: 2}

	items, err := src.Recall(context.Background(), nil)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(items) != 2 {
		t.Errorf("len(items) = %d, want 2", len(items))
	}
}

func TestTopRated_EmptyTable(t *testing.T) {
	src := &TopRated{Table: dataset.New(nil), TopK: 5}
	items, err := src.Recall(context.Background(), nil)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("empty table should recall nothing, got %v", ids(items))
	}
}

func TestTopRated_StorePreferred(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	defer kv.Close()

	for member, score := range map[string]float64{"10": 4.5, "20": 4.9, "30": 3.2} {
		if err := kv.ZAdd(ctx, "toprated:items", score, member); err != nil {
			t.Fatalf("ZAdd() error = %v", err)
		}
	}

	table := dataset.New([]dataset.Interaction{
		{UserID: 1, ItemID: 99, Rating: 5}, // must be shadowed by the store ranking
	})
	src := &TopRated{Table: table, Store: kv, Key: "toprated:items", TopK: 2}

	items, err := src.Recall(ctx, nil)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	want := []int64{20, 10}
	if len(items) != len(want) || items[0].ID != want[0] || items[1].ID != want[1] {
		t.Errorf("Recall() = %v, want store ranking %v", ids(items), want)
	}
}

func TestTopRated_StoreMissFallsBackToTable(t *testing.T) {
	kv := store.NewMemoryStore()
	defer kv.Close()

	table := dataset.New([]dataset.Interaction{
		{UserID: 1, ItemID: 10, Rating: 5},
	})
	src := &TopRated{Table: table, Store: kv, Key: "toprated:missing", TopK: 5}

	items, err := src.Recall(context.Background(), nil)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != 10 {
		t.Errorf("Recall() = %v, want table fallback [10]", ids(items))
	}
}

func ids(items []*core.Item) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
