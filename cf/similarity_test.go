package cf

import (
	"context"
	"math"
	"testing"

	"github.com/rushteam/shopkit/dataset"
)

func buildMatrix(t *testing.T, rows []dataset.Interaction) *RatingMatrix {
	t.Helper()
	return BuildRatingMatrix(dataset.New(rows))
}

func TestCosine_SymmetryAndDiagonal(t *testing.T) {
	m := buildMatrix(t, []dataset.Interaction{
		{UserID: 1, ItemID: 10, Rating: 5},
		{UserID: 1, ItemID: 20, Rating: 3},
		{UserID: 2, ItemID: 10, Rating: 4},
		{UserID: 2, ItemID: 30, Rating: 5},
		{UserID: 3, ItemID: 20, Rating: 2},
	})

	sim, err := Cosine{}.Compute(context.Background(), m)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	users := []int64{1, 2, 3}
	for _, a := range users {
		for _, b := range users {
			if sim.At(a, b) != sim.At(b, a) {
				t.Errorf("similarity not symmetric: At(%d,%d)=%v At(%d,%d)=%v",
					a, b, sim.At(a, b), b, a, sim.At(b, a))
			}
		}
		if sim.At(a, a) != 1 {
			t.Errorf("At(%d,%d) = %v, want 1 for a user with ratings", a, a, sim.At(a, a))
		}
	}
}

func TestCosine_KnownValue(t *testing.T) {
	m := buildMatrix(t, []dataset.Interaction{
		{UserID: 1, ItemID: 10, Rating: 5},
		{UserID: 1, ItemID: 20, Rating: 3},
		{UserID: 2, ItemID: 10, Rating: 4},
		{UserID: 2, ItemID: 30, Rating: 5},
	})

	sim, err := Cosine{}.Compute(context.Background(), m)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	// dot = 5*4 = 20, |u1| = sqrt(34), |u2| = sqrt(41)
	want := 20 / (math.Sqrt(34) * math.Sqrt(41))
	if got := sim.At(1, 2); math.Abs(got-want) > 1e-12 {
		t.Errorf("At(1,2) = %v, want %v", got, want)
	}
}

func TestCosine_ZeroVectorSafety(t *testing.T) {
	// A user whose every rating is the unrated sentinel must yield
	// similarity 0 to everyone, never a division error.
	m := buildMatrix(t, []dataset.Interaction{
		{UserID: 1, ItemID: 10, Rating: 5},
		{UserID: 2, ItemID: 10, Rating: 0},
	})

	sim, err := Cosine{}.Compute(context.Background(), m)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if got := sim.At(1, 2); got != 0 {
		t.Errorf("At(1,2) = %v, want 0 for zero-norm vector", got)
	}
	if got := sim.At(2, 2); got != 0 {
		t.Errorf("At(2,2) = %v, want 0 diagonal for user with no real ratings", got)
	}
}

func TestCosine_UnknownUser(t *testing.T) {
	m := buildMatrix(t, []dataset.Interaction{
		{UserID: 1, ItemID: 10, Rating: 5},
	})
	sim, err := Cosine{}.Compute(context.Background(), m)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if got := sim.At(1, 99); got != 0 {
		t.Errorf("At(1, 99) = %v, want 0 for unknown user", got)
	}
	if sim.HasUser(99) {
		t.Error("HasUser(99) = true, want false")
	}
}

func TestCosine_Cancellation(t *testing.T) {
	m := buildMatrix(t, []dataset.Interaction{
		{UserID: 1, ItemID: 10, Rating: 5},
		{UserID: 2, ItemID: 10, Rating: 4},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := (Cosine{}).Compute(ctx, m); err == nil {
		t.Error("Compute() with cancelled context should return an error")
	}
}
