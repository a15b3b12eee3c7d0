package cf

import "testing"

func TestRanker_TopN(t *testing.T) {
	sm := NewScoreMap()
	sm.Add(10, 1.0)
	sm.Add(20, 3.0)
	sm.Add(30, 2.0)

	got := Ranker{}.TopN(sm, 2)
	want := []int64{20, 30}
	if len(got) != len(want) {
		t.Fatalf("TopN = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("TopN = %v, want %v", got, want)
		}
	}
}

func TestRanker_TiesBreakByInsertionOrder(t *testing.T) {
	sm := NewScoreMap()
	sm.Add(30, 2.0)
	sm.Add(10, 2.0)
	sm.Add(20, 2.0)

	got := Ranker{}.TopN(sm, 3)
	want := []int64{30, 10, 20}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("TopN = %v, want insertion order %v", got, want)
		}
	}
}

func TestRanker_FewerCandidatesThanN(t *testing.T) {
	sm := NewScoreMap()
	sm.Add(10, 1.0)

	got := Ranker{}.TopN(sm, 5)
	if len(got) != 1 {
		t.Errorf("TopN = %v, want all available candidates without padding", got)
	}
}

func TestRanker_NonPositiveN(t *testing.T) {
	sm := NewScoreMap()
	sm.Add(10, 1.0)

	if got := (Ranker{}).TopN(sm, 0); len(got) != 0 {
		t.Errorf("TopN(sm, 0) = %v, want empty", got)
	}
	if got := (Ranker{}).TopN(sm, -3); len(got) != 0 {
		t.Errorf("TopN(sm, -3) = %v, want empty", got)
	}
	if got := (Ranker{}).TopN(nil, 3); len(got) != 0 {
		t.Errorf("TopN(nil, 3) = %v, want empty", got)
	}
}
