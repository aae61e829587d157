package simulation

import "testing"

func TestShouldInjectChallenge(t *testing.T) {
	cases := []struct {
		name      string
		inserted  int
		count     int
		remaining int
		roll      float64
		want      bool
	}{
		{"all challenges used", 3, 3, 5, 0.0, false},
		{"over budget", 4, 3, 5, 0.0, false},
		{"no tasks remaining", 0, 3, 0, 0.0, false},
		{"roll below rate", 0, 3, 10, 0.29, true},
		{"roll at rate", 0, 3, 10, 0.3, false},
		{"roll above rate", 0, 3, 10, 0.9, false},
		{"last chance rate one", 2, 3, 1, 0.999, true},
		{"half rate hit", 1, 3, 4, 0.49, true},
		{"half rate miss", 1, 3, 4, 0.5, false},
		{"zero budget config", 0, 0, 10, 0.0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := shouldInjectChallenge(tc.inserted, tc.count, tc.remaining, tc.roll)
			if got != tc.want {
				t.Errorf("shouldInjectChallenge(%d, %d, %d, %v) = %v, want %v",
					tc.inserted, tc.count, tc.remaining, tc.roll, got, tc.want)
			}
		})
	}
}

func TestShouldInjectChallenge_NeverExceedsBudget(t *testing.T) {
	// Walk a full run with roll pinned to 0 (always inject when allowed)
	// and check insertions stop at the budget.
	total, budget := 10, 3
	inserted := 0
	for done := 0; done < total; done++ {
		remaining := total - done
		if shouldInjectChallenge(inserted, budget, remaining, 0.0) {
			inserted++
		}
	}
	if inserted != budget {
		t.Errorf("inserted %d challenges, want exactly %d", inserted, budget)
	}
}
