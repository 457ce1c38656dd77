package aggregation

import "testing"

func TestBuildHistogram(t *testing.T) {
	t.Run("no numeric samples", func(t *testing.T) {
		buckets := buildHistogram(map[string]int{"apple": 2, "pear": 1})
		if buckets != nil {
			t.Errorf("unexpected result: %v", buckets)
		}
	})

	t.Run("fibonacci samples span ten buckets", func(t *testing.T) {
		// 1,1,2,3,5,8,9 -> min=1, max=9, width=8
		buckets := buildHistogram(map[string]int{
			"1": 2,
			"2": 1,
			"3": 1,
			"5": 1,
			"8": 1,
			"9": 1,
		})
		if buckets == nil {
			t.Fatal("should produce buckets")
		}
		if len(buckets) != 10 {
			t.Errorf("unexpected bucket count: %d (%v)", len(buckets), buckets)
		}
		total := 0
		for _, count := range buckets {
			total += count
		}
		if total != 7 {
			t.Errorf("Unexpected total. Got: %d, Expected: %d", total, 7)
		}
		// the sample equal to max is absorbed by the last bucket
		if buckets["8-9"] != 1 {
			t.Errorf("unexpected last bucket count: %d", buckets["8-9"])
		}
	})

	t.Run("mixed numeric and non numeric keys", func(t *testing.T) {
		buckets := buildHistogram(map[string]int{
			"10":        3,
			"20":        2,
			"not a num": 5,
		})
		if buckets == nil {
			t.Fatal("should produce buckets")
		}
		total := 0
		for _, count := range buckets {
			total += count
		}
		if total != 5 {
			t.Errorf("Unexpected total. Got: %d, Expected: %d", total, 5)
		}
	})

	t.Run("degenerate range does not panic", func(t *testing.T) {
		buckets := buildHistogram(map[string]int{"5": 4})
		if buckets == nil {
			t.Fatal("should produce buckets")
		}
		total := 0
		for _, count := range buckets {
			total += count
		}
		if total != 4 {
			t.Errorf("Unexpected total. Got: %d, Expected: %d", total, 4)
		}
	})

	t.Run("float keys", func(t *testing.T) {
		buckets := buildHistogram(map[string]int{"1.5": 1, "2.5": 1})
		if buckets == nil {
			t.Fatal("should produce buckets")
		}
		total := 0
		for _, count := range buckets {
			total += count
		}
		if total != 2 {
			t.Errorf("Unexpected total. Got: %d, Expected: %d", total, 2)
		}
	})
}
