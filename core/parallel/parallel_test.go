package parallel

import (
	"errors"
	"sync"
	"testing"
)

func TestChunksCoversEveryIndexOnce(t *testing.T) {
	tests := []struct {
		name      string
		items     int
		threshold int
	}{
		{"empty", 0, 10},
		{"sequential", 5, 10},
		{"parallel", 1003, 10},
		{"one item above threshold", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mu sync.Mutex
			seen := make([]int, tt.items)

			err := Chunks(tt.items, tt.threshold, func(start, end int) error {
				mu.Lock()
				defer mu.Unlock()
				for i := start; i < end; i++ {
					seen[i]++
				}
				return nil
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for i, n := range seen {
				if n != 1 {
					t.Fatalf("index %d visited %d times", i, n)
				}
			}
		})
	}
}

func TestChunksSequentialBelowThreshold(t *testing.T) {
	calls := 0
	_ = Chunks(100, 100, func(start, end int) error {
		calls++
		if start != 0 || end != 100 {
			t.Errorf("got range [%d, %d), want [0, 100)", start, end)
		}
		return nil
	})
	if calls != 1 {
		t.Errorf("expected a single call, got %d", calls)
	}
}

func TestChunksReturnsError(t *testing.T) {
	boom := errors.New("boom")
	err := Chunks(5000, 10, func(start, end int) error {
		if start == 0 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestParallelizeWithThreshold(t *testing.T) {
	out := make([]float64, 2048)
	ParallelizeWithThreshold(len(out), 16, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = float64(i) * 2
		}
	})
	for i, v := range out {
		if v != float64(i)*2 {
			t.Fatalf("out[%d] = %v, want %v", i, v, float64(i)*2)
		}
	}
}
