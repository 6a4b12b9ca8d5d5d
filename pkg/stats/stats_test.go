package stats

import (
	"errors"
	"testing"

	"github.com/triclops200/besttime/pkg/timeofday"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		want   float64
	}{
		{"odd", []float64{1, 2, 3}, 2},
		{"even", []float64{1, 2, 3, 4}, 2.5},
		{"single", []float64{5}, 5},
		{"two", []float64{10, 20}, 15},
		{"odd lands on true middle", []float64{1, 1, 2, 8, 9}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Median(tt.sorted)
			if err != nil {
				t.Fatalf("Median(%v): %v", tt.sorted, err)
			}
			if got != tt.want {
				t.Errorf("Median(%v) = %v, want %v", tt.sorted, got, tt.want)
			}
		})
	}
}

func TestMedianEmpty(t *testing.T) {
	if _, err := Median(nil); !errors.Is(err, ErrEmptySequence) {
		t.Errorf("Median(nil) error = %v, want ErrEmptySequence", err)
	}
}

func TestMedianMinute(t *testing.T) {
	tests := []struct {
		name   string
		sorted []int
		want   timeofday.Minute
	}{
		{"odd", []int{480, 600, 1200}, 600},
		{"even midpoint rounds half away from zero", []int{479, 480}, 480},
		{"even exact", []int{400, 600}, 500},
		{"single", []int{75}, 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MedianMinute(tt.sorted)
			if err != nil {
				t.Fatalf("MedianMinute(%v): %v", tt.sorted, err)
			}
			if got != tt.want {
				t.Errorf("MedianMinute(%v) = %d, want %d", tt.sorted, got, tt.want)
			}
		})
	}

	if _, err := MedianMinute(nil); !errors.Is(err, ErrEmptySequence) {
		t.Errorf("MedianMinute(nil) error should wrap ErrEmptySequence, got %v", err)
	}
}

func TestArgMaxFirstOccurrenceWins(t *testing.T) {
	tests := []struct {
		name      string
		counts    []int
		wantMax   int
		wantIndex int
	}{
		{"tie breaks to first", []int{3, 5, 5, 2}, 5, 1},
		{"single element", []int{7}, 7, 0},
		{"all equal", []int{2, 2, 2}, 2, 0},
		{"max at end", []int{1, 2, 9}, 9, 2},
		{"empty", nil, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMax, gotIndex := ArgMax(tt.counts)
			if gotMax != tt.wantMax || gotIndex != tt.wantIndex {
				t.Errorf("ArgMax(%v) = (%d, %d), want (%d, %d)",
					tt.counts, gotMax, gotIndex, tt.wantMax, tt.wantIndex)
			}
		})
	}
}
