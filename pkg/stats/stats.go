// Package stats provides the small numeric kernels shared by the posting
// time pipeline: medians over pre-sorted sequences and argmax scans.
package stats

import (
	"errors"
	"fmt"
	"math"

	"github.com/triclops200/besttime/pkg/timeofday"
)

// ErrEmptySequence is returned when a statistic is requested over no data.
var ErrEmptySequence = errors.New("empty sequence")

// Median returns the median of an ascending pre-sorted sequence. The caller
// is responsible for sorting; Median never reorders its input.
//
// For odd lengths this is the middle element (index n>>1 of the 0-indexed
// slice); for even lengths, the arithmetic mean of the two middle elements.
func Median(sorted []float64) (float64, error) {
	n := len(sorted)
	if n == 0 {
		return 0, ErrEmptySequence
	}
	if n%2 == 1 {
		return sorted[n>>1], nil
	}
	return (sorted[n/2] + sorted[n/2-1]) / 2, nil
}

// MedianMinute returns the median of an ascending pre-sorted sequence of
// minute-of-day values. An even-length midpoint is computed in float64 and
// rounded half away from zero to the nearest whole minute.
func MedianMinute(sorted []int) (timeofday.Minute, error) {
	n := len(sorted)
	if n == 0 {
		return 0, fmt.Errorf("median time: %w", ErrEmptySequence)
	}
	if n%2 == 1 {
		return timeofday.Minute(sorted[n>>1]), nil
	}
	mid := (float64(sorted[n/2]) + float64(sorted[n/2-1])) / 2
	return timeofday.Minute(int(math.Round(mid))), nil
}

// ArgMax returns the maximum count and its index. Ties break toward the
// first occurrence: a later equal count never displaces an earlier maximum.
// An empty slice yields (0, -1).
func ArgMax(counts []int) (maxCount, index int) {
	index = -1
	for i, c := range counts {
		if index == -1 || c > maxCount {
			maxCount = c
			index = i
		}
	}
	return maxCount, index
}
