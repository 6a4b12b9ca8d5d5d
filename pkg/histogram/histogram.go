// Package histogram buckets minute-of-day values into equal-width sections
// spanning a day and reports per-section occupancy.
package histogram

import (
	"errors"
	"fmt"

	"github.com/triclops200/besttime/pkg/stats"
	"github.com/triclops200/besttime/pkg/timeofday"
)

// ErrBucketCount is returned when fewer than two buckets are requested.
// A single bucket makes the width divisor zero.
var ErrBucketCount = errors.New("bucket count must be greater than 1")

// ErrOutOfRange is returned when an input value maps outside the histogram.
// For minute-of-day input this indicates an upstream invariant violation,
// not a user error.
var ErrOutOfRange = errors.New("value out of histogram range")

// Section is one bucket of a time-of-day histogram: the representative
// start minute and the number of values that landed in the bucket.
type Section struct {
	Start timeofday.Minute
	Count int
}

// BoxData distributes values into bucketCount equal-width buckets.
//
// The bucket width is maxValue/(bucketCount-1). The divisor is deliberately
// bucketCount-1, not bucketCount: with bucketCount buckets covering
// maxValue+1 possible values, the smaller divisor is what keeps maxValue
// itself inside the last bucket index under the truncating assignment
// floor(value/width). The assignment is evaluated in integer arithmetic as
// value*(bucketCount-1)/maxValue, which is exactly floor(value/width) for
// the rational width; dividing by a float64 width instead can round the
// width up and truncate maxValue into bucket bucketCount-2. Callers
// bucketing minute-of-day values must pass maxValue = timeofday.MaxMinute;
// BoxData does not second-guess the choice of maxValue.
func BoxData(values []int, bucketCount, maxValue int) ([]int, error) {
	if bucketCount <= 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBucketCount, bucketCount)
	}
	if maxValue < 1 {
		return nil, fmt.Errorf("%w: max value %d leaves no room for buckets", ErrOutOfRange, maxValue)
	}
	hist := make([]int, bucketCount)
	for _, v := range values {
		i := v * (bucketCount - 1) / maxValue
		if v < 0 || i >= bucketCount {
			return nil, fmt.Errorf("%w: %d maps to bucket %d of %d", ErrOutOfRange, v, i, bucketCount)
		}
		hist[i]++
	}
	return hist, nil
}

// sectionStart converts a bucket index back to its representative minute,
// truncating: index * (minutes per day / bucketCount).
func sectionStart(index, bucketCount int) timeofday.Minute {
	return timeofday.Minute(index * (timeofday.MinutesPerDay / bucketCount))
}

// Best returns the representative minute of the most occupied bucket.
// Equal counts resolve to the earliest bucket.
func Best(minutes []int, bucketCount int) (timeofday.Minute, error) {
	hist, err := BoxData(minutes, bucketCount, timeofday.MaxMinute)
	if err != nil {
		return 0, err
	}
	_, index := stats.ArgMax(hist)
	return sectionStart(index, bucketCount), nil
}

// Sections returns every bucket's representative minute and count, in bucket
// order (ascending time of day).
func Sections(minutes []int, bucketCount int) ([]Section, error) {
	hist, err := BoxData(minutes, bucketCount, timeofday.MaxMinute)
	if err != nil {
		return nil, err
	}
	out := make([]Section, len(hist))
	for i, count := range hist {
		out[i] = Section{Start: sectionStart(i, bucketCount), Count: count}
	}
	return out, nil
}
