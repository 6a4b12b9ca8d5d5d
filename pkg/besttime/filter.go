package besttime

import "github.com/triclops200/besttime/pkg/reddit"

// Comparator decides whether a post's upvote count passes a threshold.
type Comparator func(ups, threshold int) bool

// GreaterThan keeps posts strictly above the threshold. This is the default
// "popular enough" comparator.
func GreaterThan(ups, threshold int) bool { return ups > threshold }

// AtLeast keeps posts at or above the threshold.
func AtLeast(ups, threshold int) bool { return ups >= threshold }

// LessThan keeps posts strictly below the threshold, for "obscure enough"
// queries.
func LessThan(ups, threshold int) bool { return ups < threshold }

// AtMost keeps posts at or below the threshold.
func AtMost(ups, threshold int) bool { return ups <= threshold }

// FilterByUps returns the posts whose upvote count satisfies
// cmp(ups, threshold), preserving relative order.
func FilterByUps(posts []reddit.Post, threshold int, cmp Comparator) []reddit.Post {
	var kept []reddit.Post
	for _, p := range posts {
		if cmp(p.Ups, threshold) {
			kept = append(kept, p)
		}
	}
	return kept
}
