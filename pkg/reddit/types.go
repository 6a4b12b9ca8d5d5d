package reddit

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidArgument marks requests rejected before any network call: an
// unrecognized sort or window, or a missing subreddit.
var ErrInvalidArgument = errors.New("invalid argument")

// Sort selects the ranking a listing is ordered by.
type Sort string

// Listing sorts recognized by the API.
const (
	SortTop           Sort = "top"
	SortHot           Sort = "hot"
	SortNew           Sort = "new"
	SortControversial Sort = "controversial"
)

// ParseSort validates a sort name. An empty string selects the default, top.
func ParseSort(s string) (Sort, error) {
	switch Sort(s) {
	case "":
		return SortTop, nil
	case SortTop, SortHot, SortNew, SortControversial:
		return Sort(s), nil
	default:
		return "", fmt.Errorf("%w: unknown sort %q", ErrInvalidArgument, s)
	}
}

// Window is the historical span over which the API ranks "top" posts.
type Window string

// Ranking windows recognized by the API.
const (
	WindowHour  Window = "hour"
	WindowDay   Window = "day"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowYear  Window = "year"
	WindowAll   Window = "all"
)

// ParseWindow validates a window name. An empty string selects the default,
// day.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case "":
		return WindowDay, nil
	case WindowHour, WindowDay, WindowWeek, WindowMonth, WindowYear, WindowAll:
		return Window(s), nil
	default:
		return "", fmt.Errorf("%w: unknown window %q", ErrInvalidArgument, s)
	}
}

// Post is one record from a subreddit listing. Immutable after decode.
type Post struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"` // fullname, e.g. "t3_abc123"; seeds the pagination cursor
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	Permalink   string  `json:"permalink"`
	CreatedUTC  float64 `json:"created_utc"` // unix seconds, may be fractional
	Ups         int     `json:"ups"`
	NumComments int     `json:"num_comments"`
	Over18      bool    `json:"over_18"`
}

// CreatedAt returns the post's creation instant in UTC. The fractional
// unix-seconds stamp is widened to milliseconds before conversion.
func (p Post) CreatedAt() time.Time {
	return time.UnixMilli(int64(p.CreatedUTC * 1000)).UTC()
}

// listing mirrors the API's envelope: a "Listing" kind wrapping children
// that each wrap a post under "data".
type listing struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Data Post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Page is one fetched page of a listing plus the server-supplied cursor for
// the next one.
type Page struct {
	Posts []Post
	After string
}
