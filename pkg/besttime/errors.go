package besttime

import (
	"errors"

	"github.com/triclops200/besttime/pkg/reddit"
)

// ErrEmptyResult is returned when no posts survive the popularity filter;
// the best section and median are undefined on an empty sequence.
var ErrEmptyResult = errors.New("no posts matched")

// ErrInvalidArgument is returned for an unrecognized window or sort, or a
// section count that cannot form a histogram. It is the same sentinel the
// supplier uses, so errors.Is matches it whichever layer rejected the
// request.
var ErrInvalidArgument = reddit.ErrInvalidArgument
