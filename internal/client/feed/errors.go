package feed

import (
	"errors"
	"fmt"
)

// FetchFailedMessage is stored in Cursor.LastError after a failed load.
const FetchFailedMessage = "Failed to load photos. Please try again."

var ErrInvalidPage = errors.New("invalid page")

// FeedFetchError reports a failed page request. The feed is left as it was.
type FeedFetchError struct {
	Page int
	Mode Mode
	Err  error
}

func (e *FeedFetchError) Error() string {
	return fmt.Sprintf("%s load of page %d failed: %v", e.Mode, e.Page, e.Err)
}

func (e *FeedFetchError) Unwrap() error { return e.Err }
