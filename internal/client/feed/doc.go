// Package feed pages through a photo listing.
//
// A Pager owns one feed: the photos loaded so far, the page cursor and the
// three loading phases (initial load, refresh, load more). Requests are not
// cancelled. When a refresh overlaps an in-flight append, both responses are
// applied in the order they arrive and the later one wins.
package feed
