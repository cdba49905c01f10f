// Package imageday fetches the daily challenge image: which picture is
// shown today, and where it was taken.
package imageday

import "context"

// Info describes today's challenge image. Date doubles as the per-day
// cache key (ISO calendar day).
type Info struct {
	Date      string `json:"date"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	Copyright string `json:"copyright"`
	// Country is the place name extracted from the image metadata. It is
	// the challenge's true location, resolved lazily by the game core.
	Country string `json:"country"`
}

// Provider returns today's challenge image metadata.
type Provider interface {
	Today(ctx context.Context) (Info, error)
}
