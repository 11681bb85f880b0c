package store

import "time"

// Listing is one ingested batch of paths.
type Listing struct {
	ID        string
	Source    string // where the paths came from, e.g. a bucket or file name
	PathCount int
	CreatedAt time.Time
}
