package bots

import "time"

// SearchStats describes the most recent BestMove call.
type SearchStats struct {
	Nodes     uint64
	BestScore int
	Elapsed   time.Duration
}
