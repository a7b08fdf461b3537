package bots

import (
	"fmt"
	"strings"

	"chessbot/position"
)

const (
	MinDepth     = 1
	MaxDepth     = 6
	DefaultDepth = 3
)

// Config binds a bot to one side and a fixed search depth for its lifetime.
type Config struct {
	Color position.Color
	Depth int
	// Workers > 1 searches root moves concurrently.
	Workers int
}

// Normalize clamps Depth into [MinDepth, MaxDepth] and Workers to at least 1.
func (c Config) Normalize() Config {
	c.Depth = max(MinDepth, min(c.Depth, MaxDepth))
	c.Workers = max(c.Workers, 1)
	return c
}

// ParseColor reads "white"/"w" or "black"/"b".
func ParseColor(s string) (position.Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return position.White, nil
	case "black", "b":
		return position.Black, nil
	}
	return position.White, fmt.Errorf("%w: unknown color %q", ErrInvalidConfig, s)
}
