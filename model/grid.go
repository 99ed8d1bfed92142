package model

import (
	"math"
	"strings"
)

type Mode uint8

const (
	Nearest Mode = iota
	Forward
	Backward
)

func (m Mode) String() string {
	switch m {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Nearest:
		return "nearest"
	}
	return "unknown"
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forward":
		return Forward, nil
	case "backward":
		return Backward, nil
	case "nearest":
		return Nearest, nil
	}
	return 0, NewInputError("unknown quantize mode %q", s)
}

// OverlapAlgorithm selects how quantized notes are kept from running into
// each other.
//
// AdjacentPassOverlap makes a single sweep over neighbours in onset order.
// Only directly adjacent pairs are compared, and a note already at its
// 1 tick minimum stays overlapping its successor. Dense or compressed
// grids can therefore keep some overlaps.
type OverlapAlgorithm uint8

const (
	AdjacentPassOverlap OverlapAlgorithm = iota
)

func (a OverlapAlgorithm) String() string {
	if a == AdjacentPassOverlap {
		return "adjacent"
	}
	return "unknown"
}

func ParseOverlapAlgorithm(s string) (OverlapAlgorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "adjacent":
		return AdjacentPassOverlap, nil
	}
	return 0, NewInputError("unknown overlap algorithm %q", s)
}

type GridConfig struct {
	GridSize  int64
	StartTick int64
	Mode      Mode
	// Strength blends between the original tick (0) and the grid target (1).
	Strength float64
	MinGap   int64
	Overlap  OverlapAlgorithm
}

func (c GridConfig) Validate() error {
	switch {
	case c.GridSize <= 0:
		return NewInputError("grid size must be positive, got %d", c.GridSize)
	case math.IsNaN(c.Strength) || c.Strength < 0 || c.Strength > 1:
		return NewInputError("strength must be within [0, 1], got %v", c.Strength)
	case c.MinGap < 0:
		return NewInputError("min gap must not be negative, got %d", c.MinGap)
	case c.Mode > Backward:
		return NewInputError("unknown quantize mode %d", c.Mode)
	case c.Overlap != AdjacentPassOverlap:
		return NewInputError("unknown overlap algorithm %d", c.Overlap)
	}
	return nil
}
