// Package engine runs complete matches between automated players without
// any transport or pacing.
package engine

import "pazaak/experiments/metrics"

const MaxMoves = 10000

type Engine interface {
	// Run plays a match till there's a winner or a max number of moves is reached
	Run() (winner int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
