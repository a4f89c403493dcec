// Package game implements the Pazaak card effects, board totals and round
// resolution shared by live matches and simulated rollouts.
package game

// Evaluate scores a non-terminal position between -1 and 1 indicating how
// favorable it is to the side owning self.
type Evaluate func(self, opponent Board, rules Rules) float64
