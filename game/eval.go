package game

import "math"

// EvaluateAdvantage combines a bust signal with the distance of each side to
// the target into a score between -1 and 1.
func EvaluateAdvantage(self, opponent Board, rules Rules) float64 {
	selfTotal, oppTotal := Total(self), Total(opponent)
	selfBusted, oppBusted := selfTotal > rules.Target, oppTotal > rules.Target

	switch {
	case selfBusted && oppBusted:
		return 0
	case selfBusted:
		return -1
	case oppBusted:
		return 1
	}

	// Closeness to target, 1 when exactly on it
	selfCloseness := float64(selfTotal) / float64(rules.Target)
	oppCloseness := float64(oppTotal) / float64(rules.Target)
	return normalize(selfCloseness, oppCloseness)
}

// Sigmoid maps an advantage onto a reward between 0 and 1.
func Sigmoid(advantage, steepness float64) float64 {
	return 1 / (1 + math.Exp(-steepness*advantage))
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := math.Abs(value) + math.Abs(otherValue)
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
