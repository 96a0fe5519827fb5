package models

// ValidFibonacciPoints is the fixed estimation scale.
var ValidFibonacciPoints = []int{1, 2, 3, 5, 8, 13}

// IsValidFibonacci reports whether n belongs to the estimation scale.
func IsValidFibonacci(n int) bool {
	for _, p := range ValidFibonacciPoints {
		if p == n {
			return true
		}
	}
	return false
}

// NearestFibonacci snaps an arbitrary number to the closest member of the
// estimation scale. Ties resolve to the earlier member in ascending order.
func NearestFibonacci(n float64) int {
	closest := ValidFibonacciPoints[0]
	minDiff := abs(n - float64(closest))

	for _, point := range ValidFibonacciPoints {
		diff := abs(n - float64(point))
		if diff < minDiff {
			minDiff = diff
			closest = point
		}
	}

	return closest
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// EvaluationResult is the outcome of evaluating a single ticket field
// (title or description).
type EvaluationResult struct {
	IsAdequate bool   `json:"isAdequate"`
	Feedback   string `json:"feedback"`
}

// EstimationResult is the outcome of an effort estimation. Points is always
// a member of ValidFibonacciPoints.
type EstimationResult struct {
	Points    int    `json:"points"`
	Reasoning string `json:"reasoning"`
}
