// Package stats provides the closed-form statistical primitives used by the
// diagnostics stages: mean, population standard deviation, z-scores, Pearson
// correlation, and ordinary least squares against the sample index. All
// functions are pure and return explicit "unavailable" results instead of
// NaN or infinity on degenerate input.
package stats

import "math"

// Mean returns the arithmetic mean of x, or 0 for an empty slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// StdDev returns the population standard deviation of x, or 0 for fewer than
// two samples.
func StdDev(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	mean := Mean(x)
	sumSq := 0.0
	for _, v := range x {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(x)))
}

// ZScores standardizes x against its own mean and population standard
// deviation. The second return is false when the series has zero variance,
// in which case no scores are produced.
func ZScores(x []float64) ([]float64, bool) {
	std := StdDev(x)
	if std == 0 {
		return nil, false
	}
	mean := Mean(x)
	scores := make([]float64, len(x))
	for i, v := range x {
		scores[i] = (v - mean) / std
	}
	return scores, true
}

// PearsonCorrelation returns the Pearson correlation coefficient between x
// and y. It returns 0 (and false) when the inputs differ in length, have
// fewer than two samples, or either series has zero variance.
func PearsonCorrelation(x, y []float64) (float64, bool) {
	if len(x) != len(y) || len(x) < 2 {
		return 0, false
	}
	meanX := Mean(x)
	meanY := Mean(y)
	var sumXY, sumXX, sumYY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sumXY += dx * dy
		sumXX += dx * dx
		sumYY += dy * dy
	}
	if sumXX == 0 || sumYY == 0 {
		return 0, false
	}
	return sumXY / math.Sqrt(sumXX*sumYY), true
}

// Regression holds a closed-form ordinary-least-squares fit of a series
// against its 0-based sample index.
type Regression struct {
	Slope     float64
	Intercept float64
	RSquared  float64
}

// LinearRegression fits y against the index 0..n-1. The second return is
// false for fewer than two samples. A constant series yields slope 0 and
// RSquared 0.
func LinearRegression(y []float64) (Regression, bool) {
	n := len(y)
	if n < 2 {
		return Regression{}, false
	}

	meanX := float64(n-1) / 2
	meanY := Mean(y)
	var sumXY, sumXX float64
	for i, v := range y {
		dx := float64(i) - meanX
		sumXY += dx * (v - meanY)
		sumXX += dx * dx
	}

	slope := sumXY / sumXX
	intercept := meanY - slope*meanX

	var ssRes, ssTot float64
	for i, v := range y {
		pred := slope*float64(i) + intercept
		ssRes += (v - pred) * (v - pred)
		ssTot += (v - meanY) * (v - meanY)
	}
	rSquared := 0.0
	if ssTot > 0 {
		rSquared = 1 - ssRes/ssTot
	}

	return Regression{Slope: slope, Intercept: intercept, RSquared: rSquared}, true
}
