package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// SeriesStats summarises a series of portfolio values
type SeriesStats struct {
	Count      int   `json:"count"`
	MeanValue  Float `json:"meanValue"`
	MinValue   Float `json:"minValue"`
	MaxValue   Float `json:"maxValue"`
	Volatility Float `json:"volatility"`
	LastReturn Float `json:"lastReturn"`
}

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation, zero for fewer than two values
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// CalculateReturns converts values to period returns
// Returns[i] = (Value[i+1] - Value[i]) / Value[i]
func CalculateReturns(values []float64) []float64 {
	if len(values) < 2 {
		return []float64{}
	}

	returns := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		if values[i-1] != 0 {
			returns[i-1] = (values[i] - values[i-1]) / values[i-1]
		}
	}
	return returns
}

// Summarise computes mean, range and volatility for a value series
func Summarise(values []float64) SeriesStats {
	s := SeriesStats{Count: len(values)}
	if len(values) == 0 {
		return s
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	returns := CalculateReturns(values)
	s.MeanValue = Float(RoundMoney(Mean(values)))
	s.MinValue = Float(lo)
	s.MaxValue = Float(hi)
	s.Volatility = Float(RoundTo(StdDev(returns), 6))
	if len(returns) > 0 {
		s.LastReturn = Float(RoundTo(returns[len(returns)-1], 6))
	}
	return s
}
