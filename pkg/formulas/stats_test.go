package formulas

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateReturns(t *testing.T) {
	returns := CalculateReturns([]float64{100, 110, 99})
	require.Len(t, returns, 2)
	assert.InDelta(t, 0.10, returns[0], 1e-9)
	assert.InDelta(t, -0.10, returns[1], 1e-9)

	assert.Empty(t, CalculateReturns([]float64{100}))
}

func TestSummarise(t *testing.T) {
	s := Summarise([]float64{1000, 1100, 990})

	assert.Equal(t, 3, s.Count)
	assert.Equal(t, Float(1030), s.MeanValue)
	assert.Equal(t, Float(990), s.MinValue)
	assert.Equal(t, Float(1100), s.MaxValue)
	assert.InDelta(t, -0.1, float64(s.LastReturn), 1e-9)
	assert.Greater(t, float64(s.Volatility), 0.0)
}

func TestSummarise_Empty(t *testing.T) {
	s := Summarise(nil)
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, Float(0), s.Volatility)
}

func TestSummarise_SingleValueHasNoVolatility(t *testing.T) {
	s := Summarise([]float64{500})
	assert.Equal(t, Float(0), s.Volatility)
	assert.Equal(t, Float(500), s.MeanValue)
}

func TestFloat_JSON(t *testing.T) {
	out, err := json.Marshal(map[string]Float{
		"price":  12.5,
		"broken": Float(math.NaN()),
		"inf":    Float(math.Inf(1)),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":12.5,"broken":null,"inf":null}`, string(out))

	var back struct {
		Price  Float `json:"price"`
		Broken Float `json:"broken"`
	}
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, Float(12.5), back.Price)
	assert.True(t, back.Broken.IsNaN())
}
