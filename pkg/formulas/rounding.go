// Package formulas holds the numeric helpers shared by the valuation and quote code.
package formulas

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// exactDigits is enough fractional digits to print any float64 without loss
const exactDigits = 1100

// RoundTo rounds x to the given number of decimal places the way a fixed
// precision formatter does: the exact binary value is rounded half away from
// zero and the result is parsed back into a float64.
// NaN and infinities are returned unchanged.
func RoundTo(x float64, places int32) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}

	exact := new(big.Float).SetFloat64(x).Text('f', exactDigits)
	d, err := decimal.NewFromString(exact)
	if err != nil {
		return x
	}
	r := d.Round(places).InexactFloat64()
	if r == 0 {
		return 0 // no negative zero
	}
	return r
}

// RoundMoney rounds a monetary amount to two decimal places
func RoundMoney(x float64) float64 {
	return RoundTo(x, 2)
}

// FloorShares returns the whole number of shares that cash buys at price.
// Zero, negative or non-finite prices buy nothing.
func FloorShares(cash, price float64) float64 {
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) || math.IsNaN(cash) {
		return 0
	}
	shares := math.Floor(cash / price)
	if shares < 0 {
		return 0
	}
	return shares
}
