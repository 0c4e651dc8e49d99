package portfolio

import (
	"strings"

	"github.com/stockwolf/stockwolf-api/internal/clients/yahoo"
	"github.com/stockwolf/stockwolf-api/pkg/formulas"
)

// PositionGain holds the unrounded gain or loss of one position
type PositionGain struct {
	TodaysGainOrLoss float64
	TotalGainOrLoss  float64
}

// ValuedPosition is a completed position priced against a quote
type ValuedPosition struct {
	Position
	PositionGain
}

// CalculatePositionGainOrLoss prices a position. Today's figure is measured
// from the previous close and the total from the purchase price.
func CalculatePositionGainOrLoss(p Position, price yahoo.PriceSnapshot) PositionGain {
	current := float64(price.CurrentPrice)
	return PositionGain{
		TodaysGainOrLoss: p.NumberOfShares * (current - float64(price.PreviousClose)),
		TotalGainOrLoss:  p.NumberOfShares * (current - p.PurchasePrice),
	}
}

// CalculatePortfolioValue aggregates positions and pending orders into a
// Valuation. Sums are kept unrounded and each output is rounded once.
func CalculatePortfolioValue(p Portfolio, positions []ValuedPosition, pending []Order) Valuation {
	var committedCash float64
	for _, o := range pending {
		if o.IsBuy() {
			committedCash += o.NumberOfShares * o.PurchasePrice
		}
	}

	var equityValue, todaysGainOrLoss float64
	tickers := make(map[string]struct{}, len(positions))
	for _, vp := range positions {
		equityValue += vp.NumberOfShares*vp.PurchasePrice + vp.TotalGainOrLoss
		todaysGainOrLoss += vp.TodaysGainOrLoss
		tickers[strings.ToUpper(vp.Ticker)] = struct{}{}
	}

	freeCash := p.Cash - committedCash
	portfolioValue := equityValue + freeCash + committedCash
	totalGainOrLoss := portfolioValue - p.InitialPortfolioValue

	return Valuation{
		Cash:                    formulas.RoundMoney(freeCash),
		CommittedCash:           formulas.RoundMoney(committedCash),
		EquityValue:             formulas.RoundMoney(equityValue),
		PortfolioValue:          formulas.RoundMoney(portfolioValue),
		TodaysGainOrLoss:        formulas.RoundMoney(todaysGainOrLoss),
		TotalGainOrLoss:         formulas.RoundMoney(totalGainOrLoss),
		NumberOfPositions:       len(positions),
		NumberOfUniquePositions: len(tickers),
	}
}

// AffordableShares is the whole number of shares cash buys at price
func AffordableShares(price, cash float64) float64 {
	return formulas.FloorShares(cash, price)
}

// SharesForCompletingOrder returns the desired share count when it is still
// affordable at the current price, and otherwise the affordable count
func SharesForCompletingOrder(desired, price, cash float64) float64 {
	if desired*price < cash {
		return desired
	}
	return AffordableShares(price, cash)
}
