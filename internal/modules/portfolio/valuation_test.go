package portfolio

import (
	"testing"

	"github.com/stockwolf/stockwolf-api/internal/clients/yahoo"
	"github.com/stretchr/testify/assert"
)

func priced(p Position, current, previousClose float64) ValuedPosition {
	return ValuedPosition{
		Position: p,
		PositionGain: CalculatePositionGainOrLoss(p, yahoo.PriceSnapshot{
			Symbol:        p.Ticker,
			CurrentPrice:  formulasFloat(current),
			PreviousClose: formulasFloat(previousClose),
		}),
	}
}

func TestCalculatePortfolioValue_NoPendingOrders(t *testing.T) {
	p := Portfolio{Cash: 2500, InitialPortfolioValue: 2500}

	v := CalculatePortfolioValue(p, nil, nil)

	assert.Equal(t, 0.0, v.CommittedCash)
	assert.Equal(t, 2500.0, v.Cash)
	assert.Equal(t, 2500.0, v.PortfolioValue)
	assert.Equal(t, 0, v.NumberOfPositions)
	assert.Equal(t, 0, v.NumberOfUniquePositions)
}

func TestCalculatePortfolioValue_PendingBuyOrder(t *testing.T) {
	p := Portfolio{Cash: 1000, InitialPortfolioValue: 1000}
	orders := []Order{{Ticker: "AAPL", OrderType: OrderTypeBuy, NumberOfShares: 2, PurchasePrice: 100}}

	v := CalculatePortfolioValue(p, nil, orders)

	assert.Equal(t, 200.0, v.CommittedCash)
	assert.Equal(t, 800.0, v.Cash)
	assert.Equal(t, 0.0, v.EquityValue)
	assert.Equal(t, 1000.0, v.PortfolioValue)
	assert.Equal(t, 0.0, v.TotalGainOrLoss)
}

func TestCalculatePortfolioValue_SellOrdersCommitNothing(t *testing.T) {
	p := Portfolio{Cash: 1000, InitialPortfolioValue: 1000}
	orders := []Order{
		{OrderType: OrderTypeSell, NumberOfShares: 5, PurchasePrice: 100},
		{OrderType: "hold", NumberOfShares: 5, PurchasePrice: 100},
	}

	v := CalculatePortfolioValue(p, nil, orders)

	assert.Equal(t, 0.0, v.CommittedCash)
	assert.Equal(t, 1000.0, v.Cash)
}

func TestCalculatePortfolioValue_FreeCashIsNotClamped(t *testing.T) {
	p := Portfolio{Cash: 100, InitialPortfolioValue: 100}
	orders := []Order{{OrderType: OrderTypeBuy, NumberOfShares: 3, PurchasePrice: 50}}

	v := CalculatePortfolioValue(p, nil, orders)

	assert.Equal(t, -50.0, v.Cash)
	assert.Equal(t, 150.0, v.CommittedCash)
	assert.Equal(t, 100.0, v.PortfolioValue)
}

func TestCalculatePositionGainOrLoss(t *testing.T) {
	position := Position{Ticker: "AAPL", NumberOfShares: 10, PurchasePrice: 50}

	gain := CalculatePositionGainOrLoss(position, yahoo.PriceSnapshot{
		CurrentPrice:  formulasFloat(55),
		PreviousClose: formulasFloat(54),
	})

	assert.Equal(t, 50.0, gain.TotalGainOrLoss)
	assert.Equal(t, 10.0, gain.TodaysGainOrLoss)

	v := CalculatePortfolioValue(Portfolio{Cash: 0, InitialPortfolioValue: 500}, []ValuedPosition{{position, gain}}, nil)
	assert.Equal(t, 550.0, v.EquityValue)
	assert.Equal(t, 550.0, v.PortfolioValue)
	assert.Equal(t, 50.0, v.TotalGainOrLoss)
	assert.Equal(t, 10.0, v.TodaysGainOrLoss)
}

func TestCalculatePositionGainOrLoss_TodayWithoutTotalGain(t *testing.T) {
	// Bought at the current price, but the price moved since yesterday's close
	position := Position{Ticker: "AAPL", NumberOfShares: 4, PurchasePrice: 20}

	gain := CalculatePositionGainOrLoss(position, yahoo.PriceSnapshot{
		CurrentPrice:  formulasFloat(20),
		PreviousClose: formulasFloat(19.5),
	})

	assert.Equal(t, 0.0, gain.TotalGainOrLoss)
	assert.Equal(t, 2.0, gain.TodaysGainOrLoss)
}

func TestCalculatePortfolioValue_RoundsAggregateOnce(t *testing.T) {
	positions := []ValuedPosition{
		{Position: Position{Ticker: "A"}, PositionGain: PositionGain{TodaysGainOrLoss: 0.004}},
		{Position: Position{Ticker: "B"}, PositionGain: PositionGain{TodaysGainOrLoss: 0.004}},
		{Position: Position{Ticker: "C"}, PositionGain: PositionGain{TodaysGainOrLoss: 0.004}},
	}

	v := CalculatePortfolioValue(Portfolio{}, positions, nil)
	assert.Equal(t, 0.01, v.TodaysGainOrLoss)

	var displayed float64
	for _, f := range FormatPositions(positions) {
		displayed += f.TodaysGainOrLoss
	}
	assert.Equal(t, 0.0, displayed, "per position rounding drops what the aggregate keeps")
}

func TestCalculatePortfolioValue_HalfCentPositions(t *testing.T) {
	positions := []ValuedPosition{
		{Position: Position{Ticker: "A"}, PositionGain: PositionGain{TodaysGainOrLoss: 0.005}},
		{Position: Position{Ticker: "B"}, PositionGain: PositionGain{TodaysGainOrLoss: 0.005}},
	}

	v := CalculatePortfolioValue(Portfolio{}, positions, nil)
	assert.Equal(t, 0.01, v.TodaysGainOrLoss)

	for _, f := range FormatPositions(positions) {
		assert.Equal(t, 0.01, f.TodaysGainOrLoss)
	}
}

func TestCalculatePortfolioValue_UniquePositions(t *testing.T) {
	positions := []ValuedPosition{
		priced(Position{Ticker: "AAPL", NumberOfShares: 1, PurchasePrice: 10}, 10, 10),
		priced(Position{Ticker: "aapl", NumberOfShares: 2, PurchasePrice: 12}, 10, 10),
		priced(Position{Ticker: "MSFT", NumberOfShares: 1, PurchasePrice: 30}, 30, 30),
	}

	v := CalculatePortfolioValue(Portfolio{}, positions, nil)

	assert.Equal(t, 3, v.NumberOfPositions)
	assert.Equal(t, 2, v.NumberOfUniquePositions)
	assert.Equal(t, 60.0, v.EquityValue)
}

func TestAffordableShares(t *testing.T) {
	assert.Equal(t, 3.0, AffordableShares(30, 100))
	assert.Equal(t, 0.0, AffordableShares(0, 100))
	assert.Equal(t, 0.0, AffordableShares(30, -100))
}

func TestSharesForCompletingOrder(t *testing.T) {
	assert.Equal(t, 10.0, SharesForCompletingOrder(10, 50, 1000))
	assert.Equal(t, 10.0, SharesForCompletingOrder(10, 100, 1000), "exact cost falls back to affordable count")
	assert.Equal(t, 20.0, SharesForCompletingOrder(30, 50, 1000))
	assert.Equal(t, 0.0, SharesForCompletingOrder(1, 50, 10))
}
