package portfolio

import (
	"strings"
	"time"

	"github.com/stockwolf/stockwolf-api/internal/clients/yahoo"
	"github.com/stockwolf/stockwolf-api/pkg/formulas"
)

// FormattedPosition is a completed position as returned to clients
type FormattedPosition struct {
	ObjectID         string     `json:"objectId"`
	Name             string     `json:"name"`
	Ticker           string     `json:"ticker"`
	NumberOfShares   float64    `json:"numberOfShares"`
	PurchasePrice    float64    `json:"purchasePrice"`
	DateOrderPlaced  *time.Time `json:"dateOrderPlaced"`
	TodaysGainOrLoss float64    `json:"todaysGainOrLoss"`
	TotalGainOrLoss  float64    `json:"totalGainOrLoss"`
}

// FormattedOrder is an order as returned to clients
type FormattedOrder struct {
	ObjectID        string     `json:"objectId"`
	Name            string     `json:"name"`
	Ticker          string     `json:"ticker"`
	NumberOfShares  float64    `json:"numberOfShares"`
	PurchasePrice   float64    `json:"purchasePrice"`
	DateOrderPlaced *time.Time `json:"dateOrderPlaced"`
	OrderType       string     `json:"orderType"`
}

// PendingPosition is an open buy order shown alongside held positions
type PendingPosition struct {
	Name            string     `json:"name"`
	Symbol          string     `json:"symbol"`
	NumberOfShares  float64    `json:"numberOfShares"`
	PurchasePrice   float64    `json:"purchasePrice"`
	DateOrderPlaced *time.Time `json:"dateOrderPlaced"`
}

// FormatPosition projects a position and rounds its gains for display
func FormatPosition(p Position, gain PositionGain) FormattedPosition {
	return FormattedPosition{
		ObjectID:         p.ID,
		Name:             p.CompanyName,
		Ticker:           p.Ticker,
		NumberOfShares:   p.NumberOfShares,
		PurchasePrice:    p.PurchasePrice,
		DateOrderPlaced:  p.DateOrderPlaced,
		TodaysGainOrLoss: formulas.RoundMoney(gain.TodaysGainOrLoss),
		TotalGainOrLoss:  formulas.RoundMoney(gain.TotalGainOrLoss),
	}
}

// FormatPositions formats valued positions in order
func FormatPositions(positions []ValuedPosition) []FormattedPosition {
	out := make([]FormattedPosition, 0, len(positions))
	for _, vp := range positions {
		out = append(out, FormatPosition(vp.Position, vp.PositionGain))
	}
	return out
}

// FormatOrders projects orders in order
func FormatOrders(orders []Order) []FormattedOrder {
	out := make([]FormattedOrder, 0, len(orders))
	for _, o := range orders {
		out = append(out, FormattedOrder{
			ObjectID:        o.ID,
			Name:            o.CompanyName,
			Ticker:          o.Ticker,
			NumberOfShares:  o.NumberOfShares,
			PurchasePrice:   o.PurchasePrice,
			DateOrderPlaced: o.DateOrderPlaced,
			OrderType:       o.OrderType,
		})
	}
	return out
}

// FormatPendingPosition projects an order into the pending position shape
func FormatPendingPosition(o Order) PendingPosition {
	return PendingPosition{
		Name:            o.CompanyName,
		Symbol:          o.Ticker,
		NumberOfShares:  o.NumberOfShares,
		PurchasePrice:   o.PurchasePrice,
		DateOrderPlaced: o.DateOrderPlaced,
	}
}

// FormatPendingPositions keeps the buy orders and formats them
func FormatPendingPositions(orders []Order) []PendingPosition {
	out := make([]PendingPosition, 0, len(orders))
	for _, o := range orders {
		if o.IsBuy() {
			out = append(out, FormatPendingPosition(o))
		}
	}
	return out
}

// QuoteDictionary maps upper-cased symbols to their prices
type QuoteDictionary map[string]yahoo.PriceSnapshot

// FormatQuoteDictionary indexes price snapshots by symbol
func FormatQuoteDictionary(snapshots []yahoo.PriceSnapshot) QuoteDictionary {
	dict := make(QuoteDictionary, len(snapshots))
	for _, s := range snapshots {
		dict[strings.ToUpper(s.Symbol)] = s
	}
	return dict
}

// Lookup finds the price for a ticker regardless of case
func (d QuoteDictionary) Lookup(ticker string) (yahoo.PriceSnapshot, bool) {
	s, ok := d[strings.ToUpper(ticker)]
	return s, ok
}
