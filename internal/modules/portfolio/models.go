// Package portfolio tracks simulated portfolios, their positions and orders,
// and values them against live quotes.
package portfolio

import (
	"time"

	"github.com/stockwolf/stockwolf-api/pkg/formulas"
)

// DefaultName is used when a portfolio is created without a name
const DefaultName = "Default Portfolio"

// Order types
const (
	OrderTypeBuy  = "buy"
	OrderTypeSell = "sell"
)

// Portfolio owns a cash balance and the baseline it is measured against
type Portfolio struct {
	ID                    string     `json:"_id" bson:"_id"`
	UserID                string     `json:"userId" bson:"userId"`
	Name                  string     `json:"name" bson:"name"`
	InitialPortfolioValue float64    `json:"initialPortfolioValue" bson:"initialPortfolioValue"`
	Cash                  float64    `json:"cash" bson:"cash"`
	CreatedOnDate         time.Time  `json:"createdOnDate" bson:"createdOnDate"`
	UpdatedOnDate         *time.Time `json:"updatedOnDate,omitempty" bson:"updatedOnDate,omitempty"`
}

// Position is a completed holding
type Position struct {
	ID              string     `json:"_id" bson:"_id"`
	PortfolioID     string     `json:"portfolioId" bson:"portfolioId"`
	CompanyName     string     `json:"companyName" bson:"companyName"`
	Ticker          string     `json:"ticker" bson:"ticker"`
	NumberOfShares  float64    `json:"numberOfShares" bson:"numberOfShares"`
	PurchasePrice   float64    `json:"purchasePrice" bson:"purchasePrice"`
	DateOrderPlaced *time.Time `json:"dateOrderPlaced,omitempty" bson:"dateOrderPlaced,omitempty"`
	CreatedOnDate   time.Time  `json:"createdOnDate" bson:"createdOnDate"`
}

// Order is a buy or sell instruction, pending or historical
type Order struct {
	ID              string     `json:"_id" bson:"_id"`
	PortfolioID     string     `json:"portfolioId" bson:"portfolioId"`
	CompanyName     string     `json:"companyName" bson:"companyName"`
	Ticker          string     `json:"ticker" bson:"ticker"`
	NumberOfShares  float64    `json:"numberOfShares" bson:"numberOfShares"`
	PurchasePrice   float64    `json:"purchasePrice" bson:"purchasePrice"`
	OrderType       string     `json:"orderType" bson:"orderType"`
	DateOrderPlaced *time.Time `json:"dateOrderPlaced,omitempty" bson:"dateOrderPlaced,omitempty"`
	CreatedOnDate   time.Time  `json:"createdOnDate" bson:"createdOnDate"`
}

// IsBuy reports whether the order commits cash
func (o Order) IsBuy() bool {
	return o.OrderType == OrderTypeBuy
}

// Valuation is the aggregate value of a portfolio at one moment
type Valuation struct {
	Cash                    float64 `json:"cash" bson:"cash"`
	CommittedCash           float64 `json:"committedCash" bson:"committedCash"`
	EquityValue             float64 `json:"equityValue" bson:"equityValue"`
	PortfolioValue          float64 `json:"portfolioValue" bson:"portfolioValue"`
	TodaysGainOrLoss        float64 `json:"todaysGainOrLoss" bson:"todaysGainOrLoss"`
	TotalGainOrLoss         float64 `json:"totalGainOrLoss" bson:"totalGainOrLoss"`
	NumberOfPositions       int     `json:"numberOfPositions" bson:"numberOfPositions"`
	NumberOfUniquePositions int     `json:"numberOfUniquePositions" bson:"numberOfUniquePositions"`
}

// Snapshot is a persisted valuation
type Snapshot struct {
	ID          string    `json:"_id" bson:"_id"`
	PortfolioID string    `json:"portfolioId" bson:"portfolioId"`
	Valuation   `bson:",inline"`
	TakenOnDate time.Time `json:"takenOnDate" bson:"takenOnDate"`
}

// CreatePortfolioRequest is the body of POST /portfolio
type CreatePortfolioRequest struct {
	UserID string   `json:"userId"`
	Name   string   `json:"name"`
	Cash   *float64 `json:"cash"`
}

// HoldingRequest is the body of POST /portfolio/{id}/positions and /orders
type HoldingRequest struct {
	CompanyName     string     `json:"companyName"`
	Ticker          string     `json:"ticker"`
	NumberOfShares  float64    `json:"numberOfShares"`
	PurchasePrice   float64    `json:"purchasePrice"`
	OrderType       string     `json:"orderType,omitempty"`
	DateOrderPlaced *time.Time `json:"dateOrderPlaced"`
}

// History is the body of GET /portfolio/{id}/history
type History struct {
	Snapshots []Snapshot           `json:"snapshots"`
	Stats     formulas.SeriesStats `json:"stats"`
}
