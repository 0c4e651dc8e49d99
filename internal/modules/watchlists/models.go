// Package watchlists manages the named ticker lists users follow.
package watchlists

import "time"

// DefaultName is used when a watchlist is created without a name
const DefaultName = "Default Watchlist"

// DefaultSymbols seeds every new watchlist
var DefaultSymbols = []string{"AAPL", "GOOG", "TWTR", "FB"}

// Watchlist is a named list of ticker symbols owned by a user
type Watchlist struct {
	ID               string     `json:"_id" bson:"_id"`
	UserID           string     `json:"userId" bson:"userId"`
	Name             string     `json:"name" bson:"name"`
	ListOfStockNames []string   `json:"listOfStockNames" bson:"listOfStockNames"`
	CreatedOnDate    time.Time  `json:"createdOnDate" bson:"createdOnDate"`
	UpdatedOnDate    *time.Time `json:"updatedOnDate,omitempty" bson:"updatedOnDate,omitempty"`
}

// CreateWatchlistRequest is the body of POST /watchlist
type CreateWatchlistRequest struct {
	UserID        string `json:"userId"`
	WatchlistName string `json:"watchlistName"`
}

// UpdateWatchlistRequest is the body of PUT /watchlist/{id}; nil fields are kept
type UpdateWatchlistRequest struct {
	Name             *string   `json:"name"`
	ListOfStockNames *[]string `json:"listOfStockNames"`
}

// NewWatchlist builds a watchlist with the default symbols
func NewWatchlist(req CreateWatchlistRequest) *Watchlist {
	name := req.WatchlistName
	if name == "" {
		name = DefaultName
	}

	symbols := make([]string, len(DefaultSymbols))
	copy(symbols, DefaultSymbols)

	return &Watchlist{
		UserID:           req.UserID,
		Name:             name,
		ListOfStockNames: symbols,
	}
}

// Apply replaces the fields present in the update
func (w *Watchlist) Apply(req UpdateWatchlistRequest) {
	if req.Name != nil {
		w.Name = *req.Name
	}
	if req.ListOfStockNames != nil {
		w.ListOfStockNames = append([]string{}, (*req.ListOfStockNames)...)
	}
}
