// Package tickers holds the stock ticker reference data used by search.
package tickers

import "strings"

// SearchLimit caps the number of search results
const SearchLimit = 10

// StockTicker is a reference record for one listed symbol
type StockTicker struct {
	ID         string `json:"_id" bson:"_id" yaml:"-"`
	Symbol     string `json:"symbol" bson:"symbol" yaml:"symbol"`
	Name       string `json:"name" bson:"name" yaml:"name"`
	Sector     string `json:"sector" bson:"sector" yaml:"sector"`
	Exchange   string `json:"exchange" bson:"exchange" yaml:"exchange"`
	Searchable string `json:"searchable" bson:"searchable" yaml:"searchable,omitempty"`
}

// Match is the projection returned by search
type Match struct {
	Symbol   string `json:"symbol" bson:"symbol"`
	Name     string `json:"name" bson:"name"`
	Sector   string `json:"sector" bson:"sector"`
	Exchange string `json:"exchange" bson:"exchange"`
}

// SearchableText builds the lowercase string search matches against
func SearchableText(symbol, name string) string {
	return strings.ToLower(strings.TrimSpace(symbol + " " + name))
}
