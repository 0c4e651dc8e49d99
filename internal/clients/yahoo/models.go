package yahoo

import "github.com/stockwolf/stockwolf-api/pkg/formulas"

// Quote is the basic quote shape returned to clients
type Quote struct {
	Name                 string         `json:"name"`
	Symbol               string         `json:"symbol"`
	CurrentPrice         formulas.Float `json:"currentPrice"`
	PriceChange          formulas.Float `json:"priceChange"`
	PriceChangeInPercent formulas.Float `json:"priceChangeInPercent"`
}

// DetailedQuote adds session, volume and valuation figures to a Quote
type DetailedQuote struct {
	Quote
	MarketCap        string         `json:"marketCap"` // as received, e.g. "2.41T"
	OpenPrice        formulas.Float `json:"openPrice"`
	PreviousClose    formulas.Float `json:"previousClose"`
	DaysLowPrice     formulas.Float `json:"daysLowPrice"`
	DaysHighPrice    formulas.Float `json:"daysHighPrice"`
	Volume           formulas.Float `json:"volume"`
	AverageVolume    formulas.Float `json:"averageVolume"`
	FiftyTwoWeekHigh formulas.Float `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow  formulas.Float `json:"fiftyTwoWeekLow"`
	ShortRatio       formulas.Float `json:"shortRatio"`
	EarningsPerShare formulas.Float `json:"earningsPerShare"`
	Dividend         formulas.Float `json:"dividend"`
	DividendYield    formulas.Float `json:"dividendYield"`
	PriceToEarnings  formulas.Float `json:"priceToEarnings"`
	PriceToSales     formulas.Float `json:"priceToSales"`
	PriceToBook      formulas.Float `json:"priceToBook"`
}

// PriceSnapshot carries the two prices needed to value a position
type PriceSnapshot struct {
	Symbol        string         `json:"symbol"`
	CurrentPrice  formulas.Float `json:"currentPrice"`
	PreviousClose formulas.Float `json:"previousClose"`
}

// RawQuote is one upstream quote record, keyed by the upstream field names
type RawQuote map[string]interface{}

// Symbol returns the upstream symbol field
func (r RawQuote) Symbol() string {
	return getString(r, "Symbol")
}

func formatQuote(raw RawQuote) Quote {
	return Quote{
		Name:                 getString(raw, "Name"),
		Symbol:               getString(raw, "Symbol"),
		CurrentPrice:         getFloat(raw, "LastTradePriceOnly"),
		PriceChange:          getFloat(raw, "Change"),
		PriceChangeInPercent: getFloat(raw, "ChangeinPercent"),
	}
}

func formatDetailedQuote(raw RawQuote) DetailedQuote {
	return DetailedQuote{
		Quote:            formatQuote(raw),
		MarketCap:        getString(raw, "MarketCapitalization"),
		OpenPrice:        getFloat(raw, "Open"),
		PreviousClose:    getFloat(raw, "PreviousClose"),
		DaysLowPrice:     getFloat(raw, "DaysLow"),
		DaysHighPrice:    getFloat(raw, "DaysHigh"),
		Volume:           getFloat(raw, "Volume"),
		AverageVolume:    getFloat(raw, "AverageDailyVolume"),
		FiftyTwoWeekHigh: getFloat(raw, "YearHigh"),
		FiftyTwoWeekLow:  getFloat(raw, "YearLow"),
		ShortRatio:       getFloat(raw, "ShortRatio"),
		EarningsPerShare: getFloat(raw, "EarningsShare"),
		Dividend:         getFloat(raw, "DividendShare"),
		DividendYield:    getFloat(raw, "DividendYield"),
		PriceToEarnings:  getFloat(raw, "PERatio"),
		PriceToSales:     getFloat(raw, "PriceSales"),
		PriceToBook:      getFloat(raw, "PriceBook"),
	}
}

func formatPriceSnapshot(raw RawQuote) PriceSnapshot {
	return PriceSnapshot{
		Symbol:        getString(raw, "Symbol"),
		CurrentPrice:  getFloat(raw, "LastTradePriceOnly"),
		PreviousClose: getFloat(raw, "PreviousClose"),
	}
}
