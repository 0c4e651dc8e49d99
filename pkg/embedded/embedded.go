// Package embedded provides embedded static assets for the application.
package embedded

import (
	"bytes"
	_ "embed"
	"io"
)

// Tickers is the default stock ticker seed file.
// See tickers.SeedFile for the layout.
//
//go:embed tickers.yaml
var Tickers []byte

// TickersReader returns a fresh reader over the default seed file
func TickersReader() io.Reader {
	return bytes.NewReader(Tickers)
}
