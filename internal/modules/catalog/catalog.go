// Package catalog provides the curated ticker lists offered in the UI
// dropdowns. Anything tradable can still be typed in manually; this is
// convenience data, not a universe restriction.
package catalog

import "sort"

// Entry is one selectable ticker.
type Entry struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Group is a category of related tickers.
type Group struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

var groups = []Group{
	{
		Name: "Equity ETFs",
		Entries: []Entry{
			{Symbol: "SPY", Name: "SPDR S&P 500 ETF"},
			{Symbol: "QQQ", Name: "Invesco QQQ (Nasdaq-100)"},
			{Symbol: "DIA", Name: "SPDR Dow Jones Industrial Average ETF"},
			{Symbol: "IWM", Name: "iShares Russell 2000 ETF"},
			{Symbol: "VTI", Name: "Vanguard Total Stock Market ETF"},
			{Symbol: "VOO", Name: "Vanguard S&P 500 ETF"},
		},
	},
	{
		Name: "Bond ETFs",
		Entries: []Entry{
			{Symbol: "TLT", Name: "iShares 20+ Year Treasury Bond ETF"},
			{Symbol: "AGG", Name: "iShares Core U.S. Aggregate Bond ETF"},
			{Symbol: "BND", Name: "Vanguard Total Bond Market ETF"},
			{Symbol: "LQD", Name: "iShares iBoxx Investment Grade Corporate Bond ETF"},
		},
	},
	{
		Name: "Commodity ETFs",
		Entries: []Entry{
			{Symbol: "GLD", Name: "SPDR Gold Shares"},
			{Symbol: "SLV", Name: "iShares Silver Trust"},
			{Symbol: "USO", Name: "United States Oil Fund"},
			{Symbol: "DBA", Name: "Invesco DB Agriculture Fund"},
		},
	},
	{
		Name: "Sector ETFs",
		Entries: []Entry{
			{Symbol: "XLF", Name: "Financial Select Sector SPDR Fund"},
			{Symbol: "XLE", Name: "Energy Select Sector SPDR Fund"},
			{Symbol: "XLK", Name: "Technology Select Sector SPDR Fund"},
			{Symbol: "XLV", Name: "Health Care Select Sector SPDR Fund"},
		},
	},
}

// Groups returns all curated ticker groups.
func Groups() []Group {
	return groups
}

// Symbols returns a sorted flat list of all curated symbols.
func Symbols() []string {
	var symbols []string
	for _, g := range groups {
		for _, e := range g.Entries {
			symbols = append(symbols, e.Symbol)
		}
	}
	sort.Strings(symbols)
	return symbols
}

// Describe returns the curated description for a symbol, or the symbol
// itself when it is not in the catalog.
func Describe(symbol string) string {
	for _, g := range groups {
		for _, e := range g.Entries {
			if e.Symbol == symbol {
				return e.Name
			}
		}
	}
	return symbol
}
