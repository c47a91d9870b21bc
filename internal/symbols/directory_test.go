package symbols

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCompanyName(t *testing.T) {
	cases := map[string]string{
		"  Apple Inc. ":           "apple",
		"Microsoft Corporation":   "microsoft",
		"The Walt Disney Company": "walt disney",
		"McDonald's":              "mcdonalds",
		"Acme Group Holdings":     "acme group",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeCompanyName(in), in)
	}
}

func TestFindTicker(t *testing.T) {
	d := Default()
	assert.Equal(t, "AAPL", d.FindTicker("AAPL"))
	assert.Equal(t, "BRK.B", d.FindTicker(" BRK.B "))
	assert.Equal(t, "AAPL", d.FindTicker("Apple"))
	assert.Equal(t, "AAPL", d.FindTicker("apple inc."))
	assert.Equal(t, "MSFT", d.FindTicker("Microsoft Corporation"))
	assert.Equal(t, "KO", d.FindTicker("Coca-Cola"))
	assert.Equal(t, "HD", d.FindTicker("the home depot"))
	assert.Equal(t, "QVQV", d.FindTicker("qvqv"))
	// "x" is a directory name, so any input containing it resolves to TWTR.
	assert.Equal(t, "TWTR", d.FindTicker("x"))
	assert.Equal(t, "TWTR", d.FindTicker("zzqx"))
	assert.Equal(t, "", d.FindTicker("   "))
}

func TestFindTicker_PartialMatchUsesDirectoryOrder(t *testing.T) {
	d, err := Parse([]byte(`
- {name: "widget works", ticker: "WW"}
- {name: "widget", ticker: "WDG"}
`))
	require.NoError(t, err)
	assert.Equal(t, "WDG", d.FindTicker("widget"))
	assert.Equal(t, "WW", d.FindTicker("works"))
	assert.Equal(t, "WW", d.FindTicker("big widget works worldwide"))
}

func TestSearch(t *testing.T) {
	d := Default()
	got := d.Search("App", 10)
	require.NotEmpty(t, got)
	assert.Equal(t, Suggestion{Ticker: "AAPL", Name: "Apple", Display: "AAPL - Apple"}, got[0])

	seen := map[string]bool{}
	for _, s := range got {
		assert.False(t, seen[s.Ticker], "duplicate ticker %s", s.Ticker)
		seen[s.Ticker] = true
	}

	assert.Empty(t, d.Search("a", 10))
	assert.Empty(t, d.Search("  ", 10))
	assert.Len(t, d.Search("co", 3), 3)
}

func TestSearch_MatchesTicker(t *testing.T) {
	got := Default().Search("nvda", 10)
	require.Len(t, got, 1)
	assert.Equal(t, "NVDA", got[0].Ticker)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "At&T", titleCase("at&t"))
	assert.Equal(t, "3M", titleCase("3m"))
	assert.Equal(t, "Amazon.Com", titleCase("amazon.com"))
	assert.Equal(t, "Coca-Cola", titleCase("coca-cola"))
}

func TestTickers(t *testing.T) {
	tickers := Default().Tickers()
	require.NotEmpty(t, tickers)
	assert.True(t, sort.StringsAreSorted(tickers))
	assert.Contains(t, tickers, "AAPL")
	seen := map[string]bool{}
	for _, tk := range tickers {
		assert.False(t, seen[tk])
		seen[tk] = true
	}
}

func TestCompaniesFor(t *testing.T) {
	assert.Equal(t, []string{"microsoft", "microsoft corporation"}, Default().CompaniesFor("MSFT"))
	assert.Empty(t, Default().CompaniesFor("NOPE"))
}

func TestIsValidTicker(t *testing.T) {
	assert.True(t, IsValidTicker("aapl"))
	assert.True(t, IsValidTicker("BRK.B"))
	assert.True(t, IsValidTicker("BF-B"))
	assert.False(t, IsValidTicker(""))
	assert.False(t, IsValidTicker("TOOLONG"))
	assert.False(t, IsValidTicker("A1"))
}

func TestParse_DuplicateNameKeepsPositionTakesLastTicker(t *testing.T) {
	d, err := Parse([]byte(`
- {name: "alpha", ticker: "A1"}
- {name: "beta", ticker: "B"}
- {name: "alpha", ticker: "A2"}
`))
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, "A2", d.FindTicker("alpha"))
	assert.Equal(t, "A2", d.Search("al", 5)[0].Ticker)
}

func TestParse_RejectsIncompleteEntry(t *testing.T) {
	_, err := Parse([]byte(`- {name: "alpha"}`))
	assert.Error(t, err)
}
