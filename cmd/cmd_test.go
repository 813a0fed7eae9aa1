package cmd

import (
	"bytes"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokeprice/engine/internal/domain/pricing"
)

func TestMinor(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{12500, "125.00"},
		{-199, "-1.99"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, minor(tt.amount))
	}
}

func TestPrintPokePrice(t *testing.T) {
	days := 30
	p := &pricing.PokePrice{
		CardID:       "base1-4",
		CurrencyCode: "GBP",
		Sold:         &pricing.Aggregate{Price: 31000, LowPrice: 25000, HighPrice: 40000, Volume: 12, PeriodSizeDays: &days},
		Tags:         pricing.TagSet{pricing.MetricSoldPrice: pricing.HighValue},
	}

	var buf bytes.Buffer
	printPokePrice(&buf, p)
	out := buf.String()
	assert.Contains(t, out, "card base1-4 (GBP)")
	assert.Contains(t, out, "price=310.00 low=250.00 high=400.00 volume=12 period=30d")
	assert.Contains(t, out, "listing  -")
	assert.Contains(t, out, "tag  "+string(pricing.HighValue))

	buf.Reset()
	printPokePrice(&buf, &pricing.PokePrice{CardID: "x", CurrencyCode: "USD"})
	assert.Contains(t, buf.String(), "no price data")
}

func TestKeywordFile(t *testing.T) {
	const doc = `
[[cards]]
id = "base1-4"
include = ["charizard", "(1st edition,shadowless)"]
exclude = ["psa"]

[[cards]]
id = "base1-58"
include = ["pikachu"]
`
	var file keywordFile
	require.NoError(t, toml.Unmarshal([]byte(doc), &file))
	require.Len(t, file.Cards, 2)
	assert.Equal(t, []string{"charizard", "(1st edition,shadowless)"}, file.Cards[0].Include)
	assert.Empty(t, file.Cards[1].Exclude)
}
