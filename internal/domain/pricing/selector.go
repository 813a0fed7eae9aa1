package pricing

import (
	"slices"
	"strings"
)

// DefaultVolumeFloor is the smallest sample count considered representative.
const DefaultVolumeFloor = 6

type Selector struct {
	volumeFloor int
}

func NewSelector(volumeFloor int) Selector {
	if volumeFloor <= 0 {
		volumeFloor = DefaultVolumeFloor
	}
	return Selector{volumeFloor: volumeFloor}
}

// Select picks one aggregate with the default volume floor.
func Select(currency string, priceType PriceType, candidates []Aggregate) *Aggregate {
	return NewSelector(DefaultVolumeFloor).Select(currency, priceType, candidates)
}

// Select returns the narrowest window with enough volume among the candidates of the
// given currency and price type. When none has enough volume the broadest window is
// returned. It returns nil when no candidate fits.
func (s Selector) Select(currency string, priceType PriceType, candidates []Aggregate) *Aggregate {
	pool := make([]Aggregate, 0, len(candidates))
	for _, c := range candidates {
		if strings.EqualFold(c.CurrencyCode, currency) && c.PriceType == priceType {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		return nil
	}

	slices.SortStableFunc(pool, compareAggregates)

	for i := range pool {
		if pool[i].Volume >= s.volumeFloor {
			return &pool[i]
		}
	}
	return &pool[len(pool)-1]
}

// compareAggregates orders by window size (unknown last), then by how many currencies were
// converted. Remaining ties prefer fresher and larger samples.
func compareAggregates(a, b Aggregate) int {
	switch {
	case a.PeriodSizeDays == nil && b.PeriodSizeDays != nil:
		return 1
	case a.PeriodSizeDays != nil && b.PeriodSizeDays == nil:
		return -1
	case a.PeriodSizeDays != nil && b.PeriodSizeDays != nil && *a.PeriodSizeDays != *b.PeriodSizeDays:
		return *a.PeriodSizeDays - *b.PeriodSizeDays
	}
	if d := len(a.CurrenciesUsed) - len(b.CurrenciesUsed); d != 0 {
		return d
	}
	if c := b.LastUpdatedAt.Compare(a.LastUpdatedAt); c != 0 {
		return c
	}
	if d := b.Volume - a.Volume; d != 0 {
		return d
	}
	return strings.Compare(strings.Join(a.StatIDs, ","), strings.Join(b.StatIDs, ","))
}
