package pricing

import "sort"

type Metric string

const (
	MetricSoldPrice     Metric = "SOLD_PRICE"
	MetricListingPrice  Metric = "LISTING_PRICE"
	MetricSoldVolume    Metric = "SOLD_VOLUME"
	MetricListingVolume Metric = "LISTING_VOLUME"
	MetricCirculation   Metric = "CIRCULATION"
	MetricSupplyDemand  Metric = "SUPPLY_DEMAND"
	MetricVolatility    Metric = "VOLATILITY"
)

type Tag string

// Threshold tags every value at or above Min.
type Threshold struct {
	Min float64
	Tag Tag
}

// Scale is evaluated top-down; the first threshold the value reaches wins, otherwise Else.
type Scale struct {
	Thresholds []Threshold
	Else       Tag
}

func Classify(value float64, s Scale) Tag {
	for _, t := range s.Thresholds {
		if value >= t.Min {
			return t.Tag
		}
	}
	return s.Else
}

const (
	VeryHighValue       Tag = "VERY_HIGH_VALUE"
	HighValue           Tag = "HIGH_VALUE"
	RelativelyHighValue Tag = "RELATIVELY_HIGH_VALUE"
	ModerateValue       Tag = "MODERATE_VALUE"
	RelativelyLowValue  Tag = "RELATIVELY_LOW_VALUE"
	LowValue            Tag = "LOW_VALUE"
	VeryLowValue        Tag = "VERY_LOW_VALUE"

	VeryHighVolume Tag = "VERY_HIGH_VOLUME"
	HighVolume     Tag = "HIGH_VOLUME"
	ModerateVolume Tag = "MODERATE_VOLUME"
	LowVolume      Tag = "LOW_VOLUME"
	VeryLowVolume  Tag = "VERY_LOW_VOLUME"
	MinimalVolume  Tag = "MINIMAL_VOLUME"

	VeryHighCirculation Tag = "VERY_HIGH_CIRCULATION"
	HighCirculation     Tag = "HIGH_CIRCULATION"
	ModerateCirculation Tag = "MODERATE_CIRCULATION"
	LowCirculation      Tag = "LOW_CIRCULATION"
	VeryLowCirculation  Tag = "VERY_LOW_CIRCULATION"

	VeryHighSupply Tag = "VERY_HIGH_SUPPLY"
	HighSupply     Tag = "HIGH_SUPPLY"
	Balanced       Tag = "BALANCED"
	HighDemand     Tag = "HIGH_DEMAND"
	VeryHighDemand Tag = "VERY_HIGH_DEMAND"

	VeryVolatile       Tag = "VERY_VOLATILE"
	Volatile           Tag = "VOLATILE"
	ModeratelyVolatile Tag = "MODERATELY_VOLATILE"
	Stable             Tag = "STABLE"
	VeryStable         Tag = "VERY_STABLE"
)

var (
	PriceScale = Scale{
		Thresholds: []Threshold{
			{30000, VeryHighValue},
			{10000, HighValue},
			{3000, RelativelyHighValue},
			{1000, ModerateValue},
			{300, RelativelyLowValue},
			{70, LowValue},
		},
		Else: VeryLowValue,
	}

	// The repeated 5 keeps VERY_LOW_VOLUME unreachable, as it has always been.
	VolumeScale = Scale{
		Thresholds: []Threshold{
			{30, VeryHighVolume},
			{20, HighVolume},
			{10, ModerateVolume},
			{5, LowVolume},
			{5, VeryLowVolume},
		},
		Else: MinimalVolume,
	}

	CirculationScale = Scale{
		Thresholds: []Threshold{
			{100, VeryHighCirculation},
			{50, HighCirculation},
			{20, ModerateCirculation},
			{10, LowCirculation},
		},
		Else: VeryLowCirculation,
	}

	SupplyDemandScale = Scale{
		Thresholds: []Threshold{
			{3, VeryHighSupply},
			{1.5, HighSupply},
			{0.67, Balanced},
			{0.33, HighDemand},
		},
		Else: VeryHighDemand,
	}

	VolatilityScale = Scale{
		Thresholds: []Threshold{
			{1, VeryVolatile},
			{0.5, Volatile},
			{0.25, ModeratelyVolatile},
			{0.1, Stable},
		},
		Else: VeryStable,
	}
)

const (
	rateWindowDays = 14

	// Circulation below this says too little about supply and demand.
	minSupplyDemandCirculation = 10

	// Stands in for the ratio when nothing sold but listings exist.
	noSalesRatio = 1000
)

// TagSet holds at most one tag per metric.
type TagSet map[Metric]Tag

// Sorted returns the tags ordered by metric name.
func (ts TagSet) Sorted() []Tag {
	metrics := make([]string, 0, len(ts))
	for m := range ts {
		metrics = append(metrics, string(m))
	}
	sort.Strings(metrics)
	out := make([]Tag, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, ts[Metric(m)])
	}
	return out
}

// ValueTags derives every tag the price supports. Missing data leaves the tag out.
func ValueTags(p *PokePrice) TagSet {
	tags := TagSet{}
	if p.Empty() {
		return tags
	}

	if p.Sold != nil {
		tags[MetricSoldPrice] = Classify(float64(p.Sold.Price), PriceScale)
	}
	if p.Listing != nil {
		tags[MetricListingPrice] = Classify(float64(p.Listing.Price), PriceScale)
	}

	soldRate, soldOK := Rate(p.Sold)
	listingRate, listingOK := Rate(p.Listing)
	if soldOK {
		tags[MetricSoldVolume] = Classify(soldRate, VolumeScale)
	}
	if listingOK {
		tags[MetricListingVolume] = Classify(listingRate, VolumeScale)
	}

	if soldOK || listingOK {
		circulation := soldRate + listingRate
		tags[MetricCirculation] = Classify(circulation, CirculationScale)
		if ratio, ok := supplyDemandRatio(soldRate, listingRate); ok {
			tags[MetricSupplyDemand] = Classify(ratio, SupplyDemandScale)
		}
	}

	if v, ok := Volatility(p.Sold); ok {
		tags[MetricVolatility] = Classify(v, VolatilityScale)
	}
	return tags
}

// Rate is the aggregate volume scaled to a 14 day window.
func Rate(a *Aggregate) (float64, bool) {
	if a == nil || a.PeriodSizeDays == nil || *a.PeriodSizeDays <= 0 {
		return 0, false
	}
	return float64(a.Volume) / float64(*a.PeriodSizeDays) * rateWindowDays, true
}

func supplyDemandRatio(soldRate, listingRate float64) (float64, bool) {
	if soldRate+listingRate < minSupplyDemandCirculation {
		return 0, false
	}
	switch {
	case listingRate == 0:
		return 0, true
	case soldRate == 0:
		return noSalesRatio, true
	}
	return listingRate / soldRate, true
}

// Volatility is the spread between the high and low sold price relative to the price.
func Volatility(a *Aggregate) (float64, bool) {
	if a == nil || a.Price <= 0 {
		return 0, false
	}
	return float64(a.HighPrice-a.LowPrice) / float64(a.Price), true
}
