package pricing

import (
	"testing"
	"time"
)

func days(n int) *int { return &n }

func TestSelect(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		candidates []Aggregate
		wantID     string
	}{
		{
			name:       "empty input",
			candidates: nil,
			wantID:     "",
		},
		{
			name: "narrow window below floor falls back to last",
			candidates: []Aggregate{
				{ID: "30d", PeriodSizeDays: days(30), CurrenciesUsed: []string{"GBP", "USD"}, Volume: 10},
				{ID: "7d", PeriodSizeDays: days(7), CurrenciesUsed: []string{"GBP"}, Volume: 2},
			},
			wantID: "30d",
		},
		{
			name: "first window clearing the floor wins",
			candidates: []Aggregate{
				{ID: "1d", PeriodSizeDays: days(1), Volume: 5},
				{ID: "7d", PeriodSizeDays: days(7), Volume: 8},
			},
			wantID: "7d",
		},
		{
			name: "exactly six is enough",
			candidates: []Aggregate{
				{ID: "30d", PeriodSizeDays: days(30), Volume: 40},
				{ID: "7d", PeriodSizeDays: days(7), Volume: 6},
			},
			wantID: "7d",
		},
		{
			name: "unknown window sorts last",
			candidates: []Aggregate{
				{ID: "all", PeriodSizeDays: nil, Volume: 1},
				{ID: "90d", PeriodSizeDays: days(90), Volume: 1},
			},
			wantID: "all",
		},
		{
			name: "fewer converted currencies first",
			candidates: []Aggregate{
				{ID: "mixed", PeriodSizeDays: days(7), CurrenciesUsed: []string{"GBP", "USD", "EUR"}, Volume: 9},
				{ID: "native", PeriodSizeDays: days(7), CurrenciesUsed: []string{"GBP"}, Volume: 9},
			},
			wantID: "native",
		},
		{
			name: "fresher aggregate breaks full ties",
			candidates: []Aggregate{
				{ID: "old", PeriodSizeDays: days(7), Volume: 9, LastUpdatedAt: t0},
				{ID: "new", PeriodSizeDays: days(7), Volume: 9, LastUpdatedAt: t0.Add(time.Hour)},
			},
			wantID: "new",
		},
		{
			name: "other currency and price type ignored",
			candidates: []Aggregate{
				{ID: "usd", CurrencyCode: "USD", PriceType: PriceTypeSale, PeriodSizeDays: days(1), Volume: 100},
				{ID: "listing", PriceType: PriceTypeListing, PeriodSizeDays: days(1), Volume: 100},
				{ID: "gbp", PeriodSizeDays: days(30), Volume: 1},
			},
			wantID: "gbp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := make([]Aggregate, len(tt.candidates))
			for i, c := range tt.candidates {
				if c.CurrencyCode == "" {
					c.CurrencyCode = "GBP"
				}
				if c.PriceType == "" {
					c.PriceType = PriceTypeSale
				}
				candidates[i] = c
			}

			got := Select("GBP", PriceTypeSale, candidates)
			if tt.wantID == "" {
				if got != nil {
					t.Fatalf("Select() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Select() = nil, want %s", tt.wantID)
			}
			if got.ID != tt.wantID {
				t.Errorf("Select() = %s, want %s", got.ID, tt.wantID)
			}
		})
	}
}

func TestSelect_DoesNotReorderInput(t *testing.T) {
	in := []Aggregate{
		{ID: "30d", CurrencyCode: "GBP", PriceType: PriceTypeSale, PeriodSizeDays: days(30), Volume: 10},
		{ID: "7d", CurrencyCode: "GBP", PriceType: PriceTypeSale, PeriodSizeDays: days(7), Volume: 10},
	}
	Select("GBP", PriceTypeSale, in)
	if in[0].ID != "30d" {
		t.Error("Select() reordered its input")
	}
}

func TestSelector_CustomFloor(t *testing.T) {
	in := []Aggregate{
		{ID: "7d", CurrencyCode: "GBP", PriceType: PriceTypeSale, PeriodSizeDays: days(7), Volume: 8},
		{ID: "30d", CurrencyCode: "GBP", PriceType: PriceTypeSale, PeriodSizeDays: days(30), Volume: 20},
	}
	if got := NewSelector(10).Select("GBP", PriceTypeSale, in); got.ID != "30d" {
		t.Errorf("Select() = %s, want 30d", got.ID)
	}
}
