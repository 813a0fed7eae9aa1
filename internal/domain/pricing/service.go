package pricing

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	repo     AggregateRepository
	selector Selector
}

func NewService(repo AggregateRepository, volumeFloor int) *Service {
	return &Service{
		repo:     repo,
		selector: NewSelector(volumeFloor),
	}
}

// PokePrice selects the representative sold and listing aggregates of the card and tags
// them. A card without aggregates gets an empty PokePrice, not an error.
func (s *Service) PokePrice(ctx context.Context, cardID, currency string) (*PokePrice, error) {
	cardID = strings.TrimSpace(cardID)
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if cardID == "" || currency == "" {
		return nil, fmt.Errorf("card id and currency are required")
	}

	aggregates, err := s.repo.ListForCard(ctx, cardID, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to load aggregates for card %s: %w", cardID, err)
	}

	p := &PokePrice{
		CardID:       cardID,
		CurrencyCode: currency,
		Sold:         s.selector.Select(currency, PriceTypeSale, aggregates),
		Listing:      s.selector.Select(currency, PriceTypeListing, aggregates),
	}
	p.Tags = ValueTags(p)
	return p, nil
}
