// Package migration imports BSON dumps of the previous document store.
package migration

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pokeprice/engine/internal/domain/search"
	"github.com/pokeprice/engine/internal/gateways/database/models"
)

const (
	defaultBatchSize = 1000
	maxDocumentSize  = 16 * 1024 * 1024
)

// Store receives converted rows. Every import must skip rows whose id already exists.
type Store interface {
	ImportCards(ctx context.Context, rows []*models.Card) (int64, error)
	ImportCriteria(ctx context.Context, rows []*models.SearchCriteria) (int64, error)
	ImportPriceRecords(ctx context.Context, rows []*models.PriceRecord) (int64, error)
	ImportOpenListings(ctx context.Context, rows []*models.OpenListing) (int64, error)
	ImportSelections(ctx context.Context, rows []*models.PriceSelection) (int64, error)
}

// FileStats counts what happened to the documents of one dump file.
type FileStats struct {
	File     string
	Read     int
	Skipped  int
	Inserted int64
}

type Importer struct {
	store     Store
	dataDir   string
	batchSize int
}

func NewImporter(store Store, dataDir string) *Importer {
	return &Importer{store: store, dataDir: dataDir, batchSize: defaultBatchSize}
}

func (im *Importer) WithBatchSize(n int) *Importer {
	if n > 0 {
		im.batchSize = n
	}
	return im
}

// ImportAll imports the dumps in dependency order. Missing files are skipped.
func (im *Importer) ImportAll(ctx context.Context) ([]FileStats, error) {
	steps := []func(context.Context) (FileStats, error){
		im.ImportCards,
		im.ImportCriteria,
		im.ImportPriceRecords,
		im.ImportOpenListings,
		im.ImportSelections,
	}

	var all []FileStats
	for _, step := range steps {
		stats, err := step(ctx)
		all = append(all, stats)
		if err != nil {
			return all, err
		}
		slog.Info("Legacy dump imported",
			slog.String("type", "sys"),
			slog.String("file", stats.File),
			slog.Int("read", stats.Read),
			slog.Int("skipped", stats.Skipped),
			slog.Int64("inserted", stats.Inserted),
		)
	}
	return all, nil
}

type legacyCard struct {
	ID      any    `bson:"_id"`
	Name    string `bson:"name"`
	SetName string `bson:"setName"`
	Number  string `bson:"numberInSet"`
}

type legacyCriteria struct {
	ID              any        `bson:"_id"`
	CardID          any        `bson:"cardId"`
	IncludeKeywords []string   `bson:"includeKeywords"`
	ExcludeKeywords []string   `bson:"excludeKeywords"`
	Active          bool       `bson:"active"`
	SearchURL       string     `bson:"searchUrl"`
	LastReconciled  time.Time  `bson:"lastReconciled"`
	BackfillTime    *time.Time `bson:"backfillTime"`
	Timestamp       time.Time  `bson:"timestamp"`
}

type legacyPrice struct {
	Amount       int64  `bson:"amountInMinorUnits"`
	CurrencyCode string `bson:"currencyCode"`
}

type legacyPriceRecord struct {
	ID          any         `bson:"_id"`
	CardID      any         `bson:"cardId"`
	SourceType  string      `bson:"sourceType"`
	ListingName string      `bson:"listingName"`
	Price       legacyPrice `bson:"price"`
	Timestamp   time.Time   `bson:"timestamp"`
	State       string      `bson:"state"`
	SearchIDs   []string    `bson:"searchIds"`
}

type legacyOpenListing struct {
	ID          any         `bson:"_id"`
	CardID      any         `bson:"cardId"`
	SourceType  string      `bson:"sourceType"`
	ListingName string      `bson:"listingName"`
	ListingURL  string      `bson:"listingUrl"`
	Price       legacyPrice `bson:"mostRecentPrice"`
	State       string      `bson:"state"`
	SearchIDs   []string    `bson:"searchIds"`
	LastSeen    time.Time   `bson:"mostRecentUpdate"`
}

type legacySearchParams struct {
	IncludeKeywords []string `bson:"includeKeywords"`
	ExcludeKeywords []string `bson:"excludeKeywords"`
}

type legacySelection struct {
	ID            any                `bson:"_id"`
	CardID        any                `bson:"cardId"`
	PriceType     string             `bson:"priceType"`
	CurrencyCode  string             `bson:"currencyCode"`
	Condition     string             `bson:"condition"`
	SearchID      string             `bson:"searchId"`
	SearchParams  legacySearchParams `bson:"searchParams"`
	HasReconciled bool               `bson:"hasReconciled"`
}

func (im *Importer) ImportCards(ctx context.Context) (FileStats, error) {
	return importFile(ctx, im, "cards.bson", im.store.ImportCards, func(doc legacyCard) (*models.Card, error) {
		id := idString(doc.ID)
		if id == "" || strings.TrimSpace(doc.Name) == "" {
			return nil, errors.New("card without id or name")
		}
		return &models.Card{ID: id, Name: doc.Name, SetName: doc.SetName, Number: doc.Number}, nil
	})
}

func (im *Importer) ImportCriteria(ctx context.Context) (FileStats, error) {
	return importFile(ctx, im, "searchcriteria.bson", im.store.ImportCriteria, func(doc legacyCriteria) (*models.SearchCriteria, error) {
		id, cardID := idString(doc.ID), idString(doc.CardID)
		if id == "" || cardID == "" {
			return nil, errors.New("criteria without id or card id")
		}
		include, err := search.ParseKeywords(doc.IncludeKeywords)
		if err != nil {
			return nil, fmt.Errorf("criteria %s: %w", id, err)
		}
		exclude, err := search.ParseKeywords(doc.ExcludeKeywords)
		if err != nil {
			return nil, fmt.Errorf("criteria %s: %w", id, err)
		}
		if len(include) == 0 {
			return nil, fmt.Errorf("criteria %s has no include keywords", id)
		}
		include, exclude = search.NormalizeKeywords(include, exclude)

		created := doc.Timestamp
		if created.IsZero() {
			created = time.Now().UTC()
		}
		return &models.SearchCriteria{
			ID:             id,
			CardID:         cardID,
			Include:        search.KeywordStrings(include),
			Exclude:        search.KeywordStrings(exclude),
			Active:         doc.Active,
			SearchURL:      doc.SearchURL,
			LastReconciled: doc.LastReconciled.UTC(),
			BackfillTime:   doc.BackfillTime,
			CreatedAt:      created.UTC(),
		}, nil
	})
}

func (im *Importer) ImportPriceRecords(ctx context.Context) (FileStats, error) {
	return importFile(ctx, im, "pricehistory.bson", im.store.ImportPriceRecords, func(doc legacyPriceRecord) (*models.PriceRecord, error) {
		id, cardID := idString(doc.ID), idString(doc.CardID)
		if id == "" || cardID == "" {
			return nil, errors.New("price record without id or card id")
		}
		return &models.PriceRecord{
			ID:           id,
			CardID:       cardID,
			SourceType:   strings.ToUpper(doc.SourceType),
			ListingName:  doc.ListingName,
			Price:        doc.Price.Amount,
			CurrencyCode: strings.ToUpper(doc.Price.CurrencyCode),
			Timestamp:    doc.Timestamp.UTC(),
			State:        stateOrActive(doc.State),
			SearchIDs:    nonNil(doc.SearchIDs),
		}, nil
	})
}

func (im *Importer) ImportOpenListings(ctx context.Context) (FileStats, error) {
	return importFile(ctx, im, "openlistings.bson", im.store.ImportOpenListings, func(doc legacyOpenListing) (*models.OpenListing, error) {
		id, cardID := idString(doc.ID), idString(doc.CardID)
		if id == "" || cardID == "" {
			return nil, errors.New("open listing without id or card id")
		}
		lastSeen := doc.LastSeen
		if lastSeen.IsZero() {
			lastSeen = time.Now()
		}
		return &models.OpenListing{
			ID:           id,
			CardID:       cardID,
			SourceType:   strings.ToUpper(doc.SourceType),
			ListingName:  doc.ListingName,
			ListingURL:   doc.ListingURL,
			Price:        doc.Price.Amount,
			CurrencyCode: strings.ToUpper(doc.Price.CurrencyCode),
			State:        stateOrActive(doc.State),
			SearchIDs:    nonNil(doc.SearchIDs),
			LastSeenAt:   lastSeen.UTC(),
		}, nil
	})
}

func (im *Importer) ImportSelections(ctx context.Context) (FileStats, error) {
	return importFile(ctx, im, "cardpriceselections.bson", im.store.ImportSelections, func(doc legacySelection) (*models.PriceSelection, error) {
		id, cardID := idString(doc.ID), idString(doc.CardID)
		if id == "" || cardID == "" {
			return nil, errors.New("selection without id or card id")
		}
		return &models.PriceSelection{
			ID:            id,
			CardID:        cardID,
			PriceType:     strings.ToUpper(doc.PriceType),
			CurrencyCode:  strings.ToUpper(doc.CurrencyCode),
			Condition:     doc.Condition,
			SearchID:      doc.SearchID,
			SearchInclude: nonNil(doc.SearchParams.IncludeKeywords),
			SearchExclude: nonNil(doc.SearchParams.ExcludeKeywords),
			HasReconciled: doc.HasReconciled,
			UpdatedAt:     time.Now().UTC(),
		}, nil
	})
}

// importFile decodes every document of one dump, converts it and inserts the rows in
// batches. Documents that fail to decode or convert are counted and skipped.
func importFile[D any, R any](ctx context.Context, im *Importer, name string, insert func(context.Context, []*R) (int64, error), convert func(D) (*R, error)) (FileStats, error) {
	stats := FileStats{File: name}
	batch := make([]*R, 0, im.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := insert(ctx, batch)
		if err != nil {
			return fmt.Errorf("failed to insert %s batch: %w", name, err)
		}
		stats.Inserted += n
		batch = batch[:0]
		return nil
	}

	err := readBSONFile(ctx, filepath.Join(im.dataDir, name), func(raw []byte) error {
		stats.Read++
		var doc D
		if err := bson.Unmarshal(raw, &doc); err != nil {
			stats.Skipped++
			slog.Warn("Skipping undecodable document", slog.String("type", "sys"), slog.String("file", name), slog.Any("error", err))
			return nil
		}
		row, err := convert(doc)
		if err != nil {
			stats.Skipped++
			slog.Warn("Skipping invalid document", slog.String("type", "sys"), slog.String("file", name), slog.Any("error", err))
			return nil
		}
		batch = append(batch, row)
		if len(batch) >= im.batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return stats, err
	}
	return stats, flush()
}

// readBSONFile streams length-prefixed documents. A missing or empty file yields nothing.
func readBSONFile(ctx context.Context, path string, fn func([]byte) error) error {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Info("BSON file not found, skipping", slog.String("type", "sys"), slog.String("file", path))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open BSON file %s: %w", path, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	offset := int64(0)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		lengthBytes := make([]byte, 4)
		if _, err := io.ReadFull(reader, lengthBytes); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read document length at byte %d: %w", offset, err)
		}

		length := int32(binary.LittleEndian.Uint32(lengthBytes))
		if length <= 4 || length > maxDocumentSize {
			return fmt.Errorf("invalid document length %d at byte %d", length, offset)
		}

		doc := make([]byte, length)
		copy(doc, lengthBytes)
		if _, err := io.ReadFull(reader, doc[4:]); err != nil {
			return fmt.Errorf("failed to read document at byte %d: %w", offset, err)
		}
		offset += int64(length)

		if err := fn(doc); err != nil {
			return err
		}
	}
}

func idString(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return strings.TrimSpace(id)
	case int32, int64:
		return fmt.Sprintf("%d", id)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func stateOrActive(state string) string {
	if strings.TrimSpace(state) == "" {
		return models.RecordStateActive
	}
	return strings.ToUpper(state)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
