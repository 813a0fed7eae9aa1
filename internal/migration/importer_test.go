package migration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pokeprice/engine/internal/gateways/database/models"
)

type memoryStore struct {
	cards      []*models.Card
	criteria   []*models.SearchCriteria
	records    []*models.PriceRecord
	listings   []*models.OpenListing
	selections []*models.PriceSelection
	batches    int
}

func (m *memoryStore) ImportCards(_ context.Context, rows []*models.Card) (int64, error) {
	m.batches++
	m.cards = append(m.cards, rows...)
	return int64(len(rows)), nil
}

func (m *memoryStore) ImportCriteria(_ context.Context, rows []*models.SearchCriteria) (int64, error) {
	m.batches++
	m.criteria = append(m.criteria, rows...)
	return int64(len(rows)), nil
}

func (m *memoryStore) ImportPriceRecords(_ context.Context, rows []*models.PriceRecord) (int64, error) {
	m.batches++
	m.records = append(m.records, rows...)
	return int64(len(rows)), nil
}

func (m *memoryStore) ImportOpenListings(_ context.Context, rows []*models.OpenListing) (int64, error) {
	m.batches++
	m.listings = append(m.listings, rows...)
	return int64(len(rows)), nil
}

func (m *memoryStore) ImportSelections(_ context.Context, rows []*models.PriceSelection) (int64, error) {
	m.batches++
	m.selections = append(m.selections, rows...)
	return int64(len(rows)), nil
}

func writeDump(t *testing.T, dir, name string, docs ...any) {
	t.Helper()
	var out []byte
	for _, d := range docs {
		raw, err := bson.Marshal(d)
		require.NoError(t, err)
		out = append(out, raw...)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), out, 0o600))
}

func TestImportCriteria(t *testing.T) {
	dir := t.TempDir()
	oid := primitive.NewObjectID()
	reconciled := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	writeDump(t, dir, "searchcriteria.bson",
		bson.M{
			"_id":             oid,
			"cardId":          "base1-4",
			"includeKeywords": bson.A{"Charizard", "(1st edition,shadowless)", "charizard"},
			"excludeKeywords": bson.A{"psa"},
			"active":          true,
			"searchUrl":       "https://www.ebay.com/sch/i.html?_nkw=charizard",
			"lastReconciled":  reconciled,
		},
		bson.M{"_id": "bad-group", "cardId": "base1-4", "includeKeywords": bson.A{"(holo,"}},
		bson.M{"_id": "no-include", "cardId": "base1-4", "includeKeywords": bson.A{}},
		bson.M{"cardId": "base1-4", "includeKeywords": bson.A{"pikachu"}},
	)

	store := &memoryStore{}
	stats, err := NewImporter(store, dir).ImportCriteria(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Read)
	assert.Equal(t, 3, stats.Skipped)
	assert.Equal(t, int64(1), stats.Inserted)

	require.Len(t, store.criteria, 1)
	c := store.criteria[0]
	assert.Equal(t, oid.Hex(), c.ID)
	assert.Equal(t, "base1-4", c.CardID)
	assert.Equal(t, []string{"charizard", "(1st edition,shadowless)"}, c.Include)
	assert.Equal(t, []string{"psa"}, c.Exclude)
	assert.True(t, c.Active)
	assert.True(t, c.LastReconciled.Equal(reconciled))
	assert.Nil(t, c.BackfillTime)
}

func TestImportPriceRecords_Batches(t *testing.T) {
	dir := t.TempDir()
	docs := make([]any, 0, 5)
	for _, id := range []string{"r1", "r2", "r3", "r4", "r5"} {
		docs = append(docs, bson.M{
			"_id":         id,
			"cardId":      "base1-4",
			"sourceType":  "ebay",
			"listingName": "Charizard holo " + id,
			"price":       bson.M{"amountInMinorUnits": int64(12500), "currencyCode": "gbp"},
			"timestamp":   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		})
	}
	writeDump(t, dir, "pricehistory.bson", docs...)

	store := &memoryStore{}
	stats, err := NewImporter(store, dir).WithBatchSize(2).ImportPriceRecords(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(5), stats.Inserted)
	assert.Equal(t, 3, store.batches)

	r := store.records[0]
	assert.Equal(t, "EBAY", r.SourceType)
	assert.Equal(t, "GBP", r.CurrencyCode)
	assert.Equal(t, int64(12500), r.Price)
	assert.Equal(t, models.RecordStateActive, r.State)
	assert.NotNil(t, r.SearchIDs)
	assert.Empty(t, r.SearchIDs)
}

func TestImportAll_MissingFilesAreSkipped(t *testing.T) {
	dir := t.TempDir()
	writeDump(t, dir, "cards.bson", bson.M{"_id": "base1-4", "name": "Charizard", "setName": "Base", "numberInSet": "4"})

	store := &memoryStore{}
	all, err := NewImporter(store, dir).ImportAll(context.Background())
	require.NoError(t, err)

	require.Len(t, all, 5)
	assert.Equal(t, "cards.bson", all[0].File)
	assert.Equal(t, int64(1), all[0].Inserted)
	for _, s := range all[1:] {
		assert.Zero(t, s.Read, s.File)
	}
	require.Len(t, store.cards, 1)
	assert.Equal(t, "Base", store.cards[0].SetName)
}

func TestReadBSONFile_RejectsCorruptLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.bson")
	require.NoError(t, os.WriteFile(path, []byte{0x02, 0x00, 0x00, 0x00, 0xff}, 0o600))

	err := readBSONFile(context.Background(), path, func([]byte) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid document length")
}

func TestIDString(t *testing.T) {
	oid := primitive.NewObjectID()
	assert.Equal(t, oid.Hex(), idString(oid))
	assert.Equal(t, "abc", idString(" abc "))
	assert.Equal(t, "42", idString(int32(42)))
	assert.Equal(t, "", idString(nil))
}
