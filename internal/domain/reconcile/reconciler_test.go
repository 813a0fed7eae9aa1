package reconcile_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pokeprice/engine/internal/domain/reconcile"
	"github.com/pokeprice/engine/internal/domain/reconcile/mock"
	"github.com/pokeprice/engine/internal/domain/search"
)

// memorySource is an in-memory record table ordered by id.
type memorySource struct {
	mu       sync.Mutex
	name     string
	records  map[string]reconcile.Record
	cursors  []string
	writes   int
	failFrom int // UpdateSearchIDs call number that starts failing, 0 disables
}

func newMemorySource(name string, recs ...reconcile.Record) *memorySource {
	s := &memorySource{name: name, records: map[string]reconcile.Record{}}
	for _, r := range recs {
		s.records[r.ID] = r
	}
	return s
}

func (s *memorySource) Name() string { return s.name }

func (s *memorySource) Batch(_ context.Context, cardID, startAfterID string, limit int) ([]reconcile.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursors = append(s.cursors, startAfterID)

	ids := make([]string, 0, len(s.records))
	for id, r := range s.records {
		if r.CardID == cardID && id > startAfterID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if len(ids) > limit {
		ids = ids[:limit]
	}
	out := make([]reconcile.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.records[id])
	}
	return out, nil
}

func (s *memorySource) UpdateSearchIDs(_ context.Context, updates []reconcile.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.failFrom > 0 && s.writes >= s.failFrom {
		return errors.New("write failed")
	}
	for _, u := range updates {
		r := s.records[u.ID]
		r.SearchIDs = u.SearchIDs
		s.records[u.ID] = r
	}
	return nil
}

func (s *memorySource) searchIDs(id string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[id].SearchIDs
}

type memoryMarker struct {
	marked map[string]time.Time
}

func (m *memoryMarker) MarkReconciled(_ context.Context, id string, at time.Time) error {
	if m.marked == nil {
		m.marked = map[string]time.Time{}
	}
	m.marked[id] = at
	return nil
}

var now = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newCriteria(t *testing.T, id string, include, exclude []string) *search.Criteria {
	t.Helper()
	inc, err := search.ParseKeywords(include)
	require.NoError(t, err)
	exc, err := search.ParseKeywords(exclude)
	require.NoError(t, err)
	return &search.Criteria{ID: id, CardID: "card-1", Include: inc, Exclude: exc, Active: true}
}

func listing(id, name string, searchIDs ...string) reconcile.Record {
	return reconcile.Record{ID: id, CardID: "card-1", SourceType: "EBAY", ListingName: name, State: "ACTIVE", SearchIDs: searchIDs}
}

func TestReconcile_AddsAndRemovesCriteriaID(t *testing.T) {
	prices := newMemorySource("price_records",
		listing("r1", "Charizard Holo Base Set"),
		listing("r2", "Charizard Holo PSA 10", "crit-a"),
		listing("r3", "Blastoise Holo", "crit-a", "other"),
		listing("r4", "Charizard Holo", "other", "crit-a"),
	)
	marker := &memoryMarker{}
	r := reconcile.New(marker, []reconcile.RecordSource{prices}, reconcile.WithClock(func() time.Time { return now }))
	c := newCriteria(t, "crit-a", []string{"charizard"}, []string{"psa"})

	res, err := r.Reconcile(context.Background(), c)
	require.NoError(t, err)

	assert.Equal(t, []string{"crit-a"}, prices.searchIDs("r1"))
	assert.Equal(t, []string{}, prices.searchIDs("r2"))
	assert.Equal(t, []string{"other"}, prices.searchIDs("r3"))
	// r4 only needed sorting, which is not a content change.
	assert.Equal(t, []string{"other", "crit-a"}, prices.searchIDs("r4"))
	assert.Equal(t, 4, res.Processed)
	assert.Equal(t, 3, res.Updated)
	assert.Equal(t, now, marker.marked["crit-a"])
	assert.Equal(t, now, c.LastReconciled)
}

func TestReconcile_Convergence(t *testing.T) {
	var recs []reconcile.Record
	for i := 0; i < 137; i++ {
		name := "Charizard Holo"
		if i%3 == 0 {
			name = "Venusaur Holo"
		}
		recs = append(recs, listing(fmt.Sprintf("r%03d", i), name))
	}
	prices := newMemorySource("price_records", recs...)
	r := reconcile.New(&memoryMarker{}, []reconcile.RecordSource{prices})
	c := newCriteria(t, "crit-a", []string{"charizard"}, nil)

	first, err := r.Reconcile(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, 137, first.Processed)
	assert.Equal(t, 91, first.Updated)

	second, err := r.Reconcile(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, 137, second.Processed)
	assert.Zero(t, second.Updated)
}

func TestReconcile_BatchesInAscendingOrder(t *testing.T) {
	var recs []reconcile.Record
	for i := 0; i < 120; i++ {
		recs = append(recs, listing(fmt.Sprintf("r%03d", i), "Mew"))
	}
	prices := newMemorySource("price_records", recs...)
	r := reconcile.New(&memoryMarker{}, []reconcile.RecordSource{prices})

	_, err := r.Reconcile(context.Background(), newCriteria(t, "crit-a", []string{"mew"}, nil))
	require.NoError(t, err)
	// 50 + 50 + 20, then the empty batch ends the sweep.
	assert.Equal(t, []string{"", "r049", "r099", "r119"}, prices.cursors)
}

func TestReconcile_TwoCriteriaOnOneRecord(t *testing.T) {
	prices := newMemorySource("price_records", listing("r1", "Charizard 1st Edition Shadowless Holo"))
	r := reconcile.New(&memoryMarker{}, []reconcile.RecordSource{prices})

	_, err := r.Reconcile(context.Background(), newCriteria(t, "crit-b", []string{"charizard", "(1st edition,shadowless)"}, nil))
	require.NoError(t, err)
	_, err = r.Reconcile(context.Background(), newCriteria(t, "crit-a", []string{"charizard", "holo"}, nil))
	require.NoError(t, err)

	assert.Equal(t, []string{"crit-a", "crit-b"}, prices.searchIDs("r1"))
}

func TestReconcile_SkipsIneligibleRecords(t *testing.T) {
	inactive := listing("r2", "Charizard", "crit-a")
	inactive.State = reconcile.StateInactive
	other := listing("r3", "Charizard")
	other.SourceType = "TCGPLAYER"

	prices := newMemorySource("price_records",
		listing("r1", "  "),
		inactive,
		other,
		listing("r4", "Charizard"),
	)
	r := reconcile.New(&memoryMarker{}, []reconcile.RecordSource{prices})

	res, err := r.Reconcile(context.Background(), newCriteria(t, "crit-a", []string{"charizard"}, nil))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Skipped)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, []string{"crit-a"}, prices.searchIDs("r2"), "inactive records are left alone")
	assert.Nil(t, prices.searchIDs("r3"))
}

func TestReconcile_ConfiguredListingSources(t *testing.T) {
	rec := listing("r1", "Charizard")
	rec.SourceType = "tcgplayer"
	prices := newMemorySource("price_records", rec)
	r := reconcile.New(&memoryMarker{}, []reconcile.RecordSource{prices}, reconcile.WithListingSources("EBAY", "TCGPLAYER"))

	res, err := r.Reconcile(context.Background(), newCriteria(t, "crit-a", []string{"charizard"}, nil))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Updated)
}

func TestReconcile_SweepsOpenListingsAfterPriceRecords(t *testing.T) {
	prices := newMemorySource("price_records", listing("p1", "Charizard"))
	listings := newMemorySource("open_listings", listing("l1", "Charizard"), listing("l2", "Pikachu"))
	r := reconcile.New(&memoryMarker{}, []reconcile.RecordSource{prices, listings})

	res, err := r.Reconcile(context.Background(), newCriteria(t, "crit-a", []string{"charizard"}, nil))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Processed)
	assert.Equal(t, 2, res.Updated)
	assert.Equal(t, []string{"crit-a"}, listings.searchIDs("l1"))
}

func TestReconcile_FailureKeepsEarlierBatches(t *testing.T) {
	var recs []reconcile.Record
	for i := 0; i < 75; i++ {
		recs = append(recs, listing(fmt.Sprintf("r%03d", i), "Charizard"))
	}
	prices := newMemorySource("price_records", recs...)
	prices.failFrom = 2

	ctrl := gomock.NewController(t)
	marker := mock.NewMockCriteriaMarker(ctrl)
	marker.EXPECT().MarkReconciled(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	r := reconcile.New(marker, []reconcile.RecordSource{prices})
	res, err := r.Reconcile(context.Background(), newCriteria(t, "crit-a", []string{"charizard"}, nil))
	require.Error(t, err)
	assert.Equal(t, 50, res.Updated)
	assert.Equal(t, []string{"crit-a"}, prices.searchIDs("r049"))
	assert.Nil(t, prices.searchIDs("r050"))
}

func TestReconcile_BatchErrorAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mock.NewMockRecordSource(ctrl)
	marker := mock.NewMockCriteriaMarker(ctrl)

	src.EXPECT().Batch(gomock.Any(), "card-1", "", reconcile.DefaultBatchSize).Return(nil, errors.New("connection reset"))
	src.EXPECT().Name().Return("price_records").AnyTimes()

	r := reconcile.New(marker, []reconcile.RecordSource{src})
	_, err := r.Reconcile(context.Background(), newCriteria(t, "crit-a", []string{"charizard"}, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestReconcile_CancelledBetweenBatches(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	prices := newMemorySource("price_records", listing("r1", "Charizard"))
	r := reconcile.New(&memoryMarker{}, []reconcile.RecordSource{prices})

	_, err := r.Reconcile(ctx, newCriteria(t, "crit-a", []string{"charizard"}, nil))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, prices.cursors)
}

func TestNextSearchIDs(t *testing.T) {
	tests := []struct {
		name    string
		current []string
		matched bool
		want    []string
	}{
		{name: "add to empty", current: nil, matched: true, want: []string{"c"}},
		{name: "remove", current: []string{"a", "c"}, matched: false, want: []string{"a"}},
		{name: "dedupe and sort", current: []string{"z", "c", "a", "c"}, matched: true, want: []string{"a", "c", "z"}},
		{name: "drop blanks", current: []string{"", "a"}, matched: false, want: []string{"a"}},
		{name: "nothing left", current: []string{"c"}, matched: false, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reconcile.NextSearchIDs(tt.current, "c", tt.matched))
		})
	}
}
