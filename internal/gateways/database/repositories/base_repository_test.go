package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokeprice/engine/internal/domain"
	"github.com/pokeprice/engine/internal/gateways/database/models"
)

func TestHandleError(t *testing.T) {
	br := NewBaseRepository(nil)

	assert.NoError(t, br.HandleError("get", "card", nil))

	err := br.HandleErrorWithID("get", "card", "base1-4", fmt.Errorf("scan: %w", sql.ErrNoRows))
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, "card with ID base1-4 not found", err.Error())

	boom := errors.New("connection refused")
	err = br.HandleError("list", "price_records", boom)
	assert.True(t, IsRepositoryError(err))
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestConflictError(t *testing.T) {
	err := fmt.Errorf("insert: %w", &ConflictError{Entity: "card", Field: "id", Value: "base1-4"})
	assert.True(t, IsConflict(err))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestToCriteria_RejectsCorruptKeywords(t *testing.T) {
	_, err := toCriteria(&models.SearchCriteria{ID: "c1", Include: []string{"(charizard,"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "c1")

	c, err := toCriteria(&models.SearchCriteria{ID: "c2", Include: []string{"charizard", "(holo,reverse holo)"}, Exclude: []string{}})
	require.NoError(t, err)
	assert.Len(t, c.Include, 2)
	assert.Equal(t, []string{"charizard", "(holo,reverse holo)"}, fromCriteria(c).Include)
}
