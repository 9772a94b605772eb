package types

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allOptions = DocumentConfigurationOptions{
	ShowCoverSheet:          true,
	ShowRequiredExperience:  true,
	IncludePriceCalculation: true,
}

func TestNewDocumentConfiguration_RegistersOnOffer(t *testing.T) {
	offer := NewOffer("Test Title")
	s, _ := offer.AddEmployee(newTestEmployee(3))

	cfg, err := NewDocumentConfiguration("Export", offer, []uuid.UUID{s.ID}, allOptions)
	require.NoError(t, err)
	assert.Equal(t, offer.ID, cfg.OfferID)
	assert.Equal(t, []uuid.UUID{cfg.ID}, offer.DocumentConfigurationIDs)
	assert.False(t, cfg.CreatedAt.IsZero())
	assert.NoError(t, cfg.CheckReferences(offer))
}

func TestNewDocumentConfiguration_RequiresPresence(t *testing.T) {
	offer := NewOffer("Test Title")
	_, err := NewDocumentConfiguration("", offer, nil, allOptions)
	assert.Error(t, err)
	_, err = NewDocumentConfiguration("Export", nil, nil, allOptions)
	assert.Error(t, err)
	assert.Empty(t, offer.DocumentConfigurationIDs)
}

func TestNewDocumentConfiguration_CopiesIDs(t *testing.T) {
	offer := NewOffer("Test Title")
	s, _ := offer.AddEmployee(newTestEmployee(3))
	ids := []uuid.UUID{s.ID}
	cfg, err := NewDocumentConfiguration("Export", offer, ids, allOptions)
	require.NoError(t, err)
	ids[0] = uuid.New()
	assert.Equal(t, s.ID, cfg.ShownEmployeePropertyIDs[0])
}

func TestDocumentConfiguration_StaleAfterRemoval(t *testing.T) {
	offer := NewOffer("Test Title")
	a, _ := offer.AddEmployee(newTestEmployee(3))
	b, _ := offer.AddEmployee(newTestEmployee(8))
	cfg, err := NewDocumentConfiguration("Export", offer, []uuid.UUID{a.ID, b.ID}, allOptions)
	require.NoError(t, err)

	offer.RemoveEmployee(b.ID)

	var stale *StaleReferenceError
	require.ErrorAs(t, cfg.CheckReferences(offer), &stale)
	assert.Equal(t, []uuid.UUID{b.ID}, stale.Missing)
	assert.Contains(t, stale.Error(), b.ID.String())
}

func TestDocumentConfiguration_StaleAgainstOtherOffer(t *testing.T) {
	offer := NewOffer("A")
	cfg, err := NewDocumentConfiguration("Export", offer, nil, allOptions)
	require.NoError(t, err)
	assert.Error(t, cfg.CheckReferences(NewOffer("B")))
}

func TestDocumentConfiguration_Equal(t *testing.T) {
	offer := NewOffer("Test Title")
	a, _ := offer.AddEmployee(newTestEmployee(3))
	b, _ := offer.AddEmployee(newTestEmployee(8))
	cfg, err := NewDocumentConfiguration("Export", offer, []uuid.UUID{a.ID, b.ID}, allOptions)
	require.NoError(t, err)

	reordered := *cfg
	reordered.ShownEmployeePropertyIDs = []uuid.UUID{b.ID, a.ID}
	assert.True(t, cfg.Equal(&reordered))

	subset := *cfg
	subset.ShownEmployeePropertyIDs = []uuid.UUID{a.ID}
	assert.False(t, cfg.Equal(&subset))
	assert.False(t, subset.Equal(cfg))

	toggled := *cfg
	toggled.IncludePriceCalculation = false
	assert.False(t, cfg.Equal(&toggled))

	assert.False(t, cfg.Equal(nil))
	var nilCfg *DocumentConfiguration
	assert.True(t, nilCfg.Equal(nil))
}

func TestDocumentConfiguration_JSONFlattensOptions(t *testing.T) {
	offer := NewOffer("Test Title")
	cfg, err := NewDocumentConfiguration("Export", offer, nil, allOptions)
	require.NoError(t, err)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"show_cover_sheet":true`)
	assert.Contains(t, string(data), `"include_price_calculation":true`)

	var back DocumentConfiguration
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, cfg.Equal(&back))
}
