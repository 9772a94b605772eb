package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/offer-composer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToJSON_NilSliceIsEmptyArray(t *testing.T) {
	var ids []uuid.UUID
	b, err := toJSON(ids)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	id := uuid.MustParse("7d444840-9dc0-11d1-b245-5ffdce74fad2")
	b, err = toJSON([]uuid.UUID{id})
	require.NoError(t, err)
	assert.Equal(t, `["7d444840-9dc0-11d1-b245-5ffdce74fad2"]`, string(b))
}

func TestFromJSON_EmptyLeavesValue(t *testing.T) {
	ids := []uuid.UUID{uuid.New()}
	require.NoError(t, fromJSON(nil, &ids))
	assert.Len(t, ids, 1)

	assert.Error(t, fromJSON([]byte("{"), &ids))
}

func TestFromJSON_UsedExperience(t *testing.T) {
	var u types.UsedExperience
	u.AddHardSkill(types.NewHardSkill("Go", "Programming"), types.HardSkillExpert)
	b, err := toJSON(u)
	require.NoError(t, err)

	var got types.UsedExperience
	require.NoError(t, fromJSON(b, &got))
	assert.True(t, u.Equal(got))
}

func TestSnapshotArgs_Order(t *testing.T) {
	e := types.NewEmployee("jdoe", "Jane", "Doe")
	e.RateCardLevel = 5
	s := types.NewShownEmployeeProperties(uuid.New(), e)
	s.Discount = 0.25

	args, err := snapshotArgs(s)
	require.NoError(t, err)
	require.Len(t, args, 11)
	assert.Equal(t, s.ID, args[0])
	assert.Equal(t, s.OfferID, args[1])
	assert.Equal(t, e.ID, args[2])
	assert.Equal(t, 5, args[3])
	assert.Equal(t, 0.25, args[9])
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	require.NotNil(t, nullIfEmpty("x"))
	assert.Equal(t, "x", *nullIfEmpty("x"))
	assert.Equal(t, "", derefString(nil))
}
