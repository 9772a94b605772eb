package types

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleExperience() UsedExperience {
	var u UsedExperience
	u.AddField(NewField("Automotive"))
	u.AddField(NewField("Public Sector"))
	u.AddRole(NewRole("Software Architect"))
	u.AddSoftSkill(NewSoftSkill("Moderation"))
	u.AddHardSkill(NewHardSkill("Go", "Programming"), HardSkillExpert)
	u.AddHardSkill(NewHardSkill("PostgreSQL", "Database"), HardSkillAdvanced)
	u.AddLanguage(NewLanguage("German"), LanguageNative)
	u.AddLanguage(NewLanguage("English"), LanguageBusinessFluent)
	return u
}

func reversed(u UsedExperience) UsedExperience {
	var r UsedExperience
	for i := len(u.Fields) - 1; i >= 0; i-- {
		r.AddField(u.Fields[i])
	}
	for i := len(u.Roles) - 1; i >= 0; i-- {
		r.AddRole(u.Roles[i])
	}
	for i := len(u.SoftSkills) - 1; i >= 0; i-- {
		r.AddSoftSkill(u.SoftSkills[i])
	}
	for i := len(u.HardSkills) - 1; i >= 0; i-- {
		r.AddHardSkill(u.HardSkills[i].Skill, u.HardSkills[i].Level)
	}
	for i := len(u.Languages) - 1; i >= 0; i-- {
		r.AddLanguage(u.Languages[i].Language, u.Languages[i].Level)
	}
	return r
}

func TestUsedExperience_EqualIgnoresOrder(t *testing.T) {
	u := sampleExperience()
	assert.True(t, u.Equal(reversed(u)))
	assert.True(t, reversed(u).Equal(u))
}

func TestUsedExperience_EqualIsSymmetric(t *testing.T) {
	u := sampleExperience()
	superset := u.Clone()
	superset.AddRole(NewRole("Project Lead"))

	assert.False(t, u.Equal(superset), "subset must not equal superset")
	assert.False(t, superset.Equal(u), "superset must not equal subset")
}

func TestUsedExperience_EqualComparesLevels(t *testing.T) {
	u := sampleExperience()
	other := u.Clone()
	other.HardSkills[0].Level = HardSkillBasic
	assert.False(t, u.Equal(other))

	other = u.Clone()
	other.Languages[1].Level = LanguageFluent
	assert.False(t, u.Equal(other))
}

func TestUsedExperience_EqualComparesStructure(t *testing.T) {
	u := sampleExperience()
	other := u.Clone()
	other.HardSkills[0].Skill.Rename("Golang")
	assert.False(t, u.Equal(other))

	other = u.Clone()
	other.HardSkills[0].Skill.SetCategory("Language")
	assert.False(t, u.Equal(other))
}

func TestUsedExperience_EmptyEqual(t *testing.T) {
	assert.True(t, UsedExperience{}.Equal(UsedExperience{}))
	assert.True(t, UsedExperience{Fields: []Experience{}}.Equal(UsedExperience{}))
}

func TestUsedExperience_CloneIsIndependent(t *testing.T) {
	u := sampleExperience()
	c := u.Clone()
	require.True(t, u.Equal(c))

	c.Fields[0].Rename("Changed")
	c.HardSkills[0].Level = HardSkillBasic
	c.AddRole(NewRole("New"))

	assert.Equal(t, "Automotive", u.Fields[0].Name)
	assert.Equal(t, HardSkillExpert, u.HardSkills[0].Level)
	assert.Len(t, u.Roles, 1)
}

func TestUsedExperience_GetSkillByID(t *testing.T) {
	u := sampleExperience()

	tests := []struct {
		name string
		id   uuid.UUID
		want string
	}{
		{"field", u.Fields[1].ID, "Public Sector"},
		{"role", u.Roles[0].ID, "Software Architect"},
		{"soft skill", u.SoftSkills[0].ID, "Moderation"},
		{"hard skill", u.HardSkills[1].Skill.ID, "PostgreSQL"},
		{"language", u.Languages[0].Language.ID, "German"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := u.GetSkillByID(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.want, e.Name)
		})
	}

	_, ok := u.GetSkillByID(uuid.New())
	assert.False(t, ok)
}

func TestUsedExperience_SubsetPreservesOrder(t *testing.T) {
	u := sampleExperience()
	ids := IDSet([]uuid.UUID{u.Fields[1].ID, u.Fields[0].ID, u.Languages[1].Language.ID})

	sub := u.Subset(ids)
	require.Len(t, sub.Fields, 2)
	assert.Equal(t, "Automotive", sub.Fields[0].Name)
	assert.Equal(t, "Public Sector", sub.Fields[1].Name)
	require.Len(t, sub.Languages, 1)
	assert.Equal(t, LanguageBusinessFluent, sub.Languages[0].Level)
	assert.Empty(t, sub.Roles)
	assert.True(t, sub.IsSubsetOf(u))
	assert.False(t, u.IsSubsetOf(sub))
}

func TestUsedExperience_NoDedupOnInsert(t *testing.T) {
	var u UsedExperience
	f := NewField("Banking")
	u.AddField(f)
	u.AddField(f)
	assert.Len(t, u.Fields, 2)
	assert.Equal(t, 2, u.Len())
	assert.Len(t, u.IDs(), 1)
}

func TestUsedExperience_Validate(t *testing.T) {
	u := sampleExperience()
	require.NoError(t, u.Validate())

	misplaced := u.Clone()
	misplaced.AddField(NewRole("Tester"))
	var vErr *ValidationError
	assert.ErrorAs(t, misplaced.Validate(), &vErr)

	unnamed := u.Clone()
	unnamed.AddSoftSkill(Experience{ID: uuid.New(), Kind: KindSoftSkill})
	assert.Error(t, unnamed.Validate())

	badLevel := u.Clone()
	badLevel.AddHardSkill(NewHardSkill("Rust", "Programming"), HardSkillLevel("guru"))
	assert.Error(t, badLevel.Validate())
}

func TestUsedExperience_JSONRoundTripKeepsEquality(t *testing.T) {
	u := sampleExperience()
	data, err := json.Marshal(u)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"soft_skills"`)
	assert.Contains(t, string(data), `"level":"expert"`)

	var back UsedExperience
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, u.Equal(back))
}
