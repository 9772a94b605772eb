package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/offer-composer/internal/schemas"
	"github.com/jonathan/offer-composer/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command in-process with flags reset to their defaults
func execute(t *testing.T, args ...string) error {
	t.Helper()
	reset := func(c *cobra.Command) {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd)
	for _, c := range rootCmd.Commands() {
		reset(c)
	}
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestGenerate_RequiresConfigurationSource(t *testing.T) {
	err := execute(t, "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration-id")
}

func TestGenerate_SourcesAreExclusive(t *testing.T) {
	err := execute(t, "generate", "--configuration-id", uuid.NewString(), "--configuration-file", "cfg.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others")
}

func TestGenerate_RequiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	err := execute(t, "generate", "--configuration-id", uuid.NewString())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestGenerate_RejectsBadFormat(t *testing.T) {
	err := execute(t, "generate", "--configuration-id", uuid.NewString(), "--format", "docx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format")
}

func TestExperience_RequiresEmployee(t *testing.T) {
	err := execute(t, "experience")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "employee-id")
}

func TestSettings_ConfigFileErrors(t *testing.T) {
	err := execute(t, "experience", "--config", filepath.Join(t.TempDir(), "missing.json"), "--user-name", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func writeConfiguration(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "configuration.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadConfigurationFile(t *testing.T) {
	id, offerID, snapshotID := uuid.New(), uuid.New(), uuid.New()
	path := writeConfiguration(t, `{
		"id": "`+id.String()+`",
		"title": "Short",
		"show_cover_sheet": true,
		"include_price_calculation": true,
		"offer_id": "`+offerID.String()+`",
		"shown_employee_property_ids": ["`+snapshotID.String()+`"]
	}`)

	cfg, err := readConfigurationFile(path)
	require.NoError(t, err)
	assert.Equal(t, id, cfg.ID)
	assert.Equal(t, offerID, cfg.OfferID)
	assert.True(t, cfg.ShowCoverSheet)
	assert.False(t, cfg.ShowRequiredExperience)
	assert.Equal(t, []uuid.UUID{snapshotID}, cfg.ShownEmployeePropertyIDs)
}

func TestReadConfigurationFile_Invalid(t *testing.T) {
	path := writeConfiguration(t, `{"title": "Short"}`)

	_, err := readConfigurationFile(path)
	require.Error(t, err)
	var validationErr *schemas.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = readConfigurationFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	e := types.NewEmployee("gh", "Grace", "Hopper")
	e.EmployedSince = time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)
	e.ScientificAssistant = 4

	s := summarize(e, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "Grace Hopper", s.Name)
	assert.Equal(t, 12, s.RelevantWorkExperience) // 10 + 0.5*4
}

func TestImport_RequiresFile(t *testing.T) {
	err := execute(t, "import")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "file" not set`)
}

func TestImport_BadCatalogFailsBeforeConnecting(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	err := execute(t, "import", "--file", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}
