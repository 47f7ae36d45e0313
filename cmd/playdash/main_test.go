package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/playdash/internal/common"
	"github.com/Veraticus/playdash/internal/storage"
)

const testCSV = `App,Category,Rating,Reviews,Size_KB,Installs_Num,Type,Price_Num,Content Rating,Primary_Genre,App_Age_years,Install_Band,Price_Category
Chess,GAME,4.5,2000,20480,1000000,Free,0,Everyone,Board,3.5,1M+,Free
Shooter,GAME,3.9,50000,81920,10000000,Free,0,Teen,Action,1.0,10M+,Free
Go Pro,GAME,4.1,90,10240,10000,Paid,2.99,Everyone,Board,6.0,10K+,Low
Notes,TOOLS,,10,512,1000,Free,0,Everyone,Tools,0.5,1K+,Free
`

const testModel = `{
  "name": "linear-test",
  "kind": "linear",
  "features": ["Category","Reviews","Size_KB","Installs_Num","Price_Num","App_Age_years","Type","Content Rating","Primary_Genre"],
  "coefficients": [0, 0.0001, 0, 0, 0, 0, 0, 0, 0],
  "intercept": 4.0
}`

type testEnv struct {
	dir   string
	data  string
	model string
	db    string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	env := testEnv{
		dir:   dir,
		data:  filepath.Join(dir, "apps.csv"),
		model: filepath.Join(dir, "model.json"),
		db:    filepath.Join(dir, "playdash.db"),
	}
	require.NoError(t, os.WriteFile(env.data, []byte(testCSV), 0o600))
	require.NoError(t, os.WriteFile(env.model, []byte(testModel), 0o600))
	return env
}

// run executes the root command with the environment's paths and returns stdout and stderr.
func (e testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{
		"--data", e.data,
		"--model", e.model,
		"--db", e.db,
		"--log-level", "error",
	}, args...))

	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func TestVersionCmd(t *testing.T) {
	env := newTestEnv(t)
	stdout, _, err := env.run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "playdash dev\n", stdout)
}

func TestSummaryCmd(t *testing.T) {
	env := newTestEnv(t)

	t.Run("text", func(t *testing.T) {
		stdout, _, err := env.run(t, "summary", "--category", "GAME")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Filters: Category=GAME")
		assert.Contains(t, stdout, "Total Apps")
		assert.Contains(t, stdout, "4.17")
		assert.Contains(t, stdout, "52,090")
		assert.Contains(t, stdout, "33.3%")
	})

	t.Run("json", func(t *testing.T) {
		stdout, _, err := env.run(t, "summary", "--format", "json")
		require.NoError(t, err)

		var out summaryOutput
		require.NoError(t, json.Unmarshal([]byte(stdout), &out))
		assert.Equal(t, 4, out.Count)
		assert.Equal(t, 4, out.Total)
		require.NotNil(t, out.MeanRating)
		assert.InDelta(t, 4.17, *out.MeanRating, 1e-9)
		assert.Equal(t, int64(52_100), out.Reviews)
		assert.InDelta(t, 25.0, out.Paid, 1e-9)
	})

	t.Run("empty selection", func(t *testing.T) {
		stdout, _, err := env.run(t, "summary", "--category", "TOOLS", "--type", "Paid")
		require.NoError(t, err)
		assert.Contains(t, stdout, "no data")
		assert.Contains(t, stdout, common.ErrEmptyResult.Error())
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, _, err := env.run(t, "summary", "--format", "xml")
		assert.ErrorContains(t, err, "unsupported format")
	})
}

func TestChartsCmd(t *testing.T) {
	env := newTestEnv(t)

	t.Run("single chart as csv", func(t *testing.T) {
		stdout, _, err := env.run(t, "charts", "--chart", "top-categories", "--format", "csv")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(stdout), "\n")
		assert.Equal(t, []string{
			"chart,series,label,value",
			"top-categories,Count,GAME,3",
			"top-categories,Count,TOOLS,1",
		}, lines)
	})

	t.Run("all charts as json", func(t *testing.T) {
		stdout, _, err := env.run(t, "charts", "--type", "Free")
		require.NoError(t, err)

		var charts []map[string]any
		require.NoError(t, json.Unmarshal([]byte(stdout), &charts))
		assert.Len(t, charts, 6)
		assert.Equal(t, "rating-histogram", charts[0]["name"])
	})

	t.Run("unknown chart", func(t *testing.T) {
		_, _, err := env.run(t, "charts", "--chart", "radar")
		assert.ErrorContains(t, err, "unknown chart")
	})
}

func TestPredictCmd(t *testing.T) {
	env := newTestEnv(t)
	base := []string{
		"predict",
		"--category", "GAME", "--type", "Free", "--content-rating", "Everyone", "--genre", "Board",
		"--reviews", "2000", "--size-kb", "20480", "--installs", "1000000", "--age", "2.5",
	}

	t.Run("text", func(t *testing.T) {
		stdout, _, err := env.run(t, base...)
		require.NoError(t, err)
		assert.Contains(t, stdout, "Predicted App Rating: 4.20 / 5")
	})

	t.Run("explain", func(t *testing.T) {
		stdout, _, err := env.run(t, append(base, "--explain")...)
		require.NoError(t, err)
		assert.Contains(t, stdout, "model: linear-test")
		assert.Contains(t, stdout, "Primary_Genre")
	})

	t.Run("json", func(t *testing.T) {
		stdout, _, err := env.run(t, append(base, "--format", "json")...)
		require.NoError(t, err)

		var out predictionOutput
		require.NoError(t, json.Unmarshal([]byte(stdout), &out))
		assert.InDelta(t, 4.2, out.Rating, 1e-9)
		assert.Equal(t, "4.20 / 5", out.Label)
		assert.Equal(t, "linear-test", out.Model)
		assert.Equal(t, 2000.0, out.Features["Reviews"])
		// GAME is first in the derived Category vocabulary.
		assert.Equal(t, 0.0, out.Features["Category"])
		assert.Equal(t, 1.0, out.Features["Primary_Genre"])
	})

	t.Run("unseen category", func(t *testing.T) {
		args := append([]string{}, base...)
		args[2] = "FINANCE"
		_, _, err := env.run(t, args...)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrEncoding)
		assert.True(t, common.IsRecoverable(err))
	})

	t.Run("negative price", func(t *testing.T) {
		_, _, err := env.run(t, append(base, "--price", "-1")...)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrInvalidInput)
	})

	t.Run("missing categorical", func(t *testing.T) {
		_, _, err := env.run(t, "predict", "--category", "GAME")
		assert.ErrorContains(t, err, "required flag")
	})

	t.Run("missing model", func(t *testing.T) {
		require.NoError(t, os.Remove(env.model))
		_, _, err := env.run(t, base...)
		assert.ErrorContains(t, err, "failed to open model")
	})
}

func TestEncodingsCmd(t *testing.T) {
	env := newTestEnv(t)

	t.Run("show one field", func(t *testing.T) {
		stdout, _, err := env.run(t, "encodings", "show", "--field", "Category")
		require.NoError(t, err)
		assert.Contains(t, stdout, "source: derived")
		assert.Contains(t, stdout, "GAME")
		assert.Contains(t, stdout, "TOOLS")
		assert.NotContains(t, stdout, "Everyone")
	})

	t.Run("export round trip", func(t *testing.T) {
		out := filepath.Join(env.dir, "encodings.yaml")
		_, stderr, err := env.run(t, "encodings", "export", "--out", out)
		require.NoError(t, err)
		assert.Contains(t, stderr, out)

		stdout, _, err := env.run(t, "--encodings", out, "encodings", "show", "--field", "Type")
		require.NoError(t, err)
		assert.Contains(t, stdout, "source: file")
		assert.Contains(t, stdout, "Paid")
	})
}

func TestImportAndSQLiteSource(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := env.run(t, "import", "--no-progress")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Imported 4 apps")

	db, err := storage.NewSQLiteStorage(env.db)
	require.NoError(t, err)
	n, err := db.CountApps(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	require.NoError(t, db.Close())

	stdout, _, err = env.run(t, "--source", "sqlite", "--data", filepath.Join(env.dir, "gone.csv"),
		"summary", "--format", "json")
	require.NoError(t, err)
	var out summaryOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, 4, out.Count)
}

func TestImportCmd_WithProgress(t *testing.T) {
	env := newTestEnv(t)

	_, stderr, err := env.run(t, "import", "--csv", env.data)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Importing apps")
}

func TestImportCmd_BadCSV(t *testing.T) {
	env := newTestEnv(t)
	bad := filepath.Join(env.dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("App,Category\nx,y\n"), 0o600))

	_, _, err := env.run(t, "import", "--csv", bad)
	assert.ErrorContains(t, err, "missing required column")
}

func TestMigrateCmd(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := env.run(t, "migrate", "--status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Migrations pending")

	stdout, _, err = env.run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "completed successfully")

	stdout, _, err = env.run(t, "migrate", "--status")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "Migrations pending")
	assert.Contains(t, stdout, "Latest version")
}

func TestConfigFile(t *testing.T) {
	env := newTestEnv(t)
	cfg := filepath.Join(env.dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("data:\n  path: "+env.data+"\nlogging:\n  level: error\n"), 0o600))

	viper.Reset()
	t.Cleanup(viper.Reset)

	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfg, "summary", "--format", "json"})
	require.NoError(t, cmd.Execute())

	var out summaryOutput
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Equal(t, 4, out.Count)
}

func TestExportCmd_RequiresCredentials(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "export", "--category", "GAME")
	assert.ErrorContains(t, err, "no authentication method configured")
}

func TestMissingDataset(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.Remove(env.data))

	_, _, err := env.run(t, "summary")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, "dataset not found at "+env.data+"; set data.path or pass --data", common.Describe(err))
}
