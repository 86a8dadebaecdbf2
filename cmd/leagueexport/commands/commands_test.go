package commands

import (
	"leagueexport/lib/fantasy"
	"leagueexport/services/linker"
	"leagueexport/services/report"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	period, err := parsePeriod([]string{"2024", "6"})
	require.NoError(t, err)
	require.Equal(t, fantasy.Period{Year: 2024, Week: 6}, period)

	_, err = parsePeriod([]string{"2024", "0"})
	require.Error(t, err)
	_, err = parsePeriod([]string{"last", "6"})
	require.Error(t, err)
}

func TestSelectedKinds(t *testing.T) {
	defer func() {
		generateFlags.transactions = false
		generateFlags.playerList = false
	}()

	require.Equal(t, report.Kinds, selectedKinds())

	generateFlags.transactions = true
	generateFlags.playerList = true
	require.Equal(t, []report.Kind{report.KindPlayerList, report.KindTransactions}, selectedKinds())
}

func TestLoadApp(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "leagueexport.json5"), []byte(`{
		// comments are allowed
		output_dir: "reports",
		yahoo: { game_key: "449", league_id: "224437" },
	}`), 0644)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "leagueexport.local.json5"), []byte(`{
		yahoo: { league_id: "1" },
	}`), 0644)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, ".env"), []byte("LEAGUEEXPORT_TEST_VALUE=from-env-file\n"), 0644)
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		os.Chdir(wd)
		os.Unsetenv("LEAGUEEXPORT_TEST_VALUE")
	})

	a, err := loadApp("leagueexport.json5", false)
	require.NoError(t, err)
	require.Equal(t, "449", a.config.Yahoo.GameKey)
	require.Equal(t, "1", a.config.Yahoo.LeagueId)
	require.Equal(t, filepath.Join(dir, "reports"), a.outputDir())
	require.Equal(t, "leagueexport.db", a.config.Database.File)
	require.Equal(t, "from-env-file", os.Getenv("LEAGUEEXPORT_TEST_VALUE"))
	require.Nil(t, a.instrumentOutput("yahoo"))
}

func TestSuggestOverrides(t *testing.T) {
	players := []fantasy.PlayerRecord{
		{DisplayName: "Josh Allen", PlayerKey: "449.p.30977"},
		{DisplayName: "Josh Allen", PlayerKey: "449.p.31016"},
		{DisplayName: "Lamar Jackson", PlayerKey: "449.p.30123"},
		{DisplayName: "Kenneth Walker III", PlayerKey: "449.p.33488"},
	}
	leaders := []fantasy.ExternalRow{
		{Name: "Lamar Jackson", Points: 31.9},
		{Name: "Josh Allen", Points: 28.1},
		{Name: "Kenneth Walker", Points: 22.5},
	}

	suggested, ambiguous := suggestOverrides(players, leaders, nil, linker.PolicyErrorOnAmbiguous)
	require.Len(t, ambiguous, 1)
	require.Equal(t, "Josh Allen", ambiguous[0].Name)
	require.Equal(t, []string{"449.p.30977", "449.p.31016"}, ambiguous[0].PlayerKeys)
	require.Len(t, suggested, 1)
	require.Equal(t, "Kenneth Walker", suggested[0].name)
	require.Equal(t, "Kenneth Walker III", suggested[0].playerName)
	require.Equal(t, []string{"449.p.33488"}, suggested[0].playerKeys)

	// a pinned name is no longer ambiguous
	_, ambiguous = suggestOverrides(players, leaders, map[string]string{"Josh Allen": "449.p.31016"}, linker.PolicyErrorOnAmbiguous)
	require.Empty(t, ambiguous)

	_, ambiguous = suggestOverrides(players, leaders, nil, linker.PolicyFirstMatch)
	require.Empty(t, ambiguous)
}
