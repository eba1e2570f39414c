package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/commute/config"
)

const juni = `Reisoverzicht juni 2025

24-06-2025  NS   Reizen op saldo, dal/spits  Hilversum Duivendrecht  2  € 3,45
24-06-2025  NS   Reizen op saldo, dal/spits  Duivendrecht Amsterdam Centraal  2  € 4,00
24-06-2025  NS   Reizen op saldo, dal/spits  Amsterdam Centraal Hilversum  2  € 7,45
28-06-2025  NS   Reizen op saldo, dal/spits  Hilversum Utrecht Centraal  2  € 9,00
`

// fixture writes a statement and a configuration to a temporary directory
// and returns their paths.
func fixture(t *testing.T, statement string, cfg *config.Config) (string, string) {
	t.Helper()
	dir := t.TempDir()

	statementPath := filepath.Join(dir, "juni.txt")
	assert.NoError(t, os.WriteFile(statementPath, []byte(statement), 0644))

	configPath := filepath.Join(dir, "commute.json")
	if cfg != nil {
		assert.NoError(t, config.Save(configPath, cfg))
	}

	return statementPath, configPath
}

func commuteConfig() *config.Config {
	return &config.Config{From: []string{"Hilversum"}, To: []string{"Amsterdam Centraal"}}
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	var c CLI
	parser, err := New(&c,
		kong.Writers(&stdout, &stderr),
		kong.Exit(func(code int) { t.Fatalf("unexpected exit with code %d", code) }),
	)
	assert.NoError(t, err)

	ctx, err := parser.Parse(args)
	if err != nil {
		return stdout.String(), stderr.String(), err
	}

	err = ctx.Run()
	return stdout.String(), stderr.String(), err
}

func TestReportCommand(t *testing.T) {
	statement, cfg := fixture(t, juni, commuteConfig())

	stdout, _, err := run(t, "report", "--plain", "--config", cfg, statement)
	assert.NoError(t, err)

	assert.Contains(t, stdout, "Hilversum")
	assert.Contains(t, stdout, "Duivendrecht")
	assert.Contains(t, stdout, "Amsterdam Centraal")
	assert.Contains(t, stdout, "Total (3 legs, 1 days)  € 14.90")
	assert.NotContains(t, stdout, "Utrecht Centraal")
}

func TestReportCommandMixedProviders(t *testing.T) {
	mixed := `24-06-2025  NS   Reizen op saldo, dal/spits  Hilversum Duivendrecht  2  € 3,45
24-06-2025  GVB  Lijn 50  Station Duivendrecht Station Zuid  € 1,12
24-06-2025  NS   Reizen op saldo, dal/spits  Duivendrecht Amsterdam Centraal  2  € 4,00
`
	statement, cfg := fixture(t, mixed, commuteConfig())

	stdout, _, err := run(t, "report", "--plain", "--config", cfg, statement)
	assert.NoError(t, err)

	assert.Contains(t, stdout, "Hilversum")
	assert.Contains(t, stdout, "Amsterdam Centraal")
	assert.Contains(t, stdout, "Total (2 legs, 1 days)  € 7.45")
	assert.NotContains(t, stdout, "Station Zuid")
}

func TestReportCommandStationFlags(t *testing.T) {
	statement, cfg := fixture(t, juni, commuteConfig())

	t.Run("weekend dropped", func(t *testing.T) {
		stdout, stderr, err := run(t, "report", "--plain", "--config", cfg, "--to=Utrecht Centraal", statement)
		assert.NoError(t, err)
		assert.Equal(t, "", stdout)
		assert.Contains(t, stderr, "No commute legs found in juni.txt")
	})

	t.Run("all days", func(t *testing.T) {
		stdout, _, err := run(t, "report", "--plain", "--config", cfg, "--to=Utrecht Centraal", "--all-days", statement)
		assert.NoError(t, err)
		assert.Contains(t, stdout, "Utrecht Centraal")
		assert.Contains(t, stdout, "Total (1 legs, 1 days)")
	})
}

func TestReportCommandWithoutStations(t *testing.T) {
	statement, cfg := fixture(t, juni, nil)

	_, _, err := run(t, "report", "--config", cfg, statement)
	assert.IsError(t, err, config.ErrNoStations)
}

func TestReportCommandParseError(t *testing.T) {
	statement, cfg := fixture(t, "header\n31-02-2025  NS  Reizen op saldo, dal/spits  Hilversum Weesp  2  € 3,45\n", commuteConfig())

	stdout, stderr, err := run(t, "report", "--config", cfg, statement)

	var cmdErr *CommandError
	assert.True(t, errors.As(err, &cmdErr), "expected CommandError, got %v", err)
	assert.Equal(t, 1, cmdErr.ExitCode())
	assert.Equal(t, "", stdout)
	assert.Contains(t, stderr, `invalid date "31-02-2025"`)
	assert.Contains(t, stderr, "^")
	assert.Contains(t, stderr, "parse error")
}

func TestReportCommandUnmatched(t *testing.T) {
	statement, cfg := fixture(t, juni+"24-06-2025  GVB  Lijn  Onbekend Plein  € 1,12\n", commuteConfig())

	_, stderr, err := run(t, "report", "--plain", "--config", cfg, statement)
	assert.NoError(t, err)
	assert.Contains(t, stderr, "1 fare line(s) with unknown stations")
}

func TestExportCommand(t *testing.T) {
	statement, cfg := fixture(t, juni, commuteConfig())

	t.Run("beancount", func(t *testing.T) {
		stdout, _, err := run(t, "export", "--config", cfg, "--open-accounts", statement)
		assert.NoError(t, err)
		assert.Contains(t, stdout, "2025-06-24 open Expenses:Commute:NS EUR")
		assert.Contains(t, stdout, `2025-06-24 * "Commute" "Hilversum > Duivendrecht > Amsterdam Centraal > Hilversum"`)
		assert.Contains(t, stdout, "14.90 EUR")
		assert.Contains(t, stdout, "  Liabilities:OV-Chipkaart")
	})

	t.Run("ics", func(t *testing.T) {
		stdout, _, err := run(t, "export", "--config", cfg, "--format", "ics", statement)
		assert.NoError(t, err)
		assert.Contains(t, stdout, "BEGIN:VCALENDAR")
		assert.Contains(t, stdout, "UID:commute-20250624@commute")
		assert.Contains(t, stdout, "SUMMARY:Commute € 14.90")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, _, err := run(t, "export", "--config", cfg, "--format", "csv", statement)
		assert.Error(t, err)
	})
}

func TestDoctorLegsCommand(t *testing.T) {
	statement, cfg := fixture(t, juni, nil)

	t.Run("table", func(t *testing.T) {
		stdout, _, err := run(t, "doctor", "legs", "--config", cfg, statement)
		assert.NoError(t, err)
		assert.Contains(t, stdout, "Utrecht Centraal")
		assert.Contains(t, stdout, "Total (4 legs, 2 days)")
	})

	t.Run("unmatched", func(t *testing.T) {
		statement, cfg := fixture(t, juni+"24-06-2025  GVB  Lijn  Onbekend Plein  € 1,12\n", nil)
		_, stderr, err := run(t, "doctor", "legs", "--config", cfg, statement)
		assert.NoError(t, err)
		assert.Contains(t, stderr, "juni.txt:7:1: unknown GVB station 24-06-2025  GVB  Lijn  Onbekend Plein  € 1,12")
	})

	t.Run("raw", func(t *testing.T) {
		stdout, _, err := run(t, "doctor", "legs", "--raw", "--config", cfg, statement)
		assert.NoError(t, err)
		assert.Contains(t, stdout, "trip.Leg{")
		assert.Contains(t, stdout, `"Utrecht Centraal"`)
	})
}

func TestInitCommand(t *testing.T) {
	_, cfg := fixture(t, "", nil)

	_, stderr, err := run(t, "init", "--config", cfg, "--from", "Hilversum", "--to=Amsterdam Zuid", "--to=Amsterdam Centraal")
	assert.NoError(t, err)
	assert.Contains(t, stderr, "Saved 1 home and 2 work station(s)")
	assert.Contains(t, stderr, "Hilversum → Amsterdam Zuid, Amsterdam Centraal")

	saved, err := config.Load(cfg)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Hilversum"}, saved.From)
	assert.Equal(t, []string{"Amsterdam Zuid", "Amsterdam Centraal"}, saved.To)
}

func TestInitCommandExisting(t *testing.T) {
	_, cfg := fixture(t, "", commuteConfig())

	// Stdin is not a terminal under test, so the overwrite prompt declines.
	_, stderr, err := run(t, "init", "--config", cfg, "--from", "Weesp", "--to", "Utrecht Centraal")
	assert.NoError(t, err)
	assert.Contains(t, stderr, "Keeping")

	kept, err := config.Load(cfg)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Hilversum"}, kept.From)

	_, _, err = run(t, "init", "--force", "--config", cfg, "--from", "Weesp", "--to", "Utrecht Centraal")
	assert.NoError(t, err)

	replaced, err := config.Load(cfg)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Weesp"}, replaced.From)
	assert.Equal(t, []string{"Utrecht Centraal"}, replaced.To)
}

func TestInitCommandRequiresStations(t *testing.T) {
	_, cfg := fixture(t, "", nil)

	_, _, err := run(t, "init", "--config", cfg, "--from", "Hilversum")
	assert.EqualError(t, err, "--from and --to are required when stdin is not a terminal")
}

func TestBuildVersion(t *testing.T) {
	version, sha := Version, CommitSHA
	t.Cleanup(func() { Version, CommitSHA = version, sha })

	Version, CommitSHA = "", ""
	assert.Equal(t, "dev", BuildVersion())

	Version, CommitSHA = "1.2.0", "abc1234"
	assert.Equal(t, "1.2.0 (abc1234)", BuildVersion())
}
